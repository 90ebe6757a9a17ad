// Package ui writes command output, handing long output to a pager when
// stdout is a terminal.
//
// The pager command comes from --pager, the pager config key or $PAGER
// and runs with the user's privileges, the same as git or man.
package ui

import (
	"os"
	"os/exec"
	"strings"
)

// defaultPager is used when nothing names one.
const defaultPager = "less -FRSX"

// pagerArgv splits a pager command. Blank and "cat" mean no pager.
func pagerArgv(cmd string) []string {
	argv := strings.Fields(cmd)
	if len(argv) == 0 || argv[0] == "cat" {
		return nil
	}
	return argv
}

// page runs argv with content on stdin.
func (w *Writer) page(argv []string, content string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
