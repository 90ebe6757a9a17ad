package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/footprint-tools/cmdcore/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, app.DefaultOptions)
	stop()
	os.Exit(code)
}
