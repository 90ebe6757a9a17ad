// Package paths locates the files cmdcore keeps on disk.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "cmdcore"

// HomeEnv, when set, puts every file cmdcore keeps under one directory.
const HomeEnv = "CMDCORE_HOME"

// AppDataDir holds the log file, the console history and the default
// manifest. It is created on first use.
//   - macOS: ~/Library/Application Support/cmdcore
//   - Linux: $XDG_CONFIG_HOME/cmdcore or ~/.config/cmdcore
//   - Windows: %AppData%\cmdcore
func AppDataDir() string {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "."
		}
		dir = filepath.Join(base, appDirName)
	}
	_ = os.MkdirAll(dir, 0700)
	return dir
}

// AppLocalDataDir holds the history database.
//   - macOS: ~/Library/Application Support/cmdcore
//   - Linux: $XDG_DATA_HOME/cmdcore or ~/.local/share/cmdcore
//   - Windows: %LOCALAPPDATA%\cmdcore
func AppLocalDataDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	base, err := localDataBase()
	if err != nil {
		return "."
	}
	return filepath.Join(base, appDirName)
}

func localDataBase() (string, error) {
	env := map[string]string{"windows": "LOCALAPPDATA"}
	fallback := map[string][]string{
		"darwin":  {"Library", "Application Support"},
		"windows": {"AppData", "Local"},
	}
	if runtime.GOOS != "darwin" {
		name, ok := env[runtime.GOOS]
		if !ok {
			name = "XDG_DATA_HOME"
		}
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	rel, ok := fallback[runtime.GOOS]
	if !ok {
		rel = []string{".local", "share"}
	}
	return filepath.Join(append([]string{home}, rel...)...), nil
}

// ConfigFilePath is ~/.cmdcorerc, or .cmdcorerc under $CMDCORE_HOME.
func ConfigFilePath() (string, error) {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = home
	}
	return filepath.Join(dir, ".cmdcorerc"), nil
}

// LogFilePath is the rotating log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "cmdcore.log")
}

// HistoryDBPath is the dispatch history database. Its directory is created
// on first use.
func HistoryDBPath() string {
	dir := AppLocalDataDir()
	_ = os.MkdirAll(dir, 0700)
	return filepath.Join(dir, "history.db")
}

// DefaultManifestPath is where a manifest is looked for when none is
// configured.
func DefaultManifestPath() string {
	return filepath.Join(AppDataDir(), "commands.toml")
}
