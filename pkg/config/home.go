package config

import (
	"os"
	"path/filepath"
	"sync"
)

const envHome = "PAGEOBJECT_HOME"

var (
	homeOnce sync.Once
	homeDir  string
)

// GetHome returns the pageobject home directory: $PAGEOBJECT_HOME, else the
// parent of the binary's bin/ directory, else the working directory.
func GetHome() string {
	homeOnce.Do(func() {
		homeDir = resolveHome()
	})
	return homeDir
}

// GetLogDir returns <home>/logs.
func GetLogDir() string {
	return filepath.Join(GetHome(), "logs")
}

// DefaultLogPath returns <home>/logs/pageobject.log.
func DefaultLogPath() string {
	return filepath.Join(GetLogDir(), "pageobject.log")
}

// LogPath resolves the configured log file. Empty means no file log,
// "default" means DefaultLogPath, and relative names live under GetLogDir.
// The parent directory is created.
func (c *Config) LogPath() (string, error) {
	var path string
	switch {
	case c.LogFile == "":
		return "", nil
	case c.LogFile == "default":
		path = DefaultLogPath()
	case filepath.IsAbs(c.LogFile):
		path = c.LogFile
	default:
		path = filepath.Join(GetLogDir(), c.LogFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

func resolveHome() string {
	if env := os.Getenv(envHome); env != "" {
		return env
	}

	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		if dir := filepath.Dir(exe); filepath.Base(dir) == "bin" {
			return filepath.Dir(dir)
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// ResetHome clears the cached home directory. Tests only.
func ResetHome() {
	homeOnce = sync.Once{}
	homeDir = ""
}
