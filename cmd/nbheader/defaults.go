package main

import (
	"os"
	"path/filepath"
)

const (
	defaultHeaderName      = "header_colab.ipynb"
	defaultNotebookDirName = "src"
)

// executableDir returns the directory holding the running binary, with
// symlinks resolved.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func defaultPaths(dir string) (header, notebookDir string) {
	return filepath.Join(dir, defaultHeaderName), filepath.Join(dir, defaultNotebookDirName)
}
