// Package embedded gives other packages access to the files embedded by the
// root package.
//
// //go:embed can only reach files below the declaring package, so the
// embed.FS lives in the repository root (embed.go) and is handed over here
// with Init before anything loads from it.
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultConfigPath is the embedded default configuration.
const DefaultConfigPath = "data/scenarios.yaml"

// ErrNotInitialized is returned before Init has been called.
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init installs the embedded file system.
// Must be called at the start of main, before any resource is loaded.
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized reports whether Init has been called.
func IsInitialized() bool {
	return initialized
}

// clean normalizes path separators and checks the "data/" prefix.
func clean(path string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open opens an embedded file. The path must start with "data/".
func Open(path string) (fs.File, error) {
	path, err := clean(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile reads an embedded file. The path must start with "data/".
func ReadFile(path string) ([]byte, error) {
	path, err := clean(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists reports whether an embedded file exists.
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}
