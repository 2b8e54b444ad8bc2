// Package testutil provides fixtures shared by package tests: sheet files on
// disk and stand-in scripts for the external pdflatex and pdftk programs.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteFile writes content to dir/name, creating parent directories.
//
// Postcondition: Returns the written path or fails the test.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// FakeTool writes an executable POSIX shell script named name into a fresh
// temporary directory and returns its path. body is the script without the
// interpreter line. The test is skipped on platforms without /bin/sh.
//
// Precondition: name must be a bare file name.
// Postcondition: Returns an executable path or skips/fails the test.
func FakeTool(t testing.TB, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("writing fake %s: %v", name, err)
	}
	return path
}

// MissingTool returns a path under a temporary directory that does not exist,
// for exercising "program not found" handling.
func MissingTool(t testing.TB, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing", name)
}
