package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_StartupError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A manifest with a syntax error fails manifest discovery inside
	// app.NewApp(), before anything is loaded.
	invalidHCL := `
		extension {
			name = "broken
	`
	modulesDir := t.TempDir()
	filePath := filepath.Join(modulesDir, "extension.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	profileDir := t.TempDir()
	args := []string{"--modules-path", modulesDir, profileDir}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned the manifest error")
	require.Contains(t, runErr.Error(), "is not valid HCL")
}

func TestRun_CheckMode(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	manifest := `
		extension {
			name   = "Chat log"
			source = "chathostgo.chatlog"
		}
	`
	modulesDir := t.TempDir()
	err := os.WriteFile(filepath.Join(modulesDir, "extension.hcl"), []byte(manifest), 0600)
	require.NoError(t, err, "failed to set up test file")

	profileDir := t.TempDir()
	args := []string{"--check", "--modules-path", modulesDir, profileDir}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, runErr, "run() should resolve a single-extension order")
	require.Contains(t, out.String(), "1. Chat log (chathostgo.chatlog)")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should see `shouldExit=true` and return a nil error.
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should propagate the error from cli.Parse.
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
