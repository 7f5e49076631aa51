// Package testutil holds the shared harness for session-level tests:
// temp profile and manifest layout, log capture, and fake extension
// modules.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/chathostgo/internal/app"
	"github.com/vk/chathostgo/internal/hcl"
	"github.com/vk/chathostgo/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a session test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunSession provides a standardized harness for session tests using a
// default background context.
func RunSession(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunSessionWithContext(context.Background(), t, files, modules...)
}

// RunSessionWithContext stands up a temporary profile, writes the given
// manifest files, and drives the load phase with the provided modules.
// Keys in files are relative paths under the temp root; manifests
// usually go under "modules/".
func RunSessionWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()

	profileDir := filepath.Join(tmpDir, "profile")
	modulesDir := filepath.Join(tmpDir, "modules")
	require.NoError(t, os.Mkdir(profileDir, 0755))
	require.NoError(t, os.Mkdir(modulesDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg, err := app.NewConfig(app.Config{
		ProfilePath: profileDir,
		ModulesPath: modulesDir,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var startupErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				startupErr = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		testApp, startupErr = app.NewApp(logBuffer, cfg, hcl.NewLoader(), modules...)
	}()

	if startupErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       startupErr,
		}
	}

	// Drive the load phase directly rather than the blocking Run loop so
	// errors propagate to the caller.
	_, runErr := testApp.Load(ctx)

	if os.Getenv("CHATHOSTGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
