// Package testutil provides the shared harness for integration tests: it
// materializes definition and data files in a temporary directory, builds a
// full App from them, and captures the log output.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yonkmanjl/vizro/internal/app"
	"github.com/yonkmanjl/vizro/internal/hclcfg"
	"github.com/yonkmanjl/vizro/internal/registry"
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

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// BuildDashboard writes the provided files (relative path -> content) into a
// temporary directory, then constructs an App over them with the HCL loader.
// A build failure is returned in the result, not fatal to the test, so error
// cases use the same harness.
func BuildDashboard(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	appConfig, err := app.NewConfig(app.Config{
		ConfigPath: tmpDir,
		LogLevel:   "debug",
		LogFormat:  "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp, err := app.NewApp(logBuffer, appConfig, hclcfg.NewLoader(), modules...)

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       err,
		App:       testApp,
	}
}
