package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/verton/internal/app"
	"github.com/specialistvlad/verton/internal/garage"
	"github.com/specialistvlad/verton/internal/hcl"
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

// HarnessResult holds the outcomes of an app run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// GraphJSON encodes g the way it is stored on disk.
func GraphJSON(t *testing.T, g *garage.Garage) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, g.Encode(&buf))
	return buf.String()
}

// RunApp writes files into a temporary directory and runs the app with cfg
// using a background context. GraphPath and SettingsPath in cfg are taken
// relative to that directory.
func RunApp(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunAppWithContext(context.Background(), t, files, cfg)
}

// RunAppWithContext is RunApp with a caller-provided context.
func RunAppWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	if cfg.GraphPath != "" {
		cfg.GraphPath = filepath.Join(dir, cfg.GraphPath)
	}
	if cfg.SettingsPath != "" {
		cfg.SettingsPath = filepath.Join(dir, cfg.SettingsPath)
	}

	out := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("VERTON_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	testApp, err := app.NewApp(out, &cfg, hcl.NewLoader())
	if err != nil {
		return &HarnessResult{Output: out.String(), Err: err}
	}
	err = testApp.Run(ctx)
	return &HarnessResult{Output: out.String(), Err: err, App: testApp}
}

// ReportLine returns the first output line starting with prefix, or "".
func (r *HarnessResult) ReportLine(prefix string) string {
	for _, line := range strings.Split(r.Output, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	return ""
}
