package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/verton/internal/config"
)

func newTestLoader(env ...string) *Loader {
	return &Loader{Environ: func() []string { return env }}
}

func TestParse_OverridesOnlyNamedAttributes(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	src := `
session {
  frame_rate = 30
}

stage {
  listen = "127.0.0.1:4000"
  width  = 1024
}
`
	base := config.Default()

	// --- Act ---
	got, err := newTestLoader().Parse(context.Background(), []byte(src), "settings.hcl", base)

	// --- Assert ---
	require.NoError(t, err)
	want := base
	want.Session.FrameRate = 30
	want.Stage.Listen = "127.0.0.1:4000"
	want.Stage.Width = 1024
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ReadsEnvironment(t *testing.T) {
	t.Parallel()
	loader := newTestLoader("VERTON_FPS=24", "VERTON_HOST=0.0.0.0", "BROKEN")
	src := `
session {
  frame_rate = env.VERTON_FPS
}

stage {
  listen = "${env.VERTON_HOST}:4000"
}
`
	got, err := loader.Parse(context.Background(), []byte(src), "settings.hcl", config.Default())

	require.NoError(t, err)
	assert.Equal(t, 24, got.Session.FrameRate)
	assert.Equal(t, "0.0.0.0:4000", got.Stage.Listen)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "syntax", src: "session {", wantErr: "failed to parse"},
		{name: "unknown block", src: "graph {}\n", wantErr: "failed to decode"},
		{name: "unknown attribute", src: "session {\n  speed = 2\n}\n", wantErr: "failed to decode"},
		{name: "duplicate block", src: "log {}\nlog {}\n", wantErr: "failed to decode"},
		{name: "wrong type", src: "session {\n  frames = \"many\"\n}\n", wantErr: "failed to decode"},
		{name: "missing env", src: "stage {\n  listen = env.NOPE\n}\n", wantErr: "failed to decode"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := newTestLoader().Parse(context.Background(), []byte(tc.src), "bad.hcl", config.Default())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Contains(t, err.Error(), "bad.hcl")
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.hcl")
	require.NoError(t, os.WriteFile(path, []byte("session {\n  frames = 120\n}\n"), 0o644))

	got, err := NewLoader().Load(context.Background(), path, config.Default())

	require.NoError(t, err)
	assert.Equal(t, 120, got.Session.Frames)

	_, err = NewLoader().Load(context.Background(), filepath.Join(dir, "missing.hcl"), config.Default())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRender_ParsesBackToSameSettings(t *testing.T) {
	t.Parallel()
	want := config.Settings{
		Session: config.Session{FrameRate: 30, Frames: 90},
		Stage:   config.Stage{Listen: ":4000", X: 12.5, Y: 40, Width: 640, Height: 480},
		Log:     config.Log{Format: "json", Level: "warn"},
	}

	out := Render(want)

	assert.Contains(t, string(out), "session {")
	assert.Contains(t, string(out), "frame_rate = 30")
	got, err := newTestLoader().Parse(context.Background(), out, "rendered.hcl", config.Settings{})
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
