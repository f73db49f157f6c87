package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/verton/internal/config"
	"github.com/specialistvlad/verton/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	// Environ lists the variables exposed as `env`, in os.Environ form.
	Environ func() []string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ}
}

// Load reads the settings file at path and applies it on top of base.
func (l *Loader) Load(ctx context.Context, path string, base config.Settings) (config.Settings, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read settings file: %w", err)
	}
	return l.Parse(ctx, src, path, base)
}

// Parse decodes settings from src. filename only appears in diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string, base config.Settings) (config.Settings, error) {
	logger := ctxlog.FromContext(ctx)

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse settings file %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, l.evalContext(), &root); diags.HasErrors() {
		return base, fmt.Errorf("failed to decode settings file %s: %w", filename, diags)
	}

	out := root.apply(base)
	logger.Debug("Settings file loaded.", "path", filename, "frame_rate", out.Session.FrameRate, "stage_listen", out.Stage.Listen)
	return out, nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	if l.Environ != nil {
		for _, kv := range l.Environ() {
			name, value, ok := strings.Cut(kv, "=")
			if !ok || name == "" {
				continue
			}
			vars[name] = cty.StringVal(value)
		}
	}

	env := cty.MapValEmpty(cty.String)
	if len(vars) > 0 {
		env = cty.MapVal(vars)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"env": env}}
}

func (r fileRoot) apply(s config.Settings) config.Settings {
	if b := r.Session; b != nil {
		set(&s.Session.FrameRate, b.FrameRate)
		set(&s.Session.Frames, b.Frames)
	}
	if b := r.Stage; b != nil {
		set(&s.Stage.Listen, b.Listen)
		set(&s.Stage.X, b.X)
		set(&s.Stage.Y, b.Y)
		set(&s.Stage.Width, b.Width)
		set(&s.Stage.Height, b.Height)
	}
	if b := r.Log; b != nil {
		set(&s.Log.Format, b.Format)
		set(&s.Log.Level, b.Level)
	}
	return s
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
