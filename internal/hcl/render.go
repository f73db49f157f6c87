package hcl

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/specialistvlad/verton/internal/config"
)

// Render writes s as a settings file that Parse reads back unchanged.
func Render(s config.Settings) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	gohcl.EncodeIntoBody(&sessionOut{
		FrameRate: s.Session.FrameRate,
		Frames:    s.Session.Frames,
	}, body.AppendNewBlock("session", nil).Body())
	body.AppendNewline()

	gohcl.EncodeIntoBody(&stageOut{
		Listen: s.Stage.Listen,
		X:      s.Stage.X,
		Y:      s.Stage.Y,
		Width:  s.Stage.Width,
		Height: s.Stage.Height,
	}, body.AppendNewBlock("stage", nil).Body())
	body.AppendNewline()

	gohcl.EncodeIntoBody(&logOut{
		Format: s.Log.Format,
		Level:  s.Log.Level,
	}, body.AppendNewBlock("log", nil).Body())

	return hclwrite.Format(f.Bytes())
}
