package hcl

// fileRoot is the top-level schema of a settings file.
type fileRoot struct {
	Session *sessionBlock `hcl:"session,block"`
	Stage   *stageBlock   `hcl:"stage,block"`
	Log     *logBlock     `hcl:"log,block"`
}

type sessionBlock struct {
	FrameRate *int `hcl:"frame_rate,optional"`
	Frames    *int `hcl:"frames,optional"`
}

type stageBlock struct {
	Listen *string  `hcl:"listen,optional"`
	X      *float64 `hcl:"x,optional"`
	Y      *float64 `hcl:"y,optional"`
	Width  *float64 `hcl:"width,optional"`
	Height *float64 `hcl:"height,optional"`
}

type logBlock struct {
	Format *string `hcl:"format,optional"`
	Level  *string `hcl:"level,optional"`
}

// The render structs mirror the blocks with every attribute present.

type sessionOut struct {
	FrameRate int `hcl:"frame_rate"`
	Frames    int `hcl:"frames"`
}

type stageOut struct {
	Listen string  `hcl:"listen"`
	X      float64 `hcl:"x"`
	Y      float64 `hcl:"y"`
	Width  float64 `hcl:"width"`
	Height float64 `hcl:"height"`
}

type logOut struct {
	Format string `hcl:"format"`
	Level  string `hcl:"level"`
}
