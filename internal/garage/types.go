package garage

// VertexID identifies a vertex within one garage.
type VertexID int

// Kind names the closed set of vertex behaviours. It is kept as a plain
// string here so unknown kinds survive a load/save cycle; the compiler
// rejects them.
type Kind string

// Point is a position on the stage.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Colors is the cosmetic theme of a vertex box.
type Colors struct {
	Window     string `json:"window,omitempty"`
	Label      string `json:"label,omitempty"`
	Header     string `json:"header,omitempty"`
	Point      string `json:"point,omitempty"`
	Background string `json:"background,omitempty"`
}

// Vertex is one box of the graph.
type Vertex struct {
	ID       VertexID         `json:"_id"`
	Header   string           `json:"header"`
	Kind     Kind             `json:"kind"`
	Plugs    []PlugDescriptor `json:"plugs"`
	Jacks    []JackDescriptor `json:"jacks"`
	Config   Config           `json:"config"`
	Colors   *Colors          `json:"colors,omitempty"`
	Position Point            `json:"position"`
}

// PlugIDs returns the ids of the named plug descriptors, in order.
func (v *Vertex) PlugIDs() []string {
	var ids []string
	for _, p := range v.Plugs {
		if p.Variant == NamedSlot {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// JackIDs returns the ids of the named jack descriptors, in order.
func (v *Vertex) JackIDs() []string {
	var ids []string
	for _, j := range v.Jacks {
		if j.Variant == NamedSlot {
			ids = append(ids, j.ID)
		}
	}
	return ids
}

// PlugRef addresses a plug across the whole garage.
type PlugRef struct {
	VertexID VertexID `json:"vertexId"`
	PlugID   string   `json:"plugId"`
}

// JackRef addresses a jack across the whole garage.
type JackRef struct {
	VertexID VertexID `json:"vertexId"`
	JackID   string   `json:"jackId"`
}

// Edge is a wire from a plug to a jack.
type Edge struct {
	From PlugRef `json:"from"`
	To   JackRef `json:"to"`
}
