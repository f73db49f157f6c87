package garage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Garage is the declarative graph plus the id generator used when new
// vertexes are added to it.
type Garage struct {
	Vertexes []Vertex `json:"vertexes"`
	Edges    []Edge   `json:"edges"`

	nextID  VertexID
	idReady bool
}

// New returns an empty garage.
func New() *Garage {
	return &Garage{Vertexes: []Vertex{}, Edges: []Edge{}}
}

// NextID reserves a fresh vertex id, never lower than one past the largest id
// already present.
func (g *Garage) NextID() VertexID {
	if !g.idReady {
		g.syncIDs()
	}
	id := g.nextID
	g.nextID++
	return id
}

func (g *Garage) syncIDs() {
	for _, v := range g.Vertexes {
		if v.ID >= g.nextID {
			g.nextID = v.ID + 1
		}
	}
	g.idReady = true
}

// AddVertex appends v under a freshly generated id and returns that id. Nil
// descriptor lists and config are replaced by empty ones.
func (g *Garage) AddVertex(v Vertex) VertexID {
	v.ID = g.NextID()
	if v.Plugs == nil {
		v.Plugs = []PlugDescriptor{}
	}
	if v.Jacks == nil {
		v.Jacks = []JackDescriptor{}
	}
	if v.Config == nil {
		v.Config = Config{}
	}
	g.Vertexes = append(g.Vertexes, v)
	return v.ID
}

// Connect appends an edge from a plug to a jack.
func (g *Garage) Connect(from VertexID, plugID string, to VertexID, jackID string) {
	g.Edges = append(g.Edges, Edge{
		From: PlugRef{VertexID: from, PlugID: plugID},
		To:   JackRef{VertexID: to, JackID: jackID},
	})
}

// Vertex returns the vertex with the given id.
func (g *Garage) Vertex(id VertexID) (*Vertex, bool) {
	for i := range g.Vertexes {
		if g.Vertexes[i].ID == id {
			return &g.Vertexes[i], true
		}
	}
	return nil, false
}

// Decode reads one graph document from r.
func Decode(r io.Reader) (*Garage, error) {
	dec := json.NewDecoder(r)
	g := &Garage{}
	if err := dec.Decode(g); err != nil {
		return nil, &ParseError{Msg: "invalid graph document", Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Msg: "unexpected data after graph document"}
	}
	g.syncIDs()
	return g, nil
}

// Encode writes g as indented JSON.
func (g *Garage) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}

// Load reads a graph document from a file.
func Load(path string) (*Garage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return g, nil
}

// Save writes g to a file, replacing it.
func (g *Garage) Save(path string) error {
	var buf bytes.Buffer
	if err := g.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write graph file: %w", err)
	}
	return nil
}
