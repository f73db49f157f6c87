// Package graphtest builds small garages for tests without going through a
// JSON document.
package graphtest

import (
	"fmt"

	"github.com/specialistvlad/verton/internal/garage"
	"github.com/specialistvlad/verton/internal/kind"
)

// Builder accumulates vertexes and edges into a garage.
type Builder struct {
	G *garage.Garage
}

// New starts an empty builder.
func New() *Builder {
	return &Builder{G: garage.New()}
}

// Add appends a vertex of kind k with the given config and returns its id.
func (b *Builder) Add(k garage.Kind, cfg garage.Config) garage.VertexID {
	v, ok := kind.Template(k, string(k))
	if !ok {
		panic(fmt.Sprintf("graphtest: unknown kind %q", k))
	}
	for key, val := range cfg {
		v.Config[key] = val
	}
	return b.G.AddVertex(v)
}

// Constant adds a constant vertex.
func (b *Builder) Constant(value float64) garage.VertexID {
	return b.Add(kind.Constant, garage.Config{"value": garage.Number(value)})
}

// Calculate adds a calculate vertex using op.
func (b *Builder) Calculate(op string) garage.VertexID {
	return b.Add(kind.Calculate, garage.Config{"operator": garage.String(op)})
}

// Compare adds a compare vertex using op.
func (b *Builder) Compare(op string) garage.VertexID {
	return b.Add(kind.Compare, garage.Config{"operator": garage.String(op)})
}

// Click adds a click vertex with the given send mode.
func (b *Builder) Click(send string) garage.VertexID {
	return b.Add(kind.Click, garage.Config{"send": garage.ChoiceOf(send, "justWhenClicked", "whilePointerDown", "lastPosition")})
}

// Cursor adds a cursor vertex with the given send mode.
func (b *Builder) Cursor(send string) garage.VertexID {
	return b.Add(kind.Cursor, garage.Config{"send": garage.String(send)})
}

// Object adds an object vertex placed at (x, y).
func (b *Builder) Object(header string, x, y float64) garage.VertexID {
	id := b.Add(kind.Object, nil)
	v, _ := b.G.Vertex(id)
	v.Header = header
	v.Position = garage.Point{X: x, Y: y}
	return id
}

// Wire connects a plug to a jack.
func (b *Builder) Wire(from garage.VertexID, plug string, to garage.VertexID, jack string) *Builder {
	b.G.Connect(from, plug, to, jack)
	return b
}
