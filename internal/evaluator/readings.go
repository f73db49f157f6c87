package evaluator

import (
	"github.com/specialistvlad/verton/internal/compiler"
	"github.com/specialistvlad/verton/internal/garage"
	"github.com/specialistvlad/verton/internal/kind"
)

// Reading is the value of one plug.
type Reading struct {
	VertexID garage.VertexID `json:"vertexId"`
	Kind     garage.Kind     `json:"kind"`
	Header   string          `json:"header"`
	Plug     string          `json:"plugId"`
	Value    float64         `json:"value"`
}

// Readings names every value of a snapshot, in evaluation order.
func Readings(g *compiler.Graph, values []float64) []Reading {
	out := make([]Reading, 0, len(values))
	for _, v := range g.Order {
		spec, _ := kind.Lookup(v.Kind)
		for _, name := range spec.Plugs {
			slot := v.MustPlug(name)
			if slot >= len(values) {
				continue
			}
			out = append(out, Reading{
				VertexID: v.ID,
				Kind:     v.Kind,
				Header:   v.Header,
				Plug:     name,
				Value:    values[slot],
			})
		}
	}
	return out
}
