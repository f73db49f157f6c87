package compiler

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/verton/internal/ctxlog"
	"github.com/specialistvlad/verton/internal/dag"
	"github.com/specialistvlad/verton/internal/garage"
	"github.com/specialistvlad/verton/internal/ident"
	"github.com/specialistvlad/verton/internal/kind"
)

// Compile validates vertexes and edges and builds the executable graph.
func Compile(ctx context.Context, vertexes []garage.Vertex, edges []garage.Edge) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling graph.", "vertexes", len(vertexes), "edges", len(edges))

	byID := make(map[garage.VertexID]*Vertex, len(vertexes))
	compiled := make([]*Vertex, 0, len(vertexes))
	for i := range vertexes {
		v, err := compileVertex(&vertexes[i])
		if err != nil {
			return nil, err
		}
		if _, dup := byID[v.ID]; dup {
			return nil, &InvalidConfigurationError{VertexID: v.ID, Field: "_id", Msg: "duplicate vertex id"}
		}
		byID[v.ID] = v
		compiled = append(compiled, v)
	}

	if err := checkEdges(edges, byID); err != nil {
		return nil, err
	}

	order, err := evaluationOrder(compiled, edges, byID)
	if err != nil {
		return nil, err
	}

	g := &Graph{Order: order, ByID: byID}
	g.allocateSlots()
	g.wire(edges)
	g.fillBuckets()

	logger.Debug("Graph compiled.",
		"vertexes", len(g.Order),
		"plugs", g.PlugCount,
		"jacks", g.JackCount,
		"just_when_clicked", len(g.Buckets.JustWhenClicked),
		"while_pointer_down", len(g.Buckets.WhilePointerDown),
		"last_position", len(g.Buckets.LastPosition),
	)
	return g, nil
}

// compileVertex validates a single vertex and reads its kind settings.
func compileVertex(src *garage.Vertex) (*Vertex, error) {
	spec, ok := kind.Lookup(src.Kind)
	if !ok {
		return nil, &InvalidVertexKindError{VertexID: src.ID, Kind: src.Kind}
	}
	if src.ID < 0 {
		return nil, &InvalidConfigurationError{VertexID: src.ID, Field: "_id", Msg: "vertex id must not be negative"}
	}

	for _, p := range src.Plugs {
		if err := checkDescriptor(src.ID, "plug", p.Descriptor, spec.HasPlug); err != nil {
			return nil, err
		}
	}
	for _, j := range src.Jacks {
		if err := checkDescriptor(src.ID, "jack", j.Descriptor, spec.HasJack); err != nil {
			return nil, err
		}
	}
	for _, key := range src.Config.Keys() {
		if _, err := ident.ValidateAt(fmt.Sprintf("vertex %d config", src.ID), key); err != nil {
			return nil, err
		}
	}

	v := &Vertex{
		ID:       src.ID,
		Kind:     spec.Kind,
		Header:   src.Header,
		Category: spec.Category(),
	}
	if err := configure(v, src); err != nil {
		return nil, err
	}
	return v, nil
}

func checkDescriptor(id garage.VertexID, side string, d garage.Descriptor, declared func(string) bool) error {
	if d.Variant != garage.NamedSlot {
		return nil
	}
	if _, err := ident.ValidateAt(fmt.Sprintf("vertex %d %s", id, side), d.ID); err != nil {
		return err
	}
	if !declared(d.ID) {
		return &InvalidConfigurationError{VertexID: id, Field: d.ID, Msg: fmt.Sprintf("kind does not define this %s", side)}
	}
	return nil
}

// configure reads the kind-specific settings of src into v.
func configure(v *Vertex, src *garage.Vertex) error {
	switch v.Kind {
	case kind.Constant:
		raw, ok := src.Config["value"]
		if !ok {
			return &InvalidConfigurationError{VertexID: v.ID, Field: "value", Msg: "constant requires a value"}
		}
		n, ok := raw.AsNumber()
		if !ok {
			return &InvalidConfigurationError{VertexID: v.ID, Field: "value", Msg: fmt.Sprintf("expected a number, got a %s", raw.Kind)}
		}
		v.Constant = n

	case kind.Calculate, kind.Compare:
		symbol, err := operatorSymbol(v.ID, src)
		if err != nil {
			return err
		}
		v.OperatorSymbol = symbol
		v.Operator, _ = ParseOperator(v.Kind, symbol)

	case kind.Click:
		mode, err := sendMode(v.ID, src, JustWhenClicked, JustWhenClicked, WhilePointerDown, LastPosition)
		if err != nil {
			return err
		}
		v.Send = mode

	case kind.Cursor:
		mode, err := sendMode(v.ID, src, LastPosition, WhilePointerDown, LastPosition)
		if err != nil {
			return err
		}
		v.Send = mode

	case kind.Object:
		v.Initial = src.Position
	}
	return nil
}

// operatorSymbol reads `operator` from config, or else the label drawn
// between the two jacks, e.g. `left, {label: "+"}, right`.
func operatorSymbol(id garage.VertexID, src *garage.Vertex) (string, error) {
	if raw, ok := src.Config["operator"]; ok {
		symbol, ok := raw.AsText()
		if !ok || strings.TrimSpace(symbol) == "" {
			return "", &InvalidConfigurationError{VertexID: id, Field: "operator", Msg: "operator must be a non-empty string"}
		}
		return strings.TrimSpace(symbol), nil
	}
	for _, j := range src.Jacks {
		if j.Variant == garage.LabelOnly && strings.TrimSpace(j.LabelText()) != "" {
			return strings.TrimSpace(j.LabelText()), nil
		}
	}
	return "", &InvalidConfigurationError{VertexID: id, Field: "operator", Msg: "no operator configured"}
}

func sendMode(id garage.VertexID, src *garage.Vertex, def SendMode, allowed ...SendMode) (SendMode, error) {
	raw, ok := src.Config["send"]
	if !ok {
		return def, nil
	}
	text, ok := raw.AsText()
	if !ok {
		return "", &InvalidConfigurationError{VertexID: id, Field: "send", Msg: fmt.Sprintf("expected a string or choice, got a %s", raw.Kind)}
	}
	for _, m := range allowed {
		if SendMode(text) == m {
			return m, nil
		}
	}
	return "", &InvalidConfigurationError{VertexID: id, Field: "send", Msg: fmt.Sprintf("unsupported send mode %q", text)}
}

// checkEdges makes sure every edge resolves to a declared plug and jack.
func checkEdges(edges []garage.Edge, byID map[garage.VertexID]*Vertex) error {
	for _, e := range edges {
		if _, err := ident.ValidateAt("edge plug", e.From.PlugID); err != nil {
			return err
		}
		if _, err := ident.ValidateAt("edge jack", e.To.JackID); err != nil {
			return err
		}

		from, ok := byID[e.From.VertexID]
		if !ok {
			return &DanglingEdgeError{Edge: e, Msg: fmt.Sprintf("no vertex %d", e.From.VertexID)}
		}
		if spec, _ := kind.Lookup(from.Kind); !spec.HasPlug(e.From.PlugID) {
			return &DanglingEdgeError{Edge: e, Msg: fmt.Sprintf("%s vertex %d has no plug %q", from.Kind, from.ID, e.From.PlugID)}
		}

		to, ok := byID[e.To.VertexID]
		if !ok {
			return &DanglingEdgeError{Edge: e, Msg: fmt.Sprintf("no vertex %d", e.To.VertexID)}
		}
		if spec, _ := kind.Lookup(to.Kind); !spec.HasJack(e.To.JackID) {
			return &DanglingEdgeError{Edge: e, Msg: fmt.Sprintf("%s vertex %d has no jack %q", to.Kind, to.ID, e.To.JackID)}
		}
	}
	return nil
}

// evaluationOrder puts sources first and sinks last, both by id. Mixed
// vertexes in between follow their dependencies; the ones with no
// dependency on another mixed vertex lead, by id.
func evaluationOrder(vertexes []*Vertex, edges []garage.Edge, byID map[garage.VertexID]*Vertex) ([]*Vertex, error) {
	var sources, mixed, sinks []*Vertex
	for _, v := range vertexes {
		switch v.Category {
		case kind.Source:
			sources = append(sources, v)
		case kind.Mixed:
			mixed = append(mixed, v)
		default:
			sinks = append(sinks, v)
		}
	}
	byVertexID := func(list []*Vertex) {
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}
	byVertexID(sources)
	byVertexID(mixed)
	byVertexID(sinks)

	var deps []dag.Edge[*Vertex]
	linked := make(map[garage.VertexID]bool)
	for _, e := range edges {
		from, to := byID[e.From.VertexID], byID[e.To.VertexID]
		if from.Category != kind.Mixed || to.Category != kind.Mixed {
			continue
		}
		deps = append(deps, dag.Edge[*Vertex]{From: from, To: to})
		linked[from.ID] = true
		linked[to.ID] = true
	}

	sorted, err := dag.Sort(deps, func(v *Vertex) garage.VertexID { return v.ID })
	if err != nil {
		return nil, fmt.Errorf("mixed vertexes form a cycle: %w", err)
	}

	order := make([]*Vertex, 0, len(vertexes))
	order = append(order, sources...)
	for _, v := range mixed {
		if !linked[v.ID] {
			order = append(order, v)
		}
	}
	for _, id := range sorted {
		order = append(order, byID[id])
	}
	order = append(order, sinks...)
	return order, nil
}

// allocateSlots numbers plugs and jacks densely in evaluation order.
func (g *Graph) allocateSlots() {
	for _, v := range g.Order {
		spec, _ := kind.Lookup(v.Kind)
		v.plugIndex = make(map[string]int, len(spec.Plugs))
		v.jackIndex = make(map[string]int, len(spec.Jacks))
		for _, name := range spec.Plugs {
			v.plugIndex[name] = g.PlugCount
			v.PlugSlots = append(v.PlugSlots, g.PlugCount)
			g.PlugCount++
		}
		for _, name := range spec.Jacks {
			v.jackIndex[name] = g.JackCount
			v.JackSlots = append(v.JackSlots, g.JackCount)
			g.JackCount++
		}
	}
}

func (g *Graph) wire(edges []garage.Edge) {
	g.Wiring = make([][]int, g.JackCount)
	for _, e := range edges {
		plug := g.ByID[e.From.VertexID].MustPlug(e.From.PlugID)
		jack := g.ByID[e.To.VertexID].MustJack(e.To.JackID)
		g.Wiring[jack] = append(g.Wiring[jack], plug)
	}
}

func (g *Graph) fillBuckets() {
	for _, v := range g.Order {
		if v.Kind != kind.Click && v.Kind != kind.Cursor {
			continue
		}
		switch v.Send {
		case JustWhenClicked:
			g.Buckets.JustWhenClicked = append(g.Buckets.JustWhenClicked, v)
		case WhilePointerDown:
			g.Buckets.WhilePointerDown = append(g.Buckets.WhilePointerDown, v)
		case LastPosition:
			g.Buckets.LastPosition = append(g.Buckets.LastPosition, v)
		}
	}
}
