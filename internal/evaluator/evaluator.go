package evaluator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/specialistvlad/verton/internal/compiler"
	"github.com/specialistvlad/verton/internal/ctxlog"
	"github.com/specialistvlad/verton/internal/garage"
	"github.com/specialistvlad/verton/internal/input"
	"github.com/specialistvlad/verton/internal/kind"
	"github.com/specialistvlad/verton/internal/stage"
	"github.com/specialistvlad/verton/internal/valuestore"
)

// ElementID is the stage element id of an object vertex.
func ElementID(id garage.VertexID) string {
	return fmt.Sprintf("object-%d", id)
}

// Evaluator holds the value store of one session.
type Evaluator struct {
	graph   *compiler.Graph
	store   *valuestore.Store
	stage   stage.Stage
	adapter *input.Adapter

	origin  time.Duration
	started bool
	frames  int
}

// New prepares an evaluator for g drawing on st. Nothing touches the stage
// until Prepare.
func New(g *compiler.Graph, st stage.Stage) *Evaluator {
	store := valuestore.New(g.PlugCount)
	origin := func() (float64, float64) {
		b := st.Bounds()
		return b.X, b.Y
	}
	return &Evaluator{
		graph:   g,
		store:   store,
		stage:   st,
		adapter: input.NewAdapter(g.Buckets, store, origin),
	}
}

// Graph returns the compiled graph being evaluated.
func (e *Evaluator) Graph() *compiler.Graph { return e.graph }

// Frames returns the number of completed frame passes.
func (e *Evaluator) Frames() int { return e.frames }

// Snapshot copies every plug value.
func (e *Evaluator) Snapshot() []float64 { return e.store.Snapshot() }

// Plug returns the current value of a named plug.
func (e *Evaluator) Plug(id garage.VertexID, name string) (float64, bool) {
	v, ok := e.graph.ByID[id]
	if !ok {
		return 0, false
	}
	slot, ok := v.Plug(name)
	if !ok {
		return 0, false
	}
	return e.store.Get(slot), true
}

// JackValue resolves a jack: the sum of every plug wired into it.
func (e *Evaluator) JackValue(slot int) float64 {
	return e.store.Sum(e.graph.Wiring[slot])
}

// Apply records a pointer event. The write is seen by the next frame.
func (e *Evaluator) Apply(ev input.Event) {
	e.adapter.Apply(ev)
}

// Prepare seeds constants and creates the stage element of every object
// vertex at its initial position.
func (e *Evaluator) Prepare(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for _, v := range e.graph.Order {
		switch v.Kind {
		case kind.Constant:
			e.store.Set(v.MustPlug("value"), v.Constant)
		case kind.Object:
			if err := e.stage.CreateElement(ElementID(v.ID), v.Header, v.Initial.X, v.Initial.Y); err != nil {
				return fmt.Errorf("vertex %d: failed to place object: %w", v.ID, err)
			}
			logger.Debug("Object placed.", "vertex_id", v.ID, "x", v.Initial.X, "y", v.Initial.Y)
		}
	}
	return nil
}

// Frame runs one pass over every vertex. ts is the frame timestamp; the
// first frame fixes the origin of the time kind.
func (e *Evaluator) Frame(ctx context.Context, ts time.Duration) error {
	if !e.started {
		e.origin = ts
		e.started = true
	}
	elapsed := float64(ts-e.origin) / float64(time.Millisecond)

	for _, v := range e.graph.Order {
		if err := e.step(v, elapsed); err != nil {
			ctxlog.FromContext(ctx).Debug("Frame pass aborted.", "frame", e.frames+1, "vertex_id", v.ID, "kind", v.Kind, "error", err)
			return err
		}
	}
	e.adapter.ResetTransient()
	e.frames++
	return nil
}

func (e *Evaluator) step(v *compiler.Vertex, elapsed float64) error {
	switch v.Kind {
	case kind.Constant, kind.Click, kind.Cursor:
		// Set by Prepare or by input events.

	case kind.Time:
		e.store.Set(v.MustPlug("value"), elapsed)

	case kind.Calculate:
		left, right := e.jack(v, "left"), e.jack(v, "right")
		result, err := calculate(v, left, right)
		if err != nil {
			return err
		}
		e.store.Set(v.MustPlug("result"), result)

	case kind.Compare:
		left, right := e.jack(v, "left"), e.jack(v, "right")
		result, err := compare(v, left, right)
		if err != nil {
			return err
		}
		e.store.Set(v.MustPlug("result"), boolValue(result))

	case kind.Counter:
		e.store.Add(v.MustPlug("count"), e.jack(v, "increment"))

	case kind.Not:
		e.store.Set(v.MustPlug("output"), boolValue(!truthy(e.jack(v, "input"))))

	case kind.And:
		left, right := e.jack(v, "left"), e.jack(v, "right")
		if truthy(left) {
			e.store.Set(v.MustPlug("output"), right)
		} else {
			e.store.Set(v.MustPlug("output"), left)
		}

	case kind.Object:
		if err := e.move(v, e.jack(v, "x"), e.jack(v, "y")); err != nil {
			return err
		}

	default:
		return &compiler.InvalidVertexKindError{VertexID: v.ID, Kind: v.Kind}
	}
	return nil
}

func (e *Evaluator) jack(v *compiler.Vertex, name string) float64 {
	return e.JackValue(v.MustJack(name))
}

// move shifts an object's element by (dx, dy), in one update when the
// stage supports it.
func (e *Evaluator) move(v *compiler.Vertex, dx, dy float64) error {
	id := ElementID(v.ID)
	if m, ok := e.stage.(stage.Mover); ok {
		if _, err := m.MoveBy(id, dx, dy); err != nil {
			return fmt.Errorf("vertex %d: %w", v.ID, err)
		}
		return nil
	}
	for _, axis := range [...]struct {
		name  string
		delta float64
	}{{"x", dx}, {"y", dy}} {
		cur, err := e.stage.Attr(id, axis.name)
		if err != nil {
			return fmt.Errorf("vertex %d: %w", v.ID, err)
		}
		if err := e.stage.SetAttr(id, axis.name, cur+axis.delta); err != nil {
			return fmt.Errorf("vertex %d: %w", v.ID, err)
		}
	}
	return nil
}

func unknownOperator(v *compiler.Vertex) error {
	return &compiler.InvalidConfigurationError{
		VertexID: v.ID,
		Field:    "operator",
		Msg:      fmt.Sprintf("%s: unknown operator %q", v.Kind, v.OperatorSymbol),
	}
}

func calculate(v *compiler.Vertex, left, right float64) (float64, error) {
	switch v.Operator {
	case compiler.OpAdd:
		return left + right, nil
	case compiler.OpSub:
		return left - right, nil
	case compiler.OpMul:
		return left * right, nil
	case compiler.OpDiv:
		return left / right, nil
	default:
		return 0, unknownOperator(v)
	}
}

func compare(v *compiler.Vertex, left, right float64) (bool, error) {
	switch v.Operator {
	case compiler.OpEq:
		return left == right, nil
	case compiler.OpLt:
		return left < right, nil
	case compiler.OpGt:
		return left > right, nil
	case compiler.OpGe:
		return left >= right, nil
	case compiler.OpLe:
		return left <= right, nil
	default:
		return false, unknownOperator(v)
	}
}

// truthy follows numeric truthiness: 0 and NaN are false.
func truthy(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
