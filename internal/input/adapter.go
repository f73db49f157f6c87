package input

import (
	"github.com/specialistvlad/verton/internal/compiler"
	"github.com/specialistvlad/verton/internal/valuestore"
)

// Origin reports the top-left corner of the stage in client coordinates.
type Origin func() (x, y float64)

// Adapter writes pointer events into the x/y plugs of the click and
// cursor vertexes of a compiled graph.
type Adapter struct {
	buckets compiler.Buckets
	store   *valuestore.Store
	origin  Origin
}

// NewAdapter binds the buckets of a compiled graph to its value store.
func NewAdapter(buckets compiler.Buckets, store *valuestore.Store, origin Origin) *Adapter {
	if origin == nil {
		origin = func() (float64, float64) { return 0, 0 }
	}
	return &Adapter{buckets: buckets, store: store, origin: origin}
}

// Apply records one event.
//
// Clicks go to the justWhenClicked bucket. Pointer down and move always
// update lastPosition and update whilePointerDown while a button is held.
// Pointer up zeroes whilePointerDown.
func (a *Adapter) Apply(ev Event) {
	switch ev.Type {
	case Click:
		a.write(a.buckets.JustWhenClicked, ev)
	case PointerDown, PointerMove:
		a.write(a.buckets.LastPosition, ev)
		if ev.Buttons != 0 {
			a.write(a.buckets.WhilePointerDown, ev)
		}
	case PointerUp:
		a.zero(a.buckets.WhilePointerDown)
	}
}

// ResetTransient zeroes the justWhenClicked plugs so a click is seen by
// exactly one frame.
func (a *Adapter) ResetTransient() {
	a.zero(a.buckets.JustWhenClicked)
}

func (a *Adapter) write(bucket []*compiler.Vertex, ev Event) {
	if len(bucket) == 0 {
		return
	}
	ox, oy := a.origin()
	x, y := ev.ClientX-ox, ev.ClientY-oy
	for _, v := range bucket {
		a.store.Set(v.MustPlug("x"), x)
		a.store.Set(v.MustPlug("y"), y)
	}
}

func (a *Adapter) zero(bucket []*compiler.Vertex) {
	for _, v := range bucket {
		a.store.Zero(v.MustPlug("x"), v.MustPlug("y"))
	}
}
