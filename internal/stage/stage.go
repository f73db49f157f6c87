// Package stage defines the surface a running graph draws on and receives
// pointer input from.
//
// The evaluator only needs a handful of operations: place a text element,
// read and write its numeric attributes, remove everything when playback
// ends and subscribe to pointer events. Implementations live in the
// memstage (headless) and sockstage (socket.io) subpackages.
package stage

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/verton/internal/input"
)

// Sentinel errors returned by stage implementations.
var (
	ErrNoElement   = errors.New("no such element")
	ErrDuplicate   = errors.New("element already exists")
	ErrNoAttribute = errors.New("no such attribute")
)

func unknownAttr(name string) error {
	return fmt.Errorf("%w: %q", ErrNoAttribute, name)
}

// Rect is the stage's bounding box in client coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Element is a text marker placed on the stage.
type Element struct {
	ID   string  `json:"id"`
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Attr reads a numeric attribute of the element.
func (e *Element) Attr(name string) (float64, error) {
	switch name {
	case "x":
		return e.X, nil
	case "y":
		return e.Y, nil
	default:
		return 0, unknownAttr(name)
	}
}

// SetAttr writes a numeric attribute of the element.
func (e *Element) SetAttr(name string, v float64) error {
	switch name {
	case "x":
		e.X = v
	case "y":
		e.Y = v
	default:
		return unknownAttr(name)
	}
	return nil
}

// Listener receives pointer events.
type Listener func(input.Event)

// Stage is the external surface of a session.
type Stage interface {
	// Bounds returns the stage box; pointer coordinates are made relative to
	// its top-left corner.
	Bounds() Rect
	CreateElement(id, text string, x, y float64) error
	Attr(id, name string) (float64, error)
	SetAttr(id, name string, v float64) error
	RemoveElement(id string) error
	// Clear removes every element.
	Clear() error
	// Elements returns a copy of every element, in creation order.
	Elements() []Element
	// Listen registers fn for pointer events until the returned func is called.
	Listen(fn Listener) (unlisten func())
}

// Mover is implemented by stages that can shift an element on both axes in
// one update.
type Mover interface {
	MoveBy(id string, dx, dy float64) (Element, error)
}
