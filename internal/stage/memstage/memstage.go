// Package memstage is an in-memory stage. It backs headless runs and is the
// element store behind the socket.io stage.
package memstage

import (
	"fmt"
	"sync"

	"github.com/specialistvlad/verton/internal/input"
	"github.com/specialistvlad/verton/internal/stage"
)

// Stage keeps elements in memory and fans events out to listeners. It is
// safe for concurrent use.
type Stage struct {
	mu        sync.Mutex
	bounds    stage.Rect
	elements  map[string]*stage.Element
	order     []string
	listeners map[int]stage.Listener
	nextID    int
}

var (
	_ stage.Stage = (*Stage)(nil)
	_ stage.Mover = (*Stage)(nil)
)

// New creates an empty stage with the given bounds.
func New(bounds stage.Rect) *Stage {
	return &Stage{
		bounds:    bounds,
		elements:  make(map[string]*stage.Element),
		listeners: make(map[int]stage.Listener),
	}
}

func (s *Stage) Bounds() stage.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

// SetBounds moves or resizes the stage.
func (s *Stage) SetBounds(r stage.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = r
}

func (s *Stage) CreateElement(id, text string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elements[id]; ok {
		return fmt.Errorf("%w: %q", stage.ErrDuplicate, id)
	}
	s.elements[id] = &stage.Element{ID: id, Text: text, X: x, Y: y}
	s.order = append(s.order, id)
	return nil
}

// Element returns a copy of one element.
func (s *Stage) Element(id string) (stage.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.elements[id]
	if !ok {
		return stage.Element{}, fmt.Errorf("%w: %q", stage.ErrNoElement, id)
	}
	return *el, nil
}

func (s *Stage) Attr(id, name string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.elements[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", stage.ErrNoElement, id)
	}
	return el.Attr(name)
}

func (s *Stage) SetAttr(id, name string, v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.elements[id]
	if !ok {
		return fmt.Errorf("%w: %q", stage.ErrNoElement, id)
	}
	return el.SetAttr(name, v)
}

// MoveBy shifts an element and returns its new state.
func (s *Stage) MoveBy(id string, dx, dy float64) (stage.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.elements[id]
	if !ok {
		return stage.Element{}, fmt.Errorf("%w: %q", stage.ErrNoElement, id)
	}
	el.X += dx
	el.Y += dy
	return *el, nil
}

func (s *Stage) RemoveElement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elements[id]; !ok {
		return fmt.Errorf("%w: %q", stage.ErrNoElement, id)
	}
	delete(s.elements, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Stage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = make(map[string]*stage.Element)
	s.order = nil
	return nil
}

func (s *Stage) Elements() []stage.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]stage.Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.elements[id])
	}
	return out
}

func (s *Stage) Listen(fn stage.Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

// Listeners returns the number of registered listeners.
func (s *Stage) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Emit delivers ev to every listener, outside the stage lock.
func (s *Stage) Emit(ev input.Event) {
	s.mu.Lock()
	fns := make([]stage.Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
