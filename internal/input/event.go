// Package input turns pointer and click events coming from a stage into
// writes to a session's value store.
package input

import "fmt"

// EventType is the kind of pointer event.
type EventType int

const (
	Click EventType = iota + 1
	PointerDown
	PointerMove
	PointerUp
)

var eventNames = map[EventType]string{
	Click:       "click",
	PointerDown: "pointerdown",
	PointerMove: "pointermove",
	PointerUp:   "pointerup",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// ParseEventType maps a DOM-style event name to its type.
func ParseEventType(name string) (EventType, bool) {
	for t, n := range eventNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// EventTypes lists every event type, in declaration order.
func EventTypes() []EventType {
	return []EventType{Click, PointerDown, PointerMove, PointerUp}
}

// Event is a pointer event in client (page) coordinates.
type Event struct {
	Type    EventType
	ClientX float64
	ClientY float64
	// Buttons is the pressed-buttons mask; 0 means no button is held.
	Buttons int
}
