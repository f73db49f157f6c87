// Package kind is the closed table of vertex kinds: the sockets each kind
// exposes and where it sits in evaluation order.
package kind

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/verton/internal/garage"
)

const (
	Constant  garage.Kind = "constant"
	Time      garage.Kind = "time"
	Calculate garage.Kind = "calculate"
	Compare   garage.Kind = "compare"
	Counter   garage.Kind = "counter"
	Not       garage.Kind = "not"
	And       garage.Kind = "and"
	Click     garage.Kind = "click"
	Cursor    garage.Kind = "cursor"
	Object    garage.Kind = "object"

	// Tick is accepted as another name for Time.
	Tick garage.Kind = "tick"
)

// Category places a kind in the evaluation order.
type Category int

const (
	// Source kinds have plugs only.
	Source Category = iota - 1
	// Mixed kinds have both plugs and jacks.
	Mixed
	// Sink kinds have jacks only.
	Sink
)

func (c Category) String() string {
	switch c {
	case Source:
		return "source"
	case Mixed:
		return "mixed"
	case Sink:
		return "sink"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Spec describes the sockets of one kind, in declaration order.
type Spec struct {
	Kind  garage.Kind
	Plugs []string
	Jacks []string
}

// Category derives the evaluation category from the socket lists.
func (s Spec) Category() Category {
	switch {
	case len(s.Jacks) == 0:
		return Source
	case len(s.Plugs) == 0:
		return Sink
	default:
		return Mixed
	}
}

// HasPlug reports whether the kind declares the named plug.
func (s Spec) HasPlug(id string) bool { return contains(s.Plugs, id) }

// HasJack reports whether the kind declares the named jack.
func (s Spec) HasJack(id string) bool { return contains(s.Jacks, id) }

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

var table = map[garage.Kind]Spec{
	Constant:  {Kind: Constant, Plugs: []string{"value"}},
	Time:      {Kind: Time, Plugs: []string{"value"}},
	Calculate: {Kind: Calculate, Plugs: []string{"result"}, Jacks: []string{"left", "right"}},
	Compare:   {Kind: Compare, Plugs: []string{"result"}, Jacks: []string{"left", "right"}},
	Counter:   {Kind: Counter, Plugs: []string{"count"}, Jacks: []string{"increment"}},
	Not:       {Kind: Not, Plugs: []string{"output"}, Jacks: []string{"input"}},
	And:       {Kind: And, Plugs: []string{"output"}, Jacks: []string{"left", "right"}},
	Click:     {Kind: Click, Plugs: []string{"x", "y"}},
	Cursor:    {Kind: Cursor, Plugs: []string{"x", "y"}},
	Object:    {Kind: Object, Jacks: []string{"x", "y"}},
}

// Lookup resolves a kind name, following aliases, to its spec.
func Lookup(k garage.Kind) (Spec, bool) {
	if k == Tick {
		k = Time
	}
	s, ok := table[k]
	return s, ok
}

// Names lists every canonical kind name, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for k := range table {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}
