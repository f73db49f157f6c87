package compiler

import (
	"fmt"

	"github.com/specialistvlad/verton/internal/garage"
	"github.com/specialistvlad/verton/internal/kind"
)

// Operator is a parsed calculate or compare operator.
type Operator int

const (
	// OpUnknown is kept for symbols no kind understands. Evaluating it fails.
	OpUnknown Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLt
	OpGt
	OpGe
	OpLe
)

var operatorNames = [...]string{"unknown", "+", "-", "×", "÷", "=", "<", ">", "≧", "≦"}

func (o Operator) String() string {
	if int(o) < len(operatorNames) {
		return operatorNames[o]
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

var (
	calculateOperators = map[string]Operator{
		"+": OpAdd,
		"-": OpSub,
		"×": OpMul, "*": OpMul,
		"÷": OpDiv, "/": OpDiv,
	}
	compareOperators = map[string]Operator{
		"=": OpEq, "==": OpEq,
		"<": OpLt,
		">": OpGt,
		"≧": OpGe, ">=": OpGe,
		"≦": OpLe, "<=": OpLe,
	}
)

// ParseOperator resolves a symbol for the given kind. Unknown symbols yield
// OpUnknown and false.
func ParseOperator(k garage.Kind, symbol string) (Operator, bool) {
	var table map[string]Operator
	switch k {
	case kind.Calculate:
		table = calculateOperators
	case kind.Compare:
		table = compareOperators
	default:
		return OpUnknown, false
	}
	op, ok := table[symbol]
	return op, ok
}

// SendMode selects how a click or cursor vertex reacts to pointer input.
type SendMode string

const (
	JustWhenClicked  SendMode = "justWhenClicked"
	WhilePointerDown SendMode = "whilePointerDown"
	LastPosition     SendMode = "lastPosition"
)

// Vertex is the compiled form of one garage vertex.
type Vertex struct {
	ID       garage.VertexID
	Kind     garage.Kind // Canonical, aliases resolved
	Header   string
	Category kind.Category

	// PlugSlots and JackSlots follow the kind's declaration order.
	PlugSlots []int
	JackSlots []int
	plugIndex map[string]int
	jackIndex map[string]int

	Constant       float64      // constant
	Operator       Operator     // calculate, compare
	OperatorSymbol string       // calculate, compare; as written
	Send           SendMode     // click, cursor
	Initial        garage.Point // object
}

// Plug returns the slot of the named plug.
func (v *Vertex) Plug(name string) (int, bool) {
	slot, ok := v.plugIndex[name]
	return slot, ok
}

// Jack returns the slot of the named jack.
func (v *Vertex) Jack(name string) (int, bool) {
	slot, ok := v.jackIndex[name]
	return slot, ok
}

// MustPlug is Plug for names the kind is known to declare.
func (v *Vertex) MustPlug(name string) int {
	slot, ok := v.plugIndex[name]
	if !ok {
		panic(fmt.Sprintf("vertex %d (%s) has no plug %q", v.ID, v.Kind, name))
	}
	return slot
}

// MustJack is Jack for names the kind is known to declare.
func (v *Vertex) MustJack(name string) int {
	slot, ok := v.jackIndex[name]
	if !ok {
		panic(fmt.Sprintf("vertex %d (%s) has no jack %q", v.ID, v.Kind, name))
	}
	return slot
}

// Buckets groups the pointer-reactive vertexes by send mode.
type Buckets struct {
	JustWhenClicked  []*Vertex
	WhilePointerDown []*Vertex
	LastPosition     []*Vertex
}

// Graph is a compiled garage. It is rebuilt for every session.
type Graph struct {
	// Order lists every vertex: sources, then mixed vertexes in dependency
	// order, then sinks.
	Order []*Vertex
	ByID  map[garage.VertexID]*Vertex

	PlugCount int
	JackCount int

	// Wiring maps a jack slot to the plug slots feeding it, in edge order.
	Wiring [][]int

	Buckets Buckets
}
