package garage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var (
	slotIDGen = rapid.StringMatching(`[a-z][-\w]{0,6}`)
	textGen   = rapid.StringMatching(`[a-zA-Z0-9 <>&"=+値座標クリック🐶]{0,10}`)
	colorGen  = rapid.StringMatching(`(#[0-9A-F]{6})?`)
	coordGen  = rapid.Float64Range(-5000, 5000)
)

func descriptorGen() *rapid.Generator[Descriptor] {
	return rapid.Custom(func(t *rapid.T) Descriptor {
		switch rapid.IntRange(0, 2).Draw(t, "variant") {
		case 0:
			return Label(textGen.Draw(t, "label"))
		case 1:
			return Slot(slotIDGen.Draw(t, "id"))
		default:
			return LabeledSlot(slotIDGen.Draw(t, "id"), textGen.Draw(t, "label"))
		}
	})
}

func configValueGen() *rapid.Generator[ConfigValue] {
	return rapid.Custom(func(t *rapid.T) ConfigValue {
		switch rapid.IntRange(0, 2).Draw(t, "kind") {
		case 0:
			return Number(coordGen.Draw(t, "number"))
		case 1:
			return String(textGen.Draw(t, "string"))
		default:
			choices := rapid.SliceOfN(slotIDGen, 0, 3).Draw(t, "choices")
			if len(choices) == 0 {
				choices = nil
			}
			return ChoiceOf(slotIDGen.Draw(t, "chosen"), choices...)
		}
	})
}

func vertexGen() *rapid.Generator[Vertex] {
	return rapid.Custom(func(t *rapid.T) Vertex {
		v := Vertex{
			ID:       VertexID(rapid.IntRange(0, 1000).Draw(t, "id")),
			Header:   textGen.Draw(t, "header"),
			Kind:     Kind(rapid.SampledFrom([]string{"constant", "calculate", "click", "object", "time"}).Draw(t, "kind")),
			Plugs:    Plugs(rapid.SliceOfN(descriptorGen(), 0, 4).Draw(t, "plugs")...),
			Jacks:    Jacks(rapid.SliceOfN(descriptorGen(), 0, 4).Draw(t, "jacks")...),
			Config:   rapid.MapOfN(slotIDGen, configValueGen(), 0, 3).Draw(t, "config"),
			Position: Point{X: coordGen.Draw(t, "x"), Y: coordGen.Draw(t, "y")},
		}
		if rapid.Bool().Draw(t, "hasColors") {
			v.Colors = &Colors{
				Window:     colorGen.Draw(t, "window"),
				Label:      colorGen.Draw(t, "label"),
				Header:     colorGen.Draw(t, "header"),
				Point:      colorGen.Draw(t, "point"),
				Background: colorGen.Draw(t, "background"),
			}
		}
		return v
	})
}

func garageGen() *rapid.Generator[*Garage] {
	return rapid.Custom(func(t *rapid.T) *Garage {
		g := &Garage{
			Vertexes: rapid.SliceOfN(vertexGen(), 0, 6).Draw(t, "vertexes"),
			Edges:    []Edge{},
		}

		type plugEnd struct {
			id   VertexID
			plug string
		}
		type jackEnd struct {
			id   VertexID
			jack string
		}
		var plugs []plugEnd
		var jacks []jackEnd
		for i := range g.Vertexes {
			v := &g.Vertexes[i]
			for _, p := range v.PlugIDs() {
				plugs = append(plugs, plugEnd{v.ID, p})
			}
			for _, j := range v.JackIDs() {
				jacks = append(jacks, jackEnd{v.ID, j})
			}
		}
		if len(plugs) == 0 || len(jacks) == 0 {
			return g
		}

		n := rapid.IntRange(0, 8).Draw(t, "edges")
		for i := 0; i < n; i++ {
			p := plugs[rapid.IntRange(0, len(plugs)-1).Draw(t, "from")]
			j := jacks[rapid.IntRange(0, len(jacks)-1).Draw(t, "to")]
			g.Connect(p.id, p.plug, j.id, j.jack)
		}
		return g
	})
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		original := garageGen().Draw(rt, "garage")

		var buf bytes.Buffer
		require.NoError(rt, original.Encode(&buf))

		decoded, err := Decode(&buf)
		require.NoError(rt, err)

		if diff := cmp.Diff(original.Vertexes, decoded.Vertexes); diff != "" {
			rt.Fatalf("vertexes changed across round trip (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(original.Edges, decoded.Edges); diff != "" {
			rt.Fatalf("edges changed across round trip (-want +got):\n%s", diff)
		}
	})
}

func TestDecode_EditorDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	doc := `{
	  "vertexes": [
	    {
	      "_id": 1,
	      "header": "足し算",
	      "kind": "calculate",
	      "plugs": [{"label": "="}, {"plugId": "result"}],
	      "jacks": [{"jackId": "left"}, {"label": "+"}, {"jackId": "right"}],
	      "config": [],
	      "colors": {"window": "#00D198"},
	      "position": {"x": 356, "y": 95}
	    },
	    {
	      "_id": 4,
	      "header": "クリック",
	      "kind": "click",
	      "plugs": [{"label": "X座標", "plugId": "x"}, {"label": "Y座標", "plugId": "y"}],
	      "jacks": [],
	      "config": {"send": {"chosen": "lastPosition", "choices": ["justWhenClicked", "lastPosition"]}, "scale": 2},
	      "position": {"x": 20, "y": 20}
	    }
	  ],
	  "edges": [
	    {"from": {"vertexId": 4, "plugId": "x"}, "to": {"vertexId": 1, "jackId": "left"}}
	  ]
	}`

	// --- Act ---
	g, err := Decode(strings.NewReader(doc))

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, g.Vertexes, 2)

	calc := g.Vertexes[0]
	assert.Equal(t, Kind("calculate"), calc.Kind)
	assert.Equal(t, Config{}, calc.Config)
	assert.Equal(t, []string{"left", "right"}, calc.JackIDs())
	assert.Equal(t, LabelOnly, calc.Jacks[1].Variant)
	assert.Equal(t, "+", calc.Jacks[1].LabelText())
	assert.Equal(t, &Colors{Window: "#00D198"}, calc.Colors)

	click := g.Vertexes[1]
	send, ok := click.Config["send"].AsText()
	require.True(t, ok)
	assert.Equal(t, "lastPosition", send)
	scale, ok := click.Config["scale"].AsNumber()
	require.True(t, ok)
	assert.Equal(t, 2.0, scale)
	assert.Equal(t, "X座標", click.Plugs[0].LabelText())
	assert.Nil(t, click.Colors)

	assert.Equal(t, []Edge{{
		From: PlugRef{VertexID: 4, PlugID: "x"},
		To:   JackRef{VertexID: 1, JackID: "left"},
	}}, g.Edges)

	assert.Equal(t, VertexID(5), g.NextID())
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `{"vertexes": [`},
		{name: "descriptor without id or label", doc: `{"vertexes": [{"_id": 0, "plugs": [{}]}], "edges": []}`},
		{name: "plug descriptor with jack key only", doc: `{"vertexes": [{"_id": 0, "plugs": [{"jackId": "x"}]}], "edges": []}`},
		{name: "boolean config value", doc: `{"vertexes": [{"_id": 0, "config": {"value": true}}], "edges": []}`},
		{name: "null config value", doc: `{"vertexes": [{"_id": 0, "config": {"value": null}}], "edges": []}`},
		{name: "non-empty config array", doc: `{"vertexes": [{"_id": 0, "config": [1]}], "edges": []}`},
		{name: "trailing document", doc: `{"vertexes": [], "edges": []} {}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse), "got %v", err)

			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestAddVertex_GeneratesFreshIDs(t *testing.T) {
	t.Parallel()

	g := New()
	first := g.AddVertex(Vertex{Header: "a", Kind: "constant"})
	second := g.AddVertex(Vertex{Header: "b", Kind: "constant"})
	assert.Equal(t, VertexID(0), first)
	assert.Equal(t, VertexID(1), second)

	v, ok := g.Vertex(second)
	require.True(t, ok)
	assert.Equal(t, "b", v.Header)
	assert.NotNil(t, v.Plugs)
	assert.NotNil(t, v.Jacks)
	assert.NotNil(t, v.Config)

	// A garage built by hand picks up after its largest id.
	loaded := &Garage{Vertexes: []Vertex{{ID: 7}, {ID: 3}}}
	assert.Equal(t, VertexID(8), loaded.AddVertex(Vertex{}))
	assert.Equal(t, VertexID(9), loaded.NextID())

	// Two garages never share a counter.
	other := New()
	assert.Equal(t, VertexID(0), other.NextID())
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := New()
	c := g.AddVertex(Vertex{
		Header: "定数",
		Kind:   "constant",
		Plugs:  Plugs(LabeledSlot("value", "値")),
		Config: Config{"value": Number(5)},
	})
	o := g.AddVertex(Vertex{
		Header:   "🐶",
		Kind:     "object",
		Jacks:    Jacks(Label("X座標"), Slot("x"), Label("Y座標"), Slot("y")),
		Colors:   &Colors{Window: "#FF7A26"},
		Position: Point{X: 718, Y: 88},
	})
	g.Connect(c, "value", o, "x")
	path := filepath.Join(t.TempDir(), "graph.json")

	// --- Act ---
	require.NoError(t, g.Save(path))
	loaded, err := Load(path)

	// --- Assert ---
	require.NoError(t, err)
	if diff := cmp.Diff(g.Vertexes, loaded.Vertexes); diff != "" {
		t.Fatalf("vertexes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(g.Edges, loaded.Edges); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ReportsPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
	assert.Contains(t, err.Error(), path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
