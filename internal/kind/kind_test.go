package kind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/verton/internal/garage"
)

func TestLookup(t *testing.T) {
	testCases := []struct {
		kind     garage.Kind
		category Category
		plugs    []string
		jacks    []string
	}{
		{kind: Constant, category: Source, plugs: []string{"value"}},
		{kind: Tick, category: Source, plugs: []string{"value"}},
		{kind: Click, category: Source, plugs: []string{"x", "y"}},
		{kind: Calculate, category: Mixed, plugs: []string{"result"}, jacks: []string{"left", "right"}},
		{kind: Counter, category: Mixed, plugs: []string{"count"}, jacks: []string{"increment"}},
		{kind: Object, category: Sink, jacks: []string{"x", "y"}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			spec, ok := Lookup(tc.kind)
			require.True(t, ok)
			assert.Equal(t, tc.category, spec.Category())
			assert.Equal(t, tc.plugs, spec.Plugs)
			assert.Equal(t, tc.jacks, spec.Jacks)
		})
	}

	_, ok := Lookup("teleport")
	assert.False(t, ok)
}

func TestTickIsTime(t *testing.T) {
	spec, ok := Lookup(Tick)
	require.True(t, ok)
	assert.Equal(t, Time, spec.Kind)
	assert.True(t, spec.HasPlug("value"))
	assert.False(t, spec.HasJack("value"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"and", "calculate", "click", "compare", "constant",
		"counter", "cursor", "not", "object", "time",
	}, Names())
}

func TestTemplate(t *testing.T) {
	v, ok := Template(Calculate, "sum")
	require.True(t, ok)
	assert.Equal(t, "sum", v.Header)
	assert.Equal(t, Calculate, v.Kind)
	assert.Equal(t, []string{"result"}, v.PlugIDs())
	assert.Equal(t, []string{"left", "right"}, v.JackIDs())
	assert.NotNil(t, v.Config)

	_, ok = Template("teleport", "")
	assert.False(t, ok)
}
