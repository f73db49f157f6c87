package memstage

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/verton/internal/input"
	"github.com/specialistvlad/verton/internal/stage"
)

func TestStage_ElementLifecycle(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s := New(stage.Rect{X: 5, Y: 6, Width: 100, Height: 50})

	// --- Act & Assert ---
	require.NoError(t, s.CreateElement("object-1", "dog", 10, 10))
	require.NoError(t, s.CreateElement("object-2", "cat", 0, 0))
	err := s.CreateElement("object-1", "again", 0, 0)
	assert.True(t, errors.Is(err, stage.ErrDuplicate))

	require.NoError(t, s.SetAttr("object-1", "x", 15))
	x, err := s.Attr("object-1", "x")
	require.NoError(t, err)
	assert.Equal(t, 15.0, x)

	_, err = s.Attr("object-1", "color")
	assert.True(t, errors.Is(err, stage.ErrNoAttribute))
	_, err = s.Attr("object-9", "x")
	assert.True(t, errors.Is(err, stage.ErrNoElement))

	assert.Equal(t, []stage.Element{
		{ID: "object-1", Text: "dog", X: 15, Y: 10},
		{ID: "object-2", Text: "cat"},
	}, s.Elements())

	require.NoError(t, s.RemoveElement("object-1"))
	assert.True(t, errors.Is(s.RemoveElement("object-1"), stage.ErrNoElement))
	assert.Len(t, s.Elements(), 1)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Elements())
	assert.Equal(t, stage.Rect{X: 5, Y: 6, Width: 100, Height: 50}, s.Bounds())
}

func TestStage_MoveBy(t *testing.T) {
	t.Parallel()
	s := New(stage.Rect{})
	require.NoError(t, s.CreateElement("object-1", "dog", 10, 10))

	el, err := s.MoveBy("object-1", 2, -3)

	require.NoError(t, err)
	assert.Equal(t, stage.Element{ID: "object-1", Text: "dog", X: 12, Y: 7}, el)
	got, err := s.Element("object-1")
	require.NoError(t, err)
	assert.Equal(t, el, got)

	_, err = s.MoveBy("object-9", 1, 1)
	assert.ErrorIs(t, err, stage.ErrNoElement)
}

func TestStage_ListenAndEmit(t *testing.T) {
	t.Parallel()

	s := New(stage.Rect{})
	var mu sync.Mutex
	var got []input.Event
	unlisten := s.Listen(func(ev input.Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ev)
	})
	assert.Equal(t, 1, s.Listeners())

	s.Emit(input.Event{Type: input.Click, ClientX: 1, ClientY: 2})
	unlisten()
	unlisten()
	s.Emit(input.Event{Type: input.Click, ClientX: 3, ClientY: 4})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []input.Event{{Type: input.Click, ClientX: 1, ClientY: 2}}, got)
	assert.Zero(t, s.Listeners())
}

func TestStage_ListenerMayCallBack(t *testing.T) {
	t.Parallel()

	s := New(stage.Rect{})
	require.NoError(t, s.CreateElement("a", "", 0, 0))
	s.Listen(func(ev input.Event) {
		// Emit runs listeners without holding the lock.
		_ = s.SetAttr("a", "x", ev.ClientX)
	})

	s.Emit(input.Event{Type: input.PointerMove, ClientX: 7})

	x, err := s.Attr("a", "x")
	require.NoError(t, err)
	assert.Equal(t, 7.0, x)
}
