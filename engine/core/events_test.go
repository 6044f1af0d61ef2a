package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	var got []string

	first := func(code SystemEventCode, sender interface{}, data EventContext) bool {
		got = append(got, "first:"+data.Path)
		return false
	}
	second := func(code SystemEventCode, sender interface{}, data EventContext) bool {
		got = append(got, "second:"+data.Path)
		return true
	}

	assert.True(t, bus.Register(EventAssetChanged, "a", first))
	assert.True(t, bus.Register(EventAssetChanged, "b", second))
	assert.False(t, bus.Register(EventAssetChanged, "a", first))

	assert.True(t, bus.Fire(EventAssetChanged, nil, EventContext{Path: "x.obj"}))
	assert.Equal(t, []string{"first:x.obj", "second:x.obj"}, got)

	assert.False(t, bus.Fire(EventAssetRemoved, nil, EventContext{}))

	assert.True(t, bus.Unregister(EventAssetChanged, "b"))
	assert.False(t, bus.Unregister(EventAssetChanged, "b"))
	assert.False(t, bus.Fire(EventAssetChanged, nil, EventContext{Path: "y.obj"}))
	assert.Equal(t, []string{"first:x.obj", "second:x.obj", "first:y.obj"}, got)
}

func TestShortID(t *testing.T) {
	id := NewLoadID()
	assert.Len(t, id, 36)
	assert.Equal(t, id[:8], ShortID(id))
	assert.Equal(t, "abc", ShortID("abc"))
}
