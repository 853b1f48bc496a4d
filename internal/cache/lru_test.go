package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRU_SetGet(t *testing.T) {
	c := New[string, int](2)

	c.Set("a", 1, true)
	c.Set("b", 2, true)

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)

	c.Set("a", 1, true)
	c.Set("b", 2, true)
	c.Get("a") // "a" now most recently used, "b" is oldest
	c.Set("c", 3, true)

	_, ok := c.Get("b")
	require.False(t, ok, "least-recently-used entry should have been evicted")

	_, ok = c.Get("a")
	require.True(t, ok)
	_, ok = c.Get("c")
	require.True(t, ok)

	require.EqualValues(t, 1, c.Stats().Evictions)
}

func TestLRU_NegativeCaching(t *testing.T) {
	c := New[string, int](4)
	c.Set("bad-expr", 0, false)

	v, ok := c.Get("bad-expr")
	require.False(t, ok)
	require.Equal(t, 0, v)
}

func TestLRU_UnboundedWhenCapacityZero(t *testing.T) {
	c := New[int, int](0)
	for i := 0; i < 100; i++ {
		c.Set(i, i*i, true)
	}
	require.Equal(t, 100, c.Len())
	require.EqualValues(t, 0, c.Stats().Evictions)
}

func TestLRU_Clear(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1, true)
	c.Clear()
	require.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	require.False(t, ok)
}
