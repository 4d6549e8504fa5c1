package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesBurstsKeepingLatest(t *testing.T) {
	var mu sync.Mutex
	emitted := map[string]int{}
	calls := 0

	d := New[string, int](20*time.Millisecond, func(key string, value int) {
		mu.Lock()
		defer mu.Unlock()
		emitted[key] = value
		calls++
	})

	d.Push("a", 1)
	d.Push("a", 2)
	d.Push("a", 3)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "one emission per quiescent window")
	assert.Equal(t, 3, emitted["a"], "last writer wins")
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	var mu sync.Mutex
	emitted := map[string]int{}

	d := New[string, int](15*time.Millisecond, func(key string, value int) {
		mu.Lock()
		defer mu.Unlock()
		emitted[key] = value
	})

	d.Push("a", 1)
	d.Push("b", 2)

	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, emitted["a"])
	assert.Equal(t, 2, emitted["b"])
}

func TestDebouncerFlushFiresPendingImmediately(t *testing.T) {
	var mu sync.Mutex
	emitted := map[string]int{}

	d := New[string, int](time.Hour, func(key string, value int) {
		mu.Lock()
		defer mu.Unlock()
		emitted[key] = value
	})

	d.Push("a", 1)
	d.Flush()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, emitted["a"])
}
