package observable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemo_FactoryRunsOnce(t *testing.T) {
	m := NewMemo[string, int]()

	calls := 0
	factory := func() int {
		calls++
		return 42
	}

	assert.Equal(t, 42, m.Get("k", factory))
	assert.Equal(t, 42, m.Get("k", factory))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.Len())
}

func TestMemo_IdentityKeys(t *testing.T) {
	type entry struct{ id string }

	// Structurally equal values behind distinct pointers memoize separately.
	a := &entry{id: "same"}
	b := &entry{id: "same"}

	m := NewMemo[*entry, string]()
	assert.Equal(t, "a", m.Get(a, func() string { return "a" }))
	assert.Equal(t, "b", m.Get(b, func() string { return "b" }))
	assert.Equal(t, 2, m.Len())

	assert.Equal(t, "a", m.Get(a, func() string { return "never" }))
}

func TestMemo_ConcurrentGetSingleFactoryCall(t *testing.T) {
	m := NewMemo[int, int]()

	var mu sync.Mutex
	calls := 0

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get(7, func() int {
				mu.Lock()
				calls++
				mu.Unlock()
				return 7
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}
