package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerived_LazyRecompute(t *testing.T) {
	computes := 0
	d := NewDerived(func() int {
		computes++
		return computes * 10
	})

	// Nothing computed before the first read.
	assert.Equal(t, 0, computes)

	assert.Equal(t, 10, d.Get())
	assert.Equal(t, 10, d.Get())
	assert.Equal(t, 1, computes, "repeated reads must not recompute")
}

func TestDerived_InvalidateMarksDirtyWithoutComputing(t *testing.T) {
	computes := 0
	d := NewDerived(func() int {
		computes++
		return computes
	})

	assert.Equal(t, 1, d.Get())

	d.Invalidate()
	d.Invalidate()
	assert.Equal(t, 1, computes, "invalidation must not recompute eagerly")

	// A burst of invalidations costs one recompute on the next read.
	assert.Equal(t, 2, d.Get())
	assert.Equal(t, 2, computes)
}

func TestDerived_ReadAfterChangeSeesNewValue(t *testing.T) {
	source := "before"
	d := NewDerived(func() string { return source })

	assert.Equal(t, "before", d.Get())

	source = "after"
	d.Invalidate()
	assert.Equal(t, "after", d.Get())
}

func TestEmitter_DeliversInSubscriptionOrder(t *testing.T) {
	var e Emitter[int]
	var got []int

	e.Subscribe(func(v int) { got = append(got, v) })
	e.Subscribe(func(v int) { got = append(got, v*100) })

	e.Fire(1)
	e.Fire(2)

	assert.Equal(t, []int{1, 100, 2, 200}, got)
}

func TestEmitter_FireWithoutSubscribers(t *testing.T) {
	var e Emitter[string]
	assert.NotPanics(t, func() { e.Fire("nobody home") })
}
