package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	c.Inc()
	c.Add(4)
	assert.Equal(t, uint64(5), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), 5*time.Millisecond)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	t.Run("Same name returns same counter", func(t *testing.T) {
		assert.Same(t, r.Counter("checkout_success"), r.Counter("checkout_success"))
	})

	t.Run("Concurrent increments", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r.Counter("checkout_failure").Inc()
			}()
		}
		wg.Wait()

		snap := r.Snapshot()
		assert.Equal(t, uint64(50), snap["checkout_failure"])
		assert.Equal(t, uint64(0), snap["checkout_success"])
	})

	t.Run("Names sorted", func(t *testing.T) {
		assert.Equal(t, []string{"checkout_failure", "checkout_success"}, r.Names())
	})
}
