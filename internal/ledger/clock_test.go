package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferClock_Resume(t *testing.T) {
	c := resumeClock(0)
	assert.Equal(t, int64(0), c.current())
	assert.Equal(t, int64(1), c.next())
	assert.Equal(t, int64(2), c.next())

	resumed := resumeClock(41)
	assert.Equal(t, int64(42), resumed.next())
	assert.Equal(t, int64(42), resumed.current())
}

func TestTransferClock_ConcurrentUnique(t *testing.T) {
	c := resumeClock(0)
	const n = 100

	var mu sync.Mutex
	seen := make(map[int64]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := c.next()
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	assert.Equal(t, int64(n), c.current())
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14], "version nibble")
}
