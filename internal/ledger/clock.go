package ledger

import "sync/atomic"

// transferClock hands out refund sequence numbers. The transfer log is
// ordered by these numbers rather than by wall time, so replaying the same
// calls yields the same log.
//
// A number taken by a call that later rolls back is not reused; the log may
// have gaps but never duplicates.
type transferClock struct {
	last atomic.Int64
}

// resumeClock returns a clock whose next number follows last.
func resumeClock(last int64) *transferClock {
	c := &transferClock{}
	c.last.Store(last)
	return c
}

func (c *transferClock) next() int64 {
	return c.last.Add(1)
}

func (c *transferClock) current() int64 {
	return c.last.Load()
}
