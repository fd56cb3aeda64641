package services

import (
	"fmt"
	"sync"
	"time"
)

const defaultUserIDPrefix = "USR-"

// IDGenerator derives user ids from the millisecond clock: the prefix
// followed by the last six digits of the timestamp. Ids handed out by one
// generator never repeat a millisecond; a repeated or backwards reading is
// bumped past the last one issued.
type IDGenerator struct {
	mu     sync.Mutex
	prefix string
	last   int64
	now    func() time.Time
}

func NewIDGenerator(prefix string, now func() time.Time) *IDGenerator {
	if prefix == "" {
		prefix = defaultUserIDPrefix
	}
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{prefix: prefix, now: now}
}

// Next returns the next user id.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return fmt.Sprintf("%s%06d", g.prefix, ms%1_000_000)
}
