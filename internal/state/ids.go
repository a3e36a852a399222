package state

import "strconv"

// DefaultIDPrefix is prepended to the counter value of every commit id.
const DefaultIDPrefix = "c"

// IDGenerator hands out commit ids that increase monotonically for the
// lifetime of one repository.
type IDGenerator struct {
	prefix  string
	counter int
}

// NewIDGenerator returns a generator whose first id is prefix+"1".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns a fresh id.
func (g *IDGenerator) Next() string {
	g.counter++
	return g.prefix + strconv.Itoa(g.counter)
}

// Counter returns the number of ids handed out since the last reset.
func (g *IDGenerator) Counter() int {
	return g.counter
}

// Restore rewinds or advances the counter. Only undo should call this.
func (g *IDGenerator) Restore(counter int) {
	g.counter = counter
}

// Reset restarts the sequence so the next id is prefix+"1".
func (g *IDGenerator) Reset() {
	g.counter = 0
}
