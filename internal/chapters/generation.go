package chapters

// Slot names a logical destination for delivered results.
type Slot string

// SlotPassage is the displayed scripture passage.
const SlotPassage Slot = "passage"

// Generations tracks the latest request per slot. A result carrying an older
// generation than the latest issued for its slot is stale. It belongs to the
// owning context and is not safe for concurrent use.
type Generations struct {
	latest map[Slot]uint64
}

// Next issues a new generation for slot.
func (g *Generations) Next(slot Slot) uint64 {
	if g.latest == nil {
		g.latest = make(map[Slot]uint64)
	}
	g.latest[slot]++
	return g.latest[slot]
}

// IsCurrent reports whether gen is the latest generation issued for slot.
func (g *Generations) IsCurrent(slot Slot, gen uint64) bool {
	return gen != 0 && g.latest[slot] == gen
}

// Latest returns the newest generation issued for slot, or zero.
func (g *Generations) Latest(slot Slot) uint64 {
	return g.latest[slot]
}
