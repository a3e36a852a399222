package state

import "time"

// Snapshot is everything undo needs to rebuild a session.
type Snapshot struct {
	Repo     *Repository `json:"repo"`
	Counter  int         `json:"counter"`
	Selected string      `json:"selected"`
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Repo:     s.Repo.Clone(),
		Counter:  s.Counter,
		Selected: s.Selected,
	}
}

// Entry is one recorded mutating operation together with the state as it
// was immediately before that operation ran.
type Entry struct {
	Command     string
	Description string
	Snapshot    Snapshot
	Timestamp   time.Time
}

// History is an append-only undo log. Popping the last entry is the only
// way to shorten it; there is no redo.
type History struct {
	entries []Entry
}

// NewHistory returns an empty log.
func NewHistory() *History {
	return &History{}
}

// Record appends an entry. The snapshot must already be detached from live
// state.
func (h *History) Record(command, description string, snap Snapshot, ts time.Time) {
	h.entries = append(h.entries, Entry{
		Command:     command,
		Description: description,
		Snapshot:    snap,
		Timestamp:   ts,
	})
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = Entry{}
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Len returns the number of undoable entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Items returns the entries in display form, oldest first, numbered from 1.
func (h *History) Items() []HistoryItem {
	items := make([]HistoryItem, len(h.entries))
	for i, e := range h.entries {
		items[i] = HistoryItem{
			Index:       i + 1,
			Command:     e.Command,
			Description: e.Description,
			Timestamp:   e.Timestamp,
		}
	}
	return items
}
