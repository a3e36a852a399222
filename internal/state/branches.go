package state

// DefaultPalette holds the lane colours, cycled when lanes outnumber it.
var DefaultPalette = []string{
	"#7dd3fc", // sky
	"#fca5a5", // red
	"#fcd34d", // amber
	"#a7f3d0", // green
	"#c4b5fd", // violet
	"#f9a8d4", // pink
	"#93c5fd", // blue
	"#fdba74", // orange
}

// LaneColor returns the palette entry for a lane.
func LaneColor(palette []string, lane int) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[lane%len(palette)]
}

// EnsureBranch registers name if it is not known yet and returns the branch.
// New branches get the next free lane and no tip.
func (r *Repository) EnsureBranch(name string) *Branch {
	if b, ok := r.Branches[name]; ok {
		return b
	}
	lane := len(r.Branches)
	b := &Branch{
		Name:  name,
		Color: LaneColor(r.palette, lane),
		Lane:  lane,
	}
	r.Branches[name] = b
	r.Order = append(r.Order, name)
	return b
}

// Branch looks up a branch by name.
func (r *Repository) Branch(name string) (*Branch, bool) {
	b, ok := r.Branches[name]
	return b, ok
}

// HasBranch reports whether name is registered.
func (r *Repository) HasBranch(name string) bool {
	_, ok := r.Branches[name]
	return ok
}

// BranchNames returns branch names in creation (lane) order.
func (r *Repository) BranchNames() []string {
	names := make([]string, len(r.Order))
	copy(names, r.Order)
	return names
}
