package model

// Marks is the visualization state layered over an arena during an
// operation: the single selected node (traversal head), the highlighted
// set (nodes sitting in the auxiliary list) and the explored set.
//
// Marks never outlive an operation; BeginAnimation and StopAnimation both
// reset them.
type Marks struct {
	Selected    NodeID
	Highlighted map[NodeID]bool
	Explored    map[NodeID]bool
}

// NewMarks returns empty marks with nothing selected.
func NewMarks() *Marks {
	return &Marks{
		Selected:    None,
		Highlighted: make(map[NodeID]bool),
		Explored:    make(map[NodeID]bool),
	}
}

// Select makes id the single current focus, replacing any prior focus.
// Selecting None clears the focus.
func (m *Marks) Select(id NodeID) {
	m.Selected = id
}

// Highlight adds id to the highlighted set.
func (m *Marks) Highlight(id NodeID) {
	if id != None {
		m.Highlighted[id] = true
	}
}

// Unhighlight removes id from the highlighted set.
func (m *Marks) Unhighlight(id NodeID) {
	delete(m.Highlighted, id)
}

// Explore adds id to the explored set.
func (m *Marks) Explore(id NodeID) {
	if id != None {
		m.Explored[id] = true
	}
}

// Reset clears selection and both sets.
func (m *Marks) Reset() {
	m.Selected = None
	clear(m.Highlighted)
	clear(m.Explored)
}

// Empty reports whether nothing is selected, highlighted or explored.
func (m *Marks) Empty() bool {
	return m.Selected == None && len(m.Highlighted) == 0 && len(m.Explored) == 0
}

// Clone returns an independent copy.
func (m *Marks) Clone() *Marks {
	out := NewMarks()
	out.Selected = m.Selected
	for id := range m.Highlighted {
		out.Highlighted[id] = true
	}
	for id := range m.Explored {
		out.Explored[id] = true
	}
	return out
}
