package video

// MarkBuffer holds the user's optional in-point and out-point.
// Marks are snapshots of the position; their order is only checked when a
// trim is requested, so the user may set them in either order.
type MarkBuffer struct {
	start *int
	end   *int
}

// SetStart records pos as the start mark, replacing any previous value
func (m *MarkBuffer) SetStart(pos int) {
	m.start = &pos
}

// SetEnd records pos as the end mark, replacing any previous value
func (m *MarkBuffer) SetEnd(pos int) {
	m.end = &pos
}

// Start returns the start mark and whether it is set
func (m *MarkBuffer) Start() (int, bool) {
	if m.start == nil {
		return 0, false
	}
	return *m.start, true
}

// End returns the end mark and whether it is set
func (m *MarkBuffer) End() (int, bool) {
	if m.end == nil {
		return 0, false
	}
	return *m.end, true
}

// Range returns both marks; ok is false unless both are set
func (m *MarkBuffer) Range() (start, end int, ok bool) {
	if m.start == nil || m.end == nil {
		return 0, 0, false
	}
	return *m.start, *m.end, true
}

// Clear unsets both marks
func (m *MarkBuffer) Clear() {
	m.start = nil
	m.end = nil
}

// Marks is a copyable view of a MarkBuffer
type Marks struct {
	Start *int
	End   *int
}

// Snapshot returns a copy of the current marks
func (m *MarkBuffer) Snapshot() Marks {
	var out Marks
	if s, ok := m.Start(); ok {
		out.Start = &s
	}
	if e, ok := m.End(); ok {
		out.End = &e
	}
	return out
}
