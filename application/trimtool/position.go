package trimtool

// Position tracks the frame on screen and the frame playback decodes next.
// Current is the authoritative position: marks snapshot it and the mirrors
// display it. Cursor runs one ahead of it while playing.
type Position struct {
	total   int
	current int
	cursor  int
}

// Reset prepares the position for a source of total frames. The position is
// undefined until a frame is shown.
func (p *Position) Reset(total int) {
	p.total = total
	p.current = -1
	p.cursor = 0
}

// Defined reports whether a frame has been shown
func (p Position) Defined() bool {
	return p.current >= 0
}

// Current returns the displayed frame index, or -1 when undefined
func (p Position) Current() int {
	return p.current
}

// Cursor returns the next frame index playback will decode
func (p Position) Cursor() int {
	return p.cursor
}

// Total returns the frame count of the source
func (p Position) Total() int {
	return p.total
}

// Max returns the largest valid index, or -1 for an empty source
func (p Position) Max() int {
	return p.total - 1
}

// Valid reports whether index addresses a frame of the source
func (p Position) Valid(index int) bool {
	return index >= 0 && index < p.total
}

// Clamp limits index to [0, Max]
func (p Position) Clamp(index int) int {
	if index > p.Max() {
		index = p.Max()
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Show records that index is now on screen; playback continues after it
func (p *Position) Show(index int) {
	p.current = index
	p.cursor = index + 1
}
