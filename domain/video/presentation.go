package video

// Overlay is the status drawn next to a rendered frame
type Overlay struct {
	Index int
	Total int
	Time  Timestamp
	State string
	Marks Marks
}

// Surface displays decoded frames
// This is a port that can be implemented by different infrastructure adapters
type Surface interface {
	// Render shows frame, replacing whatever was shown before
	Render(frame Frame, overlay Overlay) error
}

// Slider mirrors the position as a bounded integer control.
// Toolkit implementations may echo programmatic sets back as user input.
type Slider interface {
	SetRange(min, max int)
	SetValue(v int)
}

// TextField mirrors the position as editable decimal text
type TextField interface {
	SetText(text string)
}

// LastIndex returns the highest frame index of the session, or -1 when empty
func (o Overlay) LastIndex() int {
	return o.Total - 1
}
