package playback

import "fmt"

// State represents whether clock ticks may advance the position
type State int

const (
	// Stopped is the state after loading a source or an explicit stop
	Stopped State = iota

	// Playing lets every clock tick decode the next frame
	Playing

	// Paused is entered by the user or when playback reaches end of stream
	Paused
)

// String returns the lowercase name of the state
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Command is a named transition of the playback state machine
type Command string

const (
	CmdStart Command = "start"
	CmdPause Command = "pause"
	CmdStop  Command = "stop"
	// CmdHalt is issued by the clock itself when no further frame can be decoded
	CmdHalt Command = "halt"
)

// Transition returns the state that results from applying cmd to s, and
// whether the command is meaningful in s. Unchanged states report false.
func Transition(s State, cmd Command) (State, bool) {
	switch cmd {
	case CmdStart:
		if s == Playing {
			return s, false
		}
		return Playing, true
	case CmdPause:
		if s != Playing {
			return s, false
		}
		return Paused, true
	case CmdStop:
		if s == Stopped {
			return s, false
		}
		return Stopped, true
	case CmdHalt:
		if s != Playing {
			return s, false
		}
		return Paused, true
	default:
		return s, false
	}
}
