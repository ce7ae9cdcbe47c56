package stage

import "fmt"

// Stage is the position of a run in its forward-only state machine.
type Stage int

const (
	Idle Stage = iota
	ResizeScheduled
	ResizeDone
	BlurScheduled
	BlurDone
	BlendScheduled
	BlendDone
	GlyphMapScheduled
	Complete
	Failed
	Canceled
)

var stageNames = [...]string{
	Idle:              "idle",
	ResizeScheduled:   "resize-scheduled",
	ResizeDone:        "resize-done",
	BlurScheduled:     "blur-scheduled",
	BlurDone:          "blur-done",
	BlendScheduled:    "blend-scheduled",
	BlendDone:         "blend-done",
	GlyphMapScheduled: "glyphmap-scheduled",
	Complete:          "complete",
	Failed:            "failed",
	Canceled:          "canceled",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Step names the pipeline step a state belongs to: resize, blur, blend or
// glyphs. Idle and terminal states return "".
func (s Stage) Step() string {
	switch s {
	case ResizeScheduled, ResizeDone:
		return "resize"
	case BlurScheduled, BlurDone:
		return "blur"
	case BlendScheduled, BlendDone:
		return "blend"
	case GlyphMapScheduled, Complete:
		return "glyphs"
	default:
		return ""
	}
}

// IsTerminal reports whether no further transitions can happen.
func IsTerminal(s Stage) bool {
	switch s {
	case Complete, Failed, Canceled:
		return true
	default:
		return false
	}
}

// isAllowedTransition encodes the single forward path. Any live state may
// also fail or be canceled; Complete may still be canceled until the draw
// action has run.
func isAllowedTransition(from, to Stage) bool {
	if to == Failed || to == Canceled {
		return from != Failed && from != Canceled
	}
	switch from {
	case Idle:
		return to == ResizeScheduled
	case ResizeScheduled:
		return to == ResizeDone
	case ResizeDone:
		return to == BlurScheduled
	case BlurScheduled:
		return to == BlurDone
	case BlurDone:
		return to == BlendScheduled
	case BlendScheduled:
		return to == BlendDone
	case BlendDone:
		return to == GlyphMapScheduled
	case GlyphMapScheduled:
		return to == Complete
	default:
		return false
	}
}
