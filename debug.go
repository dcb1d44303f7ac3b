package hdsprite

import (
	"fmt"
	"io"
)

// Stats holds draw redirection counters.
type Stats struct {
	Calls      uint64 // draw calls seen
	Redirected uint64 // calls whose texture was substituted
	Missed     uint64 // calls passed through unchanged
}

// RedirectRatio returns Redirected/Calls, or 0 with no calls.
func (s Stats) RedirectRatio() float64 {
	if s.Calls == 0 {
		return 0
	}
	return float64(s.Redirected) / float64(s.Calls)
}

// DebugLog prints the counters to w.
func (s Stats) DebugLog(w io.Writer) {
	_, _ = fmt.Fprintf(w,
		"[hdsprite] draw calls: %d | redirected: %d | passed through: %d | ratio: %.2f\n",
		s.Calls, s.Redirected, s.Missed, s.RedirectRatio())
}
