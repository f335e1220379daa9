package shared

import (
	"fmt"
	"io"

	"github.com/quietline/sanitize/internal/appstate"
)

const firstRunNotice = "quietline runs entirely locally — see `quietline --help` for available commands. This message won't show again.\n"

// RecordRun increments the local usage counter and, on the very first
// invocation ever recorded, prints a one-line orientation notice to w
// (skipped if the user has disabled it via appstate.State.PromptsDisabled).
// A failure to read or write the state file (e.g. no writable config dir)
// is swallowed: usage tracking is never allowed to block a sanitize/scan
// invocation.
func RecordRun(w io.Writer) {
	prior, err := appstate.Load()
	if err != nil {
		return
	}
	firstRun := prior.IsFirstRun() && !prior.PromptsDisabled

	if _, err := appstate.RecordRun(); err != nil {
		return
	}
	if firstRun {
		fmt.Fprint(w, firstRunNotice)
	}
}
