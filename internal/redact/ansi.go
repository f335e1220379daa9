package redact

import "regexp"

// ansiEscape matches CSI sequences (ESC '[' ... final byte), OSC sequences
// (ESC ']' ... BEL or ST), and the shorter two-byte escapes (e.g. ESC '(' B)
// that terminal formatting commonly uses.
var ansiEscape = regexp.MustCompile(
	"\x1b\\][^\x07\x1b]*(?:\x07|\x1b\\\\)" + // OSC ... BEL | ST
		"|\x1b\\[[0-9:;<=>?]*[ -/]*[@-~]" + // CSI ... final byte
		"|\x1b[@-Z\\\\\\]^_]", // two-byte escape
)

// StripAnsi removes terminal control sequences from input before matching.
// This is unconditional: no rule controls it, and every downstream offset
// refers to the stripped form, never the original bytes.
func StripAnsi(input string) string {
	return ansiEscape.ReplaceAllString(input, "")
}
