// Package testutil holds helpers shared by the CLI, app and orchestration
// tests.
package testutil

import "regexp"

// csi matches ANSI CSI sequences (ESC [ params letter), which covers every
// color and style code the ui themes emit.
var csi = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripAnsiCodes returns s without terminal color codes, so tests can
// compare rendered output regardless of the active theme.
func StripAnsiCodes(s string) string {
	return csi.ReplaceAllString(s, "")
}
