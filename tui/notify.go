package tui

import "os/exec"

// DesktopNotifier delivers session-end alerts through notify-send.
// Delivery is best effort: a missing binary or denied permission only
// costs the visible alert, never store correctness.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(title, body string) {
	cmd := exec.Command("notify-send", "-a", "focusdo", title, body)
	_ = cmd.Run()
}
