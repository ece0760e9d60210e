package assessment

// autoAdvanceMsg fires after a single-choice selection has been on screen
// for the configured delay. A newer selection invalidates older tokens.
type autoAdvanceMsg struct {
	token int
}
