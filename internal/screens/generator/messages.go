package generator

import "time"

// generatedMsg carries the outcome of one generation request.
type generatedMsg struct {
	ID   string
	Text string
	Err  error
}

// captionTickMsg rotates the loading caption.
type captionTickMsg struct {
	ID string
}

// progressTickMsg advances the loading progress bar.
type progressTickMsg struct {
	ID string
	At time.Time
}

// copiedResetMsg ends the "Tersalin" acknowledgement.
type copiedResetMsg struct {
	seq int
}

// exportDoneMsg is sent when the Word file has been written.
type exportDoneMsg struct {
	Path string
	Err  error
}
