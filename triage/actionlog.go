package triage

import "fmt"

// LogEntry is the most recent successful action. It is either a MoveSuccess
// or a Skip.
type LogEntry interface {
	fmt.Stringer
	logEntry()
}

// MoveSuccess records an image moved into a destination directory
type MoveSuccess struct {
	FileName string
	DestPath string
}

func (MoveSuccess) logEntry() {}

func (e MoveSuccess) String() string {
	return fmt.Sprintf("move: %s -> %s", e.FileName, e.DestPath)
}

// Skip records an image left in place
type Skip struct {
	FileName string
}

func (Skip) logEntry() {}

func (e Skip) String() string {
	return fmt.Sprintf("skip: %s", e.FileName)
}
