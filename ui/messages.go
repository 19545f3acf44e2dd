package ui

import "github.com/lepinkainen/imagesorter/pool"

// TUI Message Types for queue communication

// taskMsg carries the result of one blocking receive from the worker pool
type taskMsg struct {
	Task pool.Task
	OK   bool
}
