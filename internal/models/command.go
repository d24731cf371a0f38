package models

import "strings"

// Command is one external tool invocation. It is built once and never mutated.
type Command struct {
	Name           string   // Binary to execute (e.g. "ffmpeg")
	Args           []string // Ordered argument list
	Dir            string   // Working directory, empty for the current one
	ExpectedOutput string   // File that must exist with non-zero size after a clean exit
	MissingOutput  string   // Fixed diagnostic used when ExpectedOutput is absent or empty
}

// String renders the command line for logs.
func (c Command) String() string {
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Outcome is the result of a successful invocation.
type Outcome struct {
	OutputPath string // Same as Command.ExpectedOutput when one was set
	Output     string // Combined stdout/stderr of the tool
}
