package ports

import "os/exec"

// TextEditor edits files in an external program
type TextEditor interface {
	// Command returns the process editing the file at path. The caller runs
	// it, typically through bubbletea's ExecProcess.
	Command(path string) (*exec.Cmd, error)
}
