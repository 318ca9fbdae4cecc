// Package editor lets the user edit a card field in their own text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"microscope/internal/ports"
)

// Opener implements ports.TextEditor
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

var _ ports.TextEditor = (*Opener)(nil)

// NewOpener creates an opener that honours $EDITOR and $VISUAL
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath}
}

// Command returns an exec.Cmd editing path, attached to the terminal
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// $EDITOR may carry flags, e.g. "code --wait"
	args := strings.Fields(editor)
	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := strings.TrimSpace(o.getenv(env)); editor != "" {
			return editor
		}
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return path
		}
	}

	return ""
}

// Draft is a scratch file holding the text of one field while it is edited
type Draft struct {
	Path string
}

// NewDraft writes text to a new scratch file in dir, or the system temp
// directory when dir is empty
func NewDraft(dir, name, text string) (*Draft, error) {
	f, err := os.CreateTemp(dir, "microscope-"+name+"-*.txt")
	if err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text + "\n"); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("write draft: %w", err)
	}
	return &Draft{Path: f.Name()}, nil
}

// Read returns the edited text as a single line. Line breaks become spaces
// since card fields hold one line.
func (d *Draft) Read() (string, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	return strings.Join(strings.Fields(string(data)), " "), nil
}

// Remove deletes the scratch file
func (d *Draft) Remove() error {
	if err := os.Remove(d.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove draft: %w", err)
	}
	return nil
}
