// Package projector sends the focused slide to the display surface.
package projector

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/easypresenter/easypresenter/internal/log"
)

// Projector shows one slide at a time.
type Projector interface {
	Project(text, reference string) error
	Clear() error
}

// Nop discards everything. It is used when no output is configured.
type Nop struct{}

func (Nop) Project(string, string) error { return nil }
func (Nop) Clear() error                 { return nil }

// FileProjector rewrites a text file on every change so an external display
// program can watch it. The file holds the reference on the first line, a
// blank line, then the slide text. A cleared projection is an empty file.
type FileProjector struct {
	mu   sync.Mutex
	path string
	last string
}

// NewFileProjector creates the parent directory of path and returns a
// projector writing to it.
func NewFileProjector(path string) (*FileProjector, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("projector file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating projector directory: %w", err)
	}
	return &FileProjector{path: path}, nil
}

// Path returns the output file.
func (p *FileProjector) Path() string { return p.path }

// Project writes text and reference. Writing identical content twice is a
// no-op.
func (p *FileProjector) Project(text, reference string) error {
	return p.write(Render(text, reference))
}

// Clear blanks the projection.
func (p *FileProjector) Clear() error {
	return p.write("")
}

func (p *FileProjector) write(content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if content == p.last {
		if _, err := os.Stat(p.path); err == nil {
			return nil
		}
	}
	if err := atomic.WriteFile(p.path, bytes.NewBufferString(content)); err != nil {
		return fmt.Errorf("writing projection: %w", err)
	}
	p.last = content
	log.Debug(log.CatUI, "Projected slide", "path", p.path, "bytes", len(content))
	return nil
}

// Render formats a slide the way FileProjector stores it.
func Render(text, reference string) string {
	text = strings.TrimSpace(text)
	reference = strings.TrimSpace(reference)
	switch {
	case reference == "":
		return text + "\n"
	case text == "":
		return reference + "\n"
	default:
		return reference + "\n\n" + text + "\n"
	}
}
