// Package controller holds the worksheet generator's view state machine:
// Input, then Generating, then Preview or back to Input with a banner.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/lkpd/internal/document"
	"github.com/abhisek/lkpd/internal/llm"
	"github.com/abhisek/lkpd/internal/prompt"
	"github.com/abhisek/lkpd/internal/worksheet"
)

// State is the generator view the user is looking at.
type State int

const (
	StateInput State = iota
	StateGenerating
	StatePreview
)

func (s State) String() string {
	switch s {
	case StateInput:
		return "input"
	case StateGenerating:
		return "generating"
	case StatePreview:
		return "preview"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrBusy is returned by Submit while a generation is in flight.
	ErrBusy = errors.New("generation already in progress")
	// ErrNotGenerating is returned when a result arrives with no request
	// in flight.
	ErrNotGenerating = errors.New("no generation in progress")
	// ErrNotInput is returned by Submit outside the input form.
	ErrNotInput = errors.New("submit is only accepted from the input form")
)

// Controller is safe for concurrent use.
type Controller struct {
	mu     sync.Mutex
	state  State
	banner string
	doc    *document.Document
	req    *worksheet.Request
}

// New returns a controller showing the input form.
func New() *Controller {
	return &Controller{state: StateInput}
}

// Submit moves Input to Generating and clears the banner. A preview must
// be Reset before the next Submit.
func (c *Controller) Submit(req worksheet.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateGenerating:
		return ErrBusy
	case StatePreview:
		return ErrNotInput
	}
	snapshot := req
	snapshot.Traits = req.Traits.Clone()

	c.state = StateGenerating
	c.banner = ""
	c.doc = nil
	c.req = &snapshot
	return nil
}

// Succeed moves Generating to Preview with a fresh document for text.
func (c *Controller) Succeed(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateGenerating {
		return ErrNotGenerating
	}
	c.state = StatePreview
	c.banner = ""
	c.doc = document.New(text)
	return nil
}

// Fail moves Generating back to Input and shows err as a banner.
func (c *Controller) Fail(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateGenerating {
		return ErrNotGenerating
	}
	c.state = StateInput
	c.banner = llm.UserMessage(err)
	c.doc = nil
	return nil
}

// Reset returns to the form, discarding the document and its letterhead.
// It is a no-op while generating.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateGenerating {
		return
	}
	c.state = StateInput
	c.banner = ""
	c.doc = nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Banner is the error line shown above the form, or "".
func (c *Controller) Banner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

// Document is the worksheet in preview, or nil outside Preview.
func (c *Controller) Document() *document.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// Request is the snapshot taken by the last Submit, or nil before any.
func (c *Controller) Request() *worksheet.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.req
}

// Fetch builds the prompt for req and asks p for the worksheet text. It
// does not touch any controller state and may run off the UI goroutine.
func Fetch(ctx context.Context, p llm.Provider, req worksheet.Request) (string, error) {
	resp, err := p.Generate(ctx, llm.UserPrompt(prompt.Build(req)))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Generate runs a whole cycle: Submit, Fetch, then Succeed or Fail.
func (c *Controller) Generate(ctx context.Context, p llm.Provider, req worksheet.Request) error {
	if err := c.Submit(req); err != nil {
		return err
	}
	text, err := Fetch(ctx, p, req)
	if err != nil {
		_ = c.Fail(err)
		return err
	}
	return c.Succeed(text)
}
