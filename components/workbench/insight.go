package workbench

import (
	"context"
	"errors"
	"sync"
	"time"
)

// InsightRowLimit caps how many rows are sent to the text-generation service.
const InsightRowLimit = 20

// DefaultInsightTimeout bounds each generation call. The upstream flow had no
// timeout at all; requests are now time-boxed so a stalled remote cannot pin
// the dialog in its loading state forever.
const DefaultInsightTimeout = 30 * time.Second

// ErrNoData rejects insight requests for empty or missing tables before any
// outbound call is made.
var ErrNoData = errors.New("workbench: no data available for analysis")

// InsightRequest is the full payload sent to the text-generation collaborator.
type InsightRequest struct {
	Rows     []Row  `json:"rows"`
	Title    string `json:"title"`
	Language string `json:"language"`
}

// InsightClient is the external text-generation collaborator. Input is a row
// sample, a title, and a language tag; output is plain text (often Markdown)
// or an error.
type InsightClient interface {
	Generate(ctx context.Context, req InsightRequest) (string, error)
}

// InsightResult is delivered to the session callback on completion.
type InsightResult struct {
	Text string
	Err  error
}

// InsightSession drives at most one pending generation request for an open
// insight dialog. Closing the session before completion discards the late
// result: nothing is delivered after Close.
type InsightSession struct {
	client   InsightClient
	language string
	timeout  time.Duration

	mu         sync.Mutex
	idle       sync.Cond
	closed     bool
	pending    bool
	delivering bool
	cancel     context.CancelFunc
}

// NewInsightSession builds a session for one dialog. A zero timeout falls
// back to DefaultInsightTimeout.
func NewInsightSession(client InsightClient, language string, timeout time.Duration) *InsightSession {
	if timeout <= 0 {
		timeout = DefaultInsightTimeout
	}
	s := &InsightSession{client: client, language: language, timeout: timeout}
	s.idle.L = &s.mu
	return s
}

// Request issues exactly one outbound call with the first InsightRowLimit
// rows and the widget title, invoking deliver with the outcome. An empty
// table returns ErrNoData immediately and the collaborator is never called.
func (s *InsightSession) Request(ctx context.Context, vt VirtualTable, title string, deliver func(InsightResult)) error {
	if len(vt.Data) == 0 {
		return ErrNoData
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("workbench: insight session is closed")
	}
	if s.pending {
		s.mu.Unlock()
		return errors.New("workbench: an insight request is already pending")
	}
	s.pending = true
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	s.cancel = cancel
	s.mu.Unlock()

	rows := vt.Data
	if len(rows) > InsightRowLimit {
		rows = rows[:InsightRowLimit]
	}
	req := InsightRequest{
		Rows:     CloneRows(rows),
		Title:    title,
		Language: s.language,
	}

	go func() {
		defer cancel()
		text, err := s.client.Generate(reqCtx, req)

		s.mu.Lock()
		s.pending = false
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.delivering = true
		s.mu.Unlock()

		deliver(InsightResult{Text: text, Err: err})

		s.mu.Lock()
		s.delivering = false
		s.idle.Broadcast()
		s.mu.Unlock()
	}()
	return nil
}

// Close tears down the dialog. Any in-flight request is cancelled and its
// result dropped; a delivery already in progress is waited out, so once Close
// returns the callback can no longer fire. The deliver callback must not call
// Close itself. Close is idempotent.
func (s *InsightSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		if s.cancel != nil {
			s.cancel()
		}
	}
	for s.delivering {
		s.idle.Wait()
	}
}
