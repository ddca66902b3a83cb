// Package sampling implements the request broker that lets tool
// handlers ask the connected client for generated text mid-execution.
//
// The broker owns correlation-id lifecycle and timeout enforcement. It
// is transport-agnostic: a Responder registered at startup delivers
// outbound requests, and the transport feeds answers back through
// Resolve or Fail. The first terminal event per request (resolve,
// failure, or timeout) wins; later ones are silent no-ops.
package sampling

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the window a pending request waits for an answer.
const DefaultTimeout = 30 * time.Second

// Payload is the body of an outbound sampling request: the prompt plus
// optional structured context for the respondent.
type Payload struct {
	Prompt  string         `json:"prompt"`
	Context map[string]any `json:"context,omitempty"`
}

// Request pairs a payload with its correlation id.
type Request struct {
	ID      string  `json:"id"`
	Payload Payload `json:"payload"`
}

// Responder delivers an outbound sampling request toward the connected
// client. Delivery is asynchronous: once the client answers, the
// transport calls Broker.Resolve (or Broker.Fail) with the request id.
// A non-nil return means the request could not be sent at all.
type Responder func(ctx context.Context, req Request) error

// Event describes a broker lifecycle transition, for observers such as
// the live event feed. Emission is best-effort and never blocks the
// broker.
type Event struct {
	Type   string    `json:"type"` // request_sent, resolved, timed_out, failed, discarded_response
	ID     string    `json:"id"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// EventSink receives broker lifecycle events. Implementations must not
// block.
type EventSink interface {
	SamplingEvent(ev Event)
}

type outcome struct {
	content string
	err     error
}

type pendingRequest struct {
	done  chan outcome
	timer *time.Timer
}

// Broker correlates server-originated sampling requests with their
// eventual replies. The zero value is not usable; construct with New.
type Broker struct {
	timeout time.Duration
	sink    EventSink

	mu        sync.Mutex
	responder Responder
	pending   map[string]*pendingRequest
}

// Option configures a Broker.
type Option func(*Broker)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(b *Broker) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithEventSink attaches a lifecycle event observer.
func WithEventSink(sink EventSink) Option {
	return func(b *Broker) { b.sink = sink }
}

// New creates a broker with no responder bound.
func New(opts ...Option) *Broker {
	b := &Broker{
		timeout: DefaultTimeout,
		pending: make(map[string]*pendingRequest),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RegisterResponder binds the capability that delivers requests to the
// client. It overwrites any previous binding; re-registration is not an
// error.
func (b *Broker) RegisterResponder(fn Responder) {
	b.mu.Lock()
	b.responder = fn
	b.mu.Unlock()
}

// IsAvailable reports whether a responder is currently registered,
// letting callers skip the sampling attempt entirely.
func (b *Broker) IsAvailable() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.responder != nil
}

// Send forwards the payload to the registered responder and blocks
// until the reply arrives, the default timeout expires, or ctx is
// cancelled. With no responder registered it returns ErrUnavailable
// immediately, creating no pending entry and no timer.
func (b *Broker) Send(ctx context.Context, payload Payload) (string, error) {
	return b.SendTimeout(ctx, payload, b.timeout)
}

// SendTimeout is Send with an explicit timeout window.
func (b *Broker) SendTimeout(ctx context.Context, payload Payload, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = b.timeout
	}

	b.mu.Lock()
	responder := b.responder
	if responder == nil {
		b.mu.Unlock()
		return "", ErrUnavailable
	}

	id := uuid.New().String()
	p := &pendingRequest{done: make(chan outcome, 1)}
	p.timer = time.AfterFunc(timeout, func() {
		if b.complete(id, outcome{err: ErrTimeout}) {
			b.emit(Event{Type: "timed_out", ID: id})
		}
	})
	b.pending[id] = p
	b.mu.Unlock()

	if err := responder(ctx, Request{ID: id, Payload: payload}); err != nil {
		rerr := &ResponderError{Cause: err}
		if b.complete(id, outcome{err: rerr}) {
			b.emit(Event{Type: "failed", ID: id, Detail: err.Error()})
		}
	} else {
		b.emit(Event{Type: "request_sent", ID: id})
	}

	select {
	case oc := <-p.done:
		return oc.content, oc.err
	case <-ctx.Done():
		b.complete(id, outcome{})
		return "", fmt.Errorf("sampling request %s: %w", id, ctx.Err())
	}
}

// Resolve delivers a reply for the given correlation id. Unknown ids
// (already resolved, timed out, or never issued) are discarded without
// error.
func (b *Broker) Resolve(id, content string) {
	if b.complete(id, outcome{content: content}) {
		b.emit(Event{Type: "resolved", ID: id})
		return
	}
	log.Printf("sampling: discarding response for unknown request %s", id)
	b.emit(Event{Type: "discarded_response", ID: id})
}

// Fail rejects a pending request with the responder's asynchronous
// error. Unknown ids are a no-op, mirroring Resolve.
func (b *Broker) Fail(id string, cause error) {
	if b.complete(id, outcome{err: &ResponderError{Cause: cause}}) {
		b.emit(Event{Type: "failed", ID: id, Detail: cause.Error()})
	}
}

// PendingCount returns the number of outstanding requests.
func (b *Broker) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// complete performs the single terminal transition for id. It returns
// false when the entry no longer exists, making duplicate completions
// harmless. The lock covers only the table mutation.
func (b *Broker) complete(id string, oc outcome) bool {
	b.mu.Lock()
	p, ok := b.pending[id]
	if !ok {
		b.mu.Unlock()
		return false
	}
	delete(b.pending, id)
	b.mu.Unlock()

	p.timer.Stop()
	p.done <- oc
	return true
}

func (b *Broker) emit(ev Event) {
	if b.sink == nil {
		return
	}
	ev.At = time.Now().UTC()
	b.sink.SamplingEvent(ev)
}
