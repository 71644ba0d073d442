// Package agent wires intent classification, retrieval, prompt assembly
// and generation into one cancellable request lifecycle.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"agripulse/internal/evidence"
	"agripulse/internal/intent"
	"agripulse/internal/prompt"
	"agripulse/internal/provider"
)

// State is one step of the request lifecycle.
type State string

const (
	StateIdle        State = "idle"
	StateClassifying State = "classifying"
	StateGreeting    State = "greeting"
	StateRetrieving  State = "retrieving"
	StateGenerating  State = "generating"
	StateResponding  State = "responding"
	StateDone        State = "done"
	StateCancelled   State = "cancelled"
)

// Query is one immutable inbound question.
type Query struct {
	Text      string
	Document  string // already-extracted plain text, may be empty
	Timestamp time.Time
}

// ErrMalformedRequest is the only error a caller ever sees: a query with no
// text and no document violates the calling convention.
var ErrMalformedRequest = errors.New("malformed request: query text is required")

// Observer receives lifecycle transitions. Implementations must not block.
type Observer interface {
	StateChanged(requestID string, from, to State)
}

// Controller runs the request state machine.
type Controller struct {
	coordinator *evidence.Coordinator
	engine      *provider.Engine
	observer    Observer

	reqSeq atomic.Uint64
}

func NewController(coordinator *evidence.Coordinator, engine *provider.Engine, observer Observer) *Controller {
	return &Controller{coordinator: coordinator, engine: engine, observer: observer}
}

// Answer processes one query to completion or cancellation. Retrieval and
// provider failures are absorbed into a degraded Answer; a context error
// means no answer was produced at all.
func (c *Controller) Answer(ctx context.Context, q Query) (provider.Answer, error) {
	id := fmt.Sprintf("req-%d", c.reqSeq.Add(1))
	state := StateIdle

	transition := func(to State) {
		if c.observer != nil {
			c.observer.StateChanged(id, state, to)
		}
		state = to
	}
	abort := func() (provider.Answer, error) {
		transition(StateCancelled)
		return provider.Answer{}, ctx.Err()
	}

	if strings.TrimSpace(q.Text) == "" && q.Document == "" {
		return provider.Answer{}, ErrMalformedRequest
	}
	if ctx.Err() != nil {
		return abort()
	}

	transition(StateClassifying)
	kind := intent.Classify(q.Text)

	if kind == intent.Greeting {
		transition(StateGreeting)
		transition(StateResponding)
		transition(StateDone)
		return provider.Answer{Text: MsgGreeting}, nil
	}

	var set evidence.Set
	if kind == intent.DomainQuery && q.Document == "" {
		transition(StateRetrieving)
		set = c.coordinator.Retrieve(ctx, q.Text)
		if ctx.Err() != nil {
			return abort()
		}
	}

	transition(StateGenerating)
	payload := prompt.Assemble(q.Text, set, q.Document)
	answer, attempts := c.engine.Generate(ctx, payload.Render())
	if ctx.Err() != nil {
		return abort()
	}
	answer.EvidenceUsedCount = set.Len()

	for _, a := range attempts {
		log.Printf("%s generation attempt provider=%s n=%d outcome=%s latency=%s",
			id, a.Provider, a.AttemptNumber, a.Outcome, a.Latency.Round(time.Millisecond))
	}

	transition(StateResponding)
	transition(StateDone)
	return answer, nil
}
