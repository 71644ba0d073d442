package provider

import (
	"context"
	"log"
	"time"
)

// Answer is the terminal artifact of generation. Callers always get one for
// any request that reaches the engine; retry state never leaks into it.
type Answer struct {
	Text              string
	UsedProviders     []string
	EvidenceUsedCount int
}

// AttemptOutcome classifies one provider call.
type AttemptOutcome string

const (
	OutcomeSuccess     AttemptOutcome = "success"
	OutcomeRateLimited AttemptOutcome = "rate_limited"
	OutcomeHardError   AttemptOutcome = "hard_error"
)

// Attempt records one provider call for diagnostics.
type Attempt struct {
	Provider      string
	AttemptNumber int
	Outcome       AttemptOutcome
	Latency       time.Duration
}

// Fixed user-facing texts for terminal engine states.
const (
	MsgServiceBusy = "**Server Busy:** The AI model is currently experiencing high traffic. Please try again in 10-15 seconds."

	MsgSetupRequired = `## Setup Required
I need at least one model API key to function.

1. Get a free key from Google AI Studio (or DeepSeek / OpenRouter).
2. Add it to .env:
   GEMINI_API_KEY=your_key_here
3. Restart the server.`
)

const (
	maxAttemptsPerProvider = 3
	baseBackoff            = time.Second
)

// Engine walks the registry in order: bounded backoff retries on rate
// limits, immediate fallback on hard errors, one provider active at a time.
type Engine struct {
	registry *Registry

	// AttemptTimeout bounds each individual provider call. A timeout is a
	// hard error: fall back, do not retry.
	AttemptTimeout time.Duration

	// sleep is swapped in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewEngine(registry *Registry) *Engine {
	return &Engine{
		registry:       registry,
		AttemptTimeout: 45 * time.Second,
		sleep:          sleepCtx,
	}
}

// Generate produces an Answer from the rendered prompt. It never returns a
// transport error: exhaustion and missing credentials map to fixed texts.
// The only early exit is context cancellation, reported via ctx so the
// caller emits no answer at all.
func (e *Engine) Generate(ctx context.Context, prompt string) (Answer, []Attempt) {
	if e.registry.Empty() {
		return Answer{Text: MsgSetupRequired}, nil
	}

	var attempts []Attempt
	var used []string

	for _, p := range e.registry.Providers() {
		used = append(used, p.Name())
		answer, done := e.tryProvider(ctx, p, prompt, &attempts)
		if ctx.Err() != nil {
			return Answer{}, attempts
		}
		if done {
			answer.UsedProviders = used
			return answer, attempts
		}
		log.Printf("provider %s exhausted, falling back", p.Name())
	}

	return Answer{Text: MsgServiceBusy, UsedProviders: used}, attempts
}

// tryProvider runs the bounded retry loop against one provider. done=false
// means the caller should fall back to the next provider.
func (e *Engine) tryProvider(ctx context.Context, p Provider, prompt string, attempts *[]Attempt) (Answer, bool) {
	for attempt := 1; attempt <= maxAttemptsPerProvider; attempt++ {
		if ctx.Err() != nil {
			return Answer{}, false
		}

		attemptCtx, cancel := context.WithTimeout(ctx, e.AttemptTimeout)
		start := time.Now()
		text, err := p.Submit(attemptCtx, prompt)
		latency := time.Since(start)
		cancel()

		rec := Attempt{Provider: p.Name(), AttemptNumber: attempt, Latency: latency}
		switch {
		case err == nil:
			rec.Outcome = OutcomeSuccess
			*attempts = append(*attempts, rec)
			return Answer{Text: text}, true
		case ctx.Err() != nil:
			// Request cancelled, not a provider verdict.
			return Answer{}, false
		case IsRateLimited(err):
			rec.Outcome = OutcomeRateLimited
			*attempts = append(*attempts, rec)
			if attempt == maxAttemptsPerProvider {
				return Answer{}, false
			}
			delay := baseBackoff << (attempt - 1)
			log.Printf("provider %s rate limited, retrying in %s", p.Name(), delay)
			if e.sleep(ctx, delay) != nil {
				return Answer{}, false
			}
		default:
			rec.Outcome = OutcomeHardError
			*attempts = append(*attempts, rec)
			log.Printf("provider %s hard error: %v", p.Name(), err)
			return Answer{}, false
		}
	}
	return Answer{}, false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
