package insights

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Enricher drives the retry-with-fallback loop around the model call.
type Enricher struct {
	gen         Generator
	maxAttempts int
	timeout     time.Duration
	log         zerolog.Logger

	// Injectable for tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewEnricher wires a generator with the retry policy. maxAttempts must be
// at least 1; timeout bounds each individual model call.
func NewEnricher(gen Generator, maxAttempts int, timeout time.Duration, log zerolog.Logger) *Enricher {
	return &Enricher{
		gen:         gen,
		maxAttempts: maxAttempts,
		timeout:     timeout,
		log:         log,
		sleep:       time.Sleep,
		now:         time.Now,
	}
}

// Enrich asks the model for insights, retrying with exponential backoff
// (2^attempt seconds between attempts). It never fails: when every attempt
// errors out it returns the rule-based fallback, marked as such.
func (e *Enricher) Enrich(ctx context.Context, fc FinancialContext) *Insights {
	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		ins, err := e.generate(ctx, fc)
		if err == nil {
			return ins
		}

		e.log.Warn().Err(err).Int("attempt", attempt+1).Msg("insight generation attempt failed")

		if attempt == e.maxAttempts-1 {
			break
		}
		e.sleep(time.Duration(1<<attempt) * time.Second)
	}

	e.log.Error().Msg("all insight generation attempts failed, using fallback")
	return Fallback(fc, e.now())
}

func (e *Enricher) generate(ctx context.Context, fc FinancialContext) (*Insights, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	user, err := userPrompt(fc, e.now())
	if err != nil {
		return nil, err
	}

	raw, err := e.gen.Generate(ctx, systemPrompt, user)
	if err != nil {
		return nil, err
	}

	return parseInsights(raw)
}
