package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/riohost/riohost/internal/filters"
)

// Pipeline ties the filter state to the KPI service for one reporting
// session. Every selection change (or explicit refresh) triggers a load
// tagged with the selection that produced it; when the result arrives it is
// discarded unless that tag still matches the current selection. Last write
// wins on the visible summary; there is no result queue and no merging.
//
// The HTTP server does not run a Pipeline: stateless requests carry their
// whole selection and resolve per call. Pipeline is for long-lived consumers
// that hold a filters.State, such as an interactive client session.
type Pipeline struct {
	state   *filters.State
	service *Service
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.RWMutex
	summary   KPISummary
	err       error
	hasResult bool

	unsubscribe func()
}

// NewPipeline constructs a Pipeline over the given state and service.
func NewPipeline(state *filters.State, service *Service, logger *slog.Logger) *Pipeline {
	return &Pipeline{state: state, service: service, logger: logger, now: time.Now}
}

// Start begins observing filter changes and runs an initial load. Stops when
// the context is cancelled.
func (p *Pipeline) Start(ctx context.Context) {
	p.unsubscribe = p.state.Subscribe(func(sel filters.Selection) {
		go p.run(ctx, sel)
	})
	go p.run(ctx, p.state.Snapshot())

	go func() {
		<-ctx.Done()
		if p.unsubscribe != nil {
			p.unsubscribe()
		}
	}()
}

// Refresh re-runs the load for the current selection.
func (p *Pipeline) Refresh(ctx context.Context) {
	p.run(ctx, p.state.Snapshot())
}

// Current returns the latest summary. The boolean is false until the first
// load completes. A non-nil error marks the unavailable state: the previous
// summary must not be presented as current.
func (p *Pipeline) Current() (KPISummary, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.summary, p.hasResult, p.err
}

func (p *Pipeline) run(ctx context.Context, sel filters.Selection) {
	tag := sel.Key(p.now())

	summary, err := p.service.Load(ctx, sel)

	// The selection may have moved on while the load was in flight; a stale
	// result is dropped rather than displayed.
	if current := p.state.Snapshot().Key(p.now()); current != tag {
		p.logger.Debug("discarding stale dashboard load", slog.String("tag", tag), slog.String("current", current))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.err = err
		p.logger.Error("dashboard load failed", slog.Any("error", err))
		return
	}
	p.summary = summary
	p.hasResult = true
	p.err = nil
}
