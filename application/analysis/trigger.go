package analysis

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"sayitloud/application/api"
	"sayitloud/domain/events"
	pkgerrors "sayitloud/pkg/errors"
)

// Trigger requests (re)computation of a post's AI annotations as a detached
// task. The caller never waits on the result; the outcome is logged and
// published on the event channel for views that care to subscribe. It is
// never fed back into displayed state by the trigger itself.
type Trigger struct {
	api    *api.Client
	logger *zap.Logger

	events chan events.DomainEvent
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewTrigger creates an analysis trigger with a buffered event channel.
func NewTrigger(apiClient *api.Client, logger *zap.Logger) *Trigger {
	return &Trigger{
		api:    apiClient,
		logger: logger,
		events: make(chan events.DomainEvent, 16),
	}
}

// Events exposes the outcome channel. Events are dropped, not queued
// unboundedly, when no subscriber keeps up.
func (t *Trigger) Events() <-chan events.DomainEvent {
	return t.events
}

// Request fires the analysis call for postID and returns immediately.
func (t *Trigger) Request(postID string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.wg.Add(1)
	t.mu.Unlock()

	t.publish(events.NewAnalysisRequested(postID, time.Now()))

	go func() {
		defer t.wg.Done()

		result, err := t.api.AnalyzePost(context.Background(), postID)
		if err != nil {
			if pkgerrors.IsSessionExpired(err) {
				t.logger.Debug("analysis abandoned on session expiry", zap.String("post", postID))
				return
			}
			t.logger.Error("analysis trigger failed",
				zap.String("post", postID),
				zap.Error(err),
			)
			t.publish(events.NewAnalysisFailed(postID, err.Error(), time.Now()))
			return
		}

		t.logger.Info("analysis triggered",
			zap.String("post", postID),
			zap.String("message", result.Message),
		)
		t.publish(events.NewAnalysisCompleted(postID, result.Message, time.Now()))
	}()
}

// Close waits for in-flight requests and closes the event channel.
func (t *Trigger) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()

	t.wg.Wait()
	close(t.events)
}

// publish delivers an event without blocking the detached task.
func (t *Trigger) publish(e events.DomainEvent) {
	select {
	case t.events <- e:
	default:
		t.logger.Debug("analysis event dropped", zap.String("type", e.GetEventType()))
	}
}
