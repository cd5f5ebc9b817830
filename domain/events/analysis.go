package events

import "time"

// DomainEvent is the base interface for events published by the client core.
// Events represent something that has happened in the past.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// Analysis events. The derived-intelligence trigger is a detached task; its
// outcome is published here so interested views may subscribe instead of the
// result being silently swallowed.

// AnalysisRequested is raised when a (re)analysis of a post is requested.
type AnalysisRequested struct {
	BaseEvent
	PostID string `json:"post_id"`
}

// NewAnalysisRequested creates an AnalysisRequested event
func NewAnalysisRequested(postID string, timestamp time.Time) AnalysisRequested {
	return AnalysisRequested{
		BaseEvent: BaseEvent{
			AggregateID: postID,
			EventType:   "analysis.requested",
			Timestamp:   timestamp,
		},
		PostID: postID,
	}
}

// AnalysisCompleted is raised when the server acknowledges the analysis.
type AnalysisCompleted struct {
	BaseEvent
	PostID  string `json:"post_id"`
	Message string `json:"message"`
}

// NewAnalysisCompleted creates an AnalysisCompleted event
func NewAnalysisCompleted(postID, message string, timestamp time.Time) AnalysisCompleted {
	return AnalysisCompleted{
		BaseEvent: BaseEvent{
			AggregateID: postID,
			EventType:   "analysis.completed",
			Timestamp:   timestamp,
		},
		PostID:  postID,
		Message: message,
	}
}

// AnalysisFailed is raised when the analysis request could not be issued or
// was rejected.
type AnalysisFailed struct {
	BaseEvent
	PostID string `json:"post_id"`
	Reason string `json:"reason"`
}

// NewAnalysisFailed creates an AnalysisFailed event
func NewAnalysisFailed(postID, reason string, timestamp time.Time) AnalysisFailed {
	return AnalysisFailed{
		BaseEvent: BaseEvent{
			AggregateID: postID,
			EventType:   "analysis.failed",
			Timestamp:   timestamp,
		},
		PostID: postID,
		Reason: reason,
	}
}
