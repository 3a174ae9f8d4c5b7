package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventBatchStarted   EventType = "BatchStarted"
	EventJobStarted     EventType = "JobStarted"
	EventJobCompleted   EventType = "JobCompleted"
	EventBatchCompleted EventType = "BatchCompleted"
	EventError          EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// BatchStartedEvent is emitted when the worker picks up a submitted batch
type BatchStartedEvent struct {
	BatchID int64
	Total   int
}

func (e BatchStartedEvent) Type() EventType { return EventBatchStarted }

// JobStartedEvent is emitted right before the OCR tool is spawned for an entry
type JobStartedEvent struct {
	BatchID    int64
	Index      int
	Total      int
	Entry      PathEntry
	OutputPath string
}

func (e JobStartedEvent) Type() EventType { return EventJobStarted }

// JobCompletedEvent carries the outcome of a single entry
type JobCompletedEvent struct {
	BatchID int64
	Total   int
	Result  JobResult
}

func (e JobCompletedEvent) Type() EventType { return EventJobCompleted }

// BatchCompletedEvent is emitted once every entry of a batch has an outcome
type BatchCompletedEvent struct {
	BatchID int64
	Results []JobResult
}

func (e BatchCompletedEvent) Type() EventType { return EventBatchCompleted }

// Failures counts the entries that did not succeed
func (e BatchCompletedEvent) Failures() int {
	n := 0
	for _, r := range e.Results {
		if !r.Outcome.OK() {
			n++
		}
	}
	return n
}

// ErrorEvent is emitted when an error occurs outside of a job
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
