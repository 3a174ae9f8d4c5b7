package ocr

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/eventbus"
)

var (
	// ErrEmptySelection is returned when a batch has no entries
	ErrEmptySelection = errors.New("nothing to do: no files selected")
	// ErrQueueClosed is returned by Submit after Close
	ErrQueueClosed = errors.New("ocr queue closed")
	// ErrQueueFull is returned when too many batches are waiting
	ErrQueueFull = errors.New("ocr queue full")
)

type batch struct {
	id      int64
	entries []domain.PathEntry
}

// Queue runs submitted batches on a single worker goroutine and reports
// progress on the event bus
type Queue struct {
	invoker *Invoker
	bus     eventbus.EventBus
	batches chan batch

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	nextID  int64
	current context.CancelFunc // cancels the running batch
}

// NewQueue starts the worker. depth bounds how many batches may wait.
func NewQueue(invoker *Invoker, bus eventbus.EventBus, depth int) *Queue {
	if depth < 1 {
		depth = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		invoker: invoker,
		bus:     bus,
		batches: make(chan batch, depth),
		ctx:     ctx,
		cancel:  cancel,
	}

	q.wg.Add(1)
	go q.worker()

	return q
}

// Submit enqueues a snapshot of entries and returns the batch ID
func (q *Queue) Submit(entries []domain.PathEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, ErrEmptySelection
	}

	snapshot := make([]domain.PathEntry, len(entries))
	copy(snapshot, entries)

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return 0, ErrQueueClosed
	}

	q.nextID++
	b := batch{id: q.nextID, entries: snapshot}
	select {
	case q.batches <- b:
		log.Printf("OCR queue: batch %d submitted with %d file(s)", b.id, len(snapshot))
		return b.id, nil
	default:
		q.nextID--
		return 0, ErrQueueFull
	}
}

// CancelCurrent cancels the batch being processed, if any
func (q *Queue) CancelCurrent() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return false
	}
	q.current()
	return true
}

// Close cancels running work, rejects further submissions and waits for the worker
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.batches)
	}
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for b := range q.batches {
		ctx, cancel := context.WithCancel(q.ctx)
		q.mu.Lock()
		q.current = cancel
		q.mu.Unlock()

		q.bus.Publish(eventbus.BatchStartedEvent{BatchID: b.id, Total: len(b.entries)})
		results := q.run(ctx, b)
		q.bus.Publish(eventbus.BatchCompletedEvent{BatchID: b.id, Results: results})

		q.mu.Lock()
		q.current = nil
		q.mu.Unlock()
		cancel()
	}
}

// run invokes the batch. A panic in the invoker fails the entries that had
// not completed and is reported as an ErrorEvent; the batch still completes.
func (q *Queue) run(ctx context.Context, b batch) (results []domain.JobResult) {
	obs := &busObserver{bus: q.bus, batchID: b.id}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err := fmt.Errorf("panic: %v", r)
		log.Printf("OCR queue: batch %d aborted: %v", b.id, err)
		q.bus.Publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("OCR batch %d stopped: %v", b.id, r),
			Err:     err,
		})

		results = obs.completed
		for i := len(results); i < len(b.entries); i++ {
			result := domain.JobResult{
				Index:      i,
				Entry:      b.entries[i],
				OutputPath: q.invoker.OutputPath(b.entries[i].Path),
				Outcome:    domain.Outcome{Kind: domain.OutcomeSpawnFailure, Err: err},
			}
			obs.JobCompleted(len(b.entries), result)
			results = obs.completed
		}
	}()
	return q.invoker.Run(ctx, b.entries, obs)
}

// busObserver republishes invoker progress as domain events
type busObserver struct {
	bus       eventbus.EventBus
	batchID   int64
	completed []domain.JobResult
}

func (o *busObserver) JobStarted(index, total int, entry domain.PathEntry, output string) {
	o.bus.Publish(eventbus.JobStartedEvent{
		BatchID:    o.batchID,
		Index:      index,
		Total:      total,
		Entry:      entry,
		OutputPath: output,
	})
}

func (o *busObserver) JobCompleted(total int, result domain.JobResult) {
	o.completed = append(o.completed, result)
	o.bus.Publish(eventbus.JobCompletedEvent{
		BatchID: o.batchID,
		Total:   total,
		Result:  result,
	})
}
