package runner

import (
	"sync"

	"excise/internal/core"
)

// EventKind identifies an event emitted by the batch runner.
type EventKind int

const (
	EventStarted EventKind = iota
	EventPatched
	EventFailed
)

// Event reports progress for one file. Exactly one terminal event
// (EventPatched or EventFailed) is delivered per file.
type Event struct {
	Kind    EventKind
	File    string
	Outcome *core.Outcome
	Err     error
}

// PatchFunc patches a single file and returns its outcome.
type PatchFunc func(path string) (*core.Outcome, error)

// BatchRunner patches several files with independent engine instances, one
// goroutine per file. Runs share no mutable state, so no coordination beyond
// the event channel is needed; each file succeeds or fails on its own.
type BatchRunner struct {
	files   []string
	patch   PatchFunc
	eventCh chan Event
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a BatchRunner over files using patch.
func New(files []string, patch PatchFunc) *BatchRunner {
	return &BatchRunner{
		files:   files,
		patch:   patch,
		eventCh: make(chan Event, len(files)*2),
		stopCh:  make(chan struct{}),
	}
}

// Start launches one worker per file. The event channel is closed once every
// worker has finished, so callers can range over Events().
func (br *BatchRunner) Start() {
	for _, file := range br.files {
		br.wg.Add(1)
		go func(file string) {
			defer br.wg.Done()
			if !br.emit(Event{Kind: EventStarted, File: file}) {
				return
			}
			outcome, err := br.patch(file)
			if err != nil {
				br.emit(Event{Kind: EventFailed, File: file, Err: err})
				return
			}
			br.emit(Event{Kind: EventPatched, File: file, Outcome: outcome})
		}(file)
	}
	go func() {
		br.wg.Wait()
		close(br.eventCh)
	}()
}

// Stop aborts event delivery; workers finish their in-flight patch but emit
// nothing further.
func (br *BatchRunner) Stop() {
	close(br.stopCh)
}

// Events returns the channel of progress events.
func (br *BatchRunner) Events() <-chan Event {
	return br.eventCh
}

// emit delivers ev unless the runner has been stopped. It reports whether
// delivery happened.
func (br *BatchRunner) emit(ev Event) bool {
	select {
	case <-br.stopCh:
		return false
	default:
	}
	select {
	case <-br.stopCh:
		return false
	case br.eventCh <- ev:
		return true
	}
}
