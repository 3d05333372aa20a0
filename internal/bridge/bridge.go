// Package bridge queues style and script injection commands for the
// browser shell. The shell drains the queue over HTTP at its own fixed
// polling interval and executes each command against the active view; the
// engine only ever sees the sink interfaces.
package bridge

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Command kinds understood by the shell.
const (
	KindInsertCSS = "insert-css"
	KindRemoveCSS = "remove-css"
	KindRunScript = "run-script"
)

const (
	// minCSSLen rejects payloads too short to be a real stylesheet.
	minCSSLen = 10
	// maxScriptLen rejects oversized scripts outright. Large scripts are
	// refused, never truncated.
	maxScriptLen = 8 * 1024
)

var (
	ErrCSSTooShort    = errors.New("css payload too short")
	ErrScriptTooLarge = errors.New("script payload too large")
	ErrQueueFull      = errors.New("injection queue full")
)

// Command is one pending injection for the shell to execute.
type Command struct {
	Seq      uint64    `json:"seq"`
	Kind     string    `json:"kind"`
	StyleID  string    `json:"styleId,omitempty"`
	Payload  string    `json:"payload,omitempty"`
	QueuedAt time.Time `json:"queuedAt"`
}

// Queue is an in-memory, ordered injection queue. It implements the
// engine's StyleSink and ScriptSink. Safe for concurrent use: the engine
// enqueues from handler goroutines while the shell drains.
type Queue struct {
	log   *zap.Logger
	limit int
	ttl   time.Duration

	mu       sync.Mutex
	seq      uint64
	commands []Command
}

// NewQueue creates a queue bounded at limit commands; commands older than
// ttl are discarded on the next enqueue or drain, since their target view
// is assumed gone.
func NewQueue(log *zap.Logger, limit int, ttl time.Duration) *Queue {
	return &Queue{log: log, limit: limit, ttl: ttl}
}

// InjectStyle queues a named style resource installation. Re-injecting an
// id supersedes any still-queued payload for the same id.
func (q *Queue) InjectStyle(_ context.Context, id, css string) error {
	if len(css) < minCSSLen {
		return ErrCSSTooShort
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.dropStaleLocked()

	// An undrained command for the same style id is obsolete the moment a
	// replacement arrives; the shell should only ever apply the newest.
	kept := q.commands[:0]
	for _, c := range q.commands {
		if (c.Kind == KindInsertCSS || c.Kind == KindRemoveCSS) && c.StyleID == id {
			continue
		}
		kept = append(kept, c)
	}
	q.commands = kept

	return q.pushLocked(Command{Kind: KindInsertCSS, StyleID: id, Payload: css})
}

// RemoveStyle queues removal of a named style resource.
func (q *Queue) RemoveStyle(_ context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dropStaleLocked()

	// Cancel any queued insert for the id, but still queue the removal:
	// an earlier insert for the same id may already have been drained and
	// applied, and removing a style the shell never installed is harmless.
	kept := q.commands[:0]
	for _, c := range q.commands {
		if c.Kind == KindInsertCSS && c.StyleID == id {
			continue
		}
		kept = append(kept, c)
	}
	q.commands = kept

	return q.pushLocked(Command{Kind: KindRemoveCSS, StyleID: id})
}

// RunScript queues a script execution.
func (q *Queue) RunScript(_ context.Context, code string) error {
	if len(code) > maxScriptLen {
		return ErrScriptTooLarge
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.dropStaleLocked()
	return q.pushLocked(Command{Kind: KindRunScript, Payload: code})
}

// Drain returns all pending commands in order and empties the queue.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dropStaleLocked()

	out := q.commands
	q.commands = nil
	return out
}

// Sweep discards expired commands and reports how many were dropped.
func (q *Queue) Sweep() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	before := len(q.commands)
	q.dropStaleLocked()
	return before - len(q.commands)
}

// Pending returns the number of queued commands.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}

func (q *Queue) pushLocked(c Command) error {
	if q.limit > 0 && len(q.commands) >= q.limit {
		q.log.Warn("Injection queue full, dropping command", zap.String("kind", c.Kind))
		return ErrQueueFull
	}
	q.seq++
	c.Seq = q.seq
	c.QueuedAt = time.Now()
	q.commands = append(q.commands, c)
	return nil
}

// dropStaleLocked discards commands older than the TTL. A stalled or
// restarted shell should not replay minutes-old styling against whatever
// page happens to be loaded now.
func (q *Queue) dropStaleLocked() {
	if q.ttl <= 0 || len(q.commands) == 0 {
		return
	}
	cutoff := time.Now().Add(-q.ttl)
	kept := q.commands[:0]
	dropped := 0
	for _, c := range q.commands {
		if c.QueuedAt.Before(cutoff) {
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	q.commands = kept
	if dropped > 0 {
		q.log.Debug("Dropped stale injection commands", zap.Int("count", dropped))
	}
}
