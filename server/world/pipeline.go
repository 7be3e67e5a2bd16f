package world

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/df-mc/voxel/server/block/cube"
	"github.com/google/uuid"
)

// future is the completion handle of a task submitted to a pond pool.
type future[R any] interface {
	Done() <-chan struct{}
	Wait() (R, error)
}

// task is a unit of background work submitted on behalf of a chunk entity.
type task[R any] struct {
	id  uuid.UUID
	pos cube.ChunkPos
	seq uint64
	res future[R]
}

// pipeline runs tasks of one kind on a worker pool. Tasks own their inputs
// and return owned results. Completed tasks are collected by poll, which
// never blocks, so the control loop is never held up by background work.
//
// The pool queue is unbounded: when all workers are busy, tasks wait in the
// queue and none are dropped.
type pipeline[R any] struct {
	name string
	log  *slog.Logger
	pool pond.ResultPool[R]

	tasks []task[R]

	backlogWarn int
	// saturation counts how often a task was submitted while the backlog was
	// above backlogWarn. lastSaturationLog rate-limits the warning logged.
	saturation        atomic.Uint64
	lastSaturationLog atomic.Uint64
}

// newPipeline creates a pipeline running at most workers tasks at once.
func newPipeline[R any](name string, workers, backlogWarn int, log *slog.Logger) *pipeline[R] {
	return &pipeline[R]{
		name:        name,
		log:         log,
		pool:        pond.NewResultPool[R](workers),
		backlogWarn: backlogWarn,
	}
}

// submit queues f to be run on behalf of the chunk entity id at pos.
func (p *pipeline[R]) submit(id uuid.UUID, pos cube.ChunkPos, seq uint64, f func() R) {
	p.tasks = append(p.tasks, task[R]{id: id, pos: pos, seq: seq, res: p.pool.Submit(f)})
	if p.backlogWarn > 0 && len(p.tasks) > p.backlogWarn {
		p.handleBackpressure()
	}
}

// poll calls f for every task that completed since the last call and forgets
// those tasks. err is non-nil if the task panicked. Tasks that are still
// running are kept for a later poll.
func (p *pipeline[R]) poll(f func(t task[R], r R, err error)) int {
	n, kept := 0, p.tasks[:0]
	for _, t := range p.tasks {
		select {
		case <-t.res.Done():
			r, err := t.res.Wait()
			f(t, r, err)
			n++
		default:
			kept = append(kept, t)
		}
	}
	clear(p.tasks[len(kept):])
	p.tasks = kept
	return n
}

// pending returns the number of tasks submitted and not yet polled.
func (p *pipeline[R]) pending() int {
	return len(p.tasks)
}

// close stops the pool after all queued tasks finished. Results of those tasks
// are discarded.
func (p *pipeline[R]) close() {
	p.pool.StopAndWait()
	p.tasks = nil
}

// handleBackpressure increments the saturation counter and emits a throttled
// warning, at most once a minute, when the number of pending tasks exceeds
// the backlog threshold.
func (p *pipeline[R]) handleBackpressure() {
	count := p.saturation.Add(1)
	now := uint64(time.Now().UnixNano())
	last := p.lastSaturationLog.Load()

	if last != 0 && time.Duration(now-last) < time.Minute {
		return
	}
	if !p.lastSaturationLog.CompareAndSwap(last, now) {
		return
	}
	p.log.Warn(
		"world task backlog detected.",
		"pipeline", p.name,
		"pending_tasks", len(p.tasks),
		"saturated_submits", count,
		"running_workers", p.pool.RunningWorkers(),
	)
}
