// Package task is the asynchronous job runtime: submit returns an opaque
// handle immediately, execution happens on a worker pool, and terminal
// outcomes are retained in an OutcomeStore for idempotent polling.
package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	platformerrors "wavecast-server-go/internal/platform/errors"
	"wavecast-server-go/internal/platform/logging"
	"wavecast-server-go/internal/util/work"
)

// Type distinguishes kinds of async jobs.
type Type string

// Status is the internal lifecycle of one task.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// Executor runs a task and stores its result on the task itself.
type Executor func(t *Task) error

// Task carries one job through the pool.
type Task struct {
	ID        string
	Type      Type
	Status    Status
	Params    interface{}
	Result    interface{}
	Error     error
	CreatedAt time.Time
	UpdatedAt time.Time
	Context   context.Context
}

// OutcomeStore retains terminal outcomes keyed by job handle. Drivers live in
// the store subpackage.
type OutcomeStore interface {
	Put(ctx context.Context, handle string, outcome Outcome) error
	Get(ctx context.Context, handle string) (Outcome, bool, error)
	Close(ctx context.Context) error
}

// Config sizes the worker pool.
type Config struct {
	Workers   int
	QueueSize int
}

type taskJob struct {
	task *Task
}

// Manager is the job runtime facade: executor registry, submission, polling.
type Manager struct {
	pool     *work.Pool
	outcomes OutcomeStore
	logger   *logging.Logger

	execMu    sync.RWMutex
	executors map[Type]Executor

	inflight sync.Map // handle -> progress state label
}

// NewManager creates a Manager backed by a worker pool and an outcome store.
func NewManager(cfg Config, outcomes OutcomeStore, logger *logging.Logger) *Manager {
	m := &Manager{
		outcomes:  outcomes,
		logger:    logger,
		executors: make(map[Type]Executor),
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = workers * 16
	}

	m.pool = work.NewWorkPool(workers, queueSize, func(job work.Job) error {
		tj, ok := job.(taskJob)
		if !ok {
			return fmt.Errorf("invalid job type: expected taskJob")
		}
		m.execute(tj.task)
		return nil
	})

	return m
}

// Register binds an executor to a task type.
func (m *Manager) Register(taskType Type, executor Executor) {
	m.execMu.Lock()
	defer m.execMu.Unlock()
	m.executors[taskType] = executor
}

func (m *Manager) executor(taskType Type) (Executor, bool) {
	m.execMu.RLock()
	defer m.execMu.RUnlock()
	executor, exists := m.executors[taskType]
	return executor, exists
}

// Submit enqueues a job and returns its handle. The call never waits for
// execution; jobs run to completion with no caller-initiated abort, so the
// task context is detached from the submitting request.
func (m *Manager) Submit(taskType Type, params interface{}) (string, error) {
	if _, exists := m.executor(taskType); !exists {
		return "", platformerrors.New(platformerrors.KindJob, "task.submit",
			fmt.Sprintf("task type %s is not registered", taskType))
	}

	id := uuid.New().String()
	t := &Task{
		ID:        id,
		Type:      taskType,
		Status:    StatusPending,
		Params:    params,
		CreatedAt: time.Now(),
		Context:   context.Background(),
	}

	m.inflight.Store(id, StatePending)
	if err := m.pool.Submit(taskJob{task: t}); err != nil {
		m.inflight.Delete(id)
		return "", platformerrors.Wrap(platformerrors.KindJob, "task.submit",
			"failed to enqueue task", err)
	}

	return id, nil
}

// execute drives one task to a terminal outcome and records it exactly once.
func (m *Manager) execute(t *Task) {
	var outcome Outcome

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Status = StatusFailed
				outcome = Failure(fmt.Sprintf("task panicked: %v", r))
			}
		}()

		t.Status = StatusRunning
		t.UpdatedAt = time.Now()
		m.inflight.Store(t.ID, StateStarted)

		executor, exists := m.executor(t.Type)
		if !exists {
			t.Status = StatusFailed
			outcome = Failure(fmt.Sprintf("no executor registered for task type: %s", t.Type))
			return
		}

		if err := executor(t); err != nil {
			t.Status = StatusFailed
			t.Error = err
			outcome = Failure(platformerrors.Message(err))
			return
		}

		t.Status = StatusComplete
		outcome = Normalize(t.Result)
	}()

	m.record(t.ID, outcome)
}

func (m *Manager) record(handle string, outcome Outcome) {
	if err := m.outcomes.Put(context.Background(), handle, outcome); err != nil && m.logger != nil {
		m.logger.ErrorTag("Task", "failed to record outcome for %s: %v", handle, err)
	}
	m.inflight.Delete(handle)
}

// Poll reports the current outcome for a handle. Unknown handles poll as
// pending, matching the behavior of distributed result backends where a
// handle cannot be told apart from a not-yet-started job.
func (m *Manager) Poll(ctx context.Context, handle string) (Outcome, error) {
	outcome, found, err := m.outcomes.Get(ctx, handle)
	if err != nil {
		return Outcome{}, platformerrors.Wrap(platformerrors.KindJob, "task.poll",
			"Error checking task status", err)
	}
	if found {
		return outcome, nil
	}

	if state, ok := m.inflight.Load(handle); ok {
		return Processing(state.(string)), nil
	}
	return Processing(StatePending), nil
}

// Stop drains the pool and waits for running jobs.
func (m *Manager) Stop() {
	m.pool.Stop()
}
