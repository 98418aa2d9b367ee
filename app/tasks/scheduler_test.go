package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type flakyTask struct {
	Task
	executions atomic.Int64
}

func (t *flakyTask) Execute(ctx context.Context) error {
	t.executions.Add(1)
	return errors.New("transient failure")
}

func newTestScheduler(workerCount int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		interval:    time.Hour,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
	}
}

func TestScheduler_EnqueueTask(t *testing.T) {
	scheduler := newTestScheduler(1)
	scheduler.taskQueue = make(chan TaskInterface, 1)

	first := &flakyTask{Task: NewTask(TaskTypeRefreshGene, "TP53")}
	if err := scheduler.EnqueueTask(first); err != nil {
		t.Fatalf("EnqueueTask failed: %v", err)
	}

	second := &flakyTask{Task: NewTask(TaskTypeRefreshGene, "BRCA1")}
	if err := scheduler.EnqueueTask(second); err == nil {
		t.Error("Expected error when the task queue is full")
	}
}

func TestScheduler_StopWaitsForPendingRetry(t *testing.T) {
	scheduler := newTestScheduler(1)
	scheduler.Start()

	task := &flakyTask{Task: NewTask(TaskTypeRefreshGene, "TP53")}
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("EnqueueTask failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for task.executions.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Task never executed")
		}
		time.Sleep(time.Millisecond)
	}

	// The failed task has a retry waiting on its backoff delay. Stop must
	// wait it out; closing the queue underneath it would panic on the
	// re-enqueue send.
	started := time.Now()
	scheduler.Stop()

	if elapsed := time.Since(started); elapsed < 500*time.Millisecond {
		t.Errorf("Expected Stop to wait for the pending retry, returned after %s", elapsed)
	}
	if got := task.executions.Load(); got != 1 {
		t.Errorf("Expected 1 execution before shutdown, got %d", got)
	}
}
