package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/gaffer/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	// Test empty queue
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	// Test enqueue
	job1 := model.ResolveJob{SessionID: "session1", PlayerID: "player1", Name: "Alisson Becker"}
	if !q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	// Test dequeue
	jobChan := q.Dequeue(ctx)
	job := <-jobChan
	if job.PlayerID != "player1" {
		t.Errorf("expected player1, got %v", job.PlayerID)
	}
	if job.Name != "Alisson Becker" {
		t.Errorf("expected Alisson Becker, got %v", job.Name)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	job1 := model.ResolveJob{SessionID: "s", PlayerID: "player1", Name: "One"}
	job2 := model.ResolveJob{SessionID: "s", PlayerID: "player2", Name: "Two"}
	job3 := model.ResolveJob{SessionID: "s", PlayerID: "player3", Name: "Three"}

	if !q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, job2) {
		t.Error("expected enqueue to succeed")
	}

	// Try to enqueue when full
	if q.Enqueue(ctx, job3) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2000))
	ctx := context.Background()
	numGoroutines := 10
	numJobs := 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numJobs; j++ {
				job := model.ResolveJob{
					SessionID: fmt.Sprintf("session%d", id),
					PlayerID:  fmt.Sprintf("player%d-%d", id, j),
					Name:      fmt.Sprintf("Player %d-%d", id, j),
				}
				if !q.Enqueue(ctx, job) {
					t.Errorf("enqueue failed for %s", job.PlayerID)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if l := q.Len(ctx); l != numGoroutines*numJobs {
		t.Errorf("expected length %d, got %d", numGoroutines*numJobs, l)
	}

	// Drain everything back out
	received := 0
	jobChan := q.Dequeue(ctx)
	for received < numGoroutines*numJobs {
		select {
		case <-jobChan:
			received++
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after receiving %d jobs", received)
		}
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if q.IsClosed() {
		t.Error("expected queue to start open")
	}

	job := model.ResolveJob{SessionID: "s", PlayerID: "player1", Name: "One"}
	if !q.Enqueue(ctx, job) {
		t.Error("expected enqueue to succeed")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}

	// Enqueue after close must fail
	if q.Enqueue(ctx, job) {
		t.Error("expected enqueue to fail after close")
	}

	// Closing twice is harmless
	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got %v", err)
	}

	// Buffered jobs still drain, then the channel closes
	jobChan := q.Dequeue(ctx)
	got, ok := <-jobChan
	if !ok || got.PlayerID != "player1" {
		t.Errorf("expected buffered job player1, got %v (ok=%v)", got.PlayerID, ok)
	}
	if _, ok := <-jobChan; ok {
		t.Error("expected dequeue channel to close after drain")
	}
}
