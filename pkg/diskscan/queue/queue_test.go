package queue_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mdemirhan/dux/pkg/diskscan/queue"
	"github.com/mdemirhan/dux/pkg/diskscan/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_PutGetTaskDone(t *testing.T) {
	q := queue.New()
	node := types.NewDirNode("/r", "r")
	q.Put(queue.Task{Node: node, Depth: 0})

	task, ok := q.Get()
	require.True(t, ok)
	assert.Same(t, node, task.Node)

	done := make(chan struct{})
	go func() {
		q.Join()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Join returned before TaskDone")
	case <-time.After(20 * time.Millisecond):
	}

	q.TaskDone()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Join did not return after TaskDone")
	}
}

func TestQueue_ConcurrentWorkers(t *testing.T) {
	q := queue.New()
	const n = 200
	for i := 0; i < n; i++ {
		q.Put(queue.Task{Node: types.NewDirNode("/r", "r"), Depth: 0})
	}

	var processed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				task, ok := q.Get()
				if !ok {
					return
				}
				if task.Node == nil {
					q.TaskDone()
					return
				}
				processed.Add(1)
				q.TaskDone()
			}
		}()
	}

	q.Join()
	for i := 0; i < 8; i++ {
		q.Put(queue.Task{Node: nil})
	}
	wg.Wait()

	assert.Equal(t, int64(n), processed.Load())
}

func TestQueue_CloseWakesBlockedGet(t *testing.T) {
	q := queue.New()
	done := make(chan bool)
	go func() {
		_, ok := q.Get()
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Get did not wake up after Close")
	}
}
