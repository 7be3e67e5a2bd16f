package world

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/df-mc/voxel/server/block/cube"
	"github.com/google/uuid"
)

func TestPipelinePollCollectsResults(t *testing.T) {
	p := newPipeline[int]("test", 2, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(p.close)

	for i := 0; i < 10; i++ {
		p.submit(uuid.New(), cube.ChunkPos{int32(i)}, 0, func() int {
			if i == 3 {
				panic("task 3")
			}
			return i * i
		})
	}

	results := make(map[int32]int)
	var failed []int32
	deadline := time.Now().Add(5 * time.Second)
	for p.pending() > 0 {
		p.poll(func(tk task[int], r int, err error) {
			if err != nil {
				failed = append(failed, tk.pos[0])
				return
			}
			results[tk.pos[0]] = r
		})
		if time.Now().After(deadline) {
			t.Fatalf("tasks did not complete before deadline, %v pending", p.pending())
		}
		time.Sleep(time.Millisecond)
	}
	if len(failed) != 1 || failed[0] != 3 {
		t.Fatalf("expected task 3 to fail, got %v", failed)
	}
	if len(results) != 9 {
		t.Fatalf("expected 9 results, got %v", len(results))
	}
	for x, r := range results {
		if r != int(x*x) {
			t.Fatalf("expected result %v for task %v, got %v", x*x, x, r)
		}
	}
}

func TestPipelinePollDoesNotBlock(t *testing.T) {
	p := newPipeline[int]("test", 1, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	gate := make(chan struct{})
	t.Cleanup(func() {
		close(gate)
		p.close()
	})

	p.submit(uuid.New(), cube.ChunkPos{}, 0, func() int {
		<-gate
		return 1
	})
	if n := p.poll(func(task[int], int, error) {}); n != 0 {
		t.Fatalf("expected no completed tasks, got %v", n)
	}
	if p.pending() != 1 {
		t.Fatalf("expected the running task to be kept, got %v pending", p.pending())
	}
}
