package game

// TaskQueue defers work (path planning requests) to the start of the
// next world tick. Everything runs on the sim goroutine; the queue
// exists for ordering, so a request issued mid-tick cannot mutate
// goal state while the goal tree is still executing.
type TaskQueue struct {
	tasks []func()
}

func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

func (q *TaskQueue) Enqueue(t func()) {
	q.tasks = append(q.tasks, t)
}

func (q *TaskQueue) Len() int { return len(q.tasks) }

// Drain runs every queued task in FIFO order. Tasks enqueued while
// draining run on the next drain, not this one.
func (q *TaskQueue) Drain() {
	pending := q.tasks
	q.tasks = nil
	for _, t := range pending {
		t()
	}
}
