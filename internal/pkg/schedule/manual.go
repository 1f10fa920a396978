package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by an explicit clock, tasks only run inside Advance
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m        *Manual
	seq      int
	interval time.Duration
	next     time.Duration
	fn       func()
	stopped  bool
}

// NewManual returns a manual scheduler positioned at time zero
func NewManual() *Manual {
	return &Manual{}
}

// Every registers fn to run every interval of manual time
func (m *Manual) Every(interval time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	task := &manualTask{
		m:        m,
		seq:      m.seq,
		interval: interval,
		next:     m.now + interval,
		fn:       fn,
	}
	m.tasks = append(m.tasks, task)

	return task
}

// Advance moves the clock forward by d, running every task that falls due in
// chronological order. Tasks registered or stopped by a running task take effect
// immediately
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		task := m.due(target)
		if task == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = task.next
		task.next += task.interval
		m.mu.Unlock()

		task.fn()
	}
}

// Active returns the number of tasks that have not been stopped
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, task := range m.tasks {
		if !task.stopped {
			n++
		}
	}
	return n
}

func (m *Manual) due(target time.Duration) *manualTask {
	live := m.tasks[:0]
	for _, task := range m.tasks {
		if !task.stopped {
			live = append(live, task)
		}
	}
	m.tasks = live

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].next == m.tasks[j].next {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].next < m.tasks[j].next
	})

	if len(m.tasks) == 0 || m.tasks[0].next > target {
		return nil
	}
	return m.tasks[0]
}

func (t *manualTask) Stop() {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	t.stopped = true
}
