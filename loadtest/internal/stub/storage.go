package stub

import (
	"fmt"
	"sync"
	"time"
)

// ScheduledCycle is one accepted cycle task, kept so load test assertions
// can inspect what the advisor scheduled.
type ScheduledCycle struct {
	Name       string    `json:"name"`
	ProjectID  string    `json:"project_id"`
	RunID      string    `json:"run_id"`
	Queue      string    `json:"queue"`
	ScheduleAt time.Time `json:"schedule_at"`
	ReceivedAt time.Time `json:"received_at"`
}

// CycleStorage is an in-memory task store for the scheduler stub. It
// never fires the scheduled cycles; load tests only check what was booked.
type CycleStorage struct {
	mu     sync.Mutex
	seq    int
	cycles map[string]ScheduledCycle
}

func NewCycleStorage() *CycleStorage {
	return &CycleStorage{
		cycles: make(map[string]ScheduledCycle),
	}
}

// Add stores a cycle and assigns it a unique task name.
func (s *CycleStorage) Add(cycle ScheduledCycle) ScheduledCycle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	cycle.Name = fmt.Sprintf("cycle-%d", s.seq)
	cycle.ReceivedAt = time.Now()
	s.cycles[cycle.Name] = cycle
	return cycle
}

// Remove deletes a cycle by task name and reports whether it existed.
func (s *CycleStorage) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.cycles[name]
	delete(s.cycles, name)
	return ok
}

// List returns all stored cycles, optionally filtered by project.
func (s *CycleStorage) List(projectID string) []ScheduledCycle {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]ScheduledCycle, 0, len(s.cycles))
	for _, cycle := range s.cycles {
		if projectID != "" && cycle.ProjectID != projectID {
			continue
		}
		result = append(result, cycle)
	}
	return result
}

// Reset clears every stored cycle.
func (s *CycleStorage) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.cycles)
	s.cycles = make(map[string]ScheduledCycle)
	return n
}
