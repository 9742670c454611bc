package scheduling

import (
	"sort"
	"sync"
)

// employeeLocks serializes mutating operations per employee. Conflict
// detection and scheduling contention are scoped to one employee at a
// time, so a per-employee critical section is enough for single-writer
// semantics.
type employeeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEmployeeLocks() *employeeLocks {
	return &employeeLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *employeeLocks) get(employeeID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[employeeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[employeeID] = m
	}
	return m
}

// lock acquires one employee's mutex and returns its unlock.
func (l *employeeLocks) lock(employeeID string) func() {
	m := l.get(employeeID)
	m.Lock()
	return m.Unlock
}

// lockPair acquires two employees' mutexes in a fixed global order so a
// reassignment can never deadlock against another writer.
func (l *employeeLocks) lockPair(a, b string) func() {
	if a == b {
		return l.lock(a)
	}
	ids := []string{a, b}
	sort.Strings(ids)
	first, second := l.get(ids[0]), l.get(ids[1])
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
