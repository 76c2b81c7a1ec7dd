package services

import (
	"sort"
	"sync"
)

// RoomLocks serialises overlap-check+write and check-in per room inside this
// process. The database row lock covers multiple processes.
type RoomLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewRoomLocks() *RoomLocks {
	return &RoomLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the locks for every room id (ascending, deduplicated) and
// returns the matching unlock.
func (l *RoomLocks) Lock(roomIDs ...uint) func() {
	ids := make([]uint, 0, len(roomIDs))
	seen := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	held := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		m := l.get(id)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (l *RoomLocks) get(id uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}
