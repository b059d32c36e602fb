package telegram

import "sync"

// userLock serializes update handling per chat so two messages from the same
// user never race on session or storage state, while different users proceed
// in parallel.
type userLock struct {
	mu    sync.Mutex
	locks map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func newUserLock() *userLock {
	return &userLock{locks: make(map[int64]*entry)}
}

// Lock acquires the chat's mutex and returns its unlock function. Entries are
// reference-counted and removed when the last holder releases.
func (l *userLock) Lock(chatID int64) func() {
	l.mu.Lock()
	e, ok := l.locks[chatID]
	if !ok {
		e = &entry{}
		l.locks[chatID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, chatID)
		}
		l.mu.Unlock()
	}
}
