package registry

import (
	"sync"

	"github.com/poiregame/poire-go/internal/model"
)

// sessionLocks serializes score mutations per session code. The store
// offers no compare-and-swap, so read-modify-write sequences on a session
// must not interleave within this process.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[model.SessionCode]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{
		locks: make(map[model.SessionCode]*sync.Mutex),
	}
}

// acquire locks the mutex for the given code and returns its unlock func
func (l *sessionLocks) acquire(code model.SessionCode) func() {
	l.mu.Lock()
	m, ok := l.locks[code]
	if !ok {
		m = &sync.Mutex{}
		l.locks[code] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
