package bot

import "sync"

// senderLocks hands out one mutex per sender. Entries are dropped once no
// goroutine holds or waits on them.
type senderLocks struct {
	mu      sync.Mutex
	entries map[string]*senderLock
}

type senderLock struct {
	mu   sync.Mutex
	refs int
}

func newSenderLocks() *senderLocks {
	return &senderLocks{entries: make(map[string]*senderLock)}
}

// lock blocks until sender's lock is held and returns its release func.
func (l *senderLocks) lock(sender string) func() {
	l.mu.Lock()
	e, ok := l.entries[sender]
	if !ok {
		e = &senderLock{}
		l.entries[sender] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, sender)
		}
		l.mu.Unlock()
	}
}

func (l *senderLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
