package installer

import "sync"

// keyedMutex serializes operations per theme name. The backup/swap
// sequence is not safe under concurrent callers targeting the same
// name, so every public operation holds its name's lock end to end.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the mutex for name, creating it on first use, and
// returns the unlock func.
func (k *keyedMutex) lock(name string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[name]
	if !ok {
		l = &sync.Mutex{}
		k.locks[name] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
