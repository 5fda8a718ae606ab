package structures

import "sync"

// KeyedMutex hands out one mutex per key. Entries are dropped once no goroutine holds or waits on them.
type KeyedMutex struct {
	mutex   sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	mutex sync.Mutex
	refs  int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (km *KeyedMutex) Lock(key string) func() {
	km.mutex.Lock()
	entry, exists := km.entries[key]
	if !exists {
		entry = &keyedEntry{}
		km.entries[key] = entry
	}
	entry.refs++
	km.mutex.Unlock()

	entry.mutex.Lock()

	return func() {
		entry.mutex.Unlock()

		km.mutex.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(km.entries, key)
		}
		km.mutex.Unlock()
	}
}

func (km *KeyedMutex) Length() int {
	km.mutex.Lock()
	defer km.mutex.Unlock()
	return len(km.entries)
}
