package model

import (
	"sync"
	"unsafe"
)

// Base is embedded by model types that are shared between goroutines.
// Readers use RLock or Read, writers Lock or Write. It holds no properties.
type Base struct {
	mu sync.RWMutex
}

// Lock takes the write lock.
func (b *Base) Lock() { b.mu.Lock() }

// Unlock releases the write lock.
func (b *Base) Unlock() { b.mu.Unlock() }

// RLock takes a read lock.
func (b *Base) RLock() { b.mu.RLock() }

// RUnlock releases a read lock.
func (b *Base) RUnlock() { b.mu.RUnlock() }

// Read runs fn holding the read lock.
func (b *Base) Read(fn func()) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	fn()
}

// Write runs fn holding the write lock.
func (b *Base) Write(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fn()
}

// Guarded is a model carrying its own read/write lock, usually through an
// embedded Base.
type Guarded interface {
	Model
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// MergeLocked is Merge holding dst's write lock and src's read lock for
// instances that implement Guarded. Locks are taken in a fixed order, so
// crossed merges between two instances cannot deadlock, and src is only
// inspected while its lock is held.
func MergeLocked(dst, src Model) bool {
	if isNil(dst) {
		return false
	}

	if isNil(src) {
		return true
	}

	defer lockPair(dst, src)()

	view, err := mergeSource(dst, src)
	if err != nil {
		return false
	}

	if view != nil {
		applyMerge(dst, view)
	}

	return true
}

type locker interface{ lockRef() *sync.RWMutex }

func (b *Base) lockRef() *sync.RWMutex { return &b.mu }

func lockOf(m Model) *sync.RWMutex {
	if l, ok := m.(locker); ok {
		return l.lockRef()
	}

	return nil
}

// lockPair takes dst's write lock and src's read lock and returns the
// function releasing both. Locks of Base are ordered by address; other
// Guarded implementations lock dst first.
func lockPair(dst, src Model) func() {
	dg, _ := dst.(Guarded)
	sg, _ := src.(Guarded)

	a, b := lockOf(dst), lockOf(src)

	switch {
	case dg == nil && sg == nil:
		return func() {}
	case dg == nil:
		sg.RLock()
		return sg.RUnlock
	case sg == nil || (a != nil && a == b):
		// One embeds the other through a common Base.
		dg.Lock()
		return dg.Unlock
	}

	if a != nil && b != nil && uintptr(unsafe.Pointer(b)) < uintptr(unsafe.Pointer(a)) {
		sg.RLock()
		dg.Lock()
	} else {
		dg.Lock()
		sg.RLock()
	}

	return func() {
		sg.RUnlock()
		dg.Unlock()
	}
}
