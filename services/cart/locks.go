package cart

import "sync"

type cartLock struct {
	sync.Mutex
	waiters int
}

// cartLocks serializes all actions on the same cart, while actions on different carts run in parallel.
// Serialization is per process; concurrent actions on one cart from different instances are not covered.
type cartLocks struct {
	sync.Mutex
	locks map[string]*cartLock
}

func newCartLocks() *cartLocks {
	return &cartLocks{
		locks: map[string]*cartLock{},
	}
}

func (cl *cartLocks) lock(cartID string) func() {
	cl.Lock()
	l, found := cl.locks[cartID]
	if !found {
		l = &cartLock{}
		cl.locks[cartID] = l
	}
	l.waiters++
	cl.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		cl.Lock()
		defer cl.Unlock()
		l.waiters--
		if l.waiters == 0 {
			delete(cl.locks, cartID)
		}
	}
}

func (cl *cartLocks) size() int {
	cl.Lock()
	defer cl.Unlock()
	return len(cl.locks)
}
