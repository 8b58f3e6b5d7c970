package resilience

import "sync"

// SingleFlight collapses concurrent calls that share a key into a single
// execution; late arrivals block on the leader and receive its result.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*inflightCall
}

type inflightCall struct {
	done sync.WaitGroup
	val  any
	err  error
}

// Do runs fn at most once per key at a time. The bool reports whether the
// result came from another caller's execution.
func (sf *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	sf.mu.Lock()
	if sf.inflight == nil {
		sf.inflight = make(map[string]*inflightCall)
	}

	if c, ok := sf.inflight[key]; ok {
		sf.mu.Unlock()
		c.done.Wait()
		return c.val, c.err, true
	}

	c := &inflightCall{}
	c.done.Add(1)
	sf.inflight[key] = c
	sf.mu.Unlock()

	c.val, c.err = fn()
	c.done.Done()

	sf.mu.Lock()
	delete(sf.inflight, key)
	sf.mu.Unlock()

	return c.val, c.err, false
}
