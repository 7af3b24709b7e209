package rest

// Stash is request-scoped key-value storage used to pass the response entity (and
// anything else handlers care to share) between the deserialize step, the handler,
// and the serialize step. A Stash lives for exactly one request and is never shared
// across requests, so no locking is required.
type Stash map[string]interface{}

// NewStash returns an empty stash for one request.
func NewStash() Stash {
	return make(Stash)
}

// Get returns the stashed value for key, with ok reporting whether it was set.
func (stash Stash) Get(key string) (value interface{}, ok bool) {
	value, ok = stash[key]
	return value, ok
}

// Set stores value under key, replacing any earlier value.
func (stash Stash) Set(key string, value interface{}) {
	stash[key] = value
}

// Delete removes key from the stash.
func (stash Stash) Delete(key string) {
	delete(stash, key)
}
