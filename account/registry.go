package account

import (
	"sync"
)

// Registry is the priority ordered list of accounts. The front entry is the
// one operations are routed to. Ids are unique and compared by value.
type Registry struct {
	mu       sync.RWMutex
	accounts []Account
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a at the lowest priority unless an account with the same id is
// already registered. It always returns the id of a.
func (r *Registry) Add(a Account) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := a.ID()
	if r.indexOf(id) == -1 {
		r.accounts = append(r.accounts, a)
	}
	return id
}

// Use gives a the highest priority. A registered account with the same id is
// moved to the front, otherwise a is inserted there.
func (r *Registry) Use(a Account) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := a.ID()
	if i := r.indexOf(id); i != -1 {
		r.promote(i)
		return id
	}
	r.accounts = append([]Account{a}, r.accounts...)
	return id
}

// UseID moves the account with the given id to the front. Unknown ids leave
// the registry untouched and return false.
func (r *Registry) UseID(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i == -1 {
		return "", false
	}
	r.promote(i)
	return id, true
}

// Front returns the account with the highest priority.
func (r *Registry) Front() (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.accounts) == 0 {
		return nil, false
	}
	return r.accounts[0], true
}

func (r *Registry) Get(id string) (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i != -1 {
		return r.accounts[i], true
	}
	return nil, false
}

// Accounts returns a copy of the registry in priority order.
func (r *Registry) Accounts() []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]Account, len(r.accounts))
	copy(accounts, r.accounts)
	return accounts
}

// IDs returns the ids in priority order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.accounts))
	for i, a := range r.accounts {
		ids[i] = a.ID()
	}
	return ids
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.accounts)
}

func (r *Registry) indexOf(id string) int {
	for i, a := range r.accounts {
		if a.ID() == id {
			return i
		}
	}
	return -1
}

// promote moves entry i to the front, keeping the order of the others.
// Promoting the front is a no-op.
func (r *Registry) promote(i int) {
	if i == 0 {
		return
	}
	a := r.accounts[i]
	copy(r.accounts[1:i+1], r.accounts[:i])
	r.accounts[0] = a
}
