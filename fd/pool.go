package fd

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrNoMembers is returned by TakeMember when every session in the pool
// is currently rented out.
var ErrNoMembers = errors.New("fd: no pool members available")

// Pool is a fixed-size collection of solver sessions. Renting a member
// gives the caller exclusive use of it until it is returned; sessions
// returned with the failing disposition are retired and replaced so the
// pool's capacity never degrades.
type Pool struct {
	mu   sync.Mutex
	free []*Session
}

// NewPool creates a pool holding size sessions.
func NewPool(size int) *Pool {
	p := &Pool{
		free: make([]*Session, 0, size),
	}
	for i := 0; i < size; i++ {
		p.free = append(p.free, newSession())
	}
	return p
}

// TakeMember rents a session. It does not block; an exhausted pool is
// ErrNoMembers and the caller picks its own retry policy.
func (p *Pool) TakeMember() (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) == 0 {
		return nil, ErrNoMembers
	}
	s := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return s, nil
}

// ReturnMember gives a session back. Pass ok=false when the session's
// last solve misbehaved (a timeout, typically); the member is then
// discarded and a fresh one minted in its place.
func (p *Pool) ReturnMember(s *Session, ok bool) {
	if s == nil {
		return
	}
	if !ok {
		s = newSession()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, s)
}
