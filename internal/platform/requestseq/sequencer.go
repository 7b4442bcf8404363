package requestseq

import (
	"context"
	"sync"
)

// Token identifies one issued request. Higher tokens are newer.
type Token uint64

// Sequencer hands out monotonically increasing tokens and cancels the previous
// in-flight request whenever a newer one starts.
type Sequencer struct {
	mu     sync.Mutex
	last   Token
	cancel context.CancelFunc
}

// Next issues a new token and a context derived from parent that is cancelled
// as soon as another token is issued.
func (s *Sequencer) Next(parent context.Context) (Token, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.last++
	s.cancel = cancel
	token := s.last
	s.mu.Unlock()

	return token, ctx
}

func (s *Sequencer) IsLatest(token Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return token == s.last
}

// Commit runs apply only when token is still the latest, under the sequencer lock.
func (s *Sequencer) Commit(token Token, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.last {
		return false
	}
	apply()
	return true
}

// Done releases the cancel func of token when it is still the latest.
func (s *Sequencer) Done(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == s.last && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
