package dashboard

import (
	"context"
	"sync"

	"github.com/riskibarqy/football-dashboard/internal/platform/requestseq"
)

// State is what a view renders for one resource. Data keeps the last committed
// value while a newer load is in flight.
type State[T any] struct {
	Loading bool
	Err     error
	Data    T
	HasData bool
	Token   requestseq.Token
}

// Resource loads one query at a time. Starting a load cancels the previous one
// and only the most recently started load may commit its result.
type Resource[Q any, T any] struct {
	fetch func(ctx context.Context, query Q) (T, error)
	seq   requestseq.Sequencer

	mu       sync.RWMutex
	state    State[T]
	onChange func(State[T])

	deliverMu sync.Mutex
}

func NewResource[Q any, T any](fetch func(ctx context.Context, query Q) (T, error)) *Resource[Q, T] {
	return &Resource[Q, T]{fetch: fetch}
}

// OnChange registers fn to receive every committed state of the latest load. It
// replaces any previous callback. fn runs synchronously and must not call Load.
func (r *Resource[Q, T]) OnChange(fn func(State[T])) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

func (r *Resource[Q, T]) Snapshot() State[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Load fetches query and reports the resulting state. The bool is false when a
// newer load superseded this one; the returned state is then the current
// snapshot, not this load's result.
func (r *Resource[Q, T]) Load(ctx context.Context, query Q) (State[T], bool) {
	token, loadCtx := r.seq.Next(ctx)
	defer r.seq.Done(token)

	var snapshot State[T]
	if r.seq.Commit(token, func() {
		snapshot = r.apply(func(s *State[T]) {
			s.Loading = true
			s.Err = nil
			s.Token = token
		})
	}) {
		r.notify(token, snapshot)
	}

	data, err := r.fetch(loadCtx, query)

	committed := r.seq.Commit(token, func() {
		snapshot = r.apply(func(s *State[T]) {
			s.Loading = false
			s.Token = token
			if err != nil {
				s.Err = err
				return
			}
			s.Err = nil
			s.Data = data
			s.HasData = true
		})
	})
	if committed {
		r.notify(token, snapshot)
	}
	return r.Snapshot(), committed
}

func (r *Resource[Q, T]) apply(mutate func(*State[T])) State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	mutate(&r.state)
	return r.state
}

// notify delivers snapshot outside the sequencer lock. Deliveries are
// serialized and dropped once a newer load has started, so OnChange never sees
// a superseded token after a newer one.
func (r *Resource[Q, T]) notify(token requestseq.Token, snapshot State[T]) {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	if !r.seq.IsLatest(token) {
		return
	}
	r.mu.RLock()
	fn := r.onChange
	r.mu.RUnlock()
	if fn != nil {
		fn(snapshot)
	}
}
