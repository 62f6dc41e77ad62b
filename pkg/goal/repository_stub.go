package goal

import (
	"context"
	"sync"
	"time"
)

type entryKey struct {
	userId    int
	projectId int
}

type RepositoryStub struct {
	mu      sync.RWMutex
	goals   map[entryKey]Goal
	ledgers map[entryKey]map[string]int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		goals:   make(map[entryKey]Goal),
		ledgers: make(map[entryKey]map[string]int),
	}
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals = make(map[entryKey]Goal)
	r.ledgers = make(map[entryKey]map[string]int)
}

func (r *RepositoryStub) Store(_ context.Context, userId int, g Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g.Ledger = nil // ledger survives goal replacement
	r.goals[entryKey{userId, g.ProjectId}] = g
	return nil
}

func (r *RepositoryStub) Get(_ context.Context, userId int, projectId int) (*Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := entryKey{userId, projectId}
	g, ok := r.goals[key]
	if !ok {
		return nil, nil
	}
	ledger := make(map[string]int, len(r.ledgers[key]))
	for date, words := range r.ledgers[key] {
		ledger[date] = words
	}
	g.Ledger = ledger
	return &g, nil
}

func (r *RepositoryStub) Delete(_ context.Context, userId int, projectId int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entryKey{userId, projectId}
	_, ok := r.goals[key]
	delete(r.goals, key)
	delete(r.ledgers, key)
	return ok, nil
}

func (r *RepositoryStub) UpsertLedgerEntry(_ context.Context, userId int, projectId int, date string, words int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entryKey{userId, projectId}
	if r.ledgers[key] == nil {
		r.ledgers[key] = make(map[string]int)
	}
	r.ledgers[key][date] = words
	return nil
}

func (r *RepositoryStub) GetLedgerEntry(_ context.Context, userId int, projectId int, date string) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	words, ok := r.ledgers[entryKey{userId, projectId}][date]
	return words, ok, nil
}

func (r *RepositoryStub) Reanchor(_ context.Context, userId int, projectId int, date string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entryKey{userId, projectId}
	g, ok := r.goals[key]
	if !ok {
		return false, nil
	}
	parsed, err := parseDate(date)
	if err != nil {
		return false, err
	}
	g.LastCalculatedDate = parsed
	g.StartDate = time.Time{}
	r.goals[key] = g
	return true, nil
}
