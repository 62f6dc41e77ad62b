package document

import (
	"context"
	"sort"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	items   map[int]Document
	userIds map[int]int
	nextId  int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:   make(map[int]Document),
		userIds: make(map[int]int),
		nextId:  1,
	}
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[int]Document)
	r.userIds = make(map[int]int)
	r.nextId = 1
}

func (r *RepositoryStub) Store(_ context.Context, userId int, doc Document) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.Id = r.nextId
	r.nextId++
	r.items[doc.Id] = doc
	r.userIds[doc.Id] = userId
	return doc.Id, nil
}

func (r *RepositoryStub) GetAllForProject(_ context.Context, userId int, projectId int) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var docs []Document
	for id, d := range r.items {
		if r.userIds[id] == userId && d.ProjectId == projectId {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Position < docs[j].Position })
	return docs, nil
}

func (r *RepositoryStub) UpdateWordCount(_ context.Context, userId int, documentId int, wordCount int, syncedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[documentId]
	if !ok || r.userIds[documentId] != userId {
		return false, nil
	}
	d.WordCount = wordCount
	d.LastSyncedAt = syncedAt
	r.items[documentId] = d
	return true, nil
}

func (r *RepositoryStub) Delete(_ context.Context, userId int, documentId int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[documentId]; !ok || r.userIds[documentId] != userId {
		return false, nil
	}
	delete(r.items, documentId)
	delete(r.userIds, documentId)
	return true, nil
}

func (r *RepositoryStub) TotalWords(_ context.Context, userId int, projectId int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for id, d := range r.items {
		if r.userIds[id] == userId && d.ProjectId == projectId {
			total += d.WordCount
		}
	}
	return total, nil
}
