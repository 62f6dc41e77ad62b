package project

import (
	"context"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	items   map[int]Project
	userIds map[int]int // projectId -> userId
	nextId  int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:   make(map[int]Project),
		userIds: make(map[int]int),
		nextId:  1,
	}
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[int]Project)
	r.userIds = make(map[int]int)
	r.nextId = 1
}

func (r *RepositoryStub) Store(_ context.Context, userId int, project Project) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	project.Id = r.nextId
	r.nextId++
	r.items[project.Id] = project
	r.userIds[project.Id] = userId
	return project.Id, nil
}

func (r *RepositoryStub) Get(_ context.Context, userId int, projectId int) (Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[projectId]
	if !ok || r.userIds[projectId] != userId {
		return Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (r *RepositoryStub) GetAll(_ context.Context, userId int, includeArchived bool) ([]Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var projects []Project
	for id, p := range r.items {
		if r.userIds[id] != userId {
			continue
		}
		if !includeArchived && p.Status != StatusActive {
			continue
		}
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Position < projects[j].Position })
	return projects, nil
}

func (r *RepositoryStub) Update(_ context.Context, userId int, project Project) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[project.Id]
	if !ok || r.userIds[project.Id] != userId {
		return false, nil
	}
	project.Position = existing.Position
	r.items[project.Id] = project
	return true, nil
}

func (r *RepositoryStub) UpdatePosition(_ context.Context, userId int, project Project) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[project.Id]
	if !ok || r.userIds[project.Id] != userId {
		return false, nil
	}
	existing.Position = project.Position
	r.items[project.Id] = existing
	return true, nil
}

func (r *RepositoryStub) FindMaxPosition(_ context.Context, userId int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	max := 0
	for id, p := range r.items {
		if r.userIds[id] == userId && p.Position > max {
			max = p.Position
		}
	}
	return max, nil
}

func (r *RepositoryStub) Delete(_ context.Context, userId int, projectId int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[projectId]; !ok || r.userIds[projectId] != userId {
		return false, nil
	}
	delete(r.items, projectId)
	delete(r.userIds, projectId)
	return true, nil
}
