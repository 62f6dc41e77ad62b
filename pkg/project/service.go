package project

import (
	"context"
	"fmt"

	"github.com/inkpace/inkpace/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context, includeArchived bool) ([]Project, error)
	Get(ctx context.Context, projectId int) (Project, error)
	Create(ctx context.Context, project Project) (Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	MoveAfter(ctx context.Context, id, precedingId int) (bool, error)
	Delete(ctx context.Context, projectId int) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context, includeArchived bool) ([]Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId, includeArchived)
}

func (s *ServiceImpl) Get(ctx context.Context, projectId int) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, projectId)
}

func (s *ServiceImpl) Create(ctx context.Context, project Project) (Project, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if project.Status == "" {
		project.Status = StatusActive
	}
	maxPosition, err := s.repo.FindMaxPosition(ctx, userId)
	if err != nil {
		return Project{}, err
	}
	project.Position = maxPosition + 100

	id, err := s.repo.Store(ctx, userId, project)
	if err != nil {
		return Project{}, err
	}
	project.Id = id
	return project, nil
}

func (s *ServiceImpl) Update(ctx context.Context, project Project) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	updated, err := s.repo.Update(ctx, userId, project)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("project not updated, probably because it does not exist (%d) or the user (%d) is not the owner", project.Id, userId)
		return false, fmt.Errorf("project not updated")
	}
	return true, nil
}

// MoveAfter places project id directly after precedingId in the display
// order. Positions are spaced by 100; when no gap is left between neighbours,
// all projects are renumbered first.
func (s *ServiceImpl) MoveAfter(ctx context.Context, id, precedingId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	projects, err := s.repo.GetAll(ctx, userId, true)
	if err != nil {
		return false, err
	}
	if findProject(id, projects) == -1 {
		return false, ErrProjectNotFound
	}

	newPos := 0
	prevPos, nextPos := findPreviousAndNextPositions(precedingId, projects)
	if nextPos == -1 {
		newPos = prevPos + 100
	} else if nextPos-prevPos > 1 {
		newPos = prevPos + ((nextPos - prevPos) / 2)
	} else { // no space between prev and next - renumber everything
		moved := projects[findProject(id, projects)]
		reordered := make([]Project, 0, len(projects))
		for _, p := range projects {
			if p.Id == id {
				continue
			}
			reordered = append(reordered, p)
			if p.Id == precedingId {
				reordered = append(reordered, moved)
			}
		}
		if err := s.renumberProjects(ctx, userId, reordered); err != nil {
			return false, err
		}
		return true, nil
	}
	toMove := projects[findProject(id, projects)]
	toMove.Position = newPos
	return s.repo.UpdatePosition(ctx, userId, toMove)
}

func (s *ServiceImpl) Delete(ctx context.Context, projectId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, projectId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("project not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", projectId, userId)
		return false, fmt.Errorf("project not deleted")
	}
	return true, nil
}

func (s *ServiceImpl) renumberProjects(ctx context.Context, userId int, projects []Project) error {
	for i, p := range projects {
		p.Position = (i + 1) * 100
		if _, err := s.repo.UpdatePosition(ctx, userId, p); err != nil {
			return err
		}
	}
	return nil
}

func findPreviousAndNextPositions(previousId int, projects []Project) (int, int) {
	previousIdx := findProject(previousId, projects)
	if previousIdx == -1 {
		return 0, projects[0].Position
	}
	previousPos := projects[previousIdx].Position
	if previousIdx == len(projects)-1 { // it is the last one
		return previousPos, -1
	}
	return previousPos, projects[previousIdx+1].Position
}

func findProject(id int, projects []Project) int {
	for idx, p := range projects {
		if p.Id == id {
			return idx
		}
	}
	return -1
}
