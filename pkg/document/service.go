package document

import (
	"context"
	"fmt"

	"github.com/inkpace/inkpace/internal/event_bus"
	"github.com/inkpace/inkpace/internal/utils"
	"github.com/inkpace/inkpace/pkg/user"
	log "github.com/sirupsen/logrus"
)

// WordCountSource fetches the live word count of one Drive document.
// Implemented by the google package.
type WordCountSource interface {
	DocumentWordCount(ctx context.Context, fileId string) (int, error)
}

type Service interface {
	GetAllForProject(ctx context.Context, projectId int) ([]Document, error)
	Add(ctx context.Context, doc Document) (Document, error)
	Remove(ctx context.Context, documentId int) (bool, error)
	// Sync refreshes the cached word count of every document in the project
	// from Drive. Documents that fail to sync keep their previous count.
	Sync(ctx context.Context, projectId int) ([]Document, error)
	// TotalWords is the project's live cumulative word count.
	TotalWords(ctx context.Context, projectId int) (int, error)
}

type ServiceImpl struct {
	repo     Repository
	source   WordCountSource
	clock    utils.Clock
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, source WordCountSource, clock utils.Clock, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, source: source, clock: clock, eventBus: eventBus}
}

func (s *ServiceImpl) GetAllForProject(ctx context.Context, projectId int) ([]Document, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAllForProject(ctx, userId, projectId)
}

func (s *ServiceImpl) Add(ctx context.Context, doc Document) (Document, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if doc.DriveFileId == "" {
		return Document{}, fmt.Errorf("document must reference a Drive file")
	}

	// best effort: pick up the initial count right away
	if count, err := s.source.DocumentWordCount(ctx, doc.DriveFileId); err != nil {
		log.Warnf("could not fetch initial word count for %s: %v", doc.DriveFileId, err)
	} else {
		doc.WordCount = count
		doc.LastSyncedAt = s.clock.Now()
	}

	id, err := s.repo.Store(ctx, userId, doc)
	if err != nil {
		return Document{}, err
	}
	doc.Id = id
	return doc, nil
}

func (s *ServiceImpl) Remove(ctx context.Context, documentId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, documentId)
}

func (s *ServiceImpl) Sync(ctx context.Context, projectId int) ([]Document, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	docs, err := s.repo.GetAllForProject(ctx, userId, projectId)
	if err != nil {
		return nil, err
	}

	total := 0
	for i, doc := range docs {
		count, err := s.source.DocumentWordCount(ctx, doc.DriveFileId)
		if err != nil {
			log.Warnf("failed to sync document %d (%s), keeping cached count: %v", doc.Id, doc.DriveFileId, err)
			total += doc.WordCount
			continue
		}
		syncedAt := s.clock.Now()
		if _, err := s.repo.UpdateWordCount(ctx, userId, doc.Id, count, syncedAt); err != nil {
			return nil, err
		}
		docs[i].WordCount = count
		docs[i].LastSyncedAt = syncedAt
		total += count
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, "documents.synced", event_bus.DocumentsSynced{
		UserId:     userId,
		ProjectId:  projectId,
		TotalWords: total,
	}))
	if err != nil {
		log.Warnf("failed to publish documents.synced for project %d: %v", projectId, err)
	}

	return docs, nil
}

func (s *ServiceImpl) TotalWords(ctx context.Context, projectId int) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.TotalWords(ctx, userId, projectId)
}
