package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inkpace/inkpace/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var ErrUnauthenticated = errors.New("user is not authenticated with Google")

const folderMimeType = "application/vnd.google-apps.folder"
const documentMimeType = "application/vnd.google-apps.document"

type Folder struct {
	Id   string
	Name string
}

type DriveFile struct {
	Id           string
	Name         string
	ModifiedTime string
}

type Service interface {
	ListFolders(ctx context.Context, parentId string) ([]Folder, error)
	ListDocumentsInFolder(ctx context.Context, folderId string) ([]DriveFile, error)
	DocumentWordCount(ctx context.Context, fileId string) (int, error)
}

type ServiceImpl struct {
	auth *GoogleAuth
}

func NewService(auth *GoogleAuth) *ServiceImpl {
	return &ServiceImpl{auth: auth}
}

func (s *ServiceImpl) prepareDriveService(ctx context.Context) (*drive.Service, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrUnauthenticated
	}
	return drive.NewService(ctx, option.WithHTTPClient(client))
}

func (s *ServiceImpl) prepareDocsService(ctx context.Context) (*docs.Service, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrUnauthenticated
	}
	return docs.NewService(ctx, option.WithHTTPClient(client))
}

func (s *ServiceImpl) ListFolders(ctx context.Context, parentId string) ([]Folder, error) {
	driveService, err := s.prepareDriveService(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("mimeType = '%s' and trashed = false", folderMimeType)
	if parentId != "" {
		query = fmt.Sprintf("'%s' in parents and %s", parentId, query)
	}

	var folders []Folder
	pageToken := ""
	for {
		call := driveService.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name)").
			OrderBy("name").
			PageSize(100)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		result, err := call.Context(ctx).Do()
		if err != nil {
			log.Error("unable to list Drive folders: ", err)
			return nil, fmt.Errorf("unable to list Drive folders: %v", err)
		}
		for _, f := range result.Files {
			folders = append(folders, Folder{Id: f.Id, Name: f.Name})
		}
		if result.NextPageToken == "" {
			break
		}
		pageToken = result.NextPageToken
	}
	return folders, nil
}

func (s *ServiceImpl) ListDocumentsInFolder(ctx context.Context, folderId string) ([]DriveFile, error) {
	driveService, err := s.prepareDriveService(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("'%s' in parents and mimeType = '%s' and trashed = false", folderId, documentMimeType)

	var files []DriveFile
	pageToken := ""
	for {
		call := driveService.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, modifiedTime)").
			OrderBy("name").
			PageSize(100)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		result, err := call.Context(ctx).Do()
		if err != nil {
			log.Error("unable to list documents in folder: ", err)
			return nil, fmt.Errorf("unable to list documents in folder %s: %v", folderId, err)
		}
		for _, f := range result.Files {
			files = append(files, DriveFile{Id: f.Id, Name: f.Name, ModifiedTime: f.ModifiedTime})
		}
		if result.NextPageToken == "" {
			break
		}
		pageToken = result.NextPageToken
	}
	return files, nil
}

func (s *ServiceImpl) DocumentWordCount(ctx context.Context, fileId string) (int, error) {
	docsService, err := s.prepareDocsService(ctx)
	if err != nil {
		return 0, err
	}

	doc, err := docsService.Documents.Get(fileId).Context(ctx).Do()
	if err != nil {
		log.Errorf("unable to fetch document %s: %v", fileId, err)
		return 0, fmt.Errorf("unable to fetch document %s: %v", fileId, err)
	}
	if doc.Body == nil {
		return 0, nil
	}
	return countWords(doc.Body.Content), nil
}

func countWords(elements []*docs.StructuralElement) int {
	count := 0
	for _, element := range elements {
		if element.Paragraph != nil {
			for _, pe := range element.Paragraph.Elements {
				if pe.TextRun != nil {
					count += len(strings.Fields(pe.TextRun.Content))
				}
			}
		}
		if element.Table != nil {
			for _, row := range element.Table.TableRows {
				for _, cell := range row.TableCells {
					count += countWords(cell.Content)
				}
			}
		}
	}
	return count
}
