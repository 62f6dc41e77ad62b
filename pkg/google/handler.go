package google

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type FolderDTO struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type DriveFileDTO struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modifiedTime"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	parentId := r.URL.Query().Get("parentId")

	folders, err := h.service.ListFolders(r.Context(), parentId)
	if err != nil && errors.Is(err, ErrUnauthenticated) {
		http.Error(w, "user is not authenticated with Google", http.StatusForbidden)
		return
	} else if err != nil {
		log.Error("failed to list Drive folders: ", err)
		http.Error(w, "failed to list Drive folders", http.StatusInternalServerError)
		return
	}

	dtos := make([]FolderDTO, 0, len(folders))
	for _, f := range folders {
		dtos = append(dtos, FolderDTO{Id: f.Id, Name: f.Name})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	folderId := r.URL.Query().Get("folderId")
	if folderId == "" {
		http.Error(w, "folderId is required", http.StatusBadRequest)
		return
	}

	files, err := h.service.ListDocumentsInFolder(r.Context(), folderId)
	if err != nil && errors.Is(err, ErrUnauthenticated) {
		http.Error(w, "user is not authenticated with Google", http.StatusForbidden)
		return
	} else if err != nil {
		log.Error("failed to list documents: ", err)
		http.Error(w, "failed to list documents", http.StatusInternalServerError)
		return
	}

	dtos := make([]DriveFileDTO, 0, len(files))
	for _, f := range files {
		dtos = append(dtos, DriveFileDTO{Id: f.Id, Name: f.Name, ModifiedTime: f.ModifiedTime})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
