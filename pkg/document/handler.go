package document

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/inkpace/inkpace/internal/rest"
	log "github.com/sirupsen/logrus"
)

type DocumentDTO struct {
	Id           int        `json:"id"`
	ProjectId    int        `json:"projectId"`
	DriveFileId  string     `json:"driveFileId"`
	Title        string     `json:"title"`
	WordCount    int        `json:"wordCount"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	Position     int        `json:"position"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, ok := projectIdFromRequest(w, r)
	if !ok {
		return
	}

	docs, err := h.service.GetAllForProject(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]DocumentDTO, 0, len(docs))
	for _, d := range docs {
		dtos = append(dtos, documentToDTO(d))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding document to project")
	w.Header().Set("Content-Type", "application/json")
	projectId, ok := projectIdFromRequest(w, r)
	if !ok {
		return
	}

	var dto DocumentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.DriveFileId == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "driveFileId is required"})
		return
	}

	doc := Document{
		ProjectId:   projectId,
		DriveFileId: dto.DriveFileId,
		Title:       dto.Title,
		Position:    dto.Position,
	}
	created, err := h.service.Add(r.Context(), doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(documentToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	documentId, err := strconv.Atoi(mux.Vars(r)["documentId"])
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	removed, err := h.service.Remove(r.Context(), documentId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, ok := projectIdFromRequest(w, r)
	if !ok {
		return
	}

	docs, err := h.service.Sync(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]DocumentDTO, 0, len(docs))
	for _, d := range docs {
		dtos = append(dtos, documentToDTO(d))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func projectIdFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func documentToDTO(d Document) DocumentDTO {
	dto := DocumentDTO{
		Id:          d.Id,
		ProjectId:   d.ProjectId,
		DriveFileId: d.DriveFileId,
		Title:       d.Title,
		WordCount:   d.WordCount,
		Position:    d.Position,
	}
	if !d.LastSyncedAt.IsZero() {
		syncedAt := d.LastSyncedAt
		dto.LastSyncedAt = &syncedAt
	}
	return dto
}
