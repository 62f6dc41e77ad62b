package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/inkpace/inkpace/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ProjectDTO struct {
	Id            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	WordGoal      int    `json:"wordGoal,omitempty"`
	DriveFolderId string `json:"driveFolderId,omitempty"`
	Status        string `json:"status"`
	Position      int    `json:"position"`
}

type moveRequestDTO struct {
	PrecedingId int `json:"precedingId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new project")
	w.Header().Set("Content-Type", "application/json")

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "name is required"})
		return
	}

	created, err := h.service.Create(r.Context(), DTOToProject(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	includeArchived := r.URL.Query().Has("includeArchived")

	projects, err := h.service.GetAll(r.Context(), includeArchived)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, ProjectToDTO(p))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, ok := idFromRequest(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(p)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, ok := idFromRequest(w, r)
	if !ok {
		return
	}

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := DTOToProject(dto)
	p.Id = projectId

	if _, err := h.service.Update(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ProjectToDTO(p)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) SetPosition(w http.ResponseWriter, r *http.Request) {
	projectId, ok := idFromRequest(w, r)
	if !ok {
		return
	}

	var dto moveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	moved, err := h.service.MoveAfter(r.Context(), projectId, dto.PrecedingId)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !moved {
		http.Error(w, "project not moved", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	projectId, ok := idFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Delete(r.Context(), projectId); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func idFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func ProjectToDTO(p Project) ProjectDTO {
	return ProjectDTO{
		Id:            p.Id,
		Name:          p.Name,
		Description:   p.Description,
		WordGoal:      p.WordGoal,
		DriveFolderId: p.DriveFolderId,
		Status:        string(p.Status),
		Position:      p.Position,
	}
}

func DTOToProject(dto ProjectDTO) Project {
	return Project{
		Id:            dto.Id,
		Name:          dto.Name,
		Description:   dto.Description,
		WordGoal:      dto.WordGoal,
		DriveFolderId: dto.DriveFolderId,
		Status:        Status(dto.Status),
	}
}
