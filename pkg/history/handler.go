package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/inkpace/inkpace/pkg/project"
	log "github.com/sirupsen/logrus"
)

type DailyHistoryDTO struct {
	Date       string `json:"date"`
	Words      int    `json:"words"`
	Cumulative int    `json:"cumulative"`
	WritingDay bool   `json:"writingDay"`
}

type HistorySummaryDTO struct {
	ProjectName string            `json:"projectName"`
	Target      int               `json:"target"`
	Entries     []DailyHistoryDTO `json:"entries"`
	TotalWords  int               `json:"totalWords"`
}

type Handler struct {
	service  Service
	renderer Renderer
}

func NewHandler(service Service, renderer Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	projectId, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	summary, err := h.service.GetHistory(r.Context(), projectId)
	if err != nil && errors.Is(err, project.ErrProjectNotFound) {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to build history for project %d: %v", projectId, err)
		http.Error(w, "failed to build history", http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csvBody, err := h.renderer.RenderHistory(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csvBody)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	entries := make([]DailyHistoryDTO, 0, len(summary.Entries))
	for _, e := range summary.Entries {
		entries = append(entries, DailyHistoryDTO{
			Date:       e.Date,
			Words:      e.Words,
			Cumulative: e.Cumulative,
			WritingDay: e.WritingDay,
		})
	}
	dto := HistorySummaryDTO{
		ProjectName: summary.ProjectName,
		Target:      summary.Target,
		Entries:     entries,
		TotalWords:  summary.TotalWords,
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
