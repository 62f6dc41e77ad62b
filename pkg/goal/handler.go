package goal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/inkpace/inkpace/internal/rest"
	"github.com/inkpace/inkpace/internal/utils"
	log "github.com/sirupsen/logrus"
)

type GoalDTO struct {
	Target             int            `json:"target"`
	Deadline           string         `json:"deadline,omitempty"`
	StartDate          string         `json:"startDate,omitempty"`
	WritingDays        []bool         `json:"writingDays"`
	DaysOff            []string       `json:"daysOff"`
	Mode               string         `json:"mode"`
	Ledger             map[string]int `json:"ledger,omitempty"`
	LastCalculatedDate string         `json:"lastCalculatedDate,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, ok := projectIdFromRequest(w, r)
	if !ok {
		return
	}

	g, err := h.service.GetGoal(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if g == nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Project has no goal"})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(GoalToDTO(*g)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) SetGoal(w http.ResponseWriter, r *http.Request) {
	log.Debug("Storing writing goal")
	w.Header().Set("Content-Type", "application/json")
	projectId, ok := projectIdFromRequest(w, r)
	if !ok {
		return
	}

	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	g, err := DTOToGoal(dto, projectId)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid goal", Details: err.Error()})
		return
	}

	stored, err := h.service.SetGoal(r.Context(), g)
	if err != nil {
		if errors.Is(err, ErrInvalidGoal) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid goal", Details: err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(GoalToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	projectId, ok := projectIdFromRequest(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteGoal(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Reanchor(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, ok := projectIdFromRequest(w, r)
	if !ok {
		return
	}

	g, err := h.service.Reanchor(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(GoalToDTO(*g)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func projectIdFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	projectId, err := strconv.Atoi(vars["projectId"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return 0, false
	}
	return projectId, true
}

func GoalToDTO(g Goal) GoalDTO {
	writingDays := make([]bool, len(g.WritingDays))
	copy(writingDays, g.WritingDays[:])
	daysOff := g.DaysOff
	if daysOff == nil {
		daysOff = []string{}
	}
	return GoalDTO{
		Target:             g.Target,
		Deadline:           formatDate(g.Deadline),
		StartDate:          formatDate(g.StartDate),
		WritingDays:        writingDays,
		DaysOff:            daysOff,
		Mode:               string(g.Mode),
		Ledger:             g.Ledger,
		LastCalculatedDate: formatDate(g.LastCalculatedDate),
	}
}

func DTOToGoal(dto GoalDTO, projectId int) (Goal, error) {
	g := Goal{
		ProjectId: projectId,
		Target:    dto.Target,
		Mode:      Mode(dto.Mode),
		DaysOff:   dto.DaysOff,
	}
	if len(dto.WritingDays) != 7 {
		return Goal{}, errors.New("writingDays must have exactly 7 entries, Monday first")
	}
	copy(g.WritingDays[:], dto.WritingDays)

	var err error
	if g.Deadline, err = parseDate(dto.Deadline); err != nil {
		return Goal{}, errors.New("deadline must be an ISO date (YYYY-MM-DD)")
	}
	if g.StartDate, err = parseDate(dto.StartDate); err != nil {
		return Goal{}, errors.New("startDate must be an ISO date (YYYY-MM-DD)")
	}
	if g.LastCalculatedDate, err = parseDate(dto.LastCalculatedDate); err != nil {
		return Goal{}, errors.New("lastCalculatedDate must be an ISO date (YYYY-MM-DD)")
	}
	return g, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(utils.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(utils.DateLayout, s)
}
