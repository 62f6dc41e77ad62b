package progress

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/inkpace/inkpace/pkg/goal"
	"github.com/inkpace/inkpace/pkg/pacing"
	"github.com/inkpace/inkpace/pkg/project"
)

type DailyInfoDTO struct {
	Target         int  `json:"target"`
	TodayWords     int  `json:"todayWords"`
	Remaining      int  `json:"remaining"`
	WordsRemaining int  `json:"wordsRemaining"`
	IsAhead        bool `json:"isAhead"`
	IsBehind       bool `json:"isBehind"`
}

type ProgressSnapshotDTO struct {
	WordGoal   int           `json:"wordGoal"`
	TotalWords int           `json:"totalWords"`
	Percentage int           `json:"percentage"`
	Goal       *goal.GoalDTO `json:"goal,omitempty"`
	DailyInfo  *DailyInfoDTO `json:"dailyInfo,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectId, err := strconv.Atoi(mux.Vars(r)["projectId"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	snapshot, err := h.service.GetProjectProgress(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snapshotToDTO(snapshot)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func snapshotToDTO(s ProgressSnapshot) ProgressSnapshotDTO {
	dto := ProgressSnapshotDTO{
		WordGoal:   s.WordGoal,
		TotalWords: s.TotalWords,
		Percentage: s.Percentage,
	}
	if s.Goal != nil {
		goalDTO := goal.GoalToDTO(*s.Goal)
		dto.Goal = &goalDTO
	}
	if s.DailyInfo != nil {
		dto.DailyInfo = dailyInfoToDTO(*s.DailyInfo)
	}
	return dto
}

func dailyInfoToDTO(info pacing.DailyInfo) *DailyInfoDTO {
	return &DailyInfoDTO{
		Target:         info.Target,
		TodayWords:     info.TodayWords,
		Remaining:      info.Remaining,
		WordsRemaining: info.WordsRemaining,
		IsAhead:        info.IsAhead,
		IsBehind:       info.IsBehind,
	}
}
