package app

import (
	"github.com/gorilla/mux"
	"github.com/inkpace/inkpace/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/project", deps.ProjectHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.Get).Methods("GET")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.Update).Methods("PUT")
	r.HandleFunc("/api/project/{projectId}/position", deps.ProjectHandler.SetPosition).Methods("PUT")
	r.HandleFunc("/api/project/{projectId}", deps.ProjectHandler.Delete).Methods("DELETE")

	// Documents
	r.HandleFunc("/api/project/{projectId}/document", deps.DocumentHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/project/{projectId}/document", deps.DocumentHandler.Add).Methods("POST")
	r.HandleFunc("/api/project/{projectId}/document/{documentId}", deps.DocumentHandler.Remove).Methods("DELETE")
	r.HandleFunc("/api/project/{projectId}/document/sync", deps.DocumentHandler.Sync).Methods("POST")

	// Writing goals
	r.HandleFunc("/api/project/{projectId}/goal", deps.GoalHandler.GetGoal).Methods("GET")
	r.HandleFunc("/api/project/{projectId}/goal", deps.GoalHandler.SetGoal).Methods("PUT")
	r.HandleFunc("/api/project/{projectId}/goal", deps.GoalHandler.DeleteGoal).Methods("DELETE")
	r.HandleFunc("/api/project/{projectId}/goal/reanchor", deps.GoalHandler.Reanchor).Methods("POST")

	// Progress
	r.HandleFunc("/api/project/{projectId}/progress", deps.ProgressHandler.GetProgress).Methods("GET")

	// Writing history
	r.HandleFunc("/api/project/{projectId}/history", deps.HistoryHandler.GetHistory).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/folders", deps.GoogleHandler.ListFolders).Methods("GET")
	r.HandleFunc("/api/integrations/google/files", deps.GoogleHandler.ListFiles).Queries("folderId", "{folderId}").Methods("GET")
}
