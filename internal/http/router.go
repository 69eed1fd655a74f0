package http

import (
	"board-backend/internal/handlers"
	"board-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	totpHandler *handlers.TOTPHandler,
	memberHandler *handlers.MemberHandler,
	threadHandler *handlers.ThreadHandler,
	postHandler *handlers.PostHandler,
	commentHandler *handlers.CommentHandler,
	flagReportHandler *handlers.FlagReportHandler,
	actionHandler *handlers.ModerationActionHandler,
	appealHandler *handlers.AppealHandler,
	logHandler *handlers.ModerationLogHandler,
	notificationHandler *handlers.NotificationHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/totp/complete", totpHandler.CompleteLogin).Methods("POST")
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Authenticated self-service
	meAPI := r.PathPrefix("/api/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")
	meAPI.HandleFunc("/totp/setup", totpHandler.Setup).Methods("POST")
	meAPI.HandleFunc("/totp/enable", totpHandler.Enable).Methods("POST")
	meAPI.HandleFunc("/totp/disable", totpHandler.Disable).Methods("POST")
	meAPI.HandleFunc("/totp/status", totpHandler.Status).Methods("GET")

	// Member accounts (admin only)
	membersAPI := r.PathPrefix("/api/members").Subrouter()
	membersAPI.Use(authMiddleware.RequireAdmin)
	membersAPI.HandleFunc("", memberHandler.ListMembers).Methods("GET")
	membersAPI.HandleFunc("", memberHandler.CreateMember).Methods("POST")
	membersAPI.HandleFunc("/{id}", memberHandler.GetMember).Methods("GET")
	membersAPI.HandleFunc("/{id}", memberHandler.UpdateMember).Methods("PUT")
	membersAPI.HandleFunc("/{id}", memberHandler.DeleteMember).Methods("DELETE")
	membersAPI.HandleFunc("/{id}/suspend", memberHandler.Suspend).Methods("PATCH")
	membersAPI.HandleFunc("/{id}/reinstate", memberHandler.Reinstate).Methods("PATCH")

	// Threads
	threadsAPI := r.PathPrefix("/api/threads").Subrouter()
	threadsAPI.Use(authMiddleware.Authenticate)
	threadsAPI.HandleFunc("", threadHandler.ListThreads).Methods("GET")
	threadsAPI.HandleFunc("", threadHandler.CreateThread).Methods("POST")
	threadsAPI.HandleFunc("/{id}", threadHandler.GetThread).Methods("GET")
	threadsAPI.HandleFunc("/{id}", threadHandler.UpdateThread).Methods("PUT")
	threadsAPI.HandleFunc("/{id}", threadHandler.DeleteThread).Methods("DELETE")
	threadsAPI.HandleFunc("/{id}/posts", postHandler.ListByThread).Methods("GET")

	// Posts
	postsAPI := r.PathPrefix("/api/posts").Subrouter()
	postsAPI.Use(authMiddleware.Authenticate)
	postsAPI.HandleFunc("", postHandler.CreatePost).Methods("POST")
	postsAPI.HandleFunc("/{id}", postHandler.GetPost).Methods("GET")
	postsAPI.HandleFunc("/{id}", postHandler.UpdatePost).Methods("PUT")
	postsAPI.HandleFunc("/{id}", postHandler.DeletePost).Methods("DELETE")
	postsAPI.HandleFunc("/{id}/comments", commentHandler.ListByPost).Methods("GET")

	// Comments
	commentsAPI := r.PathPrefix("/api/comments").Subrouter()
	commentsAPI.Use(authMiddleware.Authenticate)
	commentsAPI.HandleFunc("", commentHandler.CreateComment).Methods("POST")
	commentsAPI.HandleFunc("/{id}", commentHandler.GetComment).Methods("GET")
	commentsAPI.HandleFunc("/{id}", commentHandler.UpdateComment).Methods("PUT")
	commentsAPI.HandleFunc("/{id}", commentHandler.DeleteComment).Methods("DELETE")

	// Flag reports; any member may file, triage is enforced in the service
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("", flagReportHandler.ListReports).Methods("GET")
	reportsAPI.HandleFunc("", flagReportHandler.CreateReport).Methods("POST")
	reportsAPI.HandleFunc("/{id}", flagReportHandler.GetReport).Methods("GET")
	reportsAPI.HandleFunc("/{id}/status", flagReportHandler.UpdateStatus).Methods("PATCH")
	reportsAPI.HandleFunc("/{id}", flagReportHandler.DeleteReport).Methods("DELETE")

	// Moderation actions (moderators and admins)
	actionsAPI := r.PathPrefix("/api/moderation/actions").Subrouter()
	actionsAPI.Use(authMiddleware.RequireModerator)
	actionsAPI.HandleFunc("", actionHandler.ListActions).Methods("GET")
	actionsAPI.HandleFunc("", actionHandler.CreateAction).Methods("POST")
	actionsAPI.HandleFunc("/{id}", actionHandler.GetAction).Methods("GET")
	actionsAPI.HandleFunc("/{id}", actionHandler.UpdateAction).Methods("PUT")
	actionsAPI.HandleFunc("/{id}", actionHandler.DeleteAction).Methods("DELETE")
	actionsAPI.HandleFunc("/{id}/logs", logHandler.ListByAction).Methods("GET")

	// Appeals: filing and reading need membership only, resolution is
	// enforced as moderator inside the service
	appealsAPI := r.PathPrefix("/api/appeals").Subrouter()
	appealsAPI.Use(authMiddleware.Authenticate)
	appealsAPI.HandleFunc("", appealHandler.CreateAppeal).Methods("POST")
	appealsAPI.HandleFunc("/{id}", appealHandler.GetAppeal).Methods("GET")
	appealsAPI.HandleFunc("/{id}/rationale", appealHandler.AmendRationale).Methods("PATCH")
	appealsAPI.HandleFunc("/{id}/transition", appealHandler.Transition).Methods("POST")
	appealsAPI.HandleFunc("/{id}", appealHandler.DeleteAppeal).Methods("DELETE")

	appealsModAPI := r.PathPrefix("/api/moderation/appeals").Subrouter()
	appealsModAPI.Use(authMiddleware.RequireModerator)
	appealsModAPI.HandleFunc("", appealHandler.ListAppeals).Methods("GET")

	// Audit log (moderators and admins)
	logsAPI := r.PathPrefix("/api/moderation/logs").Subrouter()
	logsAPI.Use(authMiddleware.RequireModerator)
	logsAPI.HandleFunc("", logHandler.AppendEntry).Methods("POST")
	logsAPI.HandleFunc("/{id}", logHandler.GetEntry).Methods("GET")
	logsAPI.HandleFunc("/{id}", logHandler.UpdateEntry).Methods("PUT")
	logsAPI.HandleFunc("/{id}", logHandler.DeleteEntry).Methods("DELETE")

	// Activity reports (admin only)
	activityAPI := r.PathPrefix("/api/moderation/reports").Subrouter()
	activityAPI.Use(authMiddleware.RequireAdmin)
	activityAPI.HandleFunc("/summary.pdf", reportHandler.SummaryPDF).Methods("GET")
	activityAPI.HandleFunc("/summary.csv", reportHandler.SummaryCSV).Methods("GET")

	// Notifications
	notificationsAPI := r.PathPrefix("/api/notifications").Subrouter()
	notificationsAPI.Use(authMiddleware.Authenticate)
	notificationsAPI.HandleFunc("", notificationHandler.ListNotifications).Methods("GET")
	notificationsAPI.HandleFunc("/stream", notificationHandler.Stream).Methods("GET")
	notificationsAPI.HandleFunc("/{id}/read", notificationHandler.MarkRead).Methods("PATCH")
	notificationsAPI.HandleFunc("/{id}", notificationHandler.DeleteNotification).Methods("DELETE")

	return r
}
