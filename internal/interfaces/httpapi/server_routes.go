package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/pools", RequireAuth(verifier, http.HandlerFunc(handler.CreatePool)))
	mux.Handle("GET /v1/pools/{poolID}", RequireAuth(verifier, http.HandlerFunc(handler.GetPool)))
	mux.Handle("POST /v1/pools/{poolID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinPool)))
	mux.Handle("PUT /v1/pools/{poolID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPicks)))
	mux.Handle("GET /v1/pools/{poolID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.GetUserPicks)))
	mux.Handle("GET /v1/pools/{poolID}/confidence-values", RequireAuth(verifier, http.HandlerFunc(handler.GetConfidenceValues)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-schedule", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncScheduleJob)))
	mux.Handle("POST /v1/internal/jobs/sync-upcoming", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncUpcomingJob)))
	mux.Handle("POST /v1/internal/jobs/send-reminders", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReminderJob)))
}
