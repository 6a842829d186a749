package handlers

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Routes builds the application router.
func (a *App) Routes(static fs.FS) http.Handler {
	r := mux.NewRouter()
	r.Use(a.loggingMiddleware, a.recoverMiddleware, a.sessionMiddleware)

	// Router middleware only runs on matched routes.
	r.NotFoundHandler = a.loggingMiddleware(a.sessionMiddleware(http.HandlerFunc(a.notFound)))
	r.MethodNotAllowedHandler = a.loggingMiddleware(a.sessionMiddleware(http.HandlerFunc(a.methodNotAllowed)))

	r.HandleFunc("/healthz", a.Health).Methods(http.MethodGet)

	// Events
	r.HandleFunc("/", a.EventsListPage).Methods(http.MethodGet)
	r.HandleFunc("/events/new", a.AuthMiddleware(a.CreateEventPage)).Methods(http.MethodGet)
	r.HandleFunc("/events/new", a.AuthMiddleware(a.CreateEvent)).Methods(http.MethodPost)
	r.HandleFunc("/events/{id:[0-9]+}", a.EventDetailPage).Methods(http.MethodGet)
	r.HandleFunc("/events/{id:[0-9]+}/edit", a.AuthMiddleware(a.EditEventPage)).Methods(http.MethodGet)
	r.HandleFunc("/events/{id:[0-9]+}/edit", a.AuthMiddleware(a.UpdateEvent)).Methods(http.MethodPost)
	r.HandleFunc("/events/{id:[0-9]+}/delete", a.AuthMiddleware(a.DeleteEventPage)).Methods(http.MethodGet)
	r.HandleFunc("/events/{id:[0-9]+}/delete", a.AuthMiddleware(a.DeleteEvent)).Methods(http.MethodPost)
	r.HandleFunc("/events/{id:[0-9]+}/registrants", a.AuthMiddleware(a.RegistrantsPage)).Methods(http.MethodGet)

	// Registrations
	r.HandleFunc("/events/{id:[0-9]+}/register", a.RegisterParticipantPage).Methods(http.MethodGet)
	r.HandleFunc("/events/{id:[0-9]+}/register", a.RegisterParticipant).Methods(http.MethodPost)
	r.HandleFunc("/registrations/mine", a.AuthMiddleware(a.MyRegistrationsPage)).Methods(http.MethodGet)
	r.HandleFunc("/registrations/{id:[0-9]+}/feedback", a.AuthMiddleware(a.FeedbackPage)).Methods(http.MethodGet)
	r.HandleFunc("/registrations/{id:[0-9]+}/feedback", a.AuthMiddleware(a.SubmitFeedback)).Methods(http.MethodPost)

	// Account and authentication
	r.HandleFunc("/account", a.AuthMiddleware(a.AccountPage)).Methods(http.MethodGet)
	r.HandleFunc("/account", a.AuthMiddleware(a.UpdateAccount)).Methods(http.MethodPost)
	r.HandleFunc("/register", a.RegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/register", a.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", a.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", a.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", a.Logout).Methods(http.MethodPost)
	r.HandleFunc("/password-reset", a.PasswordResetPage).Methods(http.MethodGet)
	r.HandleFunc("/password-reset", a.PasswordReset).Methods(http.MethodPost)
	r.HandleFunc("/password-reset/confirm", a.PasswordResetConfirmPage).Methods(http.MethodGet)
	r.HandleFunc("/password-reset/confirm", a.PasswordResetConfirm).Methods(http.MethodPost)

	// JSON API
	api := r.PathPrefix("/api").Subrouter()
	api.Use(cors.New(cors.Options{
		AllowedOrigins: a.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler)
	api.HandleFunc("/events", a.APIEvents).Methods(http.MethodGet, http.MethodOptions)

	// Assets
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", noDirListing(http.FileServer(http.FS(static)))))
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", noDirListing(http.FileServer(http.Dir(a.media.Root())))))

	return r
}

// noDirListing answers 404 for directory paths instead of listing them.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
