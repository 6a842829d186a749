package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/forms"
	"github.com/event-registration/app/internal/media"
)

type eventJSON struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Location   string `json:"location"`
	Capacity   int    `json:"capacity"`
	Registered int    `json:"registered"`
	Remaining  int    `json:"remaining"`
	BannerURL  string `json:"banner_url,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// APIEvents returns the event list as JSON.
func (a *App) APIEvents(w http.ResponseWriter, r *http.Request) {
	events, err := database.ListEvents(r.Context(), a.db)
	if err != nil {
		a.log.Error().Err(err).Msg("list events for api")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, eventJSON{
			ID:         e.ID,
			Title:      e.Title,
			Date:       e.Date.Format(forms.DateLayout),
			Location:   e.Location,
			Capacity:   e.Capacity,
			Registered: e.Registered,
			Remaining:  e.Remaining(),
			BannerURL:  media.URL(e.Banner),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// pinger is implemented by session backends that live outside the process.
type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports whether the database and, when remote, the session
// backend answer.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := a.db.PingContext(ctx); err != nil {
		a.log.Error().Err(err).Msg("Database health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": "database connection failed"})
		return
	}
	if p, ok := a.sessions.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			a.log.Error().Err(err).Msg("Session store health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": "session store connection failed"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": a.db.Driver()})
}
