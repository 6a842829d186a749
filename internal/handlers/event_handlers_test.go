package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/event-registration/app/internal/database"
	"github.com/event-registration/app/internal/models"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// createTestEventDirectly stores an event without going through the handlers.
func (ts *testServer) createTestEventDirectly(t *testing.T, creatorID int64, title string, capacity int) *models.Event {
	t.Helper()
	event := &models.Event{
		CreatorID:   creatorID,
		Title:       title,
		Description: "Test Desc",
		Date:        time.Now().AddDate(0, 0, 7),
		Location:    "Test Location",
		Capacity:    capacity,
	}
	created, err := database.CreateEvent(context.Background(), ts.db, event)
	if err != nil {
		t.Fatalf("Failed to create test event directly: %v", err)
	}
	return created
}

// postMultipart sends fields and, when fileName is set, one file in the
// "banner" field.
func (ts *testServer) postMultipart(t *testing.T, client *http.Client, path string, fields url.Values, fileName string, content []byte) (*http.Response, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range fields {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("WriteField(%s) error = %v", k, err)
			}
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("banner", fileName)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		fw.Write(content)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("multipart Close() error = %v", err)
	}

	resp, err := client.Post(ts.server.URL+path, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func eventPath(id int64, suffix string) string {
	return "/events/" + strconv.FormatInt(id, 10) + suffix
}

func validEventForm(title string) url.Values {
	return url.Values{
		"title":       {title},
		"description": {"Line one\nLine two"},
		"date":        {"2030-05-01"},
		"location":    {"Main Hall"},
		"capacity":    {"25"},
	}
}

func TestEventsListAndDetailPages(t *testing.T) {
	ts := setupTestServer(t)
	_, owner := ts.registerAndLoginUser(t, "owner@example.com", "password123")

	t.Run("Empty list", func(t *testing.T) {
		resp, body := ts.get(t, ts.client, "/")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET / status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if !strings.Contains(body, "No events yet.") {
			t.Errorf("empty list body missing placeholder")
		}
	})

	event := ts.createTestEventDirectly(t, owner.ID, "Go Meetup", 5)

	t.Run("List shows event", func(t *testing.T) {
		_, body := ts.get(t, ts.client, "/")
		if !strings.Contains(body, "Go Meetup") {
			t.Errorf("list body missing event title")
		}
		if !strings.Contains(body, "5 spots left") {
			t.Errorf("list body missing remaining spots")
		}
	})

	t.Run("Detail", func(t *testing.T) {
		resp, body := ts.get(t, ts.client, eventPath(event.ID, ""))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("detail status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if !strings.Contains(body, "Go Meetup") || !strings.Contains(body, "Test Location") {
			t.Errorf("detail body missing event fields")
		}
		// Anonymous visitors do not see owner actions.
		if strings.Contains(body, eventPath(event.ID, "/edit")) {
			t.Errorf("anonymous detail shows the edit link")
		}
	})

	t.Run("Unknown event", func(t *testing.T) {
		for _, path := range []string{"/events/9999", "/events/abc", "/events/9999/register", "/no/such/page"} {
			resp, _ := ts.get(t, ts.client, path)
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("GET %s status = %d, want %d", path, resp.StatusCode, http.StatusNotFound)
			}
		}
	})

	t.Run("Method not allowed", func(t *testing.T) {
		resp, _ := ts.postForm(t, ts.client, eventPath(event.ID, ""), nil)
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("POST detail status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
		}
	})
}

func TestCreateEvent(t *testing.T) {
	ts := setupTestServer(t)
	client, user := ts.registerAndLoginUser(t, "creator@example.com", "password123")

	t.Run("Form page", func(t *testing.T) {
		resp, _ := ts.get(t, client, "/events/new")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET /events/new status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("Valid event", func(t *testing.T) {
		resp, _ := ts.postForm(t, client, "/events/new", validEventForm("Board Games Night"))
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("CreateEvent status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
		}
		if got := location(t, resp); got != "/" {
			t.Errorf("CreateEvent redirect = %q, want /", got)
		}
		if body := ts.followFlash(t, client, resp); !strings.Contains(body, "Event created successfully.") {
			t.Errorf("list after create missing success notice")
		}

		events, err := database.ListEvents(context.Background(), ts.db)
		if err != nil || len(events) != 1 {
			t.Fatalf("ListEvents() = %v, %v, want one event", events, err)
		}
		e := events[0]
		if e.CreatorID != user.ID {
			t.Errorf("CreatorID = %d, want %d", e.CreatorID, user.ID)
		}
		if e.Capacity != 25 || e.Location != "Main Hall" {
			t.Errorf("stored event = %+v", e)
		}
		if got := e.Date.Format("2006-01-02"); got != "2030-05-01" {
			t.Errorf("Date = %s, want 2030-05-01", got)
		}
		if e.Banner != "" {
			t.Errorf("Banner = %q, want empty", e.Banner)
		}
	})

	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"Missing title", "title", "", "This field is required."},
		{"Zero capacity", "capacity", "0", "Ensure this value is greater than or equal to 1."},
		{"Text capacity", "capacity", "many", "Enter a whole number."},
		{"Bad date", "date", "01/05/2030", "Enter a valid date."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validEventForm("Invalid " + tt.name)
			form.Set(tt.field, tt.value)
			resp, body := ts.postForm(t, client, "/events/new", form)
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}

	events, _ := database.ListEvents(context.Background(), ts.db)
	if len(events) != 1 {
		t.Errorf("events after invalid submissions = %d, want 1", len(events))
	}
}

func TestCreateEventWithBanner(t *testing.T) {
	ts := setupTestServer(t)
	client, _ := ts.registerAndLoginUser(t, "banner@example.com", "password123")

	t.Run("Image upload", func(t *testing.T) {
		resp, _ := ts.postMultipart(t, client, "/events/new", validEventForm("With Banner"), "banner.png", pngHeader)
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("CreateEvent status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
		}
		events, err := database.ListEvents(context.Background(), ts.db)
		if err != nil || len(events) != 1 {
			t.Fatalf("ListEvents() = %v, %v, want one event", events, err)
		}
		banner := events[0].Banner
		if !strings.HasPrefix(banner, "banners/") || !strings.HasSuffix(banner, ".png") {
			t.Fatalf("Banner = %q, want banners/*.png", banner)
		}

		resp, body := ts.get(t, ts.client, "/media/"+banner)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET banner status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if body != string(pngHeader) {
			t.Errorf("served banner differs from upload")
		}
	})

	t.Run("Not an image", func(t *testing.T) {
		resp, body := ts.postMultipart(t, client, "/events/new", validEventForm("Text Banner"), "notes.txt", []byte("just some text"))
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if !strings.Contains(body, "Upload a valid image.") {
			t.Errorf("body missing image error")
		}
	})

	t.Run("Media directory not listed", func(t *testing.T) {
		for _, path := range []string{"/media/", "/media/banners/"} {
			resp, _ := ts.get(t, ts.client, path)
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("GET %s status = %d, want %d", path, resp.StatusCode, http.StatusNotFound)
			}
		}
	})
}

func TestEventOwnership(t *testing.T) {
	ts := setupTestServer(t)
	ownerClient, owner := ts.registerAndLoginUser(t, "owner@example.com", "password123")
	otherClient, _ := ts.registerAndLoginUser(t, "other@example.com", "password123")
	anon := ts.newClient(t)
	event := ts.createTestEventDirectly(t, owner.ID, "Owner Event", 10)

	t.Run("Other user is denied", func(t *testing.T) {
		checks := []struct {
			method string
			path   string
			want   string
		}{
			{http.MethodGet, eventPath(event.ID, "/edit"), "You do not have permission to modify this event."},
			{http.MethodPost, eventPath(event.ID, "/edit"), "You do not have permission to modify this event."},
			{http.MethodGet, eventPath(event.ID, "/delete"), "You do not have permission to modify this event."},
			{http.MethodPost, eventPath(event.ID, "/delete"), "You do not have permission to modify this event."},
			{http.MethodGet, eventPath(event.ID, "/registrants"), "You do not have permission to view registrants of this event."},
		}
		for _, c := range checks {
			var resp *http.Response
			if c.method == http.MethodGet {
				resp, _ = ts.get(t, otherClient, c.path)
			} else {
				resp, _ = ts.postForm(t, otherClient, c.path, validEventForm("Hijacked"))
			}
			if resp.StatusCode != http.StatusSeeOther {
				t.Errorf("%s %s status = %d, want %d", c.method, c.path, resp.StatusCode, http.StatusSeeOther)
				continue
			}
			if got := location(t, resp); got != "/" {
				t.Errorf("%s %s redirect = %q, want /", c.method, c.path, got)
			}
			if body := ts.followFlash(t, otherClient, resp); !strings.Contains(body, c.want) {
				t.Errorf("%s %s notice missing %q", c.method, c.path, c.want)
			}
		}

		stored, err := database.GetEventByID(context.Background(), ts.db, event.ID)
		if err != nil {
			t.Fatalf("event gone after denied requests: %v", err)
		}
		if stored.Title != "Owner Event" {
			t.Errorf("Title = %q, want unchanged", stored.Title)
		}
	})

	t.Run("Anonymous is sent to login", func(t *testing.T) {
		resp, _ := ts.get(t, anon, eventPath(event.ID, "/edit"))
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
		}
		if got := location(t, resp); !strings.HasPrefix(got, "/login?next=") {
			t.Errorf("redirect = %q, want /login?next=...", got)
		}
	})

	t.Run("Owner sees actions", func(t *testing.T) {
		_, body := ts.get(t, ownerClient, eventPath(event.ID, ""))
		if !strings.Contains(body, eventPath(event.ID, "/edit")) {
			t.Errorf("owner detail page missing edit link")
		}
		_, body = ts.get(t, otherClient, eventPath(event.ID, ""))
		if strings.Contains(body, eventPath(event.ID, "/edit")) {
			t.Errorf("other user detail page shows edit link")
		}
	})

	t.Run("Owner edits", func(t *testing.T) {
		resp, body := ts.get(t, ownerClient, eventPath(event.ID, "/edit"))
		if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Owner Event") {
			t.Fatalf("edit page status = %d, want 200 with current title", resp.StatusCode)
		}

		form := validEventForm("Renamed Event")
		form.Set("capacity", "40")
		resp, _ = ts.postForm(t, ownerClient, eventPath(event.ID, "/edit"), form)
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("UpdateEvent status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
		}
		if body := ts.followFlash(t, ownerClient, resp); !strings.Contains(body, "Event updated successfully.") {
			t.Errorf("list after update missing success notice")
		}
		stored, err := database.GetEventByID(context.Background(), ts.db, event.ID)
		if err != nil {
			t.Fatalf("GetEventByID() error = %v", err)
		}
		if stored.Title != "Renamed Event" || stored.Capacity != 40 {
			t.Errorf("stored = %q/%d, want Renamed Event/40", stored.Title, stored.Capacity)
		}
		if stored.CreatorID != owner.ID {
			t.Errorf("CreatorID changed to %d", stored.CreatorID)
		}
	})

	t.Run("Owner edit invalid", func(t *testing.T) {
		form := validEventForm("")
		resp, body := ts.postForm(t, ownerClient, eventPath(event.ID, "/edit"), form)
		if resp.StatusCode != http.StatusOK || !strings.Contains(body, "This field is required.") {
			t.Errorf("invalid update status = %d, want 200 with field error", resp.StatusCode)
		}
	})

	t.Run("Owner deletes", func(t *testing.T) {
		resp, _ := ts.get(t, ownerClient, eventPath(event.ID, "/delete"))
		if resp.StatusCode != http.StatusOK {
			t.Errorf("delete page status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		resp, _ = ts.postForm(t, ownerClient, eventPath(event.ID, "/delete"), nil)
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("DeleteEvent status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
		}
		if body := ts.followFlash(t, ownerClient, resp); !strings.Contains(body, "Event deleted successfully.") {
			t.Errorf("list after delete missing success notice")
		}
		if _, err := database.GetEventByID(context.Background(), ts.db, event.ID); !errors.Is(err, database.ErrNotFound) {
			t.Errorf("GetEventByID() after delete error = %v, want ErrNotFound", err)
		}

		resp, _ = ts.get(t, ownerClient, eventPath(event.ID, "/edit"))
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("edit deleted event status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})
}

func TestFlashShownOnce(t *testing.T) {
	ts := setupTestServer(t)
	client, _ := ts.registerAndLoginUser(t, "flash@example.com", "password123")

	resp, _ := ts.postForm(t, client, "/events/new", validEventForm("Flash Event"))
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("CreateEvent status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if body := ts.followFlash(t, client, resp); !strings.Contains(body, "Event created successfully.") {
		t.Errorf("first page missing notice")
	}
	if _, body := ts.get(t, client, "/"); strings.Contains(body, "Event created successfully.") {
		t.Errorf("notice shown twice")
	}
}

func TestAPIAndAssets(t *testing.T) {
	ts := setupTestServer(t)
	_, owner := ts.registerAndLoginUser(t, "api@example.com", "password123")
	event := ts.createTestEventDirectly(t, owner.ID, "API Event", 3)

	t.Run("Events JSON", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.server.URL+"/api/events", nil)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Origin", "http://other.example")
		resp, err := ts.client.Do(req)
		if err != nil {
			t.Fatalf("GET /api/events failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if got := resp.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}

		var out []eventJSON
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(out) != 1 {
			t.Fatalf("events = %d, want 1", len(out))
		}
		if out[0].ID != event.ID || out[0].Title != "API Event" || out[0].Remaining != 3 {
			t.Errorf("event = %+v", out[0])
		}
		if out[0].BannerURL != "" {
			t.Errorf("BannerURL = %q, want empty", out[0].BannerURL)
		}
	})

	t.Run("Health", func(t *testing.T) {
		resp, body := ts.get(t, ts.client, "/healthz")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if !strings.Contains(body, `"status":"ok"`) || !strings.Contains(body, `"database":"sqlite3"`) {
			t.Errorf("body = %s", body)
		}
	})

	t.Run("Static", func(t *testing.T) {
		resp, _ := ts.get(t, ts.client, "/static/style.css")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("style.css status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		resp, _ = ts.get(t, ts.client, "/static/")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("static listing status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})
}
