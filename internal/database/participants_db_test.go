package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestListRegistrants(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", "ownerpass1")
	event := createTestEvent(t, db, owner.ID, "Meetup", time.Date(2030, 4, 1, 0, 0, 0, 0, time.UTC), 10)
	other := createTestEvent(t, db, owner.ID, "Other", time.Date(2030, 4, 2, 0, 0, 0, 0, time.UTC), 10)

	for _, name := range []string{"Carla", "Ana", "Bruno"} {
		if _, err := RegisterParticipant(ctx, db, event.ID, 0, newParticipant(name, name+"@example.com")); err != nil {
			t.Fatalf("RegisterParticipant(%s) error = %v", name, err)
		}
	}
	if _, err := RegisterParticipant(ctx, db, other.ID, 0, newParticipant("Zed", "zed@example.com")); err != nil {
		t.Fatalf("RegisterParticipant() error = %v", err)
	}

	regs, err := ListRegistrants(ctx, db, event.ID)
	if err != nil {
		t.Fatalf("ListRegistrants() error = %v", err)
	}
	if len(regs) != 3 {
		t.Fatalf("ListRegistrants() count = %d, want 3", len(regs))
	}
	want := []string{"Ana", "Bruno", "Carla"}
	for i, reg := range regs {
		if reg.Participant.Name != want[i] {
			t.Errorf("ListRegistrants()[%d] = %s, want %s", i, reg.Participant.Name, want[i])
		}
		if reg.EventTitle != "Meetup" {
			t.Errorf("ListRegistrants()[%d] EventTitle = %q", i, reg.EventTitle)
		}
	}

	empty, err := ListRegistrants(ctx, db, 9999)
	if err != nil {
		t.Fatalf("ListRegistrants() unknown event error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListRegistrants() unknown event count = %d, want 0", len(empty))
	}
}

func TestListRegistrationsByEmail(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", "ownerpass1")
	first := createTestEvent(t, db, owner.ID, "First", time.Date(2030, 4, 1, 0, 0, 0, 0, time.UTC), 10)
	second := createTestEvent(t, db, owner.ID, "Second", time.Date(2030, 4, 2, 0, 0, 0, 0, time.UTC), 10)

	if _, err := RegisterParticipant(ctx, db, first.ID, 0, newParticipant("Ana", "Ana@Example.com")); err != nil {
		t.Fatalf("RegisterParticipant() error = %v", err)
	}
	if _, err := RegisterParticipant(ctx, db, second.ID, 0, newParticipant("Ana", "ana@example.com")); err != nil {
		t.Fatalf("RegisterParticipant() error = %v", err)
	}
	if _, err := RegisterParticipant(ctx, db, second.ID, 0, newParticipant("Bo", "bo@example.com")); err != nil {
		t.Fatalf("RegisterParticipant() error = %v", err)
	}

	regs, err := ListRegistrationsByEmail(ctx, db, "ana@example.com")
	if err != nil {
		t.Fatalf("ListRegistrationsByEmail() error = %v", err)
	}
	if len(regs) != 2 {
		t.Fatalf("ListRegistrationsByEmail() count = %d, want 2", len(regs))
	}
	if regs[0].EventTitle != "Second" || regs[1].EventTitle != "First" {
		t.Errorf("ListRegistrationsByEmail() order = [%s, %s], want [Second, First]", regs[0].EventTitle, regs[1].EventTitle)
	}

	none, err := ListRegistrationsByEmail(ctx, db, "nobody@example.com")
	if err != nil {
		t.Fatalf("ListRegistrationsByEmail() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ListRegistrationsByEmail() for unknown email count = %d, want 0", len(none))
	}
}

func TestGetParticipantByID(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", "ownerpass1")
	event := createTestEvent(t, db, owner.ID, "Meetup", time.Date(2030, 4, 1, 0, 0, 0, 0, time.UTC), 10)
	reg, err := RegisterParticipant(ctx, db, event.ID, 0, newParticipant("Ana", " ana@example.com "))
	if err != nil {
		t.Fatalf("RegisterParticipant() error = %v", err)
	}

	p, err := GetParticipantByID(ctx, db, reg.ParticipantID)
	if err != nil {
		t.Fatalf("GetParticipantByID() error = %v", err)
	}
	if p.Name != "Ana" || p.Email != "ana@example.com" || p.Phone != "555-0100" {
		t.Errorf("GetParticipantByID() = %+v", p)
	}

	if _, err := GetParticipantByID(ctx, db, 12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetParticipantByID() unknown error = %v, want ErrNotFound", err)
	}
}
