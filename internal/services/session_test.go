package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloomworks/bloom-practice/internal/model"
)

func TestScheduleRecurringWeekly(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	svc := NewSessionService(fs)

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	until := start.AddDate(0, 0, 21)
	sessions, err := svc.ScheduleRecurring(context.Background(), "k1", nil, "", start, until)
	if err != nil {
		t.Fatalf("ScheduleRecurring error: %v", err)
	}
	if len(sessions) != 4 {
		t.Fatalf("want 4 sessions, got %d", len(sessions))
	}
	for i, sess := range sessions {
		want := start.AddDate(0, 0, 7*i)
		if !sess.ScheduledDate.Equal(want) {
			t.Fatalf("session %d: want date %v, got %v", i, want, sess.ScheduledDate)
		}
		if sess.Status != model.SessionScheduled {
			t.Fatalf("session %d: want status scheduled, got %q", i, sess.Status)
		}
		if sess.Type != model.SessionTypeTherapy {
			t.Fatalf("session %d: want default type therapy, got %q", i, sess.Type)
		}
	}
}

func TestScheduleRecurringEmptyRange(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	svc := NewSessionService(fs)

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	sessions, err := svc.ScheduleRecurring(context.Background(), "k1", nil, "", start, start.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("ScheduleRecurring error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("want 0 sessions when until precedes start, got %d", len(sessions))
	}
}

func TestScheduleRejectsUnknownKidAndType(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	svc := NewSessionService(fs)

	_, err := svc.Schedule(context.Background(), &model.Session{KidID: "missing"})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing kid, got %v", err)
	}

	_, err = svc.Schedule(context.Background(), &model.Session{KidID: "k1", Type: "consultation"})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("want ErrValidation for unknown type, got %v", err)
	}
}

func TestUpdateSessionValidatesStatus(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	fs.sessions["s1"] = &model.Session{SessionID: "s1", KidID: "k1", Status: model.SessionScheduled}
	svc := NewSessionService(fs)

	if _, err := svc.Update(context.Background(), "s1", map[string]interface{}{"status": "cancelled"}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("want ErrValidation for unknown status, got %v", err)
	}
	sess, err := svc.Update(context.Background(), "s1", map[string]interface{}{"status": model.SessionMissed})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if sess.Status != model.SessionMissed {
		t.Fatalf("want status missed, got %q", sess.Status)
	}
}

func TestDeleteSessionRemovesLinkedForm(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	formID := "f1"
	fs.forms[formID] = &model.Form{FormID: formID, SessionID: "s1", KidID: "k1"}
	fs.sessions["s1"] = &model.Session{
		SessionID: "s1", KidID: "k1",
		Status: model.SessionCompleted, Type: model.SessionTypeTherapy, FormID: &formID,
	}
	svc := NewSessionService(fs)

	if err := svc.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := fs.sessions["s1"]; ok {
		t.Fatal("session not deleted")
	}
	if _, ok := fs.forms[formID]; ok {
		t.Fatal("linked form not deleted")
	}
}

func TestDeleteMeetingSessionRemovesMeetingForm(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	formID := "mf1"
	fs.meetingForms[formID] = &model.MeetingForm{FormID: formID, SessionID: "s1", KidID: "k1"}
	fs.sessions["s1"] = &model.Session{
		SessionID: "s1", KidID: "k1",
		Status: model.SessionCompleted, Type: model.SessionTypeMeeting, FormID: &formID,
	}
	svc := NewSessionService(fs)

	if err := svc.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := fs.meetingForms[formID]; ok {
		t.Fatal("linked meeting form not deleted")
	}
}

func TestDeleteMissingSessionIsNoOp(t *testing.T) {
	fs := newFakeStore()
	svc := NewSessionService(fs)
	if err := svc.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("want nil for missing session, got %v", err)
	}
}

func TestAlertsOverdueOnly(t *testing.T) {
	fs := newFakeStore()
	adminID := "a1"
	fs.addKid("mine", &adminID)
	other := "a2"
	fs.addKid("theirs", &other)

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -2)
	future := now.AddDate(0, 0, 2)

	fs.sessions["overdue"] = &model.Session{SessionID: "overdue", KidID: "mine", Status: model.SessionScheduled, ScheduledDate: past}
	fs.sessions["pending"] = &model.Session{SessionID: "pending", KidID: "mine", Status: model.SessionPendingForm, ScheduledDate: past}
	fs.sessions["done"] = &model.Session{SessionID: "done", KidID: "mine", Status: model.SessionCompleted, ScheduledDate: past}
	fs.sessions["skipped"] = &model.Session{SessionID: "skipped", KidID: "mine", Status: model.SessionMissed, ScheduledDate: past}
	fs.sessions["upcoming"] = &model.Session{SessionID: "upcoming", KidID: "mine", Status: model.SessionScheduled, ScheduledDate: future}
	fs.sessions["foreign"] = &model.Session{SessionID: "foreign", KidID: "theirs", Status: model.SessionScheduled, ScheduledDate: past}

	svc := NewSessionService(fs)
	svc.now = func() time.Time { return now }

	alerts, err := svc.Alerts(context.Background(), adminID)
	if err != nil {
		t.Fatalf("Alerts error: %v", err)
	}
	got := map[string]bool{}
	for _, a := range alerts {
		got[a.SessionID] = true
	}
	if len(got) != 2 || !got["overdue"] || !got["pending"] {
		t.Fatalf("want alerts {overdue, pending}, got %v", got)
	}
}
