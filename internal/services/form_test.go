package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloomworks/bloom-practice/internal/model"
)

func TestSubmitFormCompletesSession(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	fs.sessions["s1"] = &model.Session{
		SessionID: "s1", KidID: "k1",
		Status: model.SessionScheduled, Type: model.SessionTypeTherapy,
	}
	svc := NewFormService(fs)

	form, err := svc.Submit(context.Background(), &model.Form{SessionID: "s1", KidID: "k1"})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	sess := fs.sessions["s1"]
	if sess.Status != model.SessionCompleted {
		t.Fatalf("want session completed, got %q", sess.Status)
	}
	if sess.FormID == nil || *sess.FormID != form.FormID {
		t.Fatalf("session formId not stamped: %v", sess.FormID)
	}
	if form.GoalsWorkedOn == nil {
		t.Fatal("GoalsWorkedOn should default to empty, not nil")
	}
}

func TestSubmitSecondFormConflicts(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	fs.sessions["s1"] = &model.Session{
		SessionID: "s1", KidID: "k1",
		Status: model.SessionScheduled, Type: model.SessionTypeTherapy,
	}
	svc := NewFormService(fs)

	if _, err := svc.Submit(context.Background(), &model.Form{SessionID: "s1", KidID: "k1"}); err != nil {
		t.Fatalf("first Submit error: %v", err)
	}
	if _, err := svc.Submit(context.Background(), &model.Form{SessionID: "s1", KidID: "k1"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("want ErrConflict on second submit, got %v", err)
	}
}

func TestSubmitFormWithoutSessionSynthesizes(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	svc := NewFormService(fs)

	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	form, err := svc.Submit(context.Background(), &model.Form{KidID: "k1", SessionDate: date})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if form.SessionID == "" {
		t.Fatal("no session id assigned")
	}
	sess, ok := fs.sessions[form.SessionID]
	if !ok {
		t.Fatal("session not synthesized")
	}
	if sess.Status != model.SessionCompleted {
		t.Fatalf("want synthesized session completed, got %q", sess.Status)
	}
	if sess.Type != model.SessionTypeTherapy {
		t.Fatalf("want therapy type, got %q", sess.Type)
	}
	if !sess.ScheduledDate.Equal(date) {
		t.Fatalf("want scheduledDate %v, got %v", date, sess.ScheduledDate)
	}
	if sess.FormID == nil || *sess.FormID != form.FormID {
		t.Fatalf("session formId not stamped: %v", sess.FormID)
	}
}

func TestDeleteFormRevertsSession(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	fs.sessions["s1"] = &model.Session{
		SessionID: "s1", KidID: "k1",
		Status: model.SessionScheduled, Type: model.SessionTypeTherapy,
	}
	svc := NewFormService(fs)

	form, err := svc.Submit(context.Background(), &model.Form{SessionID: "s1", KidID: "k1"})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if err := svc.Delete(context.Background(), form.FormID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	sess := fs.sessions["s1"]
	if sess.Status != model.SessionScheduled {
		t.Fatalf("want session reverted to scheduled, got %q", sess.Status)
	}
	if sess.FormID != nil {
		t.Fatalf("want formId cleared, got %v", *sess.FormID)
	}
	if _, ok := fs.forms[form.FormID]; ok {
		t.Fatal("form not deleted")
	}
}

func TestDeleteMissingFormFails(t *testing.T) {
	fs := newFakeStore()
	svc := NewFormService(fs)
	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGoalSnapshotsSurviveGoalRename(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	goals := NewGoalService(fs)
	forms := NewFormService(fs)

	goal, err := goals.AddGoalToKid(context.Background(), &model.Goal{
		KidID: "k1", Title: "Count to ten", CategoryID: "cognitive",
	})
	if err != nil {
		t.Fatalf("AddGoalToKid error: %v", err)
	}

	form, err := forms.Submit(context.Background(), &model.Form{
		KidID: "k1",
		GoalsWorkedOn: []model.GoalSnapshot{
			{GoalID: goal.GoalID, GoalTitle: goal.Title, CategoryID: goal.CategoryID},
		},
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if _, err := goals.Update(context.Background(), goal.GoalID, map[string]interface{}{
		"title": "Count to twenty",
	}); err != nil {
		t.Fatalf("goal Update error: %v", err)
	}

	stored := fs.forms[form.FormID]
	if got := stored.GoalsWorkedOn[0].GoalTitle; got != "Count to ten" {
		t.Fatalf("snapshot mutated by goal rename: %q", got)
	}
}

func TestSubmitMeetingFormCompletesSession(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	fs.sessions["s1"] = &model.Session{
		SessionID: "s1", KidID: "k1",
		Status: model.SessionScheduled, Type: model.SessionTypeMeeting,
	}
	svc := NewFormService(fs)

	form, err := svc.SubmitMeeting(context.Background(), &model.MeetingForm{
		SessionID: "s1", KidID: "k1", Attendees: []string{"therapist", "parent"},
	})
	if err != nil {
		t.Fatalf("SubmitMeeting error: %v", err)
	}
	sess := fs.sessions["s1"]
	if sess.Status != model.SessionCompleted {
		t.Fatalf("want session completed, got %q", sess.Status)
	}
	if sess.FormID == nil || *sess.FormID != form.FormID {
		t.Fatalf("session formId not stamped: %v", sess.FormID)
	}

	if _, err := svc.SubmitMeeting(context.Background(), &model.MeetingForm{SessionID: "s1", KidID: "k1"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("want ErrConflict on second submit, got %v", err)
	}
}

func TestListForWeekWindow(t *testing.T) {
	fs := newFakeStore()
	fs.addKid("k1", nil)
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fs.forms["in"] = &model.Form{FormID: "in", KidID: "k1", SessionDate: weekStart.AddDate(0, 0, 3)}
	fs.forms["edge"] = &model.Form{FormID: "edge", KidID: "k1", SessionDate: weekStart}
	fs.forms["out"] = &model.Form{FormID: "out", KidID: "k1", SessionDate: weekStart.AddDate(0, 0, 7)}
	svc := NewFormService(fs)

	forms, err := svc.ListForWeek(context.Background(), "k1", weekStart)
	if err != nil {
		t.Fatalf("ListForWeek error: %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("want 2 forms inside [start, start+7d), got %d", len(forms))
	}
	for _, f := range forms {
		if f.FormID == "out" {
			t.Fatal("form on the exclusive upper bound included")
		}
	}
}
