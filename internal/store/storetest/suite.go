package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Admins
	adminKey := "key-" + uuid.New().String()
	admin, err := s.Admins().Create(ctx, &model.Admin{Name: "Dana", Email: "dana@example.test", AccessKey: adminKey})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if got, err := s.Admins().GetByAccessKey(ctx, adminKey); err != nil || got.AdminID != admin.AdminID {
		t.Fatalf("GetByAccessKey: got=%v err=%v", got, err)
	}
	if _, err := s.Admins().GetByAccessKey(ctx, "no-such-key"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByAccessKey missing: err=%v", err)
	}

	// Kids
	kid, err := s.Kids().Create(ctx, &model.Kid{
		KidID: "noa-levi", Name: "Noa Levi", Age: 6, Gender: "f",
		AdminID:     &admin.AdminID,
		BoardConfig: map[string]interface{}{"columns": float64(3)},
	})
	if err != nil {
		t.Fatalf("CreateKid: %v", err)
	}
	got, err := s.Kids().Get(ctx, kid.KidID)
	if err != nil || got.Name != "Noa Levi" {
		t.Fatalf("GetKid: got=%v err=%v", got, err)
	}
	if got.AdminID == nil || *got.AdminID != admin.AdminID {
		t.Fatalf("GetKid admin: got=%v", got.AdminID)
	}
	if got.BoardConfig["columns"] != float64(3) {
		t.Fatalf("GetKid board config: got=%v", got.BoardConfig)
	}
	if lst, err := s.Kids().ListByAdmin(ctx, admin.AdminID); err != nil || len(lst) != 1 {
		t.Fatalf("ListKidsByAdmin: n=%d err=%v", len(lst), err)
	}

	// Kid update and admin clearing
	newAge := 7
	if upd, err := s.Kids().Update(ctx, kid.KidID, model.KidPatch{Age: &newAge}); err != nil || upd.Age != 7 {
		t.Fatalf("UpdateKid: got=%v err=%v", upd, err)
	}
	if upd, err := s.Kids().Update(ctx, kid.KidID, model.KidPatch{ClearAdmin: true}); err != nil || upd.AdminID != nil {
		t.Fatalf("UpdateKid clear admin: got=%v err=%v", upd, err)
	}
	if _, err := s.Kids().Update(ctx, "missing-kid", model.KidPatch{Age: &newAge}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateKid missing: err=%v", err)
	}

	// Practitioners and links
	pr, err := s.Practitioners().Create(ctx, &model.Practitioner{Name: "Yael", Role: "slp"})
	if err != nil {
		t.Fatalf("CreatePractitioner: %v", err)
	}
	if err := s.Links().Link(ctx, kid.KidID, pr.PractitionerID); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if err := s.Links().Link(ctx, kid.KidID, pr.PractitionerID); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("Link duplicate: err=%v", err)
	}
	if lst, err := s.Links().ListByKid(ctx, kid.KidID); err != nil || len(lst) != 1 {
		t.Fatalf("ListLinks: n=%d err=%v", len(lst), err)
	}
	if err := s.Links().Unlink(ctx, kid.KidID, pr.PractitionerID); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if lst, err := s.Links().ListByKid(ctx, kid.KidID); err != nil || len(lst) != 0 {
		t.Fatalf("ListLinks after unlink: n=%d err=%v", len(lst), err)
	}

	// Parents
	parent, err := s.Parents().Create(ctx, &model.Parent{KidID: kid.KidID, Name: "Rina", Email: "rina@example.test"})
	if err != nil {
		t.Fatalf("CreateParent: %v", err)
	}
	if lst, err := s.Parents().ListByKid(ctx, kid.KidID); err != nil || len(lst) != 1 {
		t.Fatalf("ListParents: n=%d err=%v", len(lst), err)
	}

	// Sessions
	date := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	sess, err := s.Sessions().Create(ctx, &model.Session{
		KidID: kid.KidID, TherapistID: &pr.PractitionerID,
		ScheduledDate: date, Type: model.SessionTypeTherapy, Status: model.SessionScheduled,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	gotSess, err := s.Sessions().Get(ctx, sess.SessionID)
	if err != nil || !gotSess.ScheduledDate.Equal(date) {
		t.Fatalf("GetSession: got=%v err=%v", gotSess, err)
	}
	if lst, err := s.Sessions().ListByKid(ctx, model.ListSessionsRequest{KidID: kid.KidID, Status: model.SessionScheduled}); err != nil || len(lst) != 1 {
		t.Fatalf("ListSessions filtered: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Sessions().ListByKid(ctx, model.ListSessionsRequest{KidID: kid.KidID, Status: model.SessionMissed}); err != nil || len(lst) != 0 {
		t.Fatalf("ListSessions empty filter: n=%d err=%v", len(lst), err)
	}

	// Forms, 1:1 session linkage through FormID
	form, err := s.Forms().Create(ctx, &model.Form{
		SessionID: sess.SessionID, KidID: kid.KidID, TherapistName: "Yael",
		SessionDate: date, Cooperation: 4,
		GoalsWorkedOn: []model.GoalSnapshot{{GoalID: "g1", GoalTitle: "two-word phrases", CategoryID: "language"}},
	})
	if err != nil {
		t.Fatalf("CreateForm: %v", err)
	}
	completed := model.SessionCompleted
	if _, err := s.Sessions().Update(ctx, sess.SessionID, model.SessionPatch{Status: &completed, FormID: &form.FormID}); err != nil {
		t.Fatalf("UpdateSession link form: %v", err)
	}
	gotForm, err := s.Forms().GetBySession(ctx, sess.SessionID)
	if err != nil || gotForm.FormID != form.FormID {
		t.Fatalf("GetFormBySession: got=%v err=%v", gotForm, err)
	}
	if len(gotForm.GoalsWorkedOn) != 1 || gotForm.GoalsWorkedOn[0].GoalTitle != "two-word phrases" {
		t.Fatalf("GetForm snapshots: got=%v", gotForm.GoalsWorkedOn)
	}
	if lst, err := s.Forms().ListByKidBetween(ctx, kid.KidID, date.AddDate(0, 0, -1), date.AddDate(0, 0, 6)); err != nil || len(lst) != 1 {
		t.Fatalf("ListFormsBetween: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Forms().ListByKidBetween(ctx, kid.KidID, date.AddDate(0, 0, 1), date.AddDate(0, 0, 8)); err != nil || len(lst) != 0 {
		t.Fatalf("ListFormsBetween excludes: n=%d err=%v", len(lst), err)
	}

	// Unlinking via ClearFormID
	scheduled := model.SessionScheduled
	unlinked, err := s.Sessions().Update(ctx, sess.SessionID, model.SessionPatch{Status: &scheduled, ClearFormID: true})
	if err != nil || unlinked.FormID != nil {
		t.Fatalf("UpdateSession clear form: got=%v err=%v", unlinked, err)
	}

	// Meeting forms
	mf, err := s.MeetingForms().Create(ctx, &model.MeetingForm{
		SessionID: uuid.New().String(), KidID: kid.KidID, SessionDate: date,
		Attendees: []string{"Yael", "Rina"}, Summary: "quarterly review",
	})
	if err != nil {
		t.Fatalf("CreateMeetingForm: %v", err)
	}
	gotMF, err := s.MeetingForms().Get(ctx, mf.FormID)
	if err != nil || len(gotMF.Attendees) != 2 {
		t.Fatalf("GetMeetingForm: got=%v err=%v", gotMF, err)
	}

	// Goals and deactivation
	goal, err := s.Goals().Create(ctx, &model.Goal{KidID: kid.KidID, CategoryID: "language", Title: "two-word phrases", IsActive: true})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if lst, err := s.Goals().ListByKid(ctx, kid.KidID, true); err != nil || len(lst) != 1 {
		t.Fatalf("ListGoals active: n=%d err=%v", len(lst), err)
	}
	deact, err := s.Goals().Deactivate(ctx, goal.GoalID, date)
	if err != nil || deact.IsActive || deact.DeactivationTime == nil {
		t.Fatalf("DeactivateGoal: got=%v err=%v", deact, err)
	}
	if lst, err := s.Goals().ListByKid(ctx, kid.KidID, true); err != nil || len(lst) != 0 {
		t.Fatalf("ListGoals after deactivate: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Goals().ListByKid(ctx, kid.KidID, false); err != nil || len(lst) != 1 {
		t.Fatalf("ListGoals all: n=%d err=%v", len(lst), err)
	}

	// Goal library dedup path
	item, err := s.GoalLibrary().Insert(ctx, &model.GoalLibraryItem{Title: "two-word phrases", CategoryID: "language"})
	if err != nil {
		t.Fatalf("InsertLibraryItem: %v", err)
	}
	found, err := s.GoalLibrary().FindByTitleCategory(ctx, "two-word phrases", "language")
	if err != nil || found.ItemID != item.ItemID || found.UsageCount != 1 {
		t.Fatalf("FindByTitleCategory: got=%v err=%v", found, err)
	}
	if err := s.GoalLibrary().IncrementUsage(ctx, item.ItemID); err != nil {
		t.Fatalf("IncrementUsage: %v", err)
	}
	if found, err = s.GoalLibrary().FindByTitleCategory(ctx, "two-word phrases", "language"); err != nil || found.UsageCount != 2 {
		t.Fatalf("FindByTitleCategory after increment: got=%v err=%v", found, err)
	}
	if _, err := s.GoalLibrary().FindByTitleCategory(ctx, "no such title", "language"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("FindByTitleCategory missing: err=%v", err)
	}

	// Notifications: per-side dismissal flags
	note, err := s.Notifications().Create(ctx, &model.Notification{
		KidID: kid.KidID, AdminID: admin.AdminID, Message: "session missed",
		RecipientType: model.RecipientParent, RecipientID: parent.ParentID,
	})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if lst, err := s.Notifications().ListForRecipient(ctx, model.RecipientParent, parent.ParentID); err != nil || len(lst) != 1 {
		t.Fatalf("ListForRecipient: n=%d err=%v", len(lst), err)
	}
	if err := s.Notifications().SetDismissed(ctx, note.NotificationID); err != nil {
		t.Fatalf("SetDismissed: %v", err)
	}
	if lst, err := s.Notifications().ListForRecipient(ctx, model.RecipientParent, parent.ParentID); err != nil || len(lst) != 0 {
		t.Fatalf("ListForRecipient after dismiss: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Notifications().ListForAdmin(ctx, admin.AdminID); err != nil || len(lst) != 1 {
		t.Fatalf("ListForAdmin unaffected: n=%d err=%v", len(lst), err)
	}
	if err := s.Notifications().SetDismissedByAdmin(ctx, note.NotificationID); err != nil {
		t.Fatalf("SetDismissedByAdmin: %v", err)
	}
	if lst, err := s.Notifications().ListForAdmin(ctx, admin.AdminID); err != nil || len(lst) != 0 {
		t.Fatalf("ListForAdmin after dismiss: n=%d err=%v", len(lst), err)
	}

	// Board requests
	req, err := s.BoardRequests().Create(ctx, &model.BoardRequest{KidID: kid.KidID, RequestedBy: parent.ParentID, Description: "add snack column"})
	if err != nil {
		t.Fatalf("CreateBoardRequest: %v", err)
	}
	if req.Status != "open" {
		t.Fatalf("CreateBoardRequest status: got=%q", req.Status)
	}
	if upd, err := s.BoardRequests().UpdateStatus(ctx, req.RequestID, "approved"); err != nil || upd.Status != "approved" {
		t.Fatalf("UpdateBoardRequestStatus: got=%v err=%v", upd, err)
	}

	// Batch deletes
	if err := s.Forms().DeleteMany(ctx, []string{form.FormID}); err != nil {
		t.Fatalf("DeleteManyForms: %v", err)
	}
	if _, err := s.Forms().Get(ctx, form.FormID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetForm after delete: err=%v", err)
	}
	if err := s.Sessions().DeleteMany(ctx, []string{sess.SessionID}); err != nil {
		t.Fatalf("DeleteManySessions: %v", err)
	}
	if err := s.Sessions().DeleteMany(ctx, nil); err != nil {
		t.Fatalf("DeleteManySessions empty: %v", err)
	}
	// Delete on a missing session is a no-op
	if err := s.Sessions().Delete(ctx, "no-such-session"); err != nil {
		t.Fatalf("DeleteSession missing: %v", err)
	}
}
