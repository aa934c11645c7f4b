package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// fakeStore is a functional in-memory store.Store used by service tests.
// DeleteMany batch sizes are recorded so cascade chunking can be asserted.
type fakeStore struct {
	admins        map[string]*model.Admin
	kids          map[string]*model.Kid
	practitioners map[string]*model.Practitioner
	links         []*model.KidPractitionerLink
	parents       map[string]*model.Parent
	sessions      map[string]*model.Session
	forms         map[string]*model.Form
	meetingForms  map[string]*model.MeetingForm
	goals         map[string]*model.Goal
	library       map[string]*model.GoalLibraryItem
	notifications map[string]*model.Notification
	boardRequests map[string]*model.BoardRequest

	sessionBatches []int
	formBatches    []int

	seq int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		admins:        map[string]*model.Admin{},
		kids:          map[string]*model.Kid{},
		practitioners: map[string]*model.Practitioner{},
		parents:       map[string]*model.Parent{},
		sessions:      map[string]*model.Session{},
		forms:         map[string]*model.Form{},
		meetingForms:  map[string]*model.MeetingForm{},
		goals:         map[string]*model.Goal{},
		library:       map[string]*model.GoalLibraryItem{},
		notifications: map[string]*model.Notification{},
		boardRequests: map[string]*model.BoardRequest{},
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) addKid(kidID string, adminID *string) *model.Kid {
	kid := &model.Kid{KidID: kidID, Name: kidID, AdminID: adminID}
	f.kids[kidID] = kid
	return kid
}

func (f *fakeStore) Admins() store.Admins               { return &fakeAdmins{f} }
func (f *fakeStore) Kids() store.Kids                   { return &fakeKids{f} }
func (f *fakeStore) Practitioners() store.Practitioners { return &fakePractitioners{f} }
func (f *fakeStore) Links() store.Links                 { return &fakeLinks{f} }
func (f *fakeStore) Parents() store.Parents             { return &fakeParents{f} }
func (f *fakeStore) Sessions() store.Sessions           { return &fakeSessions{f} }
func (f *fakeStore) Forms() store.Forms                 { return &fakeForms{f} }
func (f *fakeStore) MeetingForms() store.MeetingForms   { return &fakeMeetingForms{f} }
func (f *fakeStore) Goals() store.Goals                 { return &fakeGoals{f} }
func (f *fakeStore) GoalLibrary() store.GoalLibrary     { return &fakeGoalLibrary{f} }
func (f *fakeStore) Notifications() store.Notifications { return &fakeNotifications{f} }
func (f *fakeStore) BoardRequests() store.BoardRequests { return &fakeBoardRequests{f} }

type fakeAdmins struct{ p *fakeStore }

func (a *fakeAdmins) Create(_ context.Context, adm *model.Admin) (*model.Admin, error) {
	cp := *adm
	if cp.AdminID == "" {
		cp.AdminID = a.p.nextID("admin")
	}
	a.p.admins[cp.AdminID] = &cp
	return &cp, nil
}
func (a *fakeAdmins) Get(_ context.Context, adminID string) (*model.Admin, error) {
	if adm, ok := a.p.admins[adminID]; ok {
		return adm, nil
	}
	return nil, model.ErrNotFound
}
func (a *fakeAdmins) GetByAccessKey(_ context.Context, key string) (*model.Admin, error) {
	for _, adm := range a.p.admins {
		if adm.AccessKey == key {
			return adm, nil
		}
	}
	return nil, model.ErrNotFound
}

type fakeKids struct{ p *fakeStore }

func (k *fakeKids) Create(_ context.Context, kid *model.Kid) (*model.Kid, error) {
	if _, ok := k.p.kids[kid.KidID]; ok {
		return nil, model.ErrConflict
	}
	cp := *kid
	k.p.kids[cp.KidID] = &cp
	return &cp, nil
}
func (k *fakeKids) Get(_ context.Context, kidID string) (*model.Kid, error) {
	if kid, ok := k.p.kids[kidID]; ok {
		return kid, nil
	}
	return nil, model.ErrNotFound
}
func (k *fakeKids) List(_ context.Context) ([]*model.Kid, error) {
	out := make([]*model.Kid, 0, len(k.p.kids))
	for _, kid := range k.p.kids {
		out = append(out, kid)
	}
	return out, nil
}
func (k *fakeKids) ListByAdmin(_ context.Context, adminID string) ([]*model.Kid, error) {
	var out []*model.Kid
	for _, kid := range k.p.kids {
		if kid.AdminID != nil && *kid.AdminID == adminID {
			out = append(out, kid)
		}
	}
	return out, nil
}
func (k *fakeKids) Update(_ context.Context, kidID string, p model.KidPatch) (*model.Kid, error) {
	kid, ok := k.p.kids[kidID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.Name != nil {
		kid.Name = *p.Name
	}
	if p.Age != nil {
		kid.Age = *p.Age
	}
	if p.Gender != nil {
		kid.Gender = *p.Gender
	}
	if p.BoardConfig != nil {
		kid.BoardConfig = p.BoardConfig
	}
	if p.ClearAdmin {
		kid.AdminID = nil
	} else if p.AdminID != nil {
		kid.AdminID = p.AdminID
	}
	return kid, nil
}
func (k *fakeKids) Delete(_ context.Context, kidID string) error {
	if _, ok := k.p.kids[kidID]; !ok {
		return model.ErrNotFound
	}
	delete(k.p.kids, kidID)
	return nil
}

type fakePractitioners struct{ p *fakeStore }

func (pr *fakePractitioners) Create(_ context.Context, p *model.Practitioner) (*model.Practitioner, error) {
	cp := *p
	if cp.PractitionerID == "" {
		cp.PractitionerID = pr.p.nextID("practitioner")
	}
	pr.p.practitioners[cp.PractitionerID] = &cp
	return &cp, nil
}
func (pr *fakePractitioners) Get(_ context.Context, id string) (*model.Practitioner, error) {
	if p, ok := pr.p.practitioners[id]; ok {
		return p, nil
	}
	return nil, model.ErrNotFound
}
func (pr *fakePractitioners) List(_ context.Context) ([]*model.Practitioner, error) {
	out := make([]*model.Practitioner, 0, len(pr.p.practitioners))
	for _, p := range pr.p.practitioners {
		out = append(out, p)
	}
	return out, nil
}
func (pr *fakePractitioners) Update(_ context.Context, id string, p model.PractitionerPatch) (*model.Practitioner, error) {
	existing, ok := pr.p.practitioners[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.Name != nil {
		existing.Name = *p.Name
	}
	if p.Role != nil {
		existing.Role = *p.Role
	}
	if p.Email != nil {
		existing.Email = *p.Email
	}
	if p.Phone != nil {
		existing.Phone = *p.Phone
	}
	return existing, nil
}
func (pr *fakePractitioners) Delete(_ context.Context, id string) error {
	if _, ok := pr.p.practitioners[id]; !ok {
		return model.ErrNotFound
	}
	delete(pr.p.practitioners, id)
	return nil
}

type fakeLinks struct{ p *fakeStore }

func (l *fakeLinks) Link(_ context.Context, kidID, practitionerID string) error {
	for _, link := range l.p.links {
		if link.KidID == kidID && link.PractitionerID == practitionerID {
			return model.ErrConflict
		}
	}
	l.p.links = append(l.p.links, &model.KidPractitionerLink{KidID: kidID, PractitionerID: practitionerID})
	return nil
}
func (l *fakeLinks) Unlink(_ context.Context, kidID, practitionerID string) error {
	for i, link := range l.p.links {
		if link.KidID == kidID && link.PractitionerID == practitionerID {
			l.p.links = append(l.p.links[:i], l.p.links[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}
func (l *fakeLinks) ListByKid(_ context.Context, kidID string) ([]*model.KidPractitionerLink, error) {
	var out []*model.KidPractitionerLink
	for _, link := range l.p.links {
		if link.KidID == kidID {
			out = append(out, link)
		}
	}
	return out, nil
}
func (l *fakeLinks) DeleteByKid(_ context.Context, kidID string) error {
	kept := l.p.links[:0]
	for _, link := range l.p.links {
		if link.KidID != kidID {
			kept = append(kept, link)
		}
	}
	l.p.links = kept
	return nil
}
func (l *fakeLinks) DeleteByPractitioner(_ context.Context, practitionerID string) error {
	kept := l.p.links[:0]
	for _, link := range l.p.links {
		if link.PractitionerID != practitionerID {
			kept = append(kept, link)
		}
	}
	l.p.links = kept
	return nil
}

type fakeParents struct{ p *fakeStore }

func (pa *fakeParents) Create(_ context.Context, p *model.Parent) (*model.Parent, error) {
	cp := *p
	if cp.ParentID == "" {
		cp.ParentID = pa.p.nextID("parent")
	}
	pa.p.parents[cp.ParentID] = &cp
	return &cp, nil
}
func (pa *fakeParents) Get(_ context.Context, id string) (*model.Parent, error) {
	if p, ok := pa.p.parents[id]; ok {
		return p, nil
	}
	return nil, model.ErrNotFound
}
func (pa *fakeParents) ListByKid(_ context.Context, kidID string) ([]*model.Parent, error) {
	var out []*model.Parent
	for _, p := range pa.p.parents {
		if p.KidID == kidID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (pa *fakeParents) Update(_ context.Context, id string, p model.ParentPatch) (*model.Parent, error) {
	existing, ok := pa.p.parents[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.Name != nil {
		existing.Name = *p.Name
	}
	if p.Email != nil {
		existing.Email = *p.Email
	}
	if p.Phone != nil {
		existing.Phone = *p.Phone
	}
	return existing, nil
}
func (pa *fakeParents) Delete(_ context.Context, id string) error {
	if _, ok := pa.p.parents[id]; !ok {
		return model.ErrNotFound
	}
	delete(pa.p.parents, id)
	return nil
}
func (pa *fakeParents) DeleteMany(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(pa.p.parents, id)
	}
	return nil
}

type fakeSessions struct{ p *fakeStore }

func (s *fakeSessions) Create(_ context.Context, sess *model.Session) (*model.Session, error) {
	cp := *sess
	if cp.SessionID == "" {
		cp.SessionID = s.p.nextID("session")
	}
	s.p.sessions[cp.SessionID] = &cp
	return &cp, nil
}
func (s *fakeSessions) Get(_ context.Context, sessionID string) (*model.Session, error) {
	if sess, ok := s.p.sessions[sessionID]; ok {
		return sess, nil
	}
	return nil, model.ErrNotFound
}
func (s *fakeSessions) ListByKid(_ context.Context, req model.ListSessionsRequest) ([]*model.Session, error) {
	var out []*model.Session
	for _, sess := range s.p.sessions {
		if sess.KidID != req.KidID {
			continue
		}
		if req.Status != "" && sess.Status != req.Status {
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}
func (s *fakeSessions) ListByAdmin(_ context.Context, adminID string) ([]*model.Session, error) {
	var out []*model.Session
	for _, sess := range s.p.sessions {
		kid, ok := s.p.kids[sess.KidID]
		if !ok || kid.AdminID == nil || *kid.AdminID != adminID {
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}
func (s *fakeSessions) Update(_ context.Context, sessionID string, p model.SessionPatch) (*model.Session, error) {
	sess, ok := s.p.sessions[sessionID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.TherapistID != nil {
		sess.TherapistID = p.TherapistID
	}
	if p.ScheduledDate != nil {
		sess.ScheduledDate = *p.ScheduledDate
	}
	if p.Status != nil {
		sess.Status = *p.Status
	}
	if p.ClearFormID {
		sess.FormID = nil
	} else if p.FormID != nil {
		sess.FormID = p.FormID
	}
	if p.Type != nil {
		sess.Type = *p.Type
	}
	return sess, nil
}
func (s *fakeSessions) Delete(_ context.Context, sessionID string) error {
	delete(s.p.sessions, sessionID)
	return nil
}
func (s *fakeSessions) DeleteMany(_ context.Context, ids []string) error {
	s.p.sessionBatches = append(s.p.sessionBatches, len(ids))
	for _, id := range ids {
		delete(s.p.sessions, id)
	}
	return nil
}

type fakeForms struct{ p *fakeStore }

func (fo *fakeForms) Create(_ context.Context, f *model.Form) (*model.Form, error) {
	cp := *f
	if cp.FormID == "" {
		cp.FormID = fo.p.nextID("form")
	}
	if f.GoalsWorkedOn != nil {
		cp.GoalsWorkedOn = append([]model.GoalSnapshot{}, f.GoalsWorkedOn...)
	}
	fo.p.forms[cp.FormID] = &cp
	return &cp, nil
}
func (fo *fakeForms) Get(_ context.Context, formID string) (*model.Form, error) {
	if f, ok := fo.p.forms[formID]; ok {
		return f, nil
	}
	return nil, model.ErrNotFound
}
func (fo *fakeForms) GetBySession(_ context.Context, sessionID string) (*model.Form, error) {
	for _, f := range fo.p.forms {
		if f.SessionID == sessionID {
			return f, nil
		}
	}
	return nil, model.ErrNotFound
}
func (fo *fakeForms) ListByKid(_ context.Context, kidID string) ([]*model.Form, error) {
	var out []*model.Form
	for _, f := range fo.p.forms {
		if f.KidID == kidID {
			out = append(out, f)
		}
	}
	return out, nil
}
func (fo *fakeForms) ListByKidBetween(_ context.Context, kidID string, from, to time.Time) ([]*model.Form, error) {
	var out []*model.Form
	for _, f := range fo.p.forms {
		if f.KidID != kidID {
			continue
		}
		if f.SessionDate.Before(from) || !f.SessionDate.Before(to) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
func (fo *fakeForms) Update(_ context.Context, formID string, p model.FormPatch) (*model.Form, error) {
	f, ok := fo.p.forms[formID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.TherapistName != nil {
		f.TherapistName = *p.TherapistName
	}
	if p.SessionDate != nil {
		f.SessionDate = *p.SessionDate
	}
	if p.Cooperation != nil {
		f.Cooperation = *p.Cooperation
	}
	if p.SessionDuration != nil {
		f.SessionDuration = *p.SessionDuration
	}
	if p.SittingDuration != nil {
		f.SittingDuration = *p.SittingDuration
	}
	if p.Communication != nil {
		f.Communication = *p.Communication
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
	if p.GoalsWorkedOn != nil {
		f.GoalsWorkedOn = p.GoalsWorkedOn
	}
	return f, nil
}
func (fo *fakeForms) Delete(_ context.Context, formID string) error {
	if _, ok := fo.p.forms[formID]; !ok {
		return model.ErrNotFound
	}
	delete(fo.p.forms, formID)
	return nil
}
func (fo *fakeForms) DeleteMany(_ context.Context, ids []string) error {
	fo.p.formBatches = append(fo.p.formBatches, len(ids))
	for _, id := range ids {
		delete(fo.p.forms, id)
	}
	return nil
}

type fakeMeetingForms struct{ p *fakeStore }

func (mf *fakeMeetingForms) Create(_ context.Context, f *model.MeetingForm) (*model.MeetingForm, error) {
	cp := *f
	if cp.FormID == "" {
		cp.FormID = mf.p.nextID("meeting-form")
	}
	mf.p.meetingForms[cp.FormID] = &cp
	return &cp, nil
}
func (mf *fakeMeetingForms) Get(_ context.Context, formID string) (*model.MeetingForm, error) {
	if f, ok := mf.p.meetingForms[formID]; ok {
		return f, nil
	}
	return nil, model.ErrNotFound
}
func (mf *fakeMeetingForms) GetBySession(_ context.Context, sessionID string) (*model.MeetingForm, error) {
	for _, f := range mf.p.meetingForms {
		if f.SessionID == sessionID {
			return f, nil
		}
	}
	return nil, model.ErrNotFound
}
func (mf *fakeMeetingForms) ListByKid(_ context.Context, kidID string) ([]*model.MeetingForm, error) {
	var out []*model.MeetingForm
	for _, f := range mf.p.meetingForms {
		if f.KidID == kidID {
			out = append(out, f)
		}
	}
	return out, nil
}
func (mf *fakeMeetingForms) Update(_ context.Context, formID string, p model.MeetingFormPatch) (*model.MeetingForm, error) {
	f, ok := mf.p.meetingForms[formID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.SessionDate != nil {
		f.SessionDate = *p.SessionDate
	}
	if p.Attendees != nil {
		f.Attendees = p.Attendees
	}
	if p.Summary != nil {
		f.Summary = *p.Summary
	}
	if p.BehaviorNotes != nil {
		f.BehaviorNotes = *p.BehaviorNotes
	}
	if p.Decisions != nil {
		f.Decisions = *p.Decisions
	}
	if p.NextSteps != nil {
		f.NextSteps = *p.NextSteps
	}
	return f, nil
}
func (mf *fakeMeetingForms) Delete(_ context.Context, formID string) error {
	if _, ok := mf.p.meetingForms[formID]; !ok {
		return model.ErrNotFound
	}
	delete(mf.p.meetingForms, formID)
	return nil
}
func (mf *fakeMeetingForms) DeleteMany(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(mf.p.meetingForms, id)
	}
	return nil
}

type fakeGoals struct{ p *fakeStore }

func (g *fakeGoals) Create(_ context.Context, goal *model.Goal) (*model.Goal, error) {
	cp := *goal
	if cp.GoalID == "" {
		cp.GoalID = g.p.nextID("goal")
	}
	g.p.goals[cp.GoalID] = &cp
	return &cp, nil
}
func (g *fakeGoals) Get(_ context.Context, goalID string) (*model.Goal, error) {
	if goal, ok := g.p.goals[goalID]; ok {
		return goal, nil
	}
	return nil, model.ErrNotFound
}
func (g *fakeGoals) ListByKid(_ context.Context, kidID string, activeOnly bool) ([]*model.Goal, error) {
	var out []*model.Goal
	for _, goal := range g.p.goals {
		if goal.KidID != kidID {
			continue
		}
		if activeOnly && !goal.IsActive {
			continue
		}
		out = append(out, goal)
	}
	return out, nil
}
func (g *fakeGoals) ListActive(_ context.Context) ([]*model.Goal, error) {
	var out []*model.Goal
	for _, goal := range g.p.goals {
		if goal.IsActive {
			out = append(out, goal)
		}
	}
	return out, nil
}
func (g *fakeGoals) Update(_ context.Context, goalID string, p model.GoalPatch) (*model.Goal, error) {
	goal, ok := g.p.goals[goalID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if p.Title != nil {
		goal.Title = *p.Title
	}
	if p.CategoryID != nil {
		goal.CategoryID = *p.CategoryID
	}
	return goal, nil
}
func (g *fakeGoals) Deactivate(_ context.Context, goalID string, at time.Time) (*model.Goal, error) {
	goal, ok := g.p.goals[goalID]
	if !ok {
		return nil, model.ErrNotFound
	}
	goal.IsActive = false
	goal.DeactivationTime = &at
	return goal, nil
}
func (g *fakeGoals) DeleteMany(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(g.p.goals, id)
	}
	return nil
}

type fakeGoalLibrary struct{ p *fakeStore }

func (gl *fakeGoalLibrary) Insert(_ context.Context, item *model.GoalLibraryItem) (*model.GoalLibraryItem, error) {
	cp := *item
	if cp.ItemID == "" {
		cp.ItemID = gl.p.nextID("library-item")
	}
	gl.p.library[cp.ItemID] = &cp
	return &cp, nil
}
func (gl *fakeGoalLibrary) FindByTitleCategory(_ context.Context, title, categoryID string) (*model.GoalLibraryItem, error) {
	for _, item := range gl.p.library {
		if item.Title == title && item.CategoryID == categoryID {
			return item, nil
		}
	}
	return nil, model.ErrNotFound
}
func (gl *fakeGoalLibrary) IncrementUsage(_ context.Context, itemID string) error {
	item, ok := gl.p.library[itemID]
	if !ok {
		return model.ErrNotFound
	}
	item.UsageCount++
	return nil
}
func (gl *fakeGoalLibrary) List(_ context.Context) ([]*model.GoalLibraryItem, error) {
	out := make([]*model.GoalLibraryItem, 0, len(gl.p.library))
	for _, item := range gl.p.library {
		out = append(out, item)
	}
	return out, nil
}

type fakeNotifications struct{ p *fakeStore }

func (n *fakeNotifications) Create(_ context.Context, note *model.Notification) (*model.Notification, error) {
	cp := *note
	if cp.NotificationID == "" {
		cp.NotificationID = n.p.nextID("notification")
	}
	n.p.notifications[cp.NotificationID] = &cp
	return &cp, nil
}
func (n *fakeNotifications) Get(_ context.Context, id string) (*model.Notification, error) {
	if note, ok := n.p.notifications[id]; ok {
		return note, nil
	}
	return nil, model.ErrNotFound
}
func (n *fakeNotifications) ListForRecipient(_ context.Context, recipientType, recipientID string) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, note := range n.p.notifications {
		if note.RecipientType == recipientType && note.RecipientID == recipientID && !note.Dismissed {
			out = append(out, note)
		}
	}
	return out, nil
}
func (n *fakeNotifications) ListForAdmin(_ context.Context, adminID string) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, note := range n.p.notifications {
		if note.AdminID == adminID && !note.DismissedByAdmin {
			out = append(out, note)
		}
	}
	return out, nil
}
func (n *fakeNotifications) SetDismissed(_ context.Context, id string) error {
	note, ok := n.p.notifications[id]
	if !ok {
		return model.ErrNotFound
	}
	note.Dismissed = true
	return nil
}
func (n *fakeNotifications) SetDismissedByAdmin(_ context.Context, id string) error {
	note, ok := n.p.notifications[id]
	if !ok {
		return model.ErrNotFound
	}
	note.DismissedByAdmin = true
	return nil
}

type fakeBoardRequests struct{ p *fakeStore }

func (b *fakeBoardRequests) Create(_ context.Context, req *model.BoardRequest) (*model.BoardRequest, error) {
	cp := *req
	if cp.RequestID == "" {
		cp.RequestID = b.p.nextID("board-request")
	}
	b.p.boardRequests[cp.RequestID] = &cp
	return &cp, nil
}
func (b *fakeBoardRequests) Get(_ context.Context, id string) (*model.BoardRequest, error) {
	if req, ok := b.p.boardRequests[id]; ok {
		return req, nil
	}
	return nil, model.ErrNotFound
}
func (b *fakeBoardRequests) ListByKid(_ context.Context, kidID string) ([]*model.BoardRequest, error) {
	var out []*model.BoardRequest
	for _, req := range b.p.boardRequests {
		if req.KidID == kidID {
			out = append(out, req)
		}
	}
	return out, nil
}
func (b *fakeBoardRequests) UpdateStatus(_ context.Context, id, status string) (*model.BoardRequest, error) {
	req, ok := b.p.boardRequests[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	req.Status = status
	return req, nil
}
func (b *fakeBoardRequests) Delete(_ context.Context, id string) error {
	if _, ok := b.p.boardRequests[id]; !ok {
		return model.ErrNotFound
	}
	delete(b.p.boardRequests, id)
	return nil
}
func (b *fakeBoardRequests) DeleteMany(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(b.p.boardRequests, id)
	}
	return nil
}
