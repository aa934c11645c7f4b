// Package sqlite provides a SQLite-backed store.Store using modernc.org/sqlite.
// Timestamps are persisted as integer unix-nanoseconds; document-shaped
// fields (board config, goal snapshots, attendees) are persisted as JSON text.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &sqlStore{db: db} }

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Admins() store.Admins               { return &admins{db: s.db} }
func (s *sqlStore) Kids() store.Kids                   { return &kids{db: s.db} }
func (s *sqlStore) Practitioners() store.Practitioners { return &practitioners{db: s.db} }
func (s *sqlStore) Links() store.Links                 { return &links{db: s.db} }
func (s *sqlStore) Parents() store.Parents             { return &parents{db: s.db} }
func (s *sqlStore) Sessions() store.Sessions           { return &sessions{db: s.db} }
func (s *sqlStore) Forms() store.Forms                 { return &forms{db: s.db} }
func (s *sqlStore) MeetingForms() store.MeetingForms   { return &meetingForms{db: s.db} }
func (s *sqlStore) Goals() store.Goals                 { return &goals{db: s.db} }
func (s *sqlStore) GoalLibrary() store.GoalLibrary     { return &goalLibrary{db: s.db} }
func (s *sqlStore) Notifications() store.Notifications { return &notifications{db: s.db} }
func (s *sqlStore) BoardRequests() store.BoardRequests { return &boardRequests{db: s.db} }

// HealthPing verifies database connectivity.
func (s *sqlStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

// --- helpers ---

func nano(t time.Time) int64 { return t.UTC().UnixNano() }

func fromNano(n int64) time.Time { return time.Unix(0, n).UTC() }

func nanoOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return nano(*t)
}

func timeOrNil(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromNano(n.Int64)
	return &t
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

func ensureCreation(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func deleteMany(ctx context.Context, db *sql.DB, table, column string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+column+" IN ("+placeholders(len(ids))+")", args...)
	return err
}

// --- Admins ---

type admins struct{ db *sql.DB }

func (a *admins) Create(ctx context.Context, m *model.Admin) (*model.Admin, error) {
	out := *m
	if out.AdminID == "" {
		out.AdminID = uuid.New().String()
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	_, err := a.db.ExecContext(ctx, `
        INSERT INTO admins (admin_id, name, email, access_key, creation_time)
        VALUES (?,?,?,?,?)
    `, out.AdminID, out.Name, out.Email, out.AccessKey, nano(out.CreationTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *admins) scanRow(row *sql.Row) (*model.Admin, error) {
	var out model.Admin
	var created int64
	if err := row.Scan(&out.AdminID, &out.Name, &out.Email, &out.AccessKey, &created); err != nil {
		return nil, mapNotFound(err)
	}
	out.CreationTime = fromNano(created)
	return &out, nil
}

func (a *admins) Get(ctx context.Context, adminID string) (*model.Admin, error) {
	return a.scanRow(a.db.QueryRowContext(ctx, `
        SELECT admin_id, name, email, access_key, creation_time FROM admins WHERE admin_id = ?
    `, adminID))
}

func (a *admins) GetByAccessKey(ctx context.Context, key string) (*model.Admin, error) {
	return a.scanRow(a.db.QueryRowContext(ctx, `
        SELECT admin_id, name, email, access_key, creation_time FROM admins WHERE access_key = ?
    `, key))
}

// --- Kids ---

type kids struct{ db *sql.DB }

func marshalJSON(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (k *kids) Create(ctx context.Context, m *model.Kid) (*model.Kid, error) {
	out := *m
	out.CreationTime = ensureCreation(out.CreationTime)
	out.UpdateTime = out.CreationTime
	cfg, err := marshalJSON(out.BoardConfig)
	if err != nil {
		return nil, err
	}
	var adminID interface{}
	if out.AdminID != nil {
		adminID = *out.AdminID
	}
	_, err = k.db.ExecContext(ctx, `
        INSERT INTO kids (kid_id, name, age, gender, admin_id, board_config, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?,?)
    `, out.KidID, out.Name, out.Age, out.Gender, adminID, cfg, nano(out.CreationTime), nano(out.UpdateTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanKid(scan func(dest ...interface{}) error) (*model.Kid, error) {
	var out model.Kid
	var adminID sql.NullString
	var cfg sql.NullString
	var created, updated int64
	if err := scan(&out.KidID, &out.Name, &out.Age, &out.Gender, &adminID, &cfg, &created, &updated); err != nil {
		return nil, mapNotFound(err)
	}
	if adminID.Valid {
		out.AdminID = &adminID.String
	}
	if cfg.Valid && cfg.String != "" {
		if err := json.Unmarshal([]byte(cfg.String), &out.BoardConfig); err != nil {
			return nil, err
		}
	}
	out.CreationTime = fromNano(created)
	out.UpdateTime = fromNano(updated)
	return &out, nil
}

const kidColumns = "kid_id, name, age, gender, admin_id, board_config, creation_time, update_time"

func (k *kids) Get(ctx context.Context, kidID string) (*model.Kid, error) {
	row := k.db.QueryRowContext(ctx, "SELECT "+kidColumns+" FROM kids WHERE kid_id = ?", kidID)
	return scanKid(row.Scan)
}

func (k *kids) queryKids(ctx context.Context, q string, args ...interface{}) ([]*model.Kid, error) {
	rows, err := k.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Kid
	for rows.Next() {
		kid, err := scanKid(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, kid)
	}
	return out, rows.Err()
}

func (k *kids) List(ctx context.Context) ([]*model.Kid, error) {
	return k.queryKids(ctx, "SELECT "+kidColumns+" FROM kids ORDER BY creation_time")
}

func (k *kids) ListByAdmin(ctx context.Context, adminID string) ([]*model.Kid, error) {
	return k.queryKids(ctx, "SELECT "+kidColumns+" FROM kids WHERE admin_id = ? ORDER BY creation_time", adminID)
}

func (k *kids) Update(ctx context.Context, kidID string, p model.KidPatch) (*model.Kid, error) {
	var sets []string
	var args []interface{}
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Age != nil {
		sets = append(sets, "age = ?")
		args = append(args, *p.Age)
	}
	if p.Gender != nil {
		sets = append(sets, "gender = ?")
		args = append(args, *p.Gender)
	}
	if p.BoardConfig != nil {
		cfg, err := marshalJSON(p.BoardConfig)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "board_config = ?")
		args = append(args, cfg)
	}
	if p.ClearAdmin {
		sets = append(sets, "admin_id = NULL")
	} else if p.AdminID != nil {
		sets = append(sets, "admin_id = ?")
		args = append(args, *p.AdminID)
	}
	sets = append(sets, "update_time = ?")
	args = append(args, nano(time.Now()))
	args = append(args, kidID)
	res, err := k.db.ExecContext(ctx, "UPDATE kids SET "+strings.Join(sets, ", ")+" WHERE kid_id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return k.Get(ctx, kidID)
}

func (k *kids) Delete(ctx context.Context, kidID string) error {
	_, err := k.db.ExecContext(ctx, "DELETE FROM kids WHERE kid_id = ?", kidID)
	return err
}

// --- Practitioners ---

type practitioners struct{ db *sql.DB }

const practitionerColumns = "practitioner_id, name, role, email, phone, creation_time"

func (p *practitioners) Create(ctx context.Context, m *model.Practitioner) (*model.Practitioner, error) {
	out := *m
	if out.PractitionerID == "" {
		out.PractitionerID = uuid.New().String()
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO practitioners (practitioner_id, name, role, email, phone, creation_time)
        VALUES (?,?,?,?,?,?)
    `, out.PractitionerID, out.Name, out.Role, out.Email, out.Phone, nano(out.CreationTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanPractitioner(scan func(dest ...interface{}) error) (*model.Practitioner, error) {
	var out model.Practitioner
	var created int64
	if err := scan(&out.PractitionerID, &out.Name, &out.Role, &out.Email, &out.Phone, &created); err != nil {
		return nil, mapNotFound(err)
	}
	out.CreationTime = fromNano(created)
	return &out, nil
}

func (p *practitioners) Get(ctx context.Context, practitionerID string) (*model.Practitioner, error) {
	row := p.db.QueryRowContext(ctx, "SELECT "+practitionerColumns+" FROM practitioners WHERE practitioner_id = ?", practitionerID)
	return scanPractitioner(row.Scan)
}

func (p *practitioners) List(ctx context.Context) ([]*model.Practitioner, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT "+practitionerColumns+" FROM practitioners ORDER BY creation_time")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Practitioner
	for rows.Next() {
		pr, err := scanPractitioner(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

func (p *practitioners) Update(ctx context.Context, practitionerID string, patch model.PractitionerPatch) (*model.Practitioner, error) {
	var sets []string
	var args []interface{}
	for col, v := range map[string]*string{"name": patch.Name, "role": patch.Role, "email": patch.Email, "phone": patch.Phone} {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	if len(sets) == 0 {
		return p.Get(ctx, practitionerID)
	}
	args = append(args, practitionerID)
	res, err := p.db.ExecContext(ctx, "UPDATE practitioners SET "+strings.Join(sets, ", ")+" WHERE practitioner_id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.Get(ctx, practitionerID)
}

func (p *practitioners) Delete(ctx context.Context, practitionerID string) error {
	_, err := p.db.ExecContext(ctx, "DELETE FROM practitioners WHERE practitioner_id = ?", practitionerID)
	return err
}

// --- Links ---

type links struct{ db *sql.DB }

func (l *links) Link(ctx context.Context, kidID, practitionerID string) error {
	var exists int
	err := l.db.QueryRowContext(ctx, `
        SELECT COUNT(1) FROM kid_practitioners WHERE kid_id = ? AND practitioner_id = ?
    `, kidID, practitionerID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return model.ErrConflict
	}
	_, err = l.db.ExecContext(ctx, `
        INSERT INTO kid_practitioners (kid_id, practitioner_id, creation_time) VALUES (?,?,?)
    `, kidID, practitionerID, nano(time.Now()))
	return err
}

func (l *links) Unlink(ctx context.Context, kidID, practitionerID string) error {
	_, err := l.db.ExecContext(ctx, `
        DELETE FROM kid_practitioners WHERE kid_id = ? AND practitioner_id = ?
    `, kidID, practitionerID)
	return err
}

func (l *links) ListByKid(ctx context.Context, kidID string) ([]*model.KidPractitionerLink, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT kid_id, practitioner_id, creation_time FROM kid_practitioners WHERE kid_id = ?
    `, kidID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.KidPractitionerLink
	for rows.Next() {
		var link model.KidPractitionerLink
		var created int64
		if err := rows.Scan(&link.KidID, &link.PractitionerID, &created); err != nil {
			return nil, err
		}
		link.CreationTime = fromNano(created)
		out = append(out, &link)
	}
	return out, rows.Err()
}

func (l *links) DeleteByKid(ctx context.Context, kidID string) error {
	_, err := l.db.ExecContext(ctx, "DELETE FROM kid_practitioners WHERE kid_id = ?", kidID)
	return err
}

func (l *links) DeleteByPractitioner(ctx context.Context, practitionerID string) error {
	_, err := l.db.ExecContext(ctx, "DELETE FROM kid_practitioners WHERE practitioner_id = ?", practitionerID)
	return err
}

// --- Parents ---

type parents struct{ db *sql.DB }

const parentColumns = "parent_id, kid_id, name, email, phone, creation_time"

func (p *parents) Create(ctx context.Context, m *model.Parent) (*model.Parent, error) {
	out := *m
	if out.ParentID == "" {
		out.ParentID = uuid.New().String()
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO parents (parent_id, kid_id, name, email, phone, creation_time)
        VALUES (?,?,?,?,?,?)
    `, out.ParentID, out.KidID, out.Name, out.Email, out.Phone, nano(out.CreationTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanParent(scan func(dest ...interface{}) error) (*model.Parent, error) {
	var out model.Parent
	var created int64
	if err := scan(&out.ParentID, &out.KidID, &out.Name, &out.Email, &out.Phone, &created); err != nil {
		return nil, mapNotFound(err)
	}
	out.CreationTime = fromNano(created)
	return &out, nil
}

func (p *parents) Get(ctx context.Context, parentID string) (*model.Parent, error) {
	row := p.db.QueryRowContext(ctx, "SELECT "+parentColumns+" FROM parents WHERE parent_id = ?", parentID)
	return scanParent(row.Scan)
}

func (p *parents) ListByKid(ctx context.Context, kidID string) ([]*model.Parent, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT "+parentColumns+" FROM parents WHERE kid_id = ? ORDER BY creation_time", kidID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Parent
	for rows.Next() {
		pr, err := scanParent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

func (p *parents) Update(ctx context.Context, parentID string, patch model.ParentPatch) (*model.Parent, error) {
	var sets []string
	var args []interface{}
	for col, v := range map[string]*string{"name": patch.Name, "email": patch.Email, "phone": patch.Phone} {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	if len(sets) == 0 {
		return p.Get(ctx, parentID)
	}
	args = append(args, parentID)
	res, err := p.db.ExecContext(ctx, "UPDATE parents SET "+strings.Join(sets, ", ")+" WHERE parent_id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.Get(ctx, parentID)
}

func (p *parents) Delete(ctx context.Context, parentID string) error {
	_, err := p.db.ExecContext(ctx, "DELETE FROM parents WHERE parent_id = ?", parentID)
	return err
}

func (p *parents) DeleteMany(ctx context.Context, ids []string) error {
	return deleteMany(ctx, p.db, "parents", "parent_id", ids)
}

// --- Sessions ---

type sessions struct{ db *sql.DB }

const sessionColumns = "session_id, kid_id, therapist_id, scheduled_date, type, status, form_id, creation_time"

func (s *sessions) Create(ctx context.Context, m *model.Session) (*model.Session, error) {
	out := *m
	if out.SessionID == "" {
		out.SessionID = uuid.New().String()
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	var therapistID, formID interface{}
	if out.TherapistID != nil {
		therapistID = *out.TherapistID
	}
	if out.FormID != nil {
		formID = *out.FormID
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions (session_id, kid_id, therapist_id, scheduled_date, type, status, form_id, creation_time)
        VALUES (?,?,?,?,?,?,?,?)
    `, out.SessionID, out.KidID, therapistID, nano(out.ScheduledDate), out.Type, out.Status, formID, nano(out.CreationTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanSession(scan func(dest ...interface{}) error) (*model.Session, error) {
	var out model.Session
	var therapistID, formID sql.NullString
	var scheduled, created int64
	if err := scan(&out.SessionID, &out.KidID, &therapistID, &scheduled, &out.Type, &out.Status, &formID, &created); err != nil {
		return nil, mapNotFound(err)
	}
	if therapistID.Valid {
		out.TherapistID = &therapistID.String
	}
	if formID.Valid {
		out.FormID = &formID.String
	}
	out.ScheduledDate = fromNano(scheduled)
	out.CreationTime = fromNano(created)
	return &out, nil
}

func (s *sessions) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE session_id = ?", sessionID)
	return scanSession(row.Scan)
}

func (s *sessions) querySessions(ctx context.Context, q string, args ...interface{}) ([]*model.Session, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Session
	for rows.Next() {
		sess, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *sessions) ListByKid(ctx context.Context, req model.ListSessionsRequest) ([]*model.Session, error) {
	if req.Status != "" {
		return s.querySessions(ctx,
			"SELECT "+sessionColumns+" FROM sessions WHERE kid_id = ? AND status = ? ORDER BY scheduled_date",
			req.KidID, req.Status)
	}
	return s.querySessions(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE kid_id = ? ORDER BY scheduled_date", req.KidID)
}

func (s *sessions) ListByAdmin(ctx context.Context, adminID string) ([]*model.Session, error) {
	return s.querySessions(ctx, `
        SELECT s.session_id, s.kid_id, s.therapist_id, s.scheduled_date, s.type, s.status, s.form_id, s.creation_time
        FROM sessions s JOIN kids k ON k.kid_id = s.kid_id
        WHERE k.admin_id = ? ORDER BY s.scheduled_date
    `, adminID)
}

func (s *sessions) Update(ctx context.Context, sessionID string, p model.SessionPatch) (*model.Session, error) {
	var sets []string
	var args []interface{}
	if p.TherapistID != nil {
		sets = append(sets, "therapist_id = ?")
		args = append(args, *p.TherapistID)
	}
	if p.ScheduledDate != nil {
		sets = append(sets, "scheduled_date = ?")
		args = append(args, nano(*p.ScheduledDate))
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.ClearFormID {
		sets = append(sets, "form_id = NULL")
	} else if p.FormID != nil {
		sets = append(sets, "form_id = ?")
		args = append(args, *p.FormID)
	}
	if p.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *p.Type)
	}
	if len(sets) == 0 {
		return s.Get(ctx, sessionID)
	}
	args = append(args, sessionID)
	res, err := s.db.ExecContext(ctx, "UPDATE sessions SET "+strings.Join(sets, ", ")+" WHERE session_id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return s.Get(ctx, sessionID)
}

func (s *sessions) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_id = ?", sessionID)
	return err
}

func (s *sessions) DeleteMany(ctx context.Context, ids []string) error {
	return deleteMany(ctx, s.db, "sessions", "session_id", ids)
}

// --- Forms ---

type forms struct{ db *sql.DB }

const formColumns = "form_id, session_id, kid_id, therapist_name, session_date, cooperation, session_duration, sitting_duration, communication, notes, goals_worked_on, creation_time, update_time"

func (f *forms) Create(ctx context.Context, m *model.Form) (*model.Form, error) {
	out := *m
	if out.FormID == "" {
		out.FormID = uuid.New().String()
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	out.UpdateTime = out.CreationTime
	if out.GoalsWorkedOn == nil {
		out.GoalsWorkedOn = []model.GoalSnapshot{}
	}
	snapshots, err := json.Marshal(out.GoalsWorkedOn)
	if err != nil {
		return nil, err
	}
	_, err = f.db.ExecContext(ctx, `
        INSERT INTO forms (form_id, session_id, kid_id, therapist_name, session_date, cooperation,
            session_duration, sitting_duration, communication, notes, goals_worked_on, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
    `, out.FormID, out.SessionID, out.KidID, out.TherapistName, nano(out.SessionDate), out.Cooperation,
		out.SessionDuration, out.SittingDuration, out.Communication, out.Notes, string(snapshots),
		nano(out.CreationTime), nano(out.UpdateTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanForm(scan func(dest ...interface{}) error) (*model.Form, error) {
	var out model.Form
	var sessionDate, created, updated int64
	var snapshots string
	if err := scan(&out.FormID, &out.SessionID, &out.KidID, &out.TherapistName, &sessionDate, &out.Cooperation,
		&out.SessionDuration, &out.SittingDuration, &out.Communication, &out.Notes, &snapshots,
		&created, &updated); err != nil {
		return nil, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(snapshots), &out.GoalsWorkedOn); err != nil {
		return nil, err
	}
	out.SessionDate = fromNano(sessionDate)
	out.CreationTime = fromNano(created)
	out.UpdateTime = fromNano(updated)
	return &out, nil
}

func (f *forms) Get(ctx context.Context, formID string) (*model.Form, error) {
	row := f.db.QueryRowContext(ctx, "SELECT "+formColumns+" FROM forms WHERE form_id = ?", formID)
	return scanForm(row.Scan)
}

func (f *forms) GetBySession(ctx context.Context, sessionID string) (*model.Form, error) {
	row := f.db.QueryRowContext(ctx, "SELECT "+formColumns+" FROM forms WHERE session_id = ?", sessionID)
	return scanForm(row.Scan)
}

func (f *forms) queryForms(ctx context.Context, q string, args ...interface{}) ([]*model.Form, error) {
	rows, err := f.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Form
	for rows.Next() {
		form, err := scanForm(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, form)
	}
	return out, rows.Err()
}

func (f *forms) ListByKid(ctx context.Context, kidID string) ([]*model.Form, error) {
	return f.queryForms(ctx, "SELECT "+formColumns+" FROM forms WHERE kid_id = ? ORDER BY session_date", kidID)
}

func (f *forms) ListByKidBetween(ctx context.Context, kidID string, from, to time.Time) ([]*model.Form, error) {
	return f.queryForms(ctx,
		"SELECT "+formColumns+" FROM forms WHERE kid_id = ? AND session_date >= ? AND session_date < ? ORDER BY session_date",
		kidID, nano(from), nano(to))
}

func (f *forms) Update(ctx context.Context, formID string, p model.FormPatch) (*model.Form, error) {
	var sets []string
	var args []interface{}
	if p.TherapistName != nil {
		sets = append(sets, "therapist_name = ?")
		args = append(args, *p.TherapistName)
	}
	if p.SessionDate != nil {
		sets = append(sets, "session_date = ?")
		args = append(args, nano(*p.SessionDate))
	}
	if p.Cooperation != nil {
		sets = append(sets, "cooperation = ?")
		args = append(args, *p.Cooperation)
	}
	if p.SessionDuration != nil {
		sets = append(sets, "session_duration = ?")
		args = append(args, *p.SessionDuration)
	}
	if p.SittingDuration != nil {
		sets = append(sets, "sitting_duration = ?")
		args = append(args, *p.SittingDuration)
	}
	if p.Communication != nil {
		sets = append(sets, "communication = ?")
		args = append(args, *p.Communication)
	}
	if p.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *p.Notes)
	}
	if p.GoalsWorkedOn != nil {
		snapshots, err := json.Marshal(p.GoalsWorkedOn)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "goals_worked_on = ?")
		args = append(args, string(snapshots))
	}
	if len(sets) == 0 {
		return f.Get(ctx, formID)
	}
	sets = append(sets, "update_time = ?")
	args = append(args, nano(time.Now()))
	args = append(args, formID)
	res, err := f.db.ExecContext(ctx, "UPDATE forms SET "+strings.Join(sets, ", ")+" WHERE form_id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return f.Get(ctx, formID)
}

func (f *forms) Delete(ctx context.Context, formID string) error {
	_, err := f.db.ExecContext(ctx, "DELETE FROM forms WHERE form_id = ?", formID)
	return err
}

func (f *forms) DeleteMany(ctx context.Context, ids []string) error {
	return deleteMany(ctx, f.db, "forms", "form_id", ids)
}

// --- MeetingForms ---

type meetingForms struct{ db *sql.DB }

const meetingFormColumns = "form_id, session_id, kid_id, session_date, attendees, summary, behavior_notes, decisions, next_steps, creation_time, update_time"

func (f *meetingForms) Create(ctx context.Context, m *model.MeetingForm) (*model.MeetingForm, error) {
	out := *m
	if out.FormID == "" {
		out.FormID = uuid.New().String()
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	out.UpdateTime = out.CreationTime
	if out.Attendees == nil {
		out.Attendees = []string{}
	}
	attendees, err := json.Marshal(out.Attendees)
	if err != nil {
		return nil, err
	}
	_, err = f.db.ExecContext(ctx, `
        INSERT INTO meeting_forms (form_id, session_id, kid_id, session_date, attendees, summary,
            behavior_notes, decisions, next_steps, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?,?,?,?,?)
    `, out.FormID, out.SessionID, out.KidID, nano(out.SessionDate), string(attendees), out.Summary,
		out.BehaviorNotes, out.Decisions, out.NextSteps, nano(out.CreationTime), nano(out.UpdateTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanMeetingForm(scan func(dest ...interface{}) error) (*model.MeetingForm, error) {
	var out model.MeetingForm
	var sessionDate, created, updated int64
	var attendees string
	if err := scan(&out.FormID, &out.SessionID, &out.KidID, &sessionDate, &attendees, &out.Summary,
		&out.BehaviorNotes, &out.Decisions, &out.NextSteps, &created, &updated); err != nil {
		return nil, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(attendees), &out.Attendees); err != nil {
		return nil, err
	}
	out.SessionDate = fromNano(sessionDate)
	out.CreationTime = fromNano(created)
	out.UpdateTime = fromNano(updated)
	return &out, nil
}

func (f *meetingForms) Get(ctx context.Context, formID string) (*model.MeetingForm, error) {
	row := f.db.QueryRowContext(ctx, "SELECT "+meetingFormColumns+" FROM meeting_forms WHERE form_id = ?", formID)
	return scanMeetingForm(row.Scan)
}

func (f *meetingForms) GetBySession(ctx context.Context, sessionID string) (*model.MeetingForm, error) {
	row := f.db.QueryRowContext(ctx, "SELECT "+meetingFormColumns+" FROM meeting_forms WHERE session_id = ?", sessionID)
	return scanMeetingForm(row.Scan)
}

func (f *meetingForms) ListByKid(ctx context.Context, kidID string) ([]*model.MeetingForm, error) {
	rows, err := f.db.QueryContext(ctx, "SELECT "+meetingFormColumns+" FROM meeting_forms WHERE kid_id = ? ORDER BY session_date", kidID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.MeetingForm
	for rows.Next() {
		form, err := scanMeetingForm(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, form)
	}
	return out, rows.Err()
}

func (f *meetingForms) Update(ctx context.Context, formID string, p model.MeetingFormPatch) (*model.MeetingForm, error) {
	var sets []string
	var args []interface{}
	if p.SessionDate != nil {
		sets = append(sets, "session_date = ?")
		args = append(args, nano(*p.SessionDate))
	}
	if p.Attendees != nil {
		attendees, err := json.Marshal(p.Attendees)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "attendees = ?")
		args = append(args, string(attendees))
	}
	if p.Summary != nil {
		sets = append(sets, "summary = ?")
		args = append(args, *p.Summary)
	}
	if p.BehaviorNotes != nil {
		sets = append(sets, "behavior_notes = ?")
		args = append(args, *p.BehaviorNotes)
	}
	if p.Decisions != nil {
		sets = append(sets, "decisions = ?")
		args = append(args, *p.Decisions)
	}
	if p.NextSteps != nil {
		sets = append(sets, "next_steps = ?")
		args = append(args, *p.NextSteps)
	}
	if len(sets) == 0 {
		return f.Get(ctx, formID)
	}
	sets = append(sets, "update_time = ?")
	args = append(args, nano(time.Now()))
	args = append(args, formID)
	res, err := f.db.ExecContext(ctx, "UPDATE meeting_forms SET "+strings.Join(sets, ", ")+" WHERE form_id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return f.Get(ctx, formID)
}

func (f *meetingForms) Delete(ctx context.Context, formID string) error {
	_, err := f.db.ExecContext(ctx, "DELETE FROM meeting_forms WHERE form_id = ?", formID)
	return err
}

func (f *meetingForms) DeleteMany(ctx context.Context, ids []string) error {
	return deleteMany(ctx, f.db, "meeting_forms", "form_id", ids)
}

// --- Goals ---

type goals struct{ db *sql.DB }

const goalColumns = "goal_id, kid_id, category_id, title, is_active, creation_time, deactivation_time"

func (g *goals) Create(ctx context.Context, m *model.Goal) (*model.Goal, error) {
	out := *m
	if out.GoalID == "" {
		out.GoalID = uuid.New().String()
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	_, err := g.db.ExecContext(ctx, `
        INSERT INTO goals (goal_id, kid_id, category_id, title, is_active, creation_time, deactivation_time)
        VALUES (?,?,?,?,?,?,?)
    `, out.GoalID, out.KidID, out.CategoryID, out.Title, out.IsActive, nano(out.CreationTime), nanoOrNil(out.DeactivationTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanGoal(scan func(dest ...interface{}) error) (*model.Goal, error) {
	var out model.Goal
	var created int64
	var deactivated sql.NullInt64
	if err := scan(&out.GoalID, &out.KidID, &out.CategoryID, &out.Title, &out.IsActive, &created, &deactivated); err != nil {
		return nil, mapNotFound(err)
	}
	out.CreationTime = fromNano(created)
	out.DeactivationTime = timeOrNil(deactivated)
	return &out, nil
}

func (g *goals) Get(ctx context.Context, goalID string) (*model.Goal, error) {
	row := g.db.QueryRowContext(ctx, "SELECT "+goalColumns+" FROM goals WHERE goal_id = ?", goalID)
	return scanGoal(row.Scan)
}

func (g *goals) queryGoals(ctx context.Context, q string, args ...interface{}) ([]*model.Goal, error) {
	rows, err := g.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Goal
	for rows.Next() {
		goal, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, goal)
	}
	return out, rows.Err()
}

func (g *goals) ListByKid(ctx context.Context, kidID string, activeOnly bool) ([]*model.Goal, error) {
	if activeOnly {
		return g.queryGoals(ctx, "SELECT "+goalColumns+" FROM goals WHERE kid_id = ? AND is_active = 1 ORDER BY creation_time", kidID)
	}
	return g.queryGoals(ctx, "SELECT "+goalColumns+" FROM goals WHERE kid_id = ? ORDER BY creation_time", kidID)
}

func (g *goals) ListActive(ctx context.Context) ([]*model.Goal, error) {
	return g.queryGoals(ctx, "SELECT "+goalColumns+" FROM goals WHERE is_active = 1")
}

func (g *goals) Update(ctx context.Context, goalID string, p model.GoalPatch) (*model.Goal, error) {
	var sets []string
	var args []interface{}
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *p.CategoryID)
	}
	if len(sets) == 0 {
		return g.Get(ctx, goalID)
	}
	args = append(args, goalID)
	res, err := g.db.ExecContext(ctx, "UPDATE goals SET "+strings.Join(sets, ", ")+" WHERE goal_id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return g.Get(ctx, goalID)
}

func (g *goals) Deactivate(ctx context.Context, goalID string, at time.Time) (*model.Goal, error) {
	res, err := g.db.ExecContext(ctx, `
        UPDATE goals SET is_active = 0, deactivation_time = ? WHERE goal_id = ?
    `, nano(at), goalID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return g.Get(ctx, goalID)
}

func (g *goals) DeleteMany(ctx context.Context, ids []string) error {
	return deleteMany(ctx, g.db, "goals", "goal_id", ids)
}

// --- GoalLibrary ---

type goalLibrary struct{ db *sql.DB }

func (g *goalLibrary) Insert(ctx context.Context, item *model.GoalLibraryItem) (*model.GoalLibraryItem, error) {
	out := *item
	if out.ItemID == "" {
		out.ItemID = uuid.New().String()
	}
	if out.UsageCount == 0 {
		out.UsageCount = 1
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	_, err := g.db.ExecContext(ctx, `
        INSERT INTO goal_library (item_id, title, category_id, usage_count, creation_time)
        VALUES (?,?,?,?,?)
    `, out.ItemID, out.Title, out.CategoryID, out.UsageCount, nano(out.CreationTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *goalLibrary) FindByTitleCategory(ctx context.Context, title, categoryID string) (*model.GoalLibraryItem, error) {
	var out model.GoalLibraryItem
	var created int64
	row := g.db.QueryRowContext(ctx, `
        SELECT item_id, title, category_id, usage_count, creation_time
        FROM goal_library WHERE title = ? AND category_id = ?
    `, title, categoryID)
	if err := row.Scan(&out.ItemID, &out.Title, &out.CategoryID, &out.UsageCount, &created); err != nil {
		return nil, mapNotFound(err)
	}
	out.CreationTime = fromNano(created)
	return &out, nil
}

func (g *goalLibrary) IncrementUsage(ctx context.Context, itemID string) error {
	res, err := g.db.ExecContext(ctx, "UPDATE goal_library SET usage_count = usage_count + 1 WHERE item_id = ?", itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (g *goalLibrary) List(ctx context.Context) ([]*model.GoalLibraryItem, error) {
	rows, err := g.db.QueryContext(ctx, `
        SELECT item_id, title, category_id, usage_count, creation_time
        FROM goal_library ORDER BY usage_count DESC, title
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.GoalLibraryItem
	for rows.Next() {
		var item model.GoalLibraryItem
		var created int64
		if err := rows.Scan(&item.ItemID, &item.Title, &item.CategoryID, &item.UsageCount, &created); err != nil {
			return nil, err
		}
		item.CreationTime = fromNano(created)
		out = append(out, &item)
	}
	return out, rows.Err()
}

// --- Notifications ---

type notifications struct{ db *sql.DB }

const notificationColumns = "notification_id, kid_id, admin_id, message, recipient_type, recipient_id, dismissed, dismissed_by_admin, creation_time"

func (n *notifications) Create(ctx context.Context, m *model.Notification) (*model.Notification, error) {
	out := *m
	if out.NotificationID == "" {
		out.NotificationID = uuid.New().String()
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	_, err := n.db.ExecContext(ctx, `
        INSERT INTO notifications (notification_id, kid_id, admin_id, message, recipient_type, recipient_id, dismissed, dismissed_by_admin, creation_time)
        VALUES (?,?,?,?,?,?,?,?,?)
    `, out.NotificationID, out.KidID, out.AdminID, out.Message, out.RecipientType, out.RecipientID,
		out.Dismissed, out.DismissedByAdmin, nano(out.CreationTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanNotification(scan func(dest ...interface{}) error) (*model.Notification, error) {
	var out model.Notification
	var created int64
	if err := scan(&out.NotificationID, &out.KidID, &out.AdminID, &out.Message, &out.RecipientType,
		&out.RecipientID, &out.Dismissed, &out.DismissedByAdmin, &created); err != nil {
		return nil, mapNotFound(err)
	}
	out.CreationTime = fromNano(created)
	return &out, nil
}

func (n *notifications) Get(ctx context.Context, notificationID string) (*model.Notification, error) {
	row := n.db.QueryRowContext(ctx, "SELECT "+notificationColumns+" FROM notifications WHERE notification_id = ?", notificationID)
	return scanNotification(row.Scan)
}

func (n *notifications) queryNotifications(ctx context.Context, q string, args ...interface{}) ([]*model.Notification, error) {
	rows, err := n.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Notification
	for rows.Next() {
		note, err := scanNotification(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

func (n *notifications) ListForRecipient(ctx context.Context, recipientType, recipientID string) ([]*model.Notification, error) {
	return n.queryNotifications(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE recipient_type = ? AND recipient_id = ? AND dismissed = 0 ORDER BY creation_time DESC",
		recipientType, recipientID)
}

func (n *notifications) ListForAdmin(ctx context.Context, adminID string) ([]*model.Notification, error) {
	return n.queryNotifications(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE admin_id = ? AND dismissed_by_admin = 0 ORDER BY creation_time DESC",
		adminID)
}

func (n *notifications) setFlag(ctx context.Context, column, notificationID string) error {
	res, err := n.db.ExecContext(ctx, "UPDATE notifications SET "+column+" = 1 WHERE notification_id = ?", notificationID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (n *notifications) SetDismissed(ctx context.Context, notificationID string) error {
	return n.setFlag(ctx, "dismissed", notificationID)
}

func (n *notifications) SetDismissedByAdmin(ctx context.Context, notificationID string) error {
	return n.setFlag(ctx, "dismissed_by_admin", notificationID)
}

// --- BoardRequests ---

type boardRequests struct{ db *sql.DB }

const boardRequestColumns = "request_id, kid_id, requested_by, description, status, creation_time, update_time"

func (b *boardRequests) Create(ctx context.Context, m *model.BoardRequest) (*model.BoardRequest, error) {
	out := *m
	if out.RequestID == "" {
		out.RequestID = uuid.New().String()
	}
	if out.Status == "" {
		out.Status = "open"
	}
	out.CreationTime = ensureCreation(out.CreationTime)
	out.UpdateTime = out.CreationTime
	_, err := b.db.ExecContext(ctx, `
        INSERT INTO board_requests (request_id, kid_id, requested_by, description, status, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?)
    `, out.RequestID, out.KidID, out.RequestedBy, out.Description, out.Status, nano(out.CreationTime), nano(out.UpdateTime))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanBoardRequest(scan func(dest ...interface{}) error) (*model.BoardRequest, error) {
	var out model.BoardRequest
	var created, updated int64
	if err := scan(&out.RequestID, &out.KidID, &out.RequestedBy, &out.Description, &out.Status, &created, &updated); err != nil {
		return nil, mapNotFound(err)
	}
	out.CreationTime = fromNano(created)
	out.UpdateTime = fromNano(updated)
	return &out, nil
}

func (b *boardRequests) Get(ctx context.Context, requestID string) (*model.BoardRequest, error) {
	row := b.db.QueryRowContext(ctx, "SELECT "+boardRequestColumns+" FROM board_requests WHERE request_id = ?", requestID)
	return scanBoardRequest(row.Scan)
}

func (b *boardRequests) ListByKid(ctx context.Context, kidID string) ([]*model.BoardRequest, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT "+boardRequestColumns+" FROM board_requests WHERE kid_id = ? ORDER BY creation_time", kidID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.BoardRequest
	for rows.Next() {
		req, err := scanBoardRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (b *boardRequests) UpdateStatus(ctx context.Context, requestID, status string) (*model.BoardRequest, error) {
	res, err := b.db.ExecContext(ctx, `
        UPDATE board_requests SET status = ?, update_time = ? WHERE request_id = ?
    `, status, nano(time.Now()), requestID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return b.Get(ctx, requestID)
}

func (b *boardRequests) Delete(ctx context.Context, requestID string) error {
	_, err := b.db.ExecContext(ctx, "DELETE FROM board_requests WHERE request_id = ?", requestID)
	return err
}

func (b *boardRequests) DeleteMany(ctx context.Context, ids []string) error {
	return deleteMany(ctx, b.db, "board_requests", "request_id", ids)
}
