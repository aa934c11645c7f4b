// Package postgres provides a PostgreSQL-backed store.Store using the pgx
// stdlib driver. Timestamps are TIMESTAMPTZ, document-shaped fields are JSONB.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Bootstrap opens the database, applies the schema and closes the connection.
// Intended for first-run setup and dev environments.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return EnsureSchema(ctx, db)
}

// EnsureSchema applies the idempotent DDL.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Admins() store.Admins               { return &admins{db: s.db} }
func (s *pgStore) Kids() store.Kids                   { return &kids{db: s.db} }
func (s *pgStore) Practitioners() store.Practitioners { return &practitioners{db: s.db} }
func (s *pgStore) Links() store.Links                 { return &links{db: s.db} }
func (s *pgStore) Parents() store.Parents             { return &parents{db: s.db} }
func (s *pgStore) Sessions() store.Sessions           { return &sessions{db: s.db} }
func (s *pgStore) Forms() store.Forms                 { return &forms{db: s.db} }
func (s *pgStore) MeetingForms() store.MeetingForms   { return &meetingForms{db: s.db} }
func (s *pgStore) Goals() store.Goals                 { return &goals{db: s.db} }
func (s *pgStore) GoalLibrary() store.GoalLibrary     { return &goalLibrary{db: s.db} }
func (s *pgStore) Notifications() store.Notifications { return &notifications{db: s.db} }
func (s *pgStore) BoardRequests() store.BoardRequests { return &boardRequests{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- helpers ---

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

func deleteMany(ctx context.Context, db *sql.DB, table, column string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	ph := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		ph[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}
	_, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+column+" IN ("+strings.Join(ph, ",")+")", args...)
	return err
}

// setBuilder accumulates SET clauses with positional placeholders.
type setBuilder struct {
	sets []string
	args []interface{}
}

func (b *setBuilder) add(column string, v interface{}) {
	b.args = append(b.args, v)
	b.sets = append(b.sets, column+" = $"+strconv.Itoa(len(b.args)))
}

func (b *setBuilder) addRaw(clause string) { b.sets = append(b.sets, clause) }

// where appends the final key argument and returns "SET ... WHERE col = $n".
func (b *setBuilder) where(column, key string) (string, []interface{}) {
	b.args = append(b.args, key)
	return "SET " + strings.Join(b.sets, ", ") + " WHERE " + column + " = $" + strconv.Itoa(len(b.args)), b.args
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
        VALUES ($1,$2,$3,$4,$5)
    `, out.AdminID, out.Name, out.Email, out.AccessKey, out.CreationTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *admins) scanRow(row *sql.Row) (*model.Admin, error) {
	var out model.Admin
	if err := row.Scan(&out.AdminID, &out.Name, &out.Email, &out.AccessKey, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (a *admins) Get(ctx context.Context, adminID string) (*model.Admin, error) {
	return a.scanRow(a.db.QueryRowContext(ctx, `
        SELECT admin_id, name, email, access_key, creation_time FROM admins WHERE admin_id = $1
    `, adminID))
}

func (a *admins) GetByAccessKey(ctx context.Context, key string) (*model.Admin, error) {
	return a.scanRow(a.db.QueryRowContext(ctx, `
        SELECT admin_id, name, email, access_key, creation_time FROM admins WHERE access_key = $1
    `, key))
}

// --- Kids ---

type kids struct{ db *sql.DB }

const kidColumns = "kid_id, name, age, gender, admin_id, board_config, creation_time, update_time"

func (k *kids) Create(ctx context.Context, m *model.Kid) (*model.Kid, error) {
	out := *m
	out.CreationTime = ensureCreation(out.CreationTime)
	out.UpdateTime = out.CreationTime
	var cfg interface{}
	if out.BoardConfig != nil {
		b, err := json.Marshal(out.BoardConfig)
		if err != nil {
			return nil, err
		}
		cfg = string(b)
	}
	_, err := k.db.ExecContext(ctx, `
        INSERT INTO kids (kid_id, name, age, gender, admin_id, board_config, creation_time, update_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, out.KidID, out.Name, out.Age, out.Gender, out.AdminID, cfg, out.CreationTime, out.UpdateTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanKid(scan func(dest ...interface{}) error) (*model.Kid, error) {
	var out model.Kid
	var cfg sql.NullString
	if err := scan(&out.KidID, &out.Name, &out.Age, &out.Gender, &out.AdminID, &cfg, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	if cfg.Valid && cfg.String != "" {
		if err := json.Unmarshal([]byte(cfg.String), &out.BoardConfig); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func (k *kids) Get(ctx context.Context, kidID string) (*model.Kid, error) {
	row := k.db.QueryRowContext(ctx, "SELECT "+kidColumns+" FROM kids WHERE kid_id = $1", kidID)
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
	return k.queryKids(ctx, "SELECT "+kidColumns+" FROM kids WHERE admin_id = $1 ORDER BY creation_time", adminID)
}

func (k *kids) Update(ctx context.Context, kidID string, p model.KidPatch) (*model.Kid, error) {
	var b setBuilder
	if p.Name != nil {
		b.add("name", *p.Name)
	}
	if p.Age != nil {
		b.add("age", *p.Age)
	}
	if p.Gender != nil {
		b.add("gender", *p.Gender)
	}
	if p.BoardConfig != nil {
		cfg, err := json.Marshal(p.BoardConfig)
		if err != nil {
			return nil, err
		}
		b.add("board_config", string(cfg))
	}
	if p.ClearAdmin {
		b.addRaw("admin_id = NULL")
	} else if p.AdminID != nil {
		b.add("admin_id", *p.AdminID)
	}
	b.add("update_time", time.Now().UTC())
	clause, args := b.where("kid_id", kidID)
	res, err := k.db.ExecContext(ctx, "UPDATE kids "+clause, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return k.Get(ctx, kidID)
}

func (k *kids) Delete(ctx context.Context, kidID string) error {
	_, err := k.db.ExecContext(ctx, "DELETE FROM kids WHERE kid_id = $1", kidID)
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
        VALUES ($1,$2,$3,$4,$5,$6)
    `, out.PractitionerID, out.Name, out.Role, out.Email, out.Phone, out.CreationTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanPractitioner(scan func(dest ...interface{}) error) (*model.Practitioner, error) {
	var out model.Practitioner
	if err := scan(&out.PractitionerID, &out.Name, &out.Role, &out.Email, &out.Phone, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (p *practitioners) Get(ctx context.Context, practitionerID string) (*model.Practitioner, error) {
	row := p.db.QueryRowContext(ctx, "SELECT "+practitionerColumns+" FROM practitioners WHERE practitioner_id = $1", practitionerID)
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
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Role != nil {
		b.add("role", *patch.Role)
	}
	if patch.Email != nil {
		b.add("email", *patch.Email)
	}
	if patch.Phone != nil {
		b.add("phone", *patch.Phone)
	}
	if len(b.sets) == 0 {
		return p.Get(ctx, practitionerID)
	}
	clause, args := b.where("practitioner_id", practitionerID)
	res, err := p.db.ExecContext(ctx, "UPDATE practitioners "+clause, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.Get(ctx, practitionerID)
}

func (p *practitioners) Delete(ctx context.Context, practitionerID string) error {
	_, err := p.db.ExecContext(ctx, "DELETE FROM practitioners WHERE practitioner_id = $1", practitionerID)
	return err
}

// --- Links ---

type links struct{ db *sql.DB }

func (l *links) Link(ctx context.Context, kidID, practitionerID string) error {
	res, err := l.db.ExecContext(ctx, `
        INSERT INTO kid_practitioners (kid_id, practitioner_id, creation_time)
        VALUES ($1,$2,$3) ON CONFLICT DO NOTHING
    `, kidID, practitionerID, time.Now().UTC())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrConflict
	}
	return nil
}

func (l *links) Unlink(ctx context.Context, kidID, practitionerID string) error {
	_, err := l.db.ExecContext(ctx, `
        DELETE FROM kid_practitioners WHERE kid_id = $1 AND practitioner_id = $2
    `, kidID, practitionerID)
	return err
}

func (l *links) ListByKid(ctx context.Context, kidID string) ([]*model.KidPractitionerLink, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT kid_id, practitioner_id, creation_time FROM kid_practitioners WHERE kid_id = $1
    `, kidID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.KidPractitionerLink
	for rows.Next() {
		var link model.KidPractitionerLink
		if err := rows.Scan(&link.KidID, &link.PractitionerID, &link.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &link)
	}
	return out, rows.Err()
}

func (l *links) DeleteByKid(ctx context.Context, kidID string) error {
	_, err := l.db.ExecContext(ctx, "DELETE FROM kid_practitioners WHERE kid_id = $1", kidID)
	return err
}

func (l *links) DeleteByPractitioner(ctx context.Context, practitionerID string) error {
	_, err := l.db.ExecContext(ctx, "DELETE FROM kid_practitioners WHERE practitioner_id = $1", practitionerID)
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
        VALUES ($1,$2,$3,$4,$5,$6)
    `, out.ParentID, out.KidID, out.Name, out.Email, out.Phone, out.CreationTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanParent(scan func(dest ...interface{}) error) (*model.Parent, error) {
	var out model.Parent
	if err := scan(&out.ParentID, &out.KidID, &out.Name, &out.Email, &out.Phone, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (p *parents) Get(ctx context.Context, parentID string) (*model.Parent, error) {
	row := p.db.QueryRowContext(ctx, "SELECT "+parentColumns+" FROM parents WHERE parent_id = $1", parentID)
	return scanParent(row.Scan)
}

func (p *parents) ListByKid(ctx context.Context, kidID string) ([]*model.Parent, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT "+parentColumns+" FROM parents WHERE kid_id = $1 ORDER BY creation_time", kidID)
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
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Email != nil {
		b.add("email", *patch.Email)
	}
	if patch.Phone != nil {
		b.add("phone", *patch.Phone)
	}
	if len(b.sets) == 0 {
		return p.Get(ctx, parentID)
	}
	clause, args := b.where("parent_id", parentID)
	res, err := p.db.ExecContext(ctx, "UPDATE parents "+clause, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return p.Get(ctx, parentID)
}

func (p *parents) Delete(ctx context.Context, parentID string) error {
	_, err := p.db.ExecContext(ctx, "DELETE FROM parents WHERE parent_id = $1", parentID)
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
	out.ScheduledDate = out.ScheduledDate.UTC()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions (session_id, kid_id, therapist_id, scheduled_date, type, status, form_id, creation_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, out.SessionID, out.KidID, out.TherapistID, out.ScheduledDate, out.Type, out.Status, out.FormID, out.CreationTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanSession(scan func(dest ...interface{}) error) (*model.Session, error) {
	var out model.Session
	if err := scan(&out.SessionID, &out.KidID, &out.TherapistID, &out.ScheduledDate, &out.Type, &out.Status, &out.FormID, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (s *sessions) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE session_id = $1", sessionID)
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
			"SELECT "+sessionColumns+" FROM sessions WHERE kid_id = $1 AND status = $2 ORDER BY scheduled_date",
			req.KidID, req.Status)
	}
	return s.querySessions(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE kid_id = $1 ORDER BY scheduled_date", req.KidID)
}

func (s *sessions) ListByAdmin(ctx context.Context, adminID string) ([]*model.Session, error) {
	return s.querySessions(ctx, `
        SELECT s.session_id, s.kid_id, s.therapist_id, s.scheduled_date, s.type, s.status, s.form_id, s.creation_time
        FROM sessions s JOIN kids k ON k.kid_id = s.kid_id
        WHERE k.admin_id = $1 ORDER BY s.scheduled_date
    `, adminID)
}

func (s *sessions) Update(ctx context.Context, sessionID string, p model.SessionPatch) (*model.Session, error) {
	var b setBuilder
	if p.TherapistID != nil {
		b.add("therapist_id", *p.TherapistID)
	}
	if p.ScheduledDate != nil {
		b.add("scheduled_date", p.ScheduledDate.UTC())
	}
	if p.Status != nil {
		b.add("status", *p.Status)
	}
	if p.ClearFormID {
		b.addRaw("form_id = NULL")
	} else if p.FormID != nil {
		b.add("form_id", *p.FormID)
	}
	if p.Type != nil {
		b.add("type", *p.Type)
	}
	if len(b.sets) == 0 {
		return s.Get(ctx, sessionID)
	}
	clause, args := b.where("session_id", sessionID)
	res, err := s.db.ExecContext(ctx, "UPDATE sessions "+clause, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return s.Get(ctx, sessionID)
}

func (s *sessions) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_id = $1", sessionID)
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
	out.SessionDate = out.SessionDate.UTC()
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
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    `, out.FormID, out.SessionID, out.KidID, out.TherapistName, out.SessionDate, out.Cooperation,
		out.SessionDuration, out.SittingDuration, out.Communication, out.Notes, string(snapshots),
		out.CreationTime, out.UpdateTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanForm(scan func(dest ...interface{}) error) (*model.Form, error) {
	var out model.Form
	var snapshots string
	if err := scan(&out.FormID, &out.SessionID, &out.KidID, &out.TherapistName, &out.SessionDate, &out.Cooperation,
		&out.SessionDuration, &out.SittingDuration, &out.Communication, &out.Notes, &snapshots,
		&out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(snapshots), &out.GoalsWorkedOn); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *forms) Get(ctx context.Context, formID string) (*model.Form, error) {
	row := f.db.QueryRowContext(ctx, "SELECT "+formColumns+" FROM forms WHERE form_id = $1", formID)
	return scanForm(row.Scan)
}

func (f *forms) GetBySession(ctx context.Context, sessionID string) (*model.Form, error) {
	row := f.db.QueryRowContext(ctx, "SELECT "+formColumns+" FROM forms WHERE session_id = $1", sessionID)
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
	return f.queryForms(ctx, "SELECT "+formColumns+" FROM forms WHERE kid_id = $1 ORDER BY session_date", kidID)
}

func (f *forms) ListByKidBetween(ctx context.Context, kidID string, from, to time.Time) ([]*model.Form, error) {
	return f.queryForms(ctx,
		"SELECT "+formColumns+" FROM forms WHERE kid_id = $1 AND session_date >= $2 AND session_date < $3 ORDER BY session_date",
		kidID, from.UTC(), to.UTC())
}

func (f *forms) Update(ctx context.Context, formID string, p model.FormPatch) (*model.Form, error) {
	var b setBuilder
	if p.TherapistName != nil {
		b.add("therapist_name", *p.TherapistName)
	}
	if p.SessionDate != nil {
		b.add("session_date", p.SessionDate.UTC())
	}
	if p.Cooperation != nil {
		b.add("cooperation", *p.Cooperation)
	}
	if p.SessionDuration != nil {
		b.add("session_duration", *p.SessionDuration)
	}
	if p.SittingDuration != nil {
		b.add("sitting_duration", *p.SittingDuration)
	}
	if p.Communication != nil {
		b.add("communication", *p.Communication)
	}
	if p.Notes != nil {
		b.add("notes", *p.Notes)
	}
	if p.GoalsWorkedOn != nil {
		snapshots, err := json.Marshal(p.GoalsWorkedOn)
		if err != nil {
			return nil, err
		}
		b.add("goals_worked_on", string(snapshots))
	}
	if len(b.sets) == 0 {
		return f.Get(ctx, formID)
	}
	b.add("update_time", time.Now().UTC())
	clause, args := b.where("form_id", formID)
	res, err := f.db.ExecContext(ctx, "UPDATE forms "+clause, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return f.Get(ctx, formID)
}

func (f *forms) Delete(ctx context.Context, formID string) error {
	_, err := f.db.ExecContext(ctx, "DELETE FROM forms WHERE form_id = $1", formID)
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
	out.SessionDate = out.SessionDate.UTC()
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
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    `, out.FormID, out.SessionID, out.KidID, out.SessionDate, string(attendees), out.Summary,
		out.BehaviorNotes, out.Decisions, out.NextSteps, out.CreationTime, out.UpdateTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanMeetingForm(scan func(dest ...interface{}) error) (*model.MeetingForm, error) {
	var out model.MeetingForm
	var attendees string
	if err := scan(&out.FormID, &out.SessionID, &out.KidID, &out.SessionDate, &attendees, &out.Summary,
		&out.BehaviorNotes, &out.Decisions, &out.NextSteps, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(attendees), &out.Attendees); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *meetingForms) Get(ctx context.Context, formID string) (*model.MeetingForm, error) {
	row := f.db.QueryRowContext(ctx, "SELECT "+meetingFormColumns+" FROM meeting_forms WHERE form_id = $1", formID)
	return scanMeetingForm(row.Scan)
}

func (f *meetingForms) GetBySession(ctx context.Context, sessionID string) (*model.MeetingForm, error) {
	row := f.db.QueryRowContext(ctx, "SELECT "+meetingFormColumns+" FROM meeting_forms WHERE session_id = $1", sessionID)
	return scanMeetingForm(row.Scan)
}

func (f *meetingForms) ListByKid(ctx context.Context, kidID string) ([]*model.MeetingForm, error) {
	rows, err := f.db.QueryContext(ctx, "SELECT "+meetingFormColumns+" FROM meeting_forms WHERE kid_id = $1 ORDER BY session_date", kidID)
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
	var b setBuilder
	if p.SessionDate != nil {
		b.add("session_date", p.SessionDate.UTC())
	}
	if p.Attendees != nil {
		attendees, err := json.Marshal(p.Attendees)
		if err != nil {
			return nil, err
		}
		b.add("attendees", string(attendees))
	}
	if p.Summary != nil {
		b.add("summary", *p.Summary)
	}
	if p.BehaviorNotes != nil {
		b.add("behavior_notes", *p.BehaviorNotes)
	}
	if p.Decisions != nil {
		b.add("decisions", *p.Decisions)
	}
	if p.NextSteps != nil {
		b.add("next_steps", *p.NextSteps)
	}
	if len(b.sets) == 0 {
		return f.Get(ctx, formID)
	}
	b.add("update_time", time.Now().UTC())
	clause, args := b.where("form_id", formID)
	res, err := f.db.ExecContext(ctx, "UPDATE meeting_forms "+clause, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return f.Get(ctx, formID)
}

func (f *meetingForms) Delete(ctx context.Context, formID string) error {
	_, err := f.db.ExecContext(ctx, "DELETE FROM meeting_forms WHERE form_id = $1", formID)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, out.GoalID, out.KidID, out.CategoryID, out.Title, out.IsActive, out.CreationTime, out.DeactivationTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanGoal(scan func(dest ...interface{}) error) (*model.Goal, error) {
	var out model.Goal
	if err := scan(&out.GoalID, &out.KidID, &out.CategoryID, &out.Title, &out.IsActive, &out.CreationTime, &out.DeactivationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (g *goals) Get(ctx context.Context, goalID string) (*model.Goal, error) {
	row := g.db.QueryRowContext(ctx, "SELECT "+goalColumns+" FROM goals WHERE goal_id = $1", goalID)
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
		return g.queryGoals(ctx, "SELECT "+goalColumns+" FROM goals WHERE kid_id = $1 AND is_active ORDER BY creation_time", kidID)
	}
	return g.queryGoals(ctx, "SELECT "+goalColumns+" FROM goals WHERE kid_id = $1 ORDER BY creation_time", kidID)
}

func (g *goals) ListActive(ctx context.Context) ([]*model.Goal, error) {
	return g.queryGoals(ctx, "SELECT "+goalColumns+" FROM goals WHERE is_active")
}

func (g *goals) Update(ctx context.Context, goalID string, p model.GoalPatch) (*model.Goal, error) {
	var b setBuilder
	if p.Title != nil {
		b.add("title", *p.Title)
	}
	if p.CategoryID != nil {
		b.add("category_id", *p.CategoryID)
	}
	if len(b.sets) == 0 {
		return g.Get(ctx, goalID)
	}
	clause, args := b.where("goal_id", goalID)
	res, err := g.db.ExecContext(ctx, "UPDATE goals "+clause, args...)
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
        UPDATE goals SET is_active = FALSE, deactivation_time = $1 WHERE goal_id = $2
    `, at.UTC(), goalID)
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
        VALUES ($1,$2,$3,$4,$5)
    `, out.ItemID, out.Title, out.CategoryID, out.UsageCount, out.CreationTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *goalLibrary) FindByTitleCategory(ctx context.Context, title, categoryID string) (*model.GoalLibraryItem, error) {
	var out model.GoalLibraryItem
	row := g.db.QueryRowContext(ctx, `
        SELECT item_id, title, category_id, usage_count, creation_time
        FROM goal_library WHERE title = $1 AND category_id = $2
    `, title, categoryID)
	if err := row.Scan(&out.ItemID, &out.Title, &out.CategoryID, &out.UsageCount, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (g *goalLibrary) IncrementUsage(ctx context.Context, itemID string) error {
	res, err := g.db.ExecContext(ctx, "UPDATE goal_library SET usage_count = usage_count + 1 WHERE item_id = $1", itemID)
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
		if err := rows.Scan(&item.ItemID, &item.Title, &item.CategoryID, &item.UsageCount, &item.CreationTime); err != nil {
			return nil, err
		}
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
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, out.NotificationID, out.KidID, out.AdminID, out.Message, out.RecipientType, out.RecipientID,
		out.Dismissed, out.DismissedByAdmin, out.CreationTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanNotification(scan func(dest ...interface{}) error) (*model.Notification, error) {
	var out model.Notification
	if err := scan(&out.NotificationID, &out.KidID, &out.AdminID, &out.Message, &out.RecipientType,
		&out.RecipientID, &out.Dismissed, &out.DismissedByAdmin, &out.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (n *notifications) Get(ctx context.Context, notificationID string) (*model.Notification, error) {
	row := n.db.QueryRowContext(ctx, "SELECT "+notificationColumns+" FROM notifications WHERE notification_id = $1", notificationID)
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
		"SELECT "+notificationColumns+" FROM notifications WHERE recipient_type = $1 AND recipient_id = $2 AND NOT dismissed ORDER BY creation_time DESC",
		recipientType, recipientID)
}

func (n *notifications) ListForAdmin(ctx context.Context, adminID string) ([]*model.Notification, error) {
	return n.queryNotifications(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE admin_id = $1 AND NOT dismissed_by_admin ORDER BY creation_time DESC",
		adminID)
}

func (n *notifications) setFlag(ctx context.Context, column, notificationID string) error {
	res, err := n.db.ExecContext(ctx, "UPDATE notifications SET "+column+" = TRUE WHERE notification_id = $1", notificationID)
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
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, out.RequestID, out.KidID, out.RequestedBy, out.Description, out.Status, out.CreationTime, out.UpdateTime)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanBoardRequest(scan func(dest ...interface{}) error) (*model.BoardRequest, error) {
	var out model.BoardRequest
	if err := scan(&out.RequestID, &out.KidID, &out.RequestedBy, &out.Description, &out.Status, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &out, nil
}

func (b *boardRequests) Get(ctx context.Context, requestID string) (*model.BoardRequest, error) {
	row := b.db.QueryRowContext(ctx, "SELECT "+boardRequestColumns+" FROM board_requests WHERE request_id = $1", requestID)
	return scanBoardRequest(row.Scan)
}

func (b *boardRequests) ListByKid(ctx context.Context, kidID string) ([]*model.BoardRequest, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT "+boardRequestColumns+" FROM board_requests WHERE kid_id = $1 ORDER BY creation_time", kidID)
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
        UPDATE board_requests SET status = $1, update_time = $2 WHERE request_id = $3
    `, status, time.Now().UTC(), requestID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return b.Get(ctx, requestID)
}

func (b *boardRequests) Delete(ctx context.Context, requestID string) error {
	_, err := b.db.ExecContext(ctx, "DELETE FROM board_requests WHERE request_id = $1", requestID)
	return err
}

func (b *boardRequests) DeleteMany(ctx context.Context, ids []string) error {
	return deleteMany(ctx, b.db, "board_requests", "request_id", ids)
}

const schema = `
CREATE TABLE IF NOT EXISTS admins (
    admin_id      TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL,
    access_key    TEXT NOT NULL UNIQUE,
    creation_time TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS kids (
    kid_id        TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    age           INT NOT NULL DEFAULT 0,
    gender        TEXT NOT NULL DEFAULT '',
    admin_id      TEXT,
    board_config  JSONB,
    creation_time TIMESTAMPTZ NOT NULL,
    update_time   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS practitioners (
    practitioner_id TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    role            TEXT NOT NULL DEFAULT '',
    email           TEXT NOT NULL DEFAULT '',
    phone           TEXT NOT NULL DEFAULT '',
    creation_time   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS kid_practitioners (
    kid_id          TEXT NOT NULL,
    practitioner_id TEXT NOT NULL,
    creation_time   TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (kid_id, practitioner_id)
);

CREATE TABLE IF NOT EXISTS parents (
    parent_id     TEXT PRIMARY KEY,
    kid_id        TEXT NOT NULL,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL DEFAULT '',
    phone         TEXT NOT NULL DEFAULT '',
    creation_time TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    session_id     TEXT PRIMARY KEY,
    kid_id         TEXT NOT NULL,
    therapist_id   TEXT,
    scheduled_date TIMESTAMPTZ NOT NULL,
    type           TEXT NOT NULL,
    status         TEXT NOT NULL,
    form_id        TEXT,
    creation_time  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_kid ON sessions (kid_id);

CREATE TABLE IF NOT EXISTS forms (
    form_id          TEXT PRIMARY KEY,
    session_id       TEXT NOT NULL,
    kid_id           TEXT NOT NULL,
    therapist_name   TEXT NOT NULL DEFAULT '',
    session_date     TIMESTAMPTZ NOT NULL,
    cooperation      INT NOT NULL DEFAULT 0,
    session_duration INT NOT NULL DEFAULT 0,
    sitting_duration INT NOT NULL DEFAULT 0,
    communication    TEXT NOT NULL DEFAULT '',
    notes            TEXT NOT NULL DEFAULT '',
    goals_worked_on  JSONB NOT NULL DEFAULT '[]',
    creation_time    TIMESTAMPTZ NOT NULL,
    update_time      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_forms_kid ON forms (kid_id);
CREATE INDEX IF NOT EXISTS idx_forms_session ON forms (session_id);

CREATE TABLE IF NOT EXISTS meeting_forms (
    form_id        TEXT PRIMARY KEY,
    session_id     TEXT NOT NULL,
    kid_id         TEXT NOT NULL,
    session_date   TIMESTAMPTZ NOT NULL,
    attendees      JSONB NOT NULL DEFAULT '[]',
    summary        TEXT NOT NULL DEFAULT '',
    behavior_notes TEXT NOT NULL DEFAULT '',
    decisions      TEXT NOT NULL DEFAULT '',
    next_steps     TEXT NOT NULL DEFAULT '',
    creation_time  TIMESTAMPTZ NOT NULL,
    update_time    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meeting_forms_session ON meeting_forms (session_id);

CREATE TABLE IF NOT EXISTS goals (
    goal_id           TEXT PRIMARY KEY,
    kid_id            TEXT NOT NULL,
    category_id       TEXT NOT NULL,
    title             TEXT NOT NULL,
    is_active         BOOLEAN NOT NULL DEFAULT TRUE,
    creation_time     TIMESTAMPTZ NOT NULL,
    deactivation_time TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_goals_kid ON goals (kid_id);

CREATE TABLE IF NOT EXISTS goal_library (
    item_id       TEXT PRIMARY KEY,
    title         TEXT NOT NULL,
    category_id   TEXT NOT NULL,
    usage_count   INT NOT NULL DEFAULT 1,
    creation_time TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
    notification_id    TEXT PRIMARY KEY,
    kid_id             TEXT NOT NULL,
    admin_id           TEXT NOT NULL,
    message            TEXT NOT NULL,
    recipient_type     TEXT NOT NULL,
    recipient_id       TEXT NOT NULL,
    dismissed          BOOLEAN NOT NULL DEFAULT FALSE,
    dismissed_by_admin BOOLEAN NOT NULL DEFAULT FALSE,
    creation_time      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS board_requests (
    request_id    TEXT PRIMARY KEY,
    kid_id        TEXT NOT NULL,
    requested_by  TEXT NOT NULL DEFAULT '',
    description   TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL DEFAULT 'open',
    creation_time TIMESTAMPTZ NOT NULL,
    update_time   TIMESTAMPTZ NOT NULL
);
`
