package model

import "time"

// Session status values. The only path back to SessionScheduled from
// SessionCompleted is form deletion; SessionMissed is terminal.
const (
	SessionScheduled   = "scheduled"
	SessionPendingForm = "pending_form"
	SessionCompleted   = "completed"
	SessionMissed      = "missed"
)

// Session type values.
const (
	SessionTypeTherapy = "therapy"
	SessionTypeMeeting = "meeting"
)

// Notification recipient types.
const (
	RecipientPractitioner = "practitioner"
	RecipientParent       = "parent"
)

// GoalCategories is the fixed set of goal category identifiers.
var GoalCategories = []string{
	"language",
	"cognitive",
	"gross_motor",
	"fine_motor",
	"social",
	"self_care",
	"sensory",
}

// IsGoalCategory reports whether id is one of the fixed categories.
func IsGoalCategory(id string) bool {
	for _, c := range GoalCategories {
		if c == id {
			return true
		}
	}
	return false
}

// Admin is an authenticated practice administrator. The access key is the
// shared secret presented in the Authorization header; it is never serialized.
type Admin struct {
	AdminID      string    `json:"adminId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AccessKey    string    `json:"-"`
	CreationTime time.Time `json:"creationTime"`
}

// Kid is the therapy-recipient child profile and the aggregation root for
// parents, goals, sessions and report forms. KidID is derived from the
// normalized name and is immutable once created. A nil AdminID means the kid
// is unassigned.
type Kid struct {
	KidID        string                 `json:"kidId"`
	Name         string                 `json:"name"`
	Age          int                    `json:"age"`
	Gender       string                 `json:"gender"`
	AdminID      *string                `json:"adminId,omitempty"`
	BoardConfig  map[string]interface{} `json:"boardConfig,omitempty"`
	CreationTime time.Time              `json:"creationTime"`
	UpdateTime   time.Time              `json:"updateTime"`
}

// Practitioner is a staff member; shared across kids via link rows.
type Practitioner struct {
	PractitionerID string    `json:"practitionerId"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreationTime   time.Time `json:"creationTime"`
}

// KidPractitionerLink associates a practitioner with a kid.
type KidPractitionerLink struct {
	KidID          string    `json:"kidId"`
	PractitionerID string    `json:"practitionerId"`
	CreationTime   time.Time `json:"creationTime"`
}

// Parent is a guardian contact scoped to one kid.
type Parent struct {
	ParentID     string    `json:"parentId"`
	KidID        string    `json:"kidId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreationTime time.Time `json:"creationTime"`
}

// Session is a scheduled or completed therapy/meeting encounter for a kid.
// FormID is non-nil exactly when a report form referencing this session
// exists; the write paths in the services layer maintain that invariant.
type Session struct {
	SessionID     string    `json:"sessionId"`
	KidID         string    `json:"kidId"`
	TherapistID   *string   `json:"therapistId,omitempty"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	FormID        *string   `json:"formId,omitempty"`
	CreationTime  time.Time `json:"creationTime"`
}

// GoalSnapshot is a denormalized copy of a goal taken at form submission
// time. Later edits to the live goal never alter stored snapshots.
type GoalSnapshot struct {
	GoalID     string `json:"goalId"`
	GoalTitle  string `json:"goalTitle"`
	CategoryID string `json:"categoryId"`
}

// Form is a session report documenting a therapy session.
type Form struct {
	FormID          string         `json:"formId"`
	SessionID       string         `json:"sessionId"`
	KidID           string         `json:"kidId"`
	TherapistName   string         `json:"therapistName"`
	SessionDate     time.Time      `json:"sessionDate"`
	Cooperation     int            `json:"cooperation"`
	SessionDuration int            `json:"sessionDuration"`
	SittingDuration int            `json:"sittingDuration"`
	Communication   string         `json:"communication"`
	Notes           string         `json:"notes"`
	GoalsWorkedOn   []GoalSnapshot `json:"goalsWorkedOn"`
	CreationTime    time.Time      `json:"creationTime"`
	UpdateTime      time.Time      `json:"updateTime"`
}

// MeetingForm is a multidisciplinary review report. It mirrors Form's
// session linkage contract but carries its own field set and no goal
// snapshots.
type MeetingForm struct {
	FormID        string    `json:"formId"`
	SessionID     string    `json:"sessionId"`
	KidID         string    `json:"kidId"`
	SessionDate   time.Time `json:"sessionDate"`
	Attendees     []string  `json:"attendees"`
	Summary       string    `json:"summary"`
	BehaviorNotes string    `json:"behaviorNotes"`
	Decisions     string    `json:"decisions"`
	NextSteps     string    `json:"nextSteps"`
	CreationTime  time.Time `json:"creationTime"`
	UpdateTime    time.Time `json:"updateTime"`
}

// Goal is a targeted objective for a kid. Deactivation is a soft delete
// that stamps DeactivationTime and never removes the row.
type Goal struct {
	GoalID           string     `json:"goalId"`
	KidID            string     `json:"kidId"`
	CategoryID       string     `json:"categoryId"`
	Title            string     `json:"title"`
	IsActive         bool       `json:"isActive"`
	CreationTime     time.Time  `json:"creationTime"`
	DeactivationTime *time.Time `json:"deactivationTime,omitempty"`
}

// GoalLibraryItem is a cross-kid reusable goal title keyed logically by
// (title, categoryId). UsageCount is advisory and only feeds autocomplete
// ranking. IsOrphan is computed on read and never persisted.
type GoalLibraryItem struct {
	ItemID       string    `json:"itemId"`
	Title        string    `json:"title"`
	CategoryID   string    `json:"categoryId"`
	UsageCount   int       `json:"usageCount"`
	IsOrphan     bool      `json:"isOrphan"`
	CreationTime time.Time `json:"creationTime"`
}

// Notification carries two independent soft-delete flags: Dismissed hides
// the row from the recipient, DismissedByAdmin hides it from the sending
// admin. Neither flag removes the row.
type Notification struct {
	NotificationID   string    `json:"notificationId"`
	KidID            string    `json:"kidId"`
	AdminID          string    `json:"adminId"`
	Message          string    `json:"message"`
	RecipientType    string    `json:"recipientType"`
	RecipientID      string    `json:"recipientId"`
	Dismissed        bool      `json:"dismissed"`
	DismissedByAdmin bool      `json:"dismissedByAdmin"`
	CreationTime     time.Time `json:"creationTime"`
}

// BoardRequest is a request to change a kid's task/board configuration.
type BoardRequest struct {
	RequestID    string    `json:"requestId"`
	KidID        string    `json:"kidId"`
	RequestedBy  string    `json:"requestedBy"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}
