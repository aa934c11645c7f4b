package model

import "time"

// Patch structs carry whitelisted partial updates. Nil pointer fields are
// left untouched by the store; Clear* flags reset nullable references.

type KidPatch struct {
	Name        *string
	Age         *int
	Gender      *string
	BoardConfig map[string]interface{}
	AdminID     *string
	ClearAdmin  bool
}

type SessionPatch struct {
	TherapistID   *string
	ScheduledDate *time.Time
	Status        *string
	FormID        *string
	ClearFormID   bool
	Type          *string
}

type FormPatch struct {
	TherapistName   *string
	SessionDate     *time.Time
	Cooperation     *int
	SessionDuration *int
	SittingDuration *int
	Communication   *string
	Notes           *string
	GoalsWorkedOn   []GoalSnapshot
}

type MeetingFormPatch struct {
	SessionDate   *time.Time
	Attendees     []string
	Summary       *string
	BehaviorNotes *string
	Decisions     *string
	NextSteps     *string
}

type GoalPatch struct {
	Title      *string
	CategoryID *string
}

type PractitionerPatch struct {
	Name  *string
	Role  *string
	Email *string
	Phone *string
}

type ParentPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// ListSessionsRequest captures filters used when listing a kid's sessions.
type ListSessionsRequest struct {
	KidID  string
	Status string
}
