package api

import (
	"github.com/gorilla/mux"

	"github.com/bloomworks/bloom-practice/internal/api/recovery"
	"github.com/bloomworks/bloom-practice/internal/auth"
	"github.com/bloomworks/bloom-practice/internal/services"
	"github.com/bloomworks/bloom-practice/internal/store"
)

// NewRouter wires all API routes over the given store. Registration and the
// health probe are open; everything else sits behind the access-key check.
func NewRouter(st store.Store, authorizer auth.Authorizer) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Domain services
	adminService := services.NewAdminService(st)
	kidService := services.NewKidService(st)
	sessionService := services.NewSessionService(st)
	formService := services.NewFormService(st)
	goalService := services.NewGoalService(st)
	practitionerService := services.NewPractitionerService(st)
	parentService := services.NewParentService(st)
	notificationService := services.NewNotificationService(st)
	boardRequestService := services.NewBoardRequestService(st)

	// Handlers
	healthHandler := NewHealthHandler()
	adminHandler := NewAdminHandler(adminService)
	kidHandler := NewKidHandler(kidService)
	sessionHandler := NewSessionHandler(sessionService)
	formHandler := NewFormHandler(formService)
	meetingFormHandler := NewMeetingFormHandler(formService)
	goalHandler := NewGoalHandler(goalService)
	practitionerHandler := NewPractitionerHandler(practitionerService)
	parentHandler := NewParentHandler(parentService)
	notificationHandler := NewNotificationHandler(notificationService)
	boardRequestHandler := NewBoardRequestHandler(boardRequestService)

	// Open endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/admins", adminHandler.RegisterAdmin).Methods("POST")

	// Everything below requires a valid access key.
	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(RequireAuth(authorizer))

	authed.HandleFunc("/me", adminHandler.WhoAmI).Methods("GET")

	// Kid endpoints
	authed.HandleFunc("/kids", kidHandler.CreateKid).Methods("POST")
	authed.HandleFunc("/kids", kidHandler.ListKids).Methods("GET")
	authed.HandleFunc("/kids/{kidId}", kidHandler.GetKid).Methods("GET")
	authed.HandleFunc("/kids/{kidId}", kidHandler.UpdateKid).Methods("PATCH")
	authed.HandleFunc("/kids/{kidId}", kidHandler.DeleteKid).Methods("DELETE")
	authed.HandleFunc("/kids/{kidId}/attach", kidHandler.AttachKid).Methods("POST")
	authed.HandleFunc("/kids/{kidId}/detach", kidHandler.DetachKid).Methods("POST")

	// Session endpoints
	authed.HandleFunc("/sessions", sessionHandler.CreateSession).Methods("POST")
	authed.HandleFunc("/sessions/recurring", sessionHandler.CreateRecurringSessions).Methods("POST")
	authed.HandleFunc("/sessions/{sessionId}", sessionHandler.GetSession).Methods("GET")
	authed.HandleFunc("/sessions/{sessionId}", sessionHandler.UpdateSession).Methods("PATCH")
	authed.HandleFunc("/sessions/{sessionId}", sessionHandler.DeleteSession).Methods("DELETE")
	authed.HandleFunc("/kids/{kidId}/sessions", sessionHandler.ListKidSessions).Methods("GET")
	authed.HandleFunc("/alerts", sessionHandler.GetAlerts).Methods("GET")

	// Session report forms
	authed.HandleFunc("/forms", formHandler.SubmitForm).Methods("POST")
	authed.HandleFunc("/forms/{formId}", formHandler.GetForm).Methods("GET")
	authed.HandleFunc("/forms/{formId}", formHandler.UpdateForm).Methods("PATCH")
	authed.HandleFunc("/forms/{formId}", formHandler.DeleteForm).Methods("DELETE")
	authed.HandleFunc("/kids/{kidId}/forms", formHandler.ListKidForms).Methods("GET")

	// Meeting report forms
	authed.HandleFunc("/meeting-forms", meetingFormHandler.SubmitMeetingForm).Methods("POST")
	authed.HandleFunc("/meeting-forms/{formId}", meetingFormHandler.GetMeetingForm).Methods("GET")
	authed.HandleFunc("/meeting-forms/{formId}", meetingFormHandler.UpdateMeetingForm).Methods("PATCH")
	authed.HandleFunc("/meeting-forms/{formId}", meetingFormHandler.DeleteMeetingForm).Methods("DELETE")
	authed.HandleFunc("/kids/{kidId}/meeting-forms", meetingFormHandler.ListKidMeetingForms).Methods("GET")

	// Goals and the shared library
	authed.HandleFunc("/kids/{kidId}/goals", goalHandler.AddGoal).Methods("POST")
	authed.HandleFunc("/kids/{kidId}/goals", goalHandler.ListKidGoals).Methods("GET")
	authed.HandleFunc("/goals/{goalId}", goalHandler.GetGoal).Methods("GET")
	authed.HandleFunc("/goals/{goalId}", goalHandler.UpdateGoal).Methods("PATCH")
	authed.HandleFunc("/goals/{goalId}/deactivate", goalHandler.DeactivateGoal).Methods("POST")
	authed.HandleFunc("/goal-library", goalHandler.GetGoalLibrary).Methods("GET")

	// Practitioners and kid links
	authed.HandleFunc("/practitioners", practitionerHandler.CreatePractitioner).Methods("POST")
	authed.HandleFunc("/practitioners", practitionerHandler.ListPractitioners).Methods("GET")
	authed.HandleFunc("/practitioners/{practitionerId}", practitionerHandler.GetPractitioner).Methods("GET")
	authed.HandleFunc("/practitioners/{practitionerId}", practitionerHandler.UpdatePractitioner).Methods("PATCH")
	authed.HandleFunc("/practitioners/{practitionerId}", practitionerHandler.DeletePractitioner).Methods("DELETE")
	authed.HandleFunc("/kids/{kidId}/practitioners", practitionerHandler.ListKidPractitioners).Methods("GET")
	authed.HandleFunc("/kids/{kidId}/practitioners/{practitionerId}", practitionerHandler.LinkPractitioner).Methods("POST")
	authed.HandleFunc("/kids/{kidId}/practitioners/{practitionerId}", practitionerHandler.UnlinkPractitioner).Methods("DELETE")

	// Parents
	authed.HandleFunc("/kids/{kidId}/parents", parentHandler.CreateParent).Methods("POST")
	authed.HandleFunc("/kids/{kidId}/parents", parentHandler.ListKidParents).Methods("GET")
	authed.HandleFunc("/parents/{parentId}", parentHandler.GetParent).Methods("GET")
	authed.HandleFunc("/parents/{parentId}", parentHandler.UpdateParent).Methods("PATCH")
	authed.HandleFunc("/parents/{parentId}", parentHandler.DeleteParent).Methods("DELETE")

	// Notifications
	authed.HandleFunc("/notifications", notificationHandler.CreateNotification).Methods("POST")
	authed.HandleFunc("/notifications", notificationHandler.ListNotifications).Methods("GET")
	authed.HandleFunc("/notifications/admin", notificationHandler.ListAdminNotifications).Methods("GET")
	authed.HandleFunc("/notifications/{notificationId}/dismiss", notificationHandler.DismissNotification).Methods("POST")
	authed.HandleFunc("/notifications/{notificationId}/dismiss-admin", notificationHandler.DismissNotificationByAdmin).Methods("POST")

	// Board requests
	authed.HandleFunc("/kids/{kidId}/board-requests", boardRequestHandler.CreateBoardRequest).Methods("POST")
	authed.HandleFunc("/kids/{kidId}/board-requests", boardRequestHandler.ListKidBoardRequests).Methods("GET")
	authed.HandleFunc("/board-requests/{requestId}", boardRequestHandler.UpdateBoardRequest).Methods("PATCH")
	authed.HandleFunc("/board-requests/{requestId}", boardRequestHandler.DeleteBoardRequest).Methods("DELETE")

	return router
}
