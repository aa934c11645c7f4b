package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomworks/bloom-practice/internal/auth"
	storesqlite "github.com/bloomworks/bloom-practice/internal/store/sqlite"
)

const testAccessKey = "test-access-key"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := storesqlite.Open(filepath.Join(t.TempDir(), "practice.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	authorizer := auth.NewStaticAuthorizer(testAccessKey, "test-admin", "Test Admin")
	srv := httptest.NewServer(NewRouter(storesqlite.NewWithDB(db), authorizer))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testAccessKey)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

func TestHealthEndpointIsOpen(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestsWithoutKeyAreRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/kids")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/kids", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer wrong-key")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestAdminRegistrationReturnsAccessKey(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/admins", map[string]interface{}{
		"name":  "Dana Levi",
		"email": "dana@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["adminId"])
	assert.NotEmpty(t, body["accessKey"])
	assert.Equal(t, "Dana Levi", body["name"])
}

func TestKidLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, kid := doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name":   "Noa Cohen",
		"age":    5,
		"gender": "female",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "noa-cohen", kid["kidId"])

	// Duplicate name collides on the derived id.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name": "Noa Cohen",
		"age":  6,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, got := doJSON(t, http.MethodGet, srv.URL+"/api/kids/noa-cohen", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5), got["age"])

	resp, got = doJSON(t, http.MethodPatch, srv.URL+"/api/kids/noa-cohen", map[string]interface{}{
		"age": 6,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(6), got["age"])

	// Attach assigns the kid to the caller; unassigned kids are visible.
	resp, got = doJSON(t, http.MethodPost, srv.URL+"/api/kids/noa-cohen/attach", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "test-admin", got["adminId"])

	resp, list := doJSON(t, http.MethodGet, srv.URL+"/api/kids", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), list["count"])

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/kids/noa-cohen", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/kids/noa-cohen", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestKidValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name": "",
		"age":  4,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name": "Valid Name",
		"age":  99,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestSessionFormRoundTrip walks the full lifecycle: schedule a session,
// submit its report, observe the completed state, delete the report and
// observe the session reverting to scheduled.
func TestSessionFormRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name": "Adam Mizrahi", "age": 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, sess := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", map[string]interface{}{
		"kidId":         "adam-mizrahi",
		"scheduledDate": "2026-03-02",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionID := sess["sessionId"].(string)
	assert.Equal(t, "scheduled", sess["status"])
	assert.Nil(t, sess["formId"])

	resp, form := doJSON(t, http.MethodPost, srv.URL+"/api/forms", map[string]interface{}{
		"sessionId":       sessionID,
		"kidId":           "adam-mizrahi",
		"therapistName":   "Yael",
		"sessionDate":     "2026-03-02",
		"cooperation":     4,
		"sessionDuration": 45,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	formID := form["formId"].(string)

	resp, sess = doJSON(t, http.MethodGet, srv.URL+"/api/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", sess["status"])
	assert.Equal(t, formID, sess["formId"])

	// A second submission against the same session is rejected.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/forms", map[string]interface{}{
		"sessionId": sessionID,
		"kidId":     "adam-mizrahi",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Deleting the form reverts the session.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/forms/"+formID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, sess = doJSON(t, http.MethodGet, srv.URL+"/api/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "scheduled", sess["status"])
	assert.Nil(t, sess["formId"])
}

func TestFormWithoutSessionSynthesizesCompletedSession(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name": "Lior Peretz", "age": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, form := doJSON(t, http.MethodPost, srv.URL+"/api/forms", map[string]interface{}{
		"kidId":       "lior-peretz",
		"sessionDate": "2026-02-10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionID := form["sessionId"].(string)
	require.NotEmpty(t, sessionID)

	resp, sess := doJSON(t, http.MethodGet, srv.URL+"/api/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", sess["status"])
	assert.Equal(t, form["formId"], sess["formId"])
}

func TestRecurringSessions(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name": "Maya Katz", "age": 6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/sessions/recurring", map[string]interface{}{
		"kidId":     "maya-katz",
		"startDate": "2026-01-05",
		"until":     "2026-01-26",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(4), body["count"])

	sessions := body["sessions"].([]interface{})
	first := sessions[0].(map[string]interface{})
	last := sessions[3].(map[string]interface{})
	firstDate, err := time.Parse(time.RFC3339, first["scheduledDate"].(string))
	require.NoError(t, err)
	lastDate, err := time.Parse(time.RFC3339, last["scheduledDate"].(string))
	require.NoError(t, err)
	assert.Equal(t, 21*24*time.Hour, lastDate.Sub(firstDate))
}

func TestOverdueAlerts(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name": "Tom Avraham", "age": 7,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/kids/tom-avraham/attach", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	past := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	future := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/sessions", map[string]interface{}{
		"kidId": "tom-avraham", "scheduledDate": past,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/sessions", map[string]interface{}{
		"kidId": "tom-avraham", "scheduledDate": future,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/alerts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
}

func TestGoalLibraryDeduplication(t *testing.T) {
	srv := newTestServer(t)

	for _, name := range []string{"Kid One", "Kid Two"} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
			"name": name, "age": 5,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	for _, kidID := range []string{"kid-one", "kid-two"} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+fmt.Sprintf("/api/kids/%s/goals", kidID), map[string]interface{}{
			"title": "Count to ten", "categoryId": "cognitive",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/goal-library", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(1), body["count"])
	item := body["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(2), item["usageCount"])
	assert.Equal(t, false, item["isOrphan"])
}

func TestGoalCategoryValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name": "Goal Kid", "age": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/kids/goal-kid/goals", map[string]interface{}{
		"title": "Fly", "categoryId": "aviation",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotificationDismissal(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/practitioners", map[string]interface{}{
		"name": "Rina Gold", "role": "speech",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, note := doJSON(t, http.MethodPost, srv.URL+"/api/notifications", map[string]interface{}{
		"recipientType": "practitioner",
		"recipientId":   "rina-gold-id",
		"message":       "Schedule update",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	noteID := note["notificationId"].(string)

	resp, body := doJSON(t, http.MethodGet,
		srv.URL+"/api/notifications?recipientType=practitioner&recipientId=rina-gold-id", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/notifications/"+noteID+"/dismiss", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet,
		srv.URL+"/api/notifications?recipientType=practitioner&recipientId=rina-gold-id", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])

	// The sender still sees it until they dismiss their own view.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/notifications/admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/notifications/"+noteID+"/dismiss-admin", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/notifications/admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])
}

func TestBoardRequestFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/kids", map[string]interface{}{
		"name": "Board Kid", "age": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, created := doJSON(t, http.MethodPost, srv.URL+"/api/kids/board-kid/board-requests", map[string]interface{}{
		"description": "Add morning routine column",
		"requestedBy": "parent-1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "open", created["status"])
	requestID := created["requestId"].(string)

	resp, updated := doJSON(t, http.MethodPatch, srv.URL+"/api/board-requests/"+requestID, map[string]interface{}{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", updated["status"])

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/board-requests/"+requestID, map[string]interface{}{
		"status": "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
