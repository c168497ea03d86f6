package stub

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newStubRouter() (*gin.Engine, *CycleStorage) {
	gin.SetMode(gin.TestMode)
	storage := NewCycleStorage()
	r := gin.New()
	NewHandler(storage).Register(r)
	return r, storage
}

func scheduleBody(t *testing.T, projectID, runID, scheduleTime string) []byte {
	t.Helper()

	payload, err := json.Marshal(cyclePayload{ProjectID: projectID, RunID: runID})
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	body, err := json.Marshal(taskRequest{Task: task{
		HTTPRequest:  httpRequest{Body: base64.StdEncoding.EncodeToString(payload)},
		ScheduleTime: scheduleTime,
	}})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return body
}

func TestHandleScheduleAndList(t *testing.T) {
	router, storage := newStubRouter()

	req := httptest.NewRequest(http.MethodPost, "/tasks",
		bytes.NewReader(scheduleBody(t, "p1", "run-1", "2025-03-10T12:30:00Z")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp taskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name == "" || resp.ScheduleTime != "2025-03-10T12:30:00Z" {
		t.Errorf("unexpected response %+v", resp)
	}

	cycles := storage.List("p1")
	if len(cycles) != 1 || cycles[0].RunID != "run-1" {
		t.Fatalf("expected stored cycle for run-1, got %+v", cycles)
	}
}

func TestHandleScheduleRejectsBadBody(t *testing.T) {
	router, _ := newStubRouter()

	body, err := json.Marshal(taskRequest{Task: task{
		HTTPRequest: httpRequest{Body: "not base64!!"},
	}})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleCancel(t *testing.T) {
	router, storage := newStubRouter()
	stored := storage.Add(ScheduledCycle{ProjectID: "p1", RunID: "run-1"})

	req := httptest.NewRequest(http.MethodDelete, "/tasks/"+stored.Name, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(storage.List("")) != 0 {
		t.Error("expected cycle removed")
	}

	req = httptest.NewRequest(http.MethodDelete, "/tasks/"+stored.Name, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown task, got %d", w.Code)
	}
}

func TestHandleReset(t *testing.T) {
	router, storage := newStubRouter()
	storage.Add(ScheduledCycle{ProjectID: "p1"})
	storage.Add(ScheduledCycle{ProjectID: "p2"})

	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(storage.List("")) != 0 {
		t.Error("expected storage cleared")
	}
}
