package http_api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/pkg/logger"
)

type jobRegistryStub struct {
	jobs map[string]bool
}

func (s *jobRegistryStub) Jobs() map[string]bool {
	return s.jobs
}

type syncerStub struct {
	instance *models.ChannelInstance
	err      error
}

func (s *syncerStub) SyncInstance(ctx context.Context, instanceID int64) (*models.ChannelInstance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.instance, nil
}

func newTestServer(jobs models.JobRegistry, syncer models.ChannelSyncer) *HTTPServer {
	gin.SetMode(gin.TestMode)
	return NewHTTPServer(jobs, syncer, 0, logger.NewNop())
}

func TestHealth(t *testing.T) {
	s := newTestServer(&jobRegistryStub{}, &syncerStub{})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
}

func TestJobStatus(t *testing.T) {
	s := newTestServer(&jobRegistryStub{jobs: map[string]bool{"billing-reminders": true}}, &syncerStub{})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	var body struct {
		Jobs map[string]bool `json:"jobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !body.Jobs["billing-reminders"] {
		t.Fatalf("job status missing, got %v", body.Jobs)
	}
}

func TestSyncChannel(t *testing.T) {
	syncer := &syncerStub{instance: &models.ChannelInstance{ID: 4, Status: models.ChannelConnected, Usable: true}}
	s := newTestServer(&jobRegistryStub{}, syncer)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/channels/4/sync", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/channels/abc/sync", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400 for a bad id", w.Code)
	}

	syncer.err = errors.New("not found")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/channels/4/sync", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404 when sync fails", w.Code)
	}
}
