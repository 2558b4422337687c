package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/pkg/logger"
)

func testInstance() *models.ChannelInstance {
	return &models.ChannelInstance{InstanceName: "main", Token: "secret"}
}

func TestConnectionState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/instance/connectionState/main" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "secret" {
			t.Fatalf("missing apikey header")
		}
		w.Write([]byte(`{"instance":{"instanceName":"main","state":"open"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())
	state, err := client.ConnectionState(context.Background(), testInstance())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != "open" {
		t.Fatalf("got state %q, want open", state)
	}
}

func TestConnectionStateMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())
	if _, err := client.ConnectionState(context.Background(), testInstance()); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("got %v, want ErrMalformedResponse", err)
	}
}

func TestSendText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/message/sendText/main" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"key":{"id":"msg-1"},"status":"PENDING"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())
	if err := client.SendText(context.Background(), testInstance(), Address("5511999999999"), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSendTextErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid number"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, logger.NewNop())
	if err := client.SendText(context.Background(), testInstance(), Address("bad"), "hello"); err == nil {
		t.Fatal("expected error for non-2xx provider response")
	}
}
