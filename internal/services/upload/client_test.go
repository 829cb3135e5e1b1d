package upload

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/models"
)

func TestRequestUploadTicket_Success(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json, got %s", ct)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(models.UploadTicket{
			UploadURL:       "https://storage.example.com/bucket/obj-123?sig=abc",
			ObjectKey:       "obj-123",
			RequiredHeaders: map[string]string{"Content-Type": "image/png"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ticket, err := client.RequestUploadTicket(context.Background(), "photo.png", "image/png")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ticket.ObjectKey != "obj-123" {
		t.Errorf("Expected object key obj-123, got %s", ticket.ObjectKey)
	}
	if gotBody["fileName"] != "photo.png" || gotBody["fileType"] != "image/png" {
		t.Errorf("Unexpected ticket request body: %+v", gotBody)
	}
}

func TestRequestUploadTicket_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ticket quota exceeded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.RequestUploadTicket(context.Background(), "photo.png", "image/png")
	if err == nil {
		t.Fatal("Expected error on 500 response")
	}

	var serverErr *interfaces.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("Expected *interfaces.ServerError, got %T: %v", err, err)
	}
	if serverErr.Status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", serverErr.Status)
	}
}

func TestRequestUploadTicket_IncompleteTicket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"uploadUrl": "https://storage.example.com/x"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.RequestUploadTicket(context.Background(), "photo.png", "image/png")
	if err == nil {
		t.Fatal("Expected error for ticket missing objectKey")
	}
}

func TestRequestUploadTicket_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	client := NewClient(server.URL)
	_, err := client.RequestUploadTicket(context.Background(), "photo.png", "image/png")

	var netErr *interfaces.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Expected *interfaces.NetworkError, got %T: %v", err, err)
	}
}

func TestPutObject_Success(t *testing.T) {
	var gotHeader string
	var gotBytes int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" {
			t.Errorf("Expected PUT, got %s", r.Method)
		}
		gotHeader = r.Header.Get("Content-Type")
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBytes = n
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("http://unused")
	ticket := &models.UploadTicket{
		UploadURL:       server.URL + "/bucket/obj-123",
		ObjectKey:       "obj-123",
		RequiredHeaders: map[string]string{"Content-Type": "image/jpeg"},
	}

	if err := client.PutObject(context.Background(), ticket, []byte("fake image bytes")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotHeader != "image/jpeg" {
		t.Errorf("Ticket's required header not applied, got %q", gotHeader)
	}
	if gotBytes == 0 {
		t.Error("Expected body bytes to be uploaded")
	}
}

func TestPutObject_UploadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("http://unused")
	ticket := &models.UploadTicket{UploadURL: server.URL, ObjectKey: "obj-123"}

	err := client.PutObject(context.Background(), ticket, []byte("bytes"))
	if err == nil {
		t.Fatal("Expected error on 403 response")
	}

	var uploadErr *interfaces.UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("Expected *interfaces.UploadError, got %T: %v", err, err)
	}
	if uploadErr.Status != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", uploadErr.Status)
	}
}
