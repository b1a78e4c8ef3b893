package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeBucket struct {
	objectName  string
	contentType string
	body        string
	publicURL   string
}

func (f *fakeBucket) Upload(_ context.Context, objectName, contentType string, body io.Reader) (string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.objectName = objectName
	f.contentType = contentType
	f.body = string(raw)
	return f.publicURL, nil
}

func (f *fakeBucket) Close() error { return nil }

func TestUploadFromURL(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		io.WriteString(w, "jpeg-bytes")
	}))
	defer origin.Close()

	bucket := &fakeBucket{publicURL: "https://cdn.example.org/images/abc.jpg"}
	svc := NewImageService(bucket, testLogger())

	hosted, err := svc.UploadFromURL(context.Background(), origin.URL+"/raw.jpg")
	if err != nil {
		t.Fatalf("UploadFromURL: %v", err)
	}
	if hosted != bucket.publicURL {
		t.Fatalf("hosted URL: want=%s got=%s", bucket.publicURL, hosted)
	}
	if bucket.body != "jpeg-bytes" {
		t.Fatalf("uploaded body: want=jpeg-bytes got=%s", bucket.body)
	}
	if bucket.contentType != "image/jpeg" {
		t.Fatalf("content type: want=image/jpeg got=%s", bucket.contentType)
	}
	if !strings.HasPrefix(bucket.objectName, "images/") {
		t.Fatalf("object name must live under images/, got %s", bucket.objectName)
	}
}

func TestUploadFromURLBadStatus(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer origin.Close()

	svc := NewImageService(&fakeBucket{}, testLogger())
	if _, err := svc.UploadFromURL(context.Background(), origin.URL+"/missing.jpg"); err == nil {
		t.Fatalf("want error on non-200 source response")
	}
}
