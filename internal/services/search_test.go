package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"resumeats/ats-analyzer/internal/models"
)

func newTestSearchService(url string) SearchService {
	return NewSearchService(SearchOptions{
		APIKey:      "serper-key",
		URL:         url,
		ResultCount: 3,
		Timeout:     5 * time.Second,
	}, NewPromptBuilder(), nil)
}

func TestTutorialsForDomain(t *testing.T) {
	var gotBody serperRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if key := r.Header.Get("X-API-KEY"); key != "serper-key" {
			t.Errorf("X-API-KEY = %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic": [
			{"title": "Data Science Resume Tips", "link": "https://www.youtube.com/watch?v=abc"},
			{"title": "Blog post", "link": "https://example.com/resume"},
			{"title": "Short", "link": "https://youtu.be/xyz"},
			{"title": "No link"}
		]}`))
	}))
	defer server.Close()

	got := newTestSearchService(server.URL).TutorialsForDomain(context.Background(), "Data Science")

	want := models.Recommendations{
		"Data Science_resume_tutorials": []models.Tutorial{
			{Title: "Data Science Resume Tips", URL: "https://www.youtube.com/watch?v=abc"},
			{Title: "Short", URL: "https://youtu.be/xyz"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TutorialsForDomain() mismatch (-want +got):\n%s", diff)
	}

	wantBody := serperRequest{Q: "Data Science resume formatting tutorial site:youtube.com", Num: 3}
	if diff := cmp.Diff(wantBody, gotBody); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestTutorialsForDomainFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusForbidden)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"organic": [`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			got := newTestSearchService(server.URL).TutorialsForDomain(context.Background(), "Finance")
			want := models.Recommendations{"error": "Failed to fetch video recommendations."}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if !got.Failed() {
				t.Error("Failed() = false")
			}
		})
	}
}

func TestTutorialsForDomainUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	got := newTestSearchService(url).TutorialsForDomain(context.Background(), "Marketing")
	if !got.Failed() {
		t.Errorf("expected an error entry, got %v", got)
	}
}
