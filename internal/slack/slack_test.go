package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pep299/template-blog-publisher/internal/publisher"
	"github.com/pep299/template-blog-publisher/internal/schema"
)

var _ publisher.Notifier = (*Client)(nil)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]ChatPostMessageRequest) {
	t.Helper()
	var got []ChatPostMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/chat.postMessage" {
			t.Errorf("Expected path /chat.postMessage, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer xoxb-test" {
			t.Errorf("Expected bearer token, got %q", auth)
		}
		var req ChatPostMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		got = append(got, req)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient("xoxb-test", "#blog")
	client.baseURL = server.URL
	client.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }
	return client, &got
}

func ok(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"ok":true}`))
}

func TestNewClient(t *testing.T) {
	client := NewClient("xoxb-test", "#blog")

	if client.channel != "#blog" {
		t.Errorf("Expected channel '#blog', got '%s'", client.channel)
	}
	if client.baseURL != defaultBaseURL {
		t.Errorf("Expected base URL %s, got %s", defaultBaseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected non-nil http client")
	}
}

func TestPublished(t *testing.T) {
	client, got := newTestClient(t, ok)

	res := &publisher.Result{
		RunID: "run-1", PostID: 42, AttachmentID: 43,
		Category: "crypto staking", Kind: schema.KindCaseStudy, Title: "Staking 101",
	}
	if err := client.Published(context.Background(), res); err != nil {
		t.Fatalf("Published() error = %v", err)
	}

	if len(*got) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(*got))
	}
	msg := (*got)[0]
	if msg.Channel != "#blog" {
		t.Errorf("Expected channel '#blog', got '%s'", msg.Channel)
	}
	for _, want := range []string{"*Staking 101*", "Post ID: 42", "Kind: case_study", "attachment 43", "run-1", "2024-03-05 10:00:00 UTC"} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("message missing %q:\n%s", want, msg.Text)
		}
	}
}

func TestPublished_Placeholder(t *testing.T) {
	client, got := newTestClient(t, ok)

	if err := client.Published(context.Background(), &publisher.Result{Title: "T"}); err != nil {
		t.Fatalf("Published() error = %v", err)
	}
	if !strings.Contains((*got)[0].Text, "Image: placeholder") {
		t.Errorf("message = %s", (*got)[0].Text)
	}
}

func TestFailed(t *testing.T) {
	client, got := newTestClient(t, ok)

	res := &publisher.Result{RunID: "run-2", Category: "crypto staking"}
	if err := client.Failed(context.Background(), res, errors.New("no eligible term")); err != nil {
		t.Fatalf("Failed() error = %v", err)
	}
	text := (*got)[0].Text
	if !strings.Contains(text, "Error: no eligible term") || !strings.Contains(text, "Category: crypto staking") {
		t.Errorf("message = %s", text)
	}
	if strings.Contains(text, "Kind:") {
		t.Errorf("empty kind should be omitted: %s", text)
	}
}

func TestSendMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name:    "http status",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			want:    "status 500",
		},
		{
			name: "api error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
			},
			want: "channel_not_found",
		},
		{
			name:    "bad body",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`not json`)) },
			want:    "decoding response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)
			err := client.Published(context.Background(), &publisher.Result{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
