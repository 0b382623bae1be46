package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasbecker/upload-ai/errors"
	"github.com/lucasbecker/upload-ai/models"
)

func tempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(path, []byte("mp3-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploadAudio(t *testing.T) {
	const videoID = "0b9f3f44-5a60-4e4f-9b3c-1c51adbef2ca"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/videos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file field: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Filename != "audio.mp3" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "mp3-bytes" {
			t.Errorf("body = %q", data)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.UploadResponse{ID: videoID})
	}))
	defer srv.Close()

	c := New(srv.URL)
	id, err := c.UploadAudio(context.Background(), tempAudio(t))
	if err != nil {
		t.Fatalf("UploadAudio() error: %v", err)
	}
	if id != videoID {
		t.Errorf("id = %q", id)
	}
}

func TestUploadAudioServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"too large"}`, http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.UploadAudio(context.Background(), tempAudio(t))
	if !errors.IsUpload(err) {
		t.Fatalf("expected upload error, got %v", err)
	}
}

func TestUploadAudioMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.UploadAudio(context.Background(), tempAudio(t))
	if !errors.IsUpload(err) {
		t.Fatalf("expected upload error for missing id, got %v", err)
	}
}

func TestUploadAudioUnreadableFile(t *testing.T) {
	c := New("http://localhost:0")
	_, err := c.UploadAudio(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	if !errors.IsUpload(err) {
		t.Fatalf("expected upload error, got %v", err)
	}
}

func TestCreateTranscription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos/abc-id/transcription" {
			t.Errorf("path = %s", r.URL.Path)
		}

		var req models.TranscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if req.Prompt != "product demo" {
			t.Errorf("hint = %q", req.Prompt)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.TranscriptionResponse{Transcription: "hello"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	text, err := c.CreateTranscription(context.Background(), "abc-id", "product demo")
	if err != nil {
		t.Fatalf("CreateTranscription() error: %v", err)
	}
	if text != "hello" {
		t.Errorf("transcription = %q", text)
	}
}

func TestCreateTranscriptionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"video not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateTranscription(context.Background(), "unknown", "")
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCreateTranscriptionServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"backend down"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateTranscription(context.Background(), "abc-id", "")
	if !errors.IsTranscription(err) {
		t.Fatalf("expected transcription error, got %v", err)
	}
}

func TestPrompts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/prompts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Prompt{
			{ID: "a", Title: "YouTube title", Template: "Title for: {transcription}"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	prompts, err := c.Prompts(context.Background())
	if err != nil {
		t.Fatalf("Prompts() error: %v", err)
	}
	if len(prompts) != 1 || prompts[0].Template != "Title for: {transcription}" {
		t.Errorf("prompts = %+v", prompts)
	}
}

func TestPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prompts/abc-id" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Prompt{
			ID: "abc-id", Title: "YouTube title", Template: "Title for: {transcription}",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	p, err := c.Prompt(context.Background(), "abc-id")
	if err != nil {
		t.Fatalf("Prompt() error: %v", err)
	}
	if p.Template != "Title for: {transcription}" {
		t.Errorf("template = %q", p.Template)
	}
}

func TestPromptNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"prompt not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Prompt(context.Background(), "unknown")
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if req.Prompt != "Title for: hello" || req.Temperature != 0.5 {
			t.Errorf("request = %+v", req)
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		flusher := w.(http.Flusher)
		for _, chunk := range []string{"How ", "to ", "ship"} {
			w.Write([]byte(chunk))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	var got strings.Builder
	err := c.Complete(context.Background(), models.CompletionRequest{
		Prompt:      "Title for: hello",
		Temperature: 0.5,
	}, func(chunk string) error {
		got.WriteString(chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if got.String() != "How to ship" {
		t.Errorf("assembled = %q", got.String())
	}
}

func TestCompleteRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"prompt is required"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Complete(context.Background(), models.CompletionRequest{}, func(string) error {
		t.Error("no chunk may be delivered on rejection")
		return nil
	})
	if !errors.IsGeneration(err) {
		t.Fatalf("expected generation error, got %v", err)
	}
}

func TestCompleteTruncatedStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", "100")
		w.Write([]byte("partial "))
		// Connection dies before the promised body completes.
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Fatalf("hijack: %v", err)
		}
		conn.Close()
	}))
	defer srv.Close()

	c := New(srv.URL)
	var got strings.Builder
	err := c.Complete(context.Background(), models.CompletionRequest{
		Prompt:      "p",
		Temperature: 0.5,
	}, func(chunk string) error {
		got.WriteString(chunk)
		return nil
	})

	if !errors.IsGeneration(err) {
		t.Fatalf("expected generation error, got %v", err)
	}
	// Whatever arrived before the cut stays delivered.
	if !strings.HasPrefix(got.String(), "partial") && got.String() != "" {
		t.Errorf("unexpected partial content %q", got.String())
	}
}
