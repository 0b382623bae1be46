package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasbecker/upload-ai/errors"
	"github.com/lucasbecker/upload-ai/models"
)

// Client talks to the upload-ai API. No call is retried automatically;
// that is the caller's decision.
type Client struct {
	baseURL string
	hc      *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UploadAudio sends the audio artifact as a single multipart body and
// returns the newly minted video id. Re-uploading the same artifact creates
// a new record.
func (c *Client) UploadAudio(ctx context.Context, audioPath string) (string, error) {
	const op = "Client.UploadAudio"

	f, err := os.Open(audioPath)
	if err != nil {
		return "", errors.Upload(op, err, "failed to open audio artifact")
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", errors.Upload(op, err, "failed to build multipart body")
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", errors.Upload(op, err, "failed to read audio artifact")
	}
	if err := mw.Close(); err != nil {
		return "", errors.Upload(op, err, "failed to finish multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/videos", &body)
	if err != nil {
		return "", errors.Upload(op, err, "failed to build upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", errors.Upload(op, err, "upload request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Upload(op, httpError(resp), "server rejected upload")
	}

	var out models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Upload(op, err, "invalid upload response")
	}
	if out.ID == "" {
		return "", errors.Upload(op, nil, "upload response missing id")
	}

	return out.ID, nil
}

// CreateTranscription asks the server to transcribe the stored artifact.
// The hint biases domain vocabulary.
func (c *Client) CreateTranscription(ctx context.Context, videoID, hint string) (string, error) {
	const op = "Client.CreateTranscription"

	url := fmt.Sprintf("%s/videos/%s/transcription", c.baseURL, videoID)
	resp, err := c.postJSON(ctx, url, models.TranscriptionRequest{Prompt: hint})
	if err != nil {
		return "", errors.Transcription(op, err, "transcription request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", errors.NotFound(op, httpError(resp), "video not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Transcription(op, httpError(resp), "server failed to transcribe")
	}

	var out models.TranscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Transcription(op, err, "invalid transcription response")
	}

	return out.Transcription, nil
}

// Prompts fetches the template catalog in server order.
func (c *Client) Prompts(ctx context.Context) ([]models.Prompt, error) {
	const op = "Client.Prompts"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/prompts", nil)
	if err != nil {
		return nil, errors.Internal(op, err, "failed to build prompts request")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Internal(op, err, "prompts request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internal(op, httpError(resp), "server failed to list prompts")
	}

	var prompts []models.Prompt
	if err := json.NewDecoder(resp.Body).Decode(&prompts); err != nil {
		return nil, errors.Internal(op, err, "invalid prompts response")
	}

	return prompts, nil
}

// Prompt fetches one template by id.
func (c *Client) Prompt(ctx context.Context, id string) (*models.Prompt, error) {
	const op = "Client.Prompt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/prompts/"+id, nil)
	if err != nil {
		return nil, errors.Internal(op, err, "failed to build prompt request")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Internal(op, err, "prompt request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NotFound(op, httpError(resp), "prompt not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Internal(op, httpError(resp), "server failed to fetch prompt")
	}

	var prompt models.Prompt
	if err := json.NewDecoder(resp.Body).Decode(&prompt); err != nil {
		return nil, errors.Internal(op, err, "invalid prompt response")
	}

	return &prompt, nil
}

// Complete streams a completion, invoking onChunk per received fragment.
// A mid-stream failure returns a generation error after the chunks read so
// far were delivered: the caller sees a truncated text, never a silently
// discarded one.
func (c *Client) Complete(ctx context.Context, creq models.CompletionRequest, onChunk func(string) error) error {
	const op = "Client.Complete"

	resp, err := c.postJSON(ctx, c.baseURL+"/ai/completion", creq)
	if err != nil {
		return errors.Generation(op, err, "completion request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Generation(op, httpError(resp), "server rejected completion")
	}

	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if cbErr := onChunk(string(buf[:n])); cbErr != nil {
				return cbErr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Generation(op, err, "completion stream interrupted")
		}
	}
}

func (c *Client) postJSON(ctx context.Context, url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.hc.Do(req)
}

func httpError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(b))
	if msg == "" {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode, msg)
}
