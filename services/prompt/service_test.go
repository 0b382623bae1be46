package prompt

import (
	"context"
	"testing"

	"github.com/lucasbecker/upload-ai/models"
)

type fakePromptRepo struct {
	prompts []models.Prompt
}

func (f *fakePromptRepo) List(ctx context.Context) ([]models.Prompt, error) {
	return f.prompts, nil
}

func (f *fakePromptRepo) Find(ctx context.Context, id string) (*models.Prompt, error) {
	for _, p := range f.prompts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func TestFill(t *testing.T) {
	tests := []struct {
		name          string
		template      string
		transcription string
		expected      string
	}{
		{
			name:          "single placeholder",
			template:      "Title for: {transcription}",
			transcription: "hello world",
			expected:      "Title for: hello world",
		},
		{
			name:          "no placeholder is unaffected",
			template:      "Write a haiku about Go.",
			transcription: "hello world",
			expected:      "Write a haiku about Go.",
		},
		{
			name:          "placeholder is a literal match",
			template:      "{ transcription } and {transcription}",
			transcription: "x",
			expected:      "{ transcription } and x",
		},
		{
			name:          "empty transcription removes the token",
			template:      "Before {transcription} after",
			transcription: "",
			expected:      "Before  after",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fill(tt.template, tt.transcription); got != tt.expected {
				t.Errorf("Fill() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestListReturnsTemplatesVerbatim(t *testing.T) {
	repo := &fakePromptRepo{prompts: []models.Prompt{
		{ID: "1", Title: "YouTube description", Template: "Describe: {transcription}"},
		{ID: "2", Title: "YouTube title", Template: "Title: {transcription}"},
	}}
	svc := NewService(repo)

	prompts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	if len(prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(prompts))
	}
	if prompts[0].Template != "Describe: {transcription}" {
		t.Errorf("template was not returned verbatim: %q", prompts[0].Template)
	}
}
