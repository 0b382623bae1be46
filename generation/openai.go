package generation

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/lucasbecker/upload-ai/errors"
)

// OpenAIStreamer streams chat completions token by token.
type OpenAIStreamer struct {
	client *openai.Client
	model  string
}

func NewOpenAIStreamer(client *openai.Client, model string) *OpenAIStreamer {
	if model == "" {
		model = openai.GPT3Dot5Turbo16K
	}
	return &OpenAIStreamer{client: client, model: model}
}

func (s *OpenAIStreamer) Stream(ctx context.Context, req Request, onChunk func(string) error) error {
	const op = "OpenAIStreamer.Stream"

	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: req.Temperature,
		Stream:      true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		return apperrors.Generation(op, err, "failed to open completion stream")
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return apperrors.Generation(op, err, "completion stream failed")
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			if err := onChunk(delta); err != nil {
				return err
			}
		}
	}
}
