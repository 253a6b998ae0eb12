package transcribe

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const summarizePrompt = `You are an helpful assistant. Your task is to summarize the transcript of a video the user gives you in one informative paragraph.
You will not add introductory sentences like "This text is about", or "Summary of...". Cover the main points in the order they appear.
`

type OpenAISummarizer struct {
	client *openai.Client
}

func NewOpenAISummarizer(client *openai.Client) *OpenAISummarizer {
	return &OpenAISummarizer{
		client: client,
	}
}

func (sum *OpenAISummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	resp, err := sum.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: summarizePrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: transcript,
				},
			},
		})

	if err != nil {
		return "", fmt.Errorf("failed to fetch summary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no summary in response")
	}

	return resp.Choices[len(resp.Choices)-1].Message.Content, nil
}
