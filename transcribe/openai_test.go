package transcribe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"brieftube/transcribe"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAISummarizer(t *testing.T) {
	t.Run("returns the completion text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "a paragraph summary"}}]}`))
		}))
		defer server.Close()

		config := openai.DefaultConfig("test-key")
		config.BaseURL = server.URL
		summarizer := transcribe.NewOpenAISummarizer(openai.NewClientWithConfig(config))

		summary, err := summarizer.Summarize(context.Background(), "full transcript")

		require.NoError(t, err)
		assert.Equal(t, "a paragraph summary", summary)
	})

	t.Run("no choices is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices": []}`))
		}))
		defer server.Close()

		config := openai.DefaultConfig("test-key")
		config.BaseURL = server.URL
		summarizer := transcribe.NewOpenAISummarizer(openai.NewClientWithConfig(config))

		_, err := summarizer.Summarize(context.Background(), "full transcript")

		assert.Error(t, err)
	})
}
