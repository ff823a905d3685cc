package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	lastTier   ModelTier
	lastPrompt string
	response   string
	err        error
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, tier ModelTier) (string, error) {
	s.lastTier = tier
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubClient) GetModel(tier ModelTier) string { return string(tier) }

func (s *stubClient) Close() error { return nil }

func TestTierGenerator(t *testing.T) {
	stub := &stubClient{response: `{"ok": true}`}
	gen := TierGenerator(stub, TierAdvanced)

	out, err := gen.Generate(context.Background(), "analyze this")
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)
	assert.Equal(t, TierAdvanced, stub.lastTier)
	assert.Equal(t, "analyze this", stub.lastPrompt)
}

func TestGeneratorFunc(t *testing.T) {
	boom := errors.New("boom")
	gen := GeneratorFunc(func(context.Context, string) (string, error) {
		return "", boom
	})

	_, err := gen.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, boom)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	require.Error(t, err)

	var modelErr *ModelError
	assert.True(t, errors.As(err, &modelErr))
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "other"}, "key")
	assert.Error(t, err)
}

func TestModelError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &ModelError{Message: "failed to generate content", Cause: cause}

	assert.Equal(t, "model call failed: failed to generate content: quota exceeded", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "model call failed: empty", (&ModelError{Message: "empty"}).Error())
}

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(` 1}`)}},
		}},
	}
	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, text)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	blank := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}},
		}},
	}
	_, err = extractTextFromResponse(blank)
	var modelErr *ModelError
	assert.True(t, errors.As(err, &modelErr))
}
