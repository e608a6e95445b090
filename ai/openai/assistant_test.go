package openai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel records prompts and call options and answers with a canned reply.
type fakeModel struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	opts    []llms.CallOptions
}

var _ llms.Model = (*fakeModel)(nil)

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var sb strings.Builder
	for _, m := range messages {
		for _, p := range m.Parts {
			if tc, ok := p.(llms.TextContent); ok {
				sb.WriteString(tc.Text)
			}
		}
	}
	f.prompts = append(f.prompts, sb.String())

	var co llms.CallOptions
	for _, o := range options {
		o(&co)
	}
	f.opts = append(f.opts, co)

	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeModel) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func testKey(t *testing.T) core.APIKey {
	t.Helper()
	key, err := core.NewAPIKey("sk-test-0001")
	require.NoError(t, err)
	return key
}

func newTestAssistant(t *testing.T, model *fakeModel, opts ...ai.ConfigOption) (*Assistant, *[]core.APIKey) {
	t.Helper()
	var keys []core.APIKey
	a, err := newAssistant(ai.NewConfig(opts...), WithModelFactory(func(key core.APIKey) (llms.Model, error) {
		keys = append(keys, key)
		return model, nil
	}))
	require.NoError(t, err)
	return a, &keys
}

func TestNewAssistant(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := NewAssistant(nil)
		require.NoError(t, err)
		assert.NotNil(t, a)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewAssistant(ai.NewConfig(ai.WithModel("")))
		assert.Error(t, err)
	})

	t.Run("nil factory", func(t *testing.T) {
		_, err := NewAssistant(nil, WithModelFactory(nil))
		assert.Error(t, err)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		a, err := newAssistant(nil, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, a.logger)
	})
}

func TestEnhanceSearchResults(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers results and embeds the query", func(t *testing.T) {
		model := &fakeModel{reply: "  The pipeline keeps failing.  "}
		a, keys := newTestAssistant(t, model)

		text, err := a.EnhanceSearchResults(ctx, testKey(t), []string{"deploy failed", "rollback\n\ndone"}, "deployment pipeline")
		require.NoError(t, err)
		assert.Equal(t, "The pipeline keeps failing.", text)

		prompt := model.lastPrompt()
		assert.Contains(t, prompt, `for the query "deployment pipeline"`)
		assert.Contains(t, prompt, "1. deploy failed\n\n2. rollback done")
		require.Len(t, *keys, 1)
		assert.Equal(t, "sk-test-0001", (*keys)[0].Value())
	})

	t.Run("caps the number of contents", func(t *testing.T) {
		model := &fakeModel{reply: "ok"}
		a, _ := newTestAssistant(t, model, ai.WithMaxContents(2))

		_, err := a.EnhanceSearchResults(ctx, testKey(t), []string{"one", "two", "three"}, "q")
		require.NoError(t, err)
		assert.Contains(t, model.lastPrompt(), "2. two")
		assert.NotContains(t, model.lastPrompt(), "3. three")
	})

	t.Run("passes sampling options", func(t *testing.T) {
		model := &fakeModel{reply: "ok"}
		a, _ := newTestAssistant(t, model, ai.WithTemperature(0.1), ai.WithMaxTokens(123))

		_, err := a.EnhanceSearchResults(ctx, testKey(t), []string{"x"}, "q")
		require.NoError(t, err)
		require.Len(t, model.opts, 1)
		assert.Equal(t, 0.1, model.opts[0].Temperature)
		assert.Equal(t, 123, model.opts[0].MaxTokens)
	})

	t.Run("provider failure returns fallback", func(t *testing.T) {
		model := &fakeModel{err: errors.New("401 unauthorized")}
		a, _ := newTestAssistant(t, model)

		text, err := a.EnhanceSearchResults(ctx, testKey(t), []string{"x"}, "q")
		assert.ErrorIs(t, err, ai.ErrGenerationFailed)
		assert.Equal(t, ai.FallbackEnhancement, text)
	})

	t.Run("blank reply returns fallback", func(t *testing.T) {
		model := &fakeModel{reply: "   "}
		a, _ := newTestAssistant(t, model)

		text, err := a.EnhanceSearchResults(ctx, testKey(t), []string{"x"}, "q")
		assert.ErrorIs(t, err, ai.ErrEmptyResponse)
		assert.Equal(t, ai.FallbackEnhancement, text)
	})

	t.Run("missing key", func(t *testing.T) {
		model := &fakeModel{reply: "ok"}
		a, keys := newTestAssistant(t, model)

		text, err := a.EnhanceSearchResults(ctx, core.APIKey{}, []string{"x"}, "q")
		assert.ErrorIs(t, err, ai.ErrAPIKeyRequired)
		assert.Equal(t, ai.FallbackEnhancement, text)
		assert.Empty(t, *keys)
	})
}

func TestExplainQuery(t *testing.T) {
	model := &fakeModel{reply: "It means X."}
	a, _ := newTestAssistant(t, model)

	text, err := a.ExplainQuery(context.Background(), testKey(t), "what   is  a  canary deploy")
	require.NoError(t, err)
	assert.Equal(t, "It means X.", text)
	assert.Contains(t, model.lastPrompt(), `"what is a canary deploy"`)

	model.err = errors.New("timeout")
	text, err = a.ExplainQuery(context.Background(), testKey(t), "q")
	assert.Error(t, err)
	assert.Equal(t, ai.FallbackEnhancement, text)
}

func TestSummarizeContent(t *testing.T) {
	model := &fakeModel{reply: "Short."}
	a, _ := newTestAssistant(t, model)

	text, err := a.SummarizeContent(context.Background(), testKey(t), "  a long story  ")
	require.NoError(t, err)
	assert.Equal(t, "Short.", text)
	assert.True(t, strings.HasSuffix(model.lastPrompt(), ":\n\na long story"))

	model.err = errors.New("timeout")
	text, err = a.SummarizeContent(context.Background(), testKey(t), "x")
	assert.Error(t, err)
	assert.Equal(t, ai.FallbackSummary, text)
}

func TestValidateAPIKey(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted", func(t *testing.T) {
		model := &fakeModel{reply: "Hi!"}
		a, _ := newTestAssistant(t, model)
		assert.True(t, a.ValidateAPIKey(ctx, testKey(t)))
		assert.Equal(t, validationPrompt, model.lastPrompt())
	})

	t.Run("rejected", func(t *testing.T) {
		a, _ := newTestAssistant(t, &fakeModel{err: errors.New("invalid_api_key")})
		assert.False(t, a.ValidateAPIKey(ctx, testKey(t)))
	})

	t.Run("factory error", func(t *testing.T) {
		a, err := newAssistant(nil, WithModelFactory(func(core.APIKey) (llms.Model, error) {
			return nil, errors.New("bad base url")
		}))
		require.NoError(t, err)
		assert.False(t, a.ValidateAPIKey(ctx, testKey(t)))
	})

	t.Run("zero key", func(t *testing.T) {
		a, _ := newTestAssistant(t, &fakeModel{reply: "Hi!"})
		assert.False(t, a.ValidateAPIKey(ctx, core.APIKey{}))
	})
}

func TestClipText(t *testing.T) {
	assert.Equal(t, "a b c", clipText("  a \n b\t c ", 10))
	assert.Equal(t, "abc…", clipText("abcdef", 3))
	assert.Equal(t, "héé…", clipText("héééé", 3))
}
