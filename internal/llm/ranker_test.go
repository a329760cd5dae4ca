package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	response string
	err      error
	prompts  []string
}

func (c *stubClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.response, c.err
}

func TestRank_OrdersByModelOutput(t *testing.T) {
	client := &stubClient{response: "2, 0, 1"}
	ranker := NewSeverityRanker(client)

	order, err := ranker.Rank(context.Background(), "severity", []string{"minor stain", "hairline crack", "active leak"})

	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, order)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "[0] minor stain")
	assert.Contains(t, client.prompts[0], "severity")
}

func TestRank_DiscardsOutOfRangeIndices(t *testing.T) {
	client := &stubClient{response: "1, 7, 0"}
	ranker := NewSeverityRanker(client)

	order, err := ranker.Rank(context.Background(), "severity", []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, order)
}

func TestRank_FallsBackOnModelError(t *testing.T) {
	client := &stubClient{err: errors.New("model unavailable")}
	ranker := NewSeverityRanker(client)

	order, err := ranker.Rank(context.Background(), "severity", []string{"a", "b", "c"})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order, "original order on failure")
}

func TestRank_TrivialInputsSkipTheModel(t *testing.T) {
	client := &stubClient{err: errors.New("should not be called")}
	ranker := NewSeverityRanker(client)

	order, err := ranker.Rank(context.Background(), "severity", nil)
	require.NoError(t, err)
	assert.Nil(t, order)

	order, err = ranker.Rank(context.Background(), "severity", []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, order)

	assert.Empty(t, client.prompts)
}

func TestRank_TruncatesLongFindings(t *testing.T) {
	client := &stubClient{response: "0, 1"}
	ranker := NewSeverityRanker(client)

	long := strings.Repeat("x", 500)
	_, err := ranker.Rank(context.Background(), "severity", []string{long, "short"})

	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.NotContains(t, client.prompts[0], long)
	assert.Contains(t, client.prompts[0], strings.Repeat("x", 200)+"...")
}
