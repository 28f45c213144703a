package evalforge_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	evalforge "github.com/evalforge/evalforge-go"
	"github.com/evalforge/evalforge-go/evalforgetest"
)

func TestScorersList(t *testing.T) {
	client, server := evalforgetest.NewTestClient(t)
	server.ResponseFunc = func(r *http.Request) (int, any) {
		return 200, listPage([]map[string]any{
			{"id": "exact-match", "name": "Exact Match"},
			{"id": "llm-judge", "name": "LLM Judge"},
		}, 2)
	}

	it, err := client.Scorers().List(nil)
	require.NoError(t, err)

	scorers, err := it.All(context.Background())
	require.NoError(t, err)
	require.Len(t, scorers, 2)
	assert.Equal(t, "exact-match", scorers[0].ID)
	assert.Equal(t, "/scorers", server.LastRequest().Path)
}

func TestScorersGet(t *testing.T) {
	client, server := evalforgetest.NewTestClient(t)
	server.ResponseFunc = func(r *http.Request) (int, any) {
		return 200, map[string]any{
			"id":     "llm-judge",
			"name":   "LLM Judge",
			"config": map[string]any{"model": "gpt-4"},
		}
	}

	scorer, err := client.Scorers().Get(context.Background(), "llm-judge")
	require.NoError(t, err)
	assert.Equal(t, "llm-judge", scorer.ID)
	assert.Equal(t, "gpt-4", scorer.Config["model"])
	assert.Equal(t, "/scorers/llm-judge", server.LastRequest().Path)
}

func TestScorersGetEmptyID(t *testing.T) {
	client, _ := evalforgetest.NewTestClient(t)

	_, err := client.Scorers().Get(context.Background(), "")
	_, ok := evalforge.AsValidationError(err)
	assert.True(t, ok)
}
