package evalforge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []EvaluationResult {
	return []EvaluationResult{
		{
			ItemID:        "item-1",
			OverallScore:  0.9,
			OverallPassed: true,
			Scores: []ScorerResult{
				{ScorerID: "exact-match", Score: 1.0, Passed: true},
				{ScorerID: "llm-judge", Score: 0.8, Passed: true},
			},
		},
		{
			ItemID:        "item-2",
			OverallScore:  0.3,
			OverallPassed: false,
			Scores: []ScorerResult{
				{ScorerID: "exact-match", Score: 0.0, Passed: false},
				{ScorerID: "llm-judge", Score: 0.6, Passed: true},
			},
		},
		{
			ItemID:        "item-3",
			OverallScore:  0.6,
			OverallPassed: true,
			Scores: []ScorerResult{
				{ScorerID: "exact-match", Score: 1.0, Passed: true},
			},
		},
	}
}

func TestSummaryCounts(t *testing.T) {
	s := Summarize(sampleResults())

	assert.Equal(t, 3, s.Total())
	assert.Equal(t, 2, s.Passed())
	assert.Equal(t, 1, s.Failed())
	assert.InDelta(t, 66.67, s.PassingRate(), 0.01)
	assert.InDelta(t, 0.6, s.AverageScore(), 1e-9)
	assert.Equal(t, 0.3, s.MinScore())
	assert.Equal(t, 0.9, s.MaxScore())
}

func TestSummaryEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Total())
	assert.Equal(t, 0, s.Passed())
	assert.Equal(t, 0, s.Failed())
	assert.Equal(t, 0.0, s.PassingRate())
	assert.Equal(t, 0.0, s.AverageScore())
	assert.Equal(t, 0.0, s.MinScore())
	assert.Equal(t, 0.0, s.MaxScore())
}

func TestSummaryPassedTrustsServerVerdict(t *testing.T) {
	// A high score with a failed verdict counts as failed; the flag is
	// authoritative.
	s := Summarize([]EvaluationResult{
		{ItemID: "item-1", OverallScore: 0.99, OverallPassed: false},
	})

	assert.Equal(t, 0, s.Passed())
	assert.Equal(t, 1, s.Failed())
}

func TestSummaryByScorer(t *testing.T) {
	s := Summarize(sampleResults())

	matches := s.ByScorer("exact-match")
	require.Len(t, matches, 3)
	assert.Equal(t, 1.0, matches[0].Score)
	assert.Equal(t, 0.0, matches[1].Score)

	assert.Empty(t, s.ByScorer("nonexistent"))
}

func TestSummaryScorerStats(t *testing.T) {
	s := Summarize(sampleResults())

	stats, ok := s.ScorerStats("exact-match")
	require.True(t, ok)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Passed)
	assert.Equal(t, 1, stats.Failed)
	assert.InDelta(t, 66.67, stats.PassingRate, 0.01)
	assert.InDelta(t, 2.0/3.0, stats.AverageScore, 1e-9)
	assert.Equal(t, 0.0, stats.MinScore)
	assert.Equal(t, 1.0, stats.MaxScore)

	_, ok = s.ScorerStats("nonexistent")
	assert.False(t, ok)
}

func TestSummaryAssertPassingRate(t *testing.T) {
	s := Summarize(sampleResults())

	require.NoError(t, s.AssertPassingRate(50))
	require.NoError(t, s.AssertPassingRate(66.66))

	err := s.AssertPassingRate(90)
	require.Error(t, err)

	aErr, ok := AsAssertionError(err)
	require.True(t, ok)
	assert.Equal(t, "passing_rate", aErr.Metric)
	assert.Equal(t, 90.0, aErr.Threshold)
	assert.InDelta(t, 66.67, aErr.Actual, 0.01)
	assert.Equal(t, ErrCodeAssertion, aErr.Code())
}

func TestSummaryAssertAverageScore(t *testing.T) {
	s := Summarize(sampleResults())

	require.NoError(t, s.AssertAverageScore(0.5))

	err := s.AssertAverageScore(0.8)
	aErr, ok := AsAssertionError(err)
	require.True(t, ok)
	assert.Equal(t, "average_score", aErr.Metric)
	assert.InDelta(t, 0.6, aErr.Actual, 1e-9)
}

func TestSummaryAssertScorerScore(t *testing.T) {
	s := Summarize(sampleResults())

	require.NoError(t, s.AssertScorerScore("llm-judge", 0.5))

	err := s.AssertScorerScore("llm-judge", 0.9)
	aErr, ok := AsAssertionError(err)
	require.True(t, ok)
	assert.Equal(t, "scorer_score", aErr.Metric)
	assert.Equal(t, "llm-judge", aErr.ScorerID)
	assert.InDelta(t, 0.7, aErr.Actual, 1e-9)
}

func TestSummaryAssertUnknownScorer(t *testing.T) {
	s := Summarize(sampleResults())

	err := s.AssertScorerScore("nonexistent", 0.5)
	assert.True(t, errors.Is(err, ErrUnknownScorer))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestSummaryEmptyAssertions(t *testing.T) {
	s := Summarize(nil)

	// An empty summary fails any positive threshold rather than passing
	// vacuously.
	assert.Error(t, s.AssertPassingRate(1))
	assert.Error(t, s.AssertAverageScore(0.1))
	assert.NoError(t, s.AssertPassingRate(0))
}
