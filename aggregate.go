package evalforge

import (
	"fmt"
)

// Summary is an immutable view over a collection of evaluation results
// exposing summary statistics and threshold assertions. It holds no live
// resources and performs no I/O; all computations walk the underlying
// slice in iteration order.
type Summary struct {
	results []EvaluationResult
}

// Summarize wraps results in a Summary. The slice is not copied; callers
// must not mutate it while the Summary is in use.
func Summarize(results []EvaluationResult) *Summary {
	return &Summary{results: results}
}

// Total returns the number of evaluation results.
func (s *Summary) Total() int { return len(s.results) }

// Passed returns the count of results whose overall pass flag is true.
// The flag is the server's verdict; it is never recomputed here.
func (s *Summary) Passed() int {
	n := 0
	for i := range s.results {
		if s.results[i].OverallPassed {
			n++
		}
	}
	return n
}

// Failed returns Total minus Passed.
func (s *Summary) Failed() int { return s.Total() - s.Passed() }

// PassingRate returns the percentage of passing results in [0, 100],
// or 0 when there are no results.
func (s *Summary) PassingRate() float64 {
	if len(s.results) == 0 {
		return 0
	}
	return float64(s.Passed()) / float64(len(s.results)) * 100
}

// AverageScore returns the arithmetic mean of overall scores, or 0 when
// there are no results.
func (s *Summary) AverageScore() float64 {
	if len(s.results) == 0 {
		return 0
	}
	sum := 0.0
	for i := range s.results {
		sum += s.results[i].OverallScore
	}
	return sum / float64(len(s.results))
}

// MinScore returns the minimum overall score, or 0 when there are no
// results.
func (s *Summary) MinScore() float64 {
	if len(s.results) == 0 {
		return 0
	}
	min := s.results[0].OverallScore
	for i := range s.results {
		if s.results[i].OverallScore < min {
			min = s.results[i].OverallScore
		}
	}
	return min
}

// MaxScore returns the maximum overall score, or 0 when there are no
// results.
func (s *Summary) MaxScore() float64 {
	if len(s.results) == 0 {
		return 0
	}
	max := s.results[0].OverallScore
	for i := range s.results {
		if s.results[i].OverallScore > max {
			max = s.results[i].OverallScore
		}
	}
	return max
}

// ByScorer returns every scorer result matching scorerID across all
// evaluation results, in iteration order.
func (s *Summary) ByScorer(scorerID string) []ScorerResult {
	var matches []ScorerResult
	for i := range s.results {
		for _, sr := range s.results[i].Scores {
			if sr.ScorerID == scorerID {
				matches = append(matches, sr)
			}
		}
	}
	return matches
}

// ScorerStats contains summary statistics for one scorer.
type ScorerStats struct {
	Total        int     `json:"total"`
	Passed       int     `json:"passed"`
	Failed       int     `json:"failed"`
	PassingRate  float64 `json:"passing_rate"`
	AverageScore float64 `json:"average_score"`
	MinScore     float64 `json:"min_score"`
	MaxScore     float64 `json:"max_score"`
}

// ScorerStats computes statistics for one scorer. The second return value
// is false when no results match the scorer.
func (s *Summary) ScorerStats(scorerID string) (ScorerStats, bool) {
	matches := s.ByScorer(scorerID)
	if len(matches) == 0 {
		return ScorerStats{}, false
	}

	stats := ScorerStats{
		Total:    len(matches),
		MinScore: matches[0].Score,
		MaxScore: matches[0].Score,
	}
	sum := 0.0
	for _, sr := range matches {
		if sr.Passed {
			stats.Passed++
		}
		sum += sr.Score
		if sr.Score < stats.MinScore {
			stats.MinScore = sr.Score
		}
		if sr.Score > stats.MaxScore {
			stats.MaxScore = sr.Score
		}
	}
	stats.Failed = stats.Total - stats.Passed
	stats.PassingRate = float64(stats.Passed) / float64(stats.Total) * 100
	stats.AverageScore = sum / float64(stats.Total)
	return stats, true
}

// AssertPassingRate returns an *AssertionError when the passing rate is
// below threshold (a percentage in [0, 100]).
func (s *Summary) AssertPassingRate(threshold float64) error {
	if rate := s.PassingRate(); rate < threshold {
		return &AssertionError{Metric: "passing_rate", Threshold: threshold, Actual: rate}
	}
	return nil
}

// AssertAverageScore returns an *AssertionError when the average overall
// score is below threshold.
func (s *Summary) AssertAverageScore(threshold float64) error {
	if avg := s.AverageScore(); avg < threshold {
		return &AssertionError{Metric: "average_score", Threshold: threshold, Actual: avg}
	}
	return nil
}

// AssertScorerScore returns ErrUnknownScorer when no results exist for
// scorerID, and an *AssertionError when the scorer's average score is
// below threshold.
func (s *Summary) AssertScorerScore(scorerID string, threshold float64) error {
	stats, ok := s.ScorerStats(scorerID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScorer, scorerID)
	}
	if stats.AverageScore < threshold {
		return &AssertionError{
			Metric:    "scorer_score",
			ScorerID:  scorerID,
			Threshold: threshold,
			Actual:    stats.AverageScore,
		}
	}
	return nil
}
