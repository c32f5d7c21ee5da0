package seo

import (
	"fmt"
	"strings"
	"time"
)

// Thresholds are the acceptance limits a generated article must meet before it is returned.
type Thresholds struct {
	MinSEOScore       int
	MinKeywordDensity float64
	MinCharCount      int
	MaxGenerationTime time.Duration
}

// DefaultThresholds: score ≥80, density ≥2%, ≥1000 characters, at most 60 seconds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSEOScore:       80,
		MinKeywordDensity: 2,
		MinCharCount:      1000,
		MaxGenerationTime: 60 * time.Second,
	}
}

// Violation names one failed threshold and the measured value.
type Violation struct {
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Message   string  `json:"message"`
}

// ThresholdError is returned when generated content fails one or more acceptance thresholds.
type ThresholdError struct {
	Violations []Violation
}

func (e *ThresholdError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "content rejected: " + strings.Join(msgs, "; ")
}

// Check returns a *ThresholdError listing every failed threshold, or nil.
func (t Thresholds) Check(m Metrics, totalCharCount int, generationTime time.Duration) error {
	var vs []Violation
	if m.SEOScore < t.MinSEOScore {
		vs = append(vs, Violation{
			Metric:    "seo_score",
			Value:     float64(m.SEOScore),
			Threshold: float64(t.MinSEOScore),
			Message:   fmt.Sprintf("seo_score below %d (got %d)", t.MinSEOScore, m.SEOScore),
		})
	}
	if m.KeywordDensity < t.MinKeywordDensity {
		vs = append(vs, Violation{
			Metric:    "keyword_density",
			Value:     m.KeywordDensity,
			Threshold: t.MinKeywordDensity,
			Message:   fmt.Sprintf("keyword_density below %g (got %.2f)", t.MinKeywordDensity, m.KeywordDensity),
		})
	}
	if totalCharCount < t.MinCharCount {
		vs = append(vs, Violation{
			Metric:    "total_char_count",
			Value:     float64(totalCharCount),
			Threshold: float64(t.MinCharCount),
			Message:   fmt.Sprintf("total_char_count below %d (got %d)", t.MinCharCount, totalCharCount),
		})
	}
	if generationTime > t.MaxGenerationTime {
		vs = append(vs, Violation{
			Metric:    "generation_time",
			Value:     generationTime.Seconds(),
			Threshold: t.MaxGenerationTime.Seconds(),
			Message:   fmt.Sprintf("generation_time above %gs (got %.2fs)", t.MaxGenerationTime.Seconds(), generationTime.Seconds()),
		})
	}
	if len(vs) == 0 {
		return nil
	}
	return &ThresholdError{Violations: vs}
}
