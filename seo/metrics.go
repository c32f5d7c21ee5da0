package seo

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Metrics is the SEO evaluation of one finished article.
type Metrics struct {
	SEOScore         int     `json:"seo_score"`
	KeywordDensity   float64 `json:"keyword_density"`
	ReadabilityScore int     `json:"readability_score"`
}

const (
	primaryKeywordWeight = 2
	structureBaseline    = 20
)

// Calculate scores content against its keywords. The primary keyword counts double and
// both primary and sub keywords match as case-insensitive substrings.
func Calculate(content, primaryKeyword string, subKeywords []string) Metrics {
	density := KeywordDensity(content, primaryKeyword, subKeywords)
	readability := ReadabilityScore(content)
	return Metrics{
		SEOScore:         Score(density, CharCount(content), readability),
		KeywordDensity:   density,
		ReadabilityScore: readability,
	}
}

// KeywordDensity is the weighted keyword count per 100 whitespace-separated words,
// rounded to two decimals. Empty text has density 0.
func KeywordDensity(content, primaryKeyword string, subKeywords []string) float64 {
	totalWords := len(strings.Fields(content))
	if totalWords == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	weighted := countFold(lower, primaryKeyword) * primaryKeywordWeight
	for _, kw := range subKeywords {
		weighted += countFold(lower, kw)
	}
	density := float64(weighted) / float64(totalWords) * 100
	density = math.Round(density*100) / 100
	return math.Min(density, 100)
}

func countFold(lowerContent, keyword string) int {
	kw := strings.ToLower(keyword)
	if kw == "" {
		return 0
	}
	return strings.Count(lowerContent, kw)
}

// CharCount counts Unicode code points.
func CharCount(content string) int {
	return utf8.RuneCountInString(content)
}

// Score adds the density, length, readability and structure bands, capped at 100.
func Score(keywordDensity float64, charCount, readability int) int {
	score := DensityPoints(keywordDensity) + LengthPoints(charCount) + ReadabilityPoints(readability) + structureBaseline
	if score > 100 {
		return 100
	}
	return score
}

// DensityPoints: 30 in [2,5], 20 in [1,2) or (5,7], 10 for any other positive density.
func DensityPoints(d float64) int {
	switch {
	case d >= 2 && d <= 5:
		return 30
	case (d >= 1 && d < 2) || (d > 5 && d <= 7):
		return 20
	case d > 0:
		return 10
	default:
		return 0
	}
}

func LengthPoints(charCount int) int {
	switch {
	case charCount >= 1000:
		return 25
	case charCount >= 500:
		return 15
	default:
		return 0
	}
}

func ReadabilityPoints(readability int) int {
	switch {
	case readability >= 70:
		return 25
	case readability >= 50:
		return 15
	default:
		return 0
	}
}
