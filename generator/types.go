package generator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"seo_content_writer/seo"
)

// ContentType is the tone of an article.
type ContentType string

const (
	Informational ContentType = "informational"
	Sales         ContentType = "sales"
)

func (c ContentType) Valid() bool {
	return c == Informational || c == Sales
}

// Label is the Korean name used in prompts.
func (c ContentType) Label() string {
	if c == Informational {
		return "정보성"
	}
	return "판매성"
}

// Source tells whether sections came from the backend or the fallback templates.
type Source string

const (
	SourceBackend  Source = "backend"
	SourceFallback Source = "fallback"
)

// ErrInvalidRequest marks requests that cannot be generated from.
var ErrInvalidRequest = errors.New("invalid generation request")

const minSubKeywords = 3

// GenerationRequest describes the article to write.
type GenerationRequest struct {
	Topic          string      `json:"topic" binding:"required,max=500"`
	Title          string      `json:"title" binding:"required,max=200"`
	ContentType    ContentType `json:"content_type" binding:"required,oneof=informational sales"`
	PrimaryKeyword string      `json:"primary_keyword" binding:"required,max=100"`
	SubKeywords    []string    `json:"sub_keywords"`
}

// Normalize trims every field, drops blank sub keywords and pads them to three
// with keywords derived from the primary keyword.
func (r GenerationRequest) Normalize() (GenerationRequest, error) {
	out := GenerationRequest{
		Topic:          strings.TrimSpace(r.Topic),
		Title:          strings.TrimSpace(r.Title),
		ContentType:    ContentType(strings.ToLower(strings.TrimSpace(string(r.ContentType)))),
		PrimaryKeyword: strings.TrimSpace(r.PrimaryKeyword),
	}
	if !out.ContentType.Valid() {
		return GenerationRequest{}, fmt.Errorf("%w: unknown content_type %q", ErrInvalidRequest, r.ContentType)
	}
	if out.PrimaryKeyword == "" {
		return GenerationRequest{}, fmt.Errorf("%w: primary_keyword is empty", ErrInvalidRequest)
	}
	if out.Title == "" {
		return GenerationRequest{}, fmt.Errorf("%w: title is empty", ErrInvalidRequest)
	}
	if out.Topic == "" {
		return GenerationRequest{}, fmt.Errorf("%w: topic is empty", ErrInvalidRequest)
	}
	subs := make([]string, 0, len(r.SubKeywords))
	for _, k := range r.SubKeywords {
		if k = strings.TrimSpace(k); k != "" {
			subs = append(subs, k)
		}
	}
	out.SubKeywords = padKeywords(subs, out.PrimaryKeyword)
	return out, nil
}

// derivedKeywords are the deterministic sub keywords for a base term.
func derivedKeywords(base string) []string {
	return []string{base + " 방법", base + " 효과", base + " 추천"}
}

// padKeywords appends derived keywords not already present until there are three.
func padKeywords(keywords []string, base string) []string {
	return padFrom(keywords, derivedKeywords(base))
}

func padFrom(keywords, candidates []string) []string {
	for _, d := range candidates {
		if len(keywords) >= minSubKeywords {
			break
		}
		if !containsString(keywords, d) {
			keywords = append(keywords, d)
		}
	}
	return keywords
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Sections is the structured article body.
type Sections struct {
	Introduction string   `json:"introduction"`
	Body         []string `json:"body"`
	Conclusion   string   `json:"conclusion"`
}

// FullText is the text SEO metrics are computed over: introduction, body blocks joined
// by a single space, then conclusion, with no other separators.
func (s Sections) FullText() string {
	return s.Introduction + strings.Join(s.Body, " ") + s.Conclusion
}

// GenerationResult is the finished article with its SEO evaluation.
type GenerationResult struct {
	Title           string        `json:"title"`
	Outline         []string      `json:"outline"`
	Sections        Sections      `json:"sections"`
	MetaDescription string        `json:"meta_description"`
	SEOMetrics      seo.Metrics   `json:"seo_metrics"`
	TotalCharCount  int           `json:"total_char_count"`
	GenerationTime  float64       `json:"generation_time"`
	Source          Source        `json:"source"`
	ContentHTML     string        `json:"content_html"`
	Elapsed         time.Duration `json:"-"`
}

// TitleResult is a suggested title.
type TitleResult struct {
	Title          string  `json:"title"`
	GenerationTime float64 `json:"generation_time"`
	Source         Source  `json:"source"`
}

// KeywordResult is a suggested keyword set; SubKeywords always has three entries.
type KeywordResult struct {
	PrimaryKeyword string   `json:"primary_keyword"`
	SubKeywords    []string `json:"sub_keywords"`
	Source         Source   `json:"source"`
}

// DraftResult bundles a title, keywords and content generated from a single topic.
type DraftResult struct {
	Title          TitleResult      `json:"title"`
	Keywords       KeywordResult    `json:"keywords"`
	Content        GenerationResult `json:"content"`
	GenerationTime float64          `json:"generation_time"`
	Elapsed        time.Duration    `json:"-"`
}
