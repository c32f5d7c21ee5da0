package generator

import (
	"regexp"
	"strings"
)

// ParseResult is the outcome of parsing labeled backend text. When OK is false,
// Sections must not be used and Reason says what was missing.
type ParseResult struct {
	Sections Sections
	OK       bool
	Reason   string
}

type sectionKind int

const (
	kindNone sectionKind = iota
	kindIntro
	kindBody
	kindConclusion
)

var (
	bodyLabelRe = regexp.MustCompile(`(?i)(본문|body)\s*\d*\s*\]`)

	introLabels      = []string{"도입부]", "introduction]", "intro]"}
	conclusionLabels = []string{"결론]", "conclusion]"}
	bodyPrefixes     = []string{"본문", "body"}
)

// ParseSections splits text on '[' and classifies each fragment by its label.
// Body fragments are kept in order of appearance; empty ones are dropped.
func ParseSections(raw string) ParseResult {
	var s Sections
	for _, fragment := range strings.Split(cleanMarkdownOutput(raw), "[") {
		kind, rest := classify(fragment)
		switch kind {
		case kindIntro:
			s.Introduction = strings.TrimSpace(rest)
		case kindBody:
			if body := strings.TrimSpace(bodyLabelRe.ReplaceAllString(rest, "")); body != "" {
				s.Body = append(s.Body, body)
			}
		case kindConclusion:
			s.Conclusion = strings.TrimSpace(rest)
		}
	}

	switch {
	case s.Introduction == "":
		return ParseResult{Reason: "missing introduction"}
	case len(s.Body) == 0:
		return ParseResult{Reason: "missing body"}
	case s.Conclusion == "":
		return ParseResult{Reason: "missing conclusion"}
	}
	return ParseResult{Sections: s, OK: true}
}

// classify returns the fragment's kind and the fragment with the intro/conclusion
// label removed. Body fragments are returned whole so the numbered label can be stripped.
func classify(fragment string) (sectionKind, string) {
	lower := strings.ToLower(fragment)
	for _, l := range introLabels {
		if strings.HasPrefix(lower, l) {
			return kindIntro, fragment[len(l):]
		}
	}
	for _, l := range conclusionLabels {
		if strings.HasPrefix(lower, l) {
			return kindConclusion, fragment[len(l):]
		}
	}
	for _, p := range bodyPrefixes {
		if strings.HasPrefix(lower, p) {
			return kindBody, fragment
		}
	}
	return kindNone, ""
}

var (
	primaryLabelRe = regexp.MustCompile(`(?i)(핵심\s*키워드|primary[_ ]keyword)\s*[:：]`)
	subLabelRe     = regexp.MustCompile(`(?i)(보조\s*키워드|sub[_ ]keywords?)\s*[:：]`)
)

// ParseKeywords reads "핵심키워드:" / "primary_keyword:" and "보조키워드:" / "sub_keywords:"
// lines. ok is false when neither label is present. Sub keywords are padded with
// topic-derived keywords or truncated so that exactly three are returned.
func ParseKeywords(raw, topic string) (KeywordResult, bool) {
	primary := ""
	var subs []string
	foundPrimary, foundSubs := false, false

	for _, line := range strings.Split(cleanMarkdownOutput(raw), "\n") {
		if v, ok := labelValue(line, primaryLabelRe); ok {
			foundPrimary = true
			primary = trimDecorations(v)
			continue
		}
		if v, ok := labelValue(line, subLabelRe); ok {
			foundSubs = true
			subs = subs[:0]
			for _, k := range strings.Split(v, ",") {
				if k = trimDecorations(k); k != "" {
					subs = append(subs, k)
				}
			}
		}
	}
	if !foundPrimary && !foundSubs {
		return KeywordResult{}, false
	}
	if primary == "" {
		primary = topic
	}
	if !foundSubs || len(subs) == 0 {
		subs = derivedKeywords(topic)
	}
	subs = padFrom(subs, keywordPadding(topic))
	if len(subs) > minSubKeywords {
		subs = subs[:minSubKeywords]
	}
	return KeywordResult{PrimaryKeyword: primary, SubKeywords: subs}, true
}

// keywordPadding orders the derived keywords for a short parsed list:
// "<topic> 추천" comes first.
func keywordPadding(topic string) []string {
	return []string{topic + " 추천", topic + " 방법", topic + " 효과"}
}

// FallbackKeywords derives keywords from the topic alone.
func FallbackKeywords(topic string) KeywordResult {
	return KeywordResult{PrimaryKeyword: topic, SubKeywords: derivedKeywords(topic)}
}

func labelValue(line string, label *regexp.Regexp) (string, bool) {
	loc := label.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return line[loc[1]:], true
}

// trimDecorations removes brackets, quotes and markdown emphasis a model tends to echo.
func trimDecorations(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "[]\"'`*“”"))
}

var titleLabelRe = regexp.MustCompile(`^(?i)(제목|title)\s*[:：]\s*`)

// CleanTitle keeps the first non-empty line of a title completion, without
// heading markers, labels or surrounding quotes.
func CleanTitle(raw string) string {
	for _, line := range strings.Split(cleanMarkdownOutput(raw), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		line = titleLabelRe.ReplaceAllString(line, "")
		line = trimDecorations(line)
		if line != "" {
			return line
		}
	}
	return ""
}

// FallbackTitle is the title used when the backend is unavailable.
func FallbackTitle(topic string) string {
	return topic + "에 대한 완벽 가이드: 전문가가 알려주는 핵심 포인트"
}

func cleanMarkdownOutput(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```markdown") {
		text = strings.TrimPrefix(text, "```markdown")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
