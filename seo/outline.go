package seo

import (
	"fmt"
	"strings"
)

const (
	introductionHeading = "1. 도입부"
	metaMaxChars        = 160
)

// Outline lists the introduction, one heading per body block and the conclusion.
// A body block's heading is its first "##" line; blocks without one are
// numbered "<i+2>. 본문 <i+1>".
func Outline(body []string) []string {
	outline := make([]string, 0, len(body)+2)
	outline = append(outline, introductionHeading)
	for i, block := range body {
		heading := firstHeading(block)
		if heading == "" {
			heading = fmt.Sprintf("%d. 본문 %d", i+2, i+1)
		}
		outline = append(outline, heading)
	}
	outline = append(outline, fmt.Sprintf("%d. 결론", len(body)+2))
	return outline
}

// firstHeading returns the text of the first line starting with "##", with the
// leading '#' markers stripped. The marker need not be followed by a space.
func firstHeading(block string) string {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "##") {
			continue
		}
		if t := strings.TrimSpace(strings.TrimLeft(line, "#")); t != "" {
			return t
		}
	}
	return ""
}

// MetaDescription summarizes the article for search snippets, cut hard at 160 characters.
// Only the part of the title before its first colon is used.
func MetaDescription(title, primaryKeyword string) string {
	head, _, _ := strings.Cut(title, ":")
	meta := fmt.Sprintf("%s에 대한 완전한 가이드입니다. %s의 핵심 정보와 실용적인 팁을 제공합니다.", primaryKeyword, head)
	return truncateRunes(meta, metaMaxChars)
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
