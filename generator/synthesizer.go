package generator

import (
	"context"
	"fmt"

	"seo_content_writer/metrics"
)

// FallbackSections builds an article from the request and guideline alone.
// It is deterministic and never fails. Body part i uses sub keyword i, wrapping
// to the first sub keyword when there are fewer sub keywords than body parts.
func FallbackSections(req GenerationRequest, g Guideline) Sections {
	firstSub := req.PrimaryKeyword
	if len(req.SubKeywords) > 0 {
		firstSub = req.SubKeywords[0]
	}

	intro := fmt.Sprintf("%s에 대해 알아보겠습니다.\n\n%s는 현재 많은 사람들이 관심을 갖고 있는 주제입니다. %s "+
		"이 글에서는 %s을(를) 중심으로 %s의 핵심 내용을 차근차근 정리하고, 바로 활용할 수 있는 정보를 함께 소개합니다.",
		req.Title, req.PrimaryKeyword, g.Introduction, req.Topic, req.PrimaryKeyword)

	body := make([]string, 0, len(g.BodyParts))
	for i, part := range g.BodyParts {
		sub := firstSub
		if i < len(req.SubKeywords) {
			sub = req.SubKeywords[i]
		}
		body = append(body, fmt.Sprintf("## %d. %s\n\n"+
			"%s와 관련하여 %s에 대해 상세히 설명드리겠습니다. "+
			"%s에 대한 내용도 포함하여 독자분들이 실질적인 도움을 받을 수 있도록 작성했습니다.\n\n"+
			"%s을(를) 살펴볼 때에는 자신의 상황과 목표를 먼저 점검하는 것이 좋습니다. "+
			"%s의 기본 원칙을 이해하면 이 단계에서 흔히 하는 실수를 줄이고 더 나은 결과를 얻을 수 있습니다.",
			i+1, part, req.PrimaryKeyword, part, sub, sub, req.PrimaryKeyword))
	}

	conclusion := fmt.Sprintf("결론적으로, %s에 대한 이해를 바탕으로 %s을(를) 전합니다. "+
		"지금까지 살펴본 %s 등의 내용을 참고하여 %s에 대한 계획을 세워 보시기 바랍니다.",
		req.PrimaryKeyword, g.Conclusion, firstSub, req.Topic)

	return Sections{Introduction: intro, Body: body, Conclusion: conclusion}
}

// synthesize asks the backend for labeled sections and falls back to the templates
// on any backend error or incomplete parse. It never returns an error.
func (s *Service) synthesize(ctx context.Context, req GenerationRequest, g Guideline) (Sections, Source) {
	raw, err := s.backend.Complete(ctx, BuildContentPrompt(req, g))
	if err != nil {
		s.backendFailed("content", err)
		return FallbackSections(req, g), SourceFallback
	}
	parsed := ParseSections(raw)
	if !parsed.OK {
		metrics.ParseFallbacks.Inc()
		s.log.Warn("discarding malformed backend draft",
			"provider", s.backend.Name(),
			"reason", parsed.Reason,
			"raw_len", len(raw),
		)
		return FallbackSections(req, g), SourceFallback
	}
	return parsed.Sections, SourceBackend
}
