package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message pair sent to a backend.
type Prompt struct {
	System string
	User   string
}

const writerSystem = "당신은 한국어 SEO 블로그 전문 작가입니다. 요청한 형식만 출력하고 부연 설명은 하지 마세요."

// BuildTitlePrompt asks for a single SEO title.
func BuildTitlePrompt(topic string) Prompt {
	var sb strings.Builder
	sb.WriteString("다음 주제에 대해 SEO에 최적화된 블로그 제목을 생성해주세요:\n")
	fmt.Fprintf(&sb, "주제: %s\n\n", topic)
	sb.WriteString("요구사항:\n")
	sb.WriteString("1. 제목은 50-60자 이내\n")
	sb.WriteString("2. 핵심 키워드가 제목 앞부분에 포함\n")
	sb.WriteString("3. 클릭을 유도하는 매력적인 표현 사용\n")
	sb.WriteString("4. 검색 의도를 반영한 제목\n")
	sb.WriteString("5. 한국어로 작성\n\n")
	sb.WriteString("제목만 출력해주세요.")
	return Prompt{System: writerSystem, User: sb.String()}
}

// BuildKeywordPrompt asks for one primary and three sub keywords on labeled lines.
func BuildKeywordPrompt(topic string) Prompt {
	var sb strings.Builder
	sb.WriteString("다음 주제에 대해 SEO 키워드를 추천해주세요:\n")
	fmt.Fprintf(&sb, "주제: %s\n\n", topic)
	sb.WriteString("다음 형식으로 응답해주세요:\n")
	sb.WriteString("핵심키워드: [핵심 키워드 1개]\n")
	sb.WriteString("보조키워드: [보조 키워드 3개, 쉼표로 구분]")
	return Prompt{System: writerSystem, User: sb.String()}
}

// BuildContentPrompt asks for an article split into [도입부], [본문N] and [결론] sections,
// one body section per guideline part.
func BuildContentPrompt(req GenerationRequest, g Guideline) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "주제: %s\n", req.Topic)
	fmt.Fprintf(&sb, "제목: %s\n", req.Title)
	fmt.Fprintf(&sb, "글의 성격: %s (%s)\n", req.ContentType, req.ContentType.Label())
	fmt.Fprintf(&sb, "핵심 키워드: %s\n", req.PrimaryKeyword)
	fmt.Fprintf(&sb, "보조 키워드: %s\n\n", strings.Join(req.SubKeywords, ", "))

	sb.WriteString("다음 가이드라인에 따라 블로그 글을 작성해주세요:\n\n")
	fmt.Fprintf(&sb, "도입부: %s\n", g.Introduction)
	fmt.Fprintf(&sb, "본문 구성: %s\n", strings.Join(g.BodyParts, ", "))
	fmt.Fprintf(&sb, "결론: %s\n\n", g.Conclusion)

	sb.WriteString("요구사항:\n")
	sb.WriteString("1. 총 글자 수 1,000자 이상\n")
	sb.WriteString("2. 핵심 키워드를 자연스럽게 본문에 포함\n")
	sb.WriteString("3. 보조 키워드들을 적절히 활용\n")
	sb.WriteString("4. SEO에 최적화된 구조 (각 본문은 ## 소제목으로 시작)\n")
	sb.WriteString("5. 가독성이 좋은 문장\n")
	sb.WriteString("6. 섹션 라벨 외에는 대괄호를 사용하지 않기\n\n")

	sb.WriteString("다음 형식으로 작성해주세요:\n")
	sb.WriteString("[도입부]\n(도입부 내용)\n\n")
	for i, part := range g.BodyParts {
		fmt.Fprintf(&sb, "[본문%d]\n(%s)\n\n", i+1, part)
	}
	sb.WriteString("[결론]\n(결론 내용)\n")
	return Prompt{System: writerSystem, User: sb.String()}
}
