package generator

// Guideline describes what each section of an article should do.
type Guideline struct {
	Introduction string
	BodyParts    []string
	Conclusion   string
}

var (
	informationalGuideline = Guideline{
		Introduction: "정보 제공을 목적으로 한 도입부를 작성합니다.",
		BodyParts: []string{
			"주제에 대한 기본 개념 설명",
			"상세한 방법론 또는 절차",
			"실제 사례와 예시",
			"주의사항 및 팁",
		},
		Conclusion: "정보를 요약하고 독자의 이해를 돕는 결론",
	}

	salesGuideline = Guideline{
		Introduction: "독자의 관심을 끌고 구매 욕구를 자극하는 도입부",
		BodyParts: []string{
			"제품/서비스의 핵심 가치 제안",
			"고객 혜택과 차별점",
			"사회적 증거와 추천사",
			"구매 결정을 돕는 FAQ",
		},
		Conclusion: "구매 유도와 행동 촉구 메시지",
	}
)

// SelectGuideline returns the template for a content type. Anything other than
// informational gets the sales template. The returned value shares no memory with
// the package templates.
func SelectGuideline(ct ContentType) Guideline {
	g := salesGuideline
	if ct == Informational {
		g = informationalGuideline
	}
	g.BodyParts = append([]string(nil), g.BodyParts...)
	return g
}
