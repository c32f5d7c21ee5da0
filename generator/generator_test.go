package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo_content_writer/seo"
)

// funcBackend answers prompts with a function, so tests can script responses and failures.
type funcBackend struct {
	fn    func(Prompt) (string, error)
	calls atomic.Int32
}

func (f *funcBackend) Name() string { return "stub" }

func (f *funcBackend) Complete(_ context.Context, p Prompt) (string, error) {
	f.calls.Add(1)
	return f.fn(p)
}

func newTestService(t *testing.T, b Backend) *Service {
	t.Helper()
	svc, err := NewService(b, nil)
	require.NoError(t, err)
	return svc
}

func dietRequest() GenerationRequest {
	return GenerationRequest{
		Topic:          "다이어트",
		Title:          "다이어트 완벽 가이드: 건강하게 살 빼는 법",
		ContentType:    Informational,
		PrimaryKeyword: "다이어트",
		SubKeywords:    []string{"다이어트 방법", "다이어트 효과", "다이어트 추천"},
	}
}

const wellFormedDraft = "```markdown\n" +
	"서두는 무시됩니다.\n" +
	"[도입부]\n커피는 매일 마시는 음료입니다.\n\n" +
	"[본문1]\n## 원두 고르기\n\n커피 원두는 산지에 따라 맛이 다릅니다.\n\n" +
	"[본문2]\n## 추출 방법\n\n커피 추출은 분쇄도가 중요합니다.\n\n" +
	"[본문3]\n\n" +
	"[본문4]\n커피 보관 방법을 알아봅니다.\n\n" +
	"[결론]\n커피를 즐겁게 마셔 보세요.\n```"

func TestNewService_RequiresBackend(t *testing.T) {
	_, err := NewService(nil, nil)
	assert.Error(t, err)
}

func TestSelectGuideline_TwoVariantsWithFourParts(t *testing.T) {
	info := SelectGuideline(Informational)
	sales := SelectGuideline(Sales)

	assert.Len(t, info.BodyParts, 4)
	assert.Len(t, sales.BodyParts, 4)
	assert.NotEqual(t, info.Introduction, sales.Introduction)
	assert.NotEqual(t, info.Conclusion, sales.Conclusion)

	info.BodyParts[0] = "mutated"
	assert.Equal(t, "주제에 대한 기본 개념 설명", SelectGuideline(Informational).BodyParts[0])
}

func TestNormalize_TrimsAndPadsSubKeywords(t *testing.T) {
	req, err := GenerationRequest{
		Topic:          " 커피 ",
		Title:          " 커피 가이드 ",
		ContentType:    "SALES",
		PrimaryKeyword: " 커피 ",
		SubKeywords:    []string{"  ", "커피 효과", ""},
	}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "커피", req.Topic)
	assert.Equal(t, Sales, req.ContentType)
	assert.Equal(t, []string{"커피 효과", "커피 방법", "커피 추천"}, req.SubKeywords)
}

func TestNormalize_RejectsBlankTopic(t *testing.T) {
	_, err := GenerationRequest{
		Topic:          "   ",
		Title:          "커피 가이드",
		ContentType:    Informational,
		PrimaryKeyword: "커피",
	}.Normalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestNormalize_RejectsUnknownContentType(t *testing.T) {
	req := dietRequest()
	req.ContentType = "news"
	_, err := req.Normalize()
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestFallbackSections_WrapsToFirstSubKeyword(t *testing.T) {
	req := dietRequest()
	req.SubKeywords = []string{"첫째 키워드", "둘째 키워드"}
	s := FallbackSections(req, SelectGuideline(Informational))

	require.Len(t, s.Body, 4)
	assert.Contains(t, s.Body[0], "첫째 키워드")
	assert.Contains(t, s.Body[1], "둘째 키워드")
	assert.Contains(t, s.Body[2], "첫째 키워드")
	assert.Contains(t, s.Body[3], "첫째 키워드")
	assert.True(t, strings.HasPrefix(s.Body[2], "## 3. 실제 사례와 예시"))
}

func TestFallbackSections_Deterministic(t *testing.T) {
	g := SelectGuideline(Sales)
	a := FallbackSections(dietRequest(), g)
	b := FallbackSections(dietRequest(), g)
	assert.Equal(t, a, b)
}

func TestParseSections_WellFormed(t *testing.T) {
	res := ParseSections(wellFormedDraft)
	require.True(t, res.OK, res.Reason)

	assert.Equal(t, "커피는 매일 마시는 음료입니다.", res.Sections.Introduction)
	assert.Equal(t, []string{
		"## 원두 고르기\n\n커피 원두는 산지에 따라 맛이 다릅니다.",
		"## 추출 방법\n\n커피 추출은 분쇄도가 중요합니다.",
		"커피 보관 방법을 알아봅니다.",
	}, res.Sections.Body)
	assert.Equal(t, "커피를 즐겁게 마셔 보세요.", res.Sections.Conclusion)
}

func TestParseSections_EnglishLabels(t *testing.T) {
	res := ParseSections("[Introduction]\nHello.\n[Body 1]\nFirst.\n[Conclusion]\nBye.")
	require.True(t, res.OK, res.Reason)
	assert.Equal(t, "Hello.", res.Sections.Introduction)
	assert.Equal(t, []string{"First."}, res.Sections.Body)
	assert.Equal(t, "Bye.", res.Sections.Conclusion)
}

func TestParseSections_RejectsIncomplete(t *testing.T) {
	cases := map[string]string{
		"no labels":          "그냥 평범한 글입니다.",
		"missing conclusion": "[도입부]\n시작\n[본문1]\n내용",
		"empty bodies":       "[도입부]\n시작\n[본문1]\n\n[결론]\n끝",
		"missing intro":      "[본문1]\n내용\n[결론]\n끝",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			res := ParseSections(raw)
			assert.False(t, res.OK)
			assert.NotEmpty(t, res.Reason)
		})
	}
}

func TestParseKeywords(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want KeywordResult
		ok   bool
	}{
		{
			name: "korean labels",
			raw:  "핵심키워드: [커피]\n보조키워드: [커피 원두, 커피 머신, 커피 추출]",
			want: KeywordResult{PrimaryKeyword: "커피", SubKeywords: []string{"커피 원두", "커피 머신", "커피 추출"}},
			ok:   true,
		},
		{
			name: "english labels truncated to three",
			raw:  "**primary_keyword:** coffee\nsub_keywords: beans, grinder, roast, latte",
			want: KeywordResult{PrimaryKeyword: "coffee", SubKeywords: []string{"beans", "grinder", "roast"}},
			ok:   true,
		},
		{
			name: "padded with topic keywords",
			raw:  "핵심 키워드: 핸드드립\n보조 키워드: 드립 커피",
			want: KeywordResult{PrimaryKeyword: "핸드드립", SubKeywords: []string{"드립 커피", "커피 추천", "커피 방법"}},
			ok:   true,
		},
		{
			name: "two sub keywords padded with recommendation keyword",
			raw:  "핵심키워드: 커피\n보조키워드: 원두, 머신",
			want: KeywordResult{PrimaryKeyword: "커피", SubKeywords: []string{"원두", "머신", "커피 추천"}},
			ok:   true,
		},
		{
			name: "padding skips keywords already present",
			raw:  "핵심키워드: 커피\n보조키워드: 커피 추천",
			want: KeywordResult{PrimaryKeyword: "커피", SubKeywords: []string{"커피 추천", "커피 방법", "커피 효과"}},
			ok:   true,
		},
		{
			name: "missing sub label uses derived keywords",
			raw:  "핵심키워드: 원두",
			want: KeywordResult{PrimaryKeyword: "원두", SubKeywords: []string{"커피 방법", "커피 효과", "커피 추천"}},
			ok:   true,
		},
		{
			name: "no labels",
			raw:  "커피, 원두, 머신",
			ok:   false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ParseKeywords(c.raw, "커피")
			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.Equal(t, c.want, got)
			}
		})
	}
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "커피 입문 가이드", CleanTitle("\n제목: \"커피 입문 가이드\"\n부연 설명"))
	assert.Equal(t, "Coffee 101", CleanTitle("## **Coffee 101**"))
	assert.Equal(t, "", CleanTitle("```\n\n```"))
}

func TestBuildContentPrompt_EmbedsRequestAndLabels(t *testing.T) {
	req, err := dietRequest().Normalize()
	require.NoError(t, err)
	p := BuildContentPrompt(req, SelectGuideline(Informational))

	for _, want := range []string{"주제: 다이어트", "핵심 키워드: 다이어트", "다이어트 방법, 다이어트 효과, 다이어트 추천",
		"[도입부]", "[본문1]", "[본문4]", "[결론]", "상세한 방법론 또는 절차"} {
		assert.Contains(t, p.User, want)
	}
	assert.NotContains(t, p.User, "[본문5]")
}

func TestGenerateContent_SimulationMode(t *testing.T) {
	svc := newTestService(t, NullBackend{})

	res, err := svc.GenerateContent(context.Background(), dietRequest())
	require.NoError(t, err)

	assert.Equal(t, SourceFallback, res.Source)
	require.Len(t, res.Sections.Body, 4)
	for _, b := range res.Sections.Body {
		assert.Contains(t, b, "다이어트")
	}
	assert.Len(t, res.Outline, 6)
	assert.Equal(t, "1. 주제에 대한 기본 개념 설명", res.Outline[1])
	assert.Equal(t, "6. 결론", res.Outline[5])

	m := res.SEOMetrics
	assert.GreaterOrEqual(t, m.SEOScore, 20)
	assert.Equal(t, seo.Score(m.KeywordDensity, res.TotalCharCount, m.ReadabilityScore), m.SEOScore)
	assert.Equal(t, seo.CharCount(res.Sections.FullText()), res.TotalCharCount)
	assert.LessOrEqual(t, len([]rune(res.MetaDescription)), 160)
	assert.Contains(t, res.ContentHTML, "<h1>다이어트 완벽 가이드: 건강하게 살 빼는 법</h1>")
}

func TestGenerateContent_FallbackIsIdempotent(t *testing.T) {
	svc := newTestService(t, NullBackend{})
	a, err := svc.GenerateContent(context.Background(), dietRequest())
	require.NoError(t, err)
	b, err := svc.GenerateContent(context.Background(), dietRequest())
	require.NoError(t, err)

	a.GenerationTime, b.GenerationTime = 0, 0
	a.Elapsed, b.Elapsed = 0, 0
	assert.Equal(t, a, b)
}

func TestGenerateContent_BackendErrorFallsBack(t *testing.T) {
	backend := &funcBackend{fn: func(Prompt) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	svc := newTestService(t, backend)

	res, err := svc.GenerateContent(context.Background(), dietRequest())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, FallbackSections(mustNormalize(t, dietRequest()), SelectGuideline(Informational)), res.Sections)
	assert.Equal(t, int32(1), backend.calls.Load())
}

func TestGenerateContent_MalformedBackendTextFallsBack(t *testing.T) {
	svc := newTestService(t, &funcBackend{fn: func(Prompt) (string, error) {
		return "[도입부]\n시작만 있고 나머지는 없습니다.", nil
	}})

	res, err := svc.GenerateContent(context.Background(), dietRequest())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Len(t, res.Sections.Body, 4)
}

func TestGenerateContent_UsesParsedBackendSections(t *testing.T) {
	svc := newTestService(t, &funcBackend{fn: func(Prompt) (string, error) {
		return wellFormedDraft, nil
	}})
	req := dietRequest()
	req.PrimaryKeyword = "커피"

	res, err := svc.GenerateContent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, SourceBackend, res.Source)
	require.Len(t, res.Sections.Body, 3)
	assert.Equal(t, []string{"1. 도입부", "원두 고르기", "추출 방법", "4. 본문 3", "5. 결론"}, res.Outline)
}

func TestGenerateContent_MeasuresElapsedTime(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ticks atomic.Int64
	clock := func() time.Time {
		return base.Add(time.Duration(ticks.Add(1)) * 750 * time.Millisecond)
	}
	svc, err := NewService(NullBackend{}, nil, WithClock(clock))
	require.NoError(t, err)

	res, err := svc.GenerateContent(context.Background(), dietRequest())
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, res.Elapsed)
	assert.InDelta(t, 0.75, res.GenerationTime, 1e-9)
}

func TestGenerateTitle_FallbackAndBackend(t *testing.T) {
	res := newTestService(t, NullBackend{}).GenerateTitle(context.Background(), "커피")
	assert.Equal(t, "커피에 대한 완벽 가이드: 전문가가 알려주는 핵심 포인트", res.Title)
	assert.Equal(t, SourceFallback, res.Source)

	res = newTestService(t, &funcBackend{fn: func(Prompt) (string, error) {
		return "  \"커피 입문자를 위한 원두 선택법\"  ", nil
	}}).GenerateTitle(context.Background(), "커피")
	assert.Equal(t, "커피 입문자를 위한 원두 선택법", res.Title)
	assert.Equal(t, SourceBackend, res.Source)
}

func TestRecommendKeywords_SimulationMode(t *testing.T) {
	res := newTestService(t, NullBackend{}).RecommendKeywords(context.Background(), "커피")
	assert.Equal(t, "커피", res.PrimaryKeyword)
	assert.Equal(t, []string{"커피 방법", "커피 효과", "커피 추천"}, res.SubKeywords)
}

func TestRecommendKeywords_UnlabeledBackendTextFallsBack(t *testing.T) {
	res := newTestService(t, &funcBackend{fn: func(Prompt) (string, error) {
		return "추천 키워드는 원두와 머신입니다.", nil
	}}).RecommendKeywords(context.Background(), "커피")
	assert.Equal(t, FallbackKeywords("커피").SubKeywords, res.SubKeywords)
	assert.Equal(t, SourceFallback, res.Source)
}

func TestDraft_CombinesTitleKeywordsAndContent(t *testing.T) {
	backend := &funcBackend{fn: func(p Prompt) (string, error) {
		switch {
		case strings.Contains(p.User, "제목만 출력"):
			return "홈카페 완벽 가이드: 집에서 즐기는 커피", nil
		case strings.Contains(p.User, "보조키워드:"):
			return "핵심키워드: 홈카페\n보조키워드: 홈카페 원두, 홈카페 머신, 홈카페 인테리어", nil
		default:
			return "", fmt.Errorf("content backend down")
		}
	}}
	svc := newTestService(t, backend)

	res, err := svc.Draft(context.Background(), "홈카페", Sales)
	require.NoError(t, err)
	assert.Equal(t, "홈카페 완벽 가이드: 집에서 즐기는 커피", res.Content.Title)
	assert.Equal(t, "홈카페", res.Keywords.PrimaryKeyword)
	assert.Equal(t, SourceFallback, res.Content.Source)
	assert.Contains(t, res.Content.Sections.Body[1], "홈카페 머신")
	assert.Equal(t, int32(3), backend.calls.Load())
	assert.GreaterOrEqual(t, res.Elapsed, res.Content.Elapsed)
}

func mustNormalize(t *testing.T, r GenerationRequest) GenerationRequest {
	t.Helper()
	n, err := r.Normalize()
	require.NoError(t, err)
	return n
}

func TestNewBackend_SelectsByProvider(t *testing.T) {
	b, err := NewBackend(context.Background(), LLMSettings{Provider: "deepseek", Model: "deepseek-chat"})
	require.NoError(t, err)
	assert.Equal(t, NullBackend{}, b)

	b, err = NewBackend(context.Background(), LLMSettings{
		Provider: "deepseek",
		Model:    "deepseek-chat",
		APIKey:   "sk-test",
		BaseURL:  "https://api.deepseek.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "deepseek", b.Name())

	_, err = NewBackend(context.Background(), LLMSettings{Provider: "claude", APIKey: "k"})
	assert.Error(t, err)
}
