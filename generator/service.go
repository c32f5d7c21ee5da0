package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"seo_content_writer/logger"
	"seo_content_writer/metrics"
	"seo_content_writer/render"
	"seo_content_writer/seo"
)

// Service drafts titles, keywords and articles. It holds no per-request state and
// is safe for concurrent use.
type Service struct {
	backend Backend
	log     *logger.Logger
	render  render.Options
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithRenderOptions sets how content_html is produced.
func WithRenderOptions(o render.Options) Option {
	return func(s *Service) { s.render = o }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(backend Backend, log *logger.Logger, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("backend is required; use NullBackend for simulation mode")
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{backend: backend, log: log.With("backend", backend.Name()), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BackendName identifies the configured backend ("none" in simulation mode).
func (s *Service) BackendName() string {
	return s.backend.Name()
}

// GenerateTitle suggests an SEO title. Backend failures yield the fallback title.
func (s *Service) GenerateTitle(ctx context.Context, topic string) TitleResult {
	start := s.now()
	title, source := s.title(ctx, topic)
	elapsed := s.now().Sub(start)
	s.observe("title", source, elapsed)
	return TitleResult{Title: title, GenerationTime: elapsed.Seconds(), Source: source}
}

func (s *Service) title(ctx context.Context, topic string) (string, Source) {
	raw, err := s.backend.Complete(ctx, BuildTitlePrompt(topic))
	if err != nil {
		s.backendFailed("title", err)
		return FallbackTitle(topic), SourceFallback
	}
	if title := CleanTitle(raw); title != "" {
		return title, SourceBackend
	}
	s.log.Warn("backend title was empty after cleanup", "provider", s.backend.Name())
	return FallbackTitle(topic), SourceFallback
}

// RecommendKeywords suggests one primary and three sub keywords.
func (s *Service) RecommendKeywords(ctx context.Context, topic string) KeywordResult {
	start := s.now()
	res := s.keywords(ctx, topic)
	s.observe("keywords", res.Source, s.now().Sub(start))
	return res
}

func (s *Service) keywords(ctx context.Context, topic string) KeywordResult {
	raw, err := s.backend.Complete(ctx, BuildKeywordPrompt(topic))
	if err != nil {
		s.backendFailed("keywords", err)
		res := FallbackKeywords(topic)
		res.Source = SourceFallback
		return res
	}
	res, ok := ParseKeywords(raw, topic)
	if !ok {
		s.log.Warn("backend keywords had no labeled lines", "provider", s.backend.Name())
		res = FallbackKeywords(topic)
		res.Source = SourceFallback
		return res
	}
	res.Source = SourceBackend
	return res
}

// GenerateContent writes the article and scores it. Backend and parse failures are
// absorbed by the fallback templates; the only errors are invalid requests and
// rendering failures. Acceptance thresholds are not applied here.
func (s *Service) GenerateContent(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	start := s.now()

	req, err := req.Normalize()
	if err != nil {
		return GenerationResult{}, err
	}
	g := SelectGuideline(req.ContentType)
	sections, source := s.synthesize(ctx, req, g)

	full := sections.FullText()
	m := seo.Calculate(full, req.PrimaryKeyword, req.SubKeywords)

	html, err := render.HTML(render.Article{
		Title:        req.Title,
		Introduction: sections.Introduction,
		Body:         sections.Body,
		Conclusion:   sections.Conclusion,
	}, s.render)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("generate content: %w", err)
	}

	elapsed := s.now().Sub(start)
	s.observe("content", source, elapsed)
	metrics.SEOScore.Observe(float64(m.SEOScore))
	s.log.Info("content generated",
		"source", source,
		"content_type", req.ContentType,
		"seo_score", m.SEOScore,
		"keyword_density", m.KeywordDensity,
		"readability", m.ReadabilityScore,
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return GenerationResult{
		Title:           req.Title,
		Outline:         seo.Outline(sections.Body),
		Sections:        sections,
		MetaDescription: seo.MetaDescription(req.Title, req.PrimaryKeyword),
		SEOMetrics:      m,
		TotalCharCount:  seo.CharCount(full),
		GenerationTime:  elapsed.Seconds(),
		Source:          source,
		ContentHTML:     html,
		Elapsed:         elapsed,
	}, nil
}

// Draft goes from a bare topic to an article: title and keywords are suggested
// concurrently, then the content is generated from them.
func (s *Service) Draft(ctx context.Context, topic string, ct ContentType) (DraftResult, error) {
	start := s.now()

	var (
		title TitleResult
		kw    KeywordResult
	)
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		title = s.GenerateTitle(egctx, topic)
		return nil
	})
	eg.Go(func() error {
		kw = s.RecommendKeywords(egctx, topic)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return DraftResult{}, err
	}

	content, err := s.GenerateContent(ctx, GenerationRequest{
		Topic:          topic,
		Title:          title.Title,
		ContentType:    ct,
		PrimaryKeyword: kw.PrimaryKeyword,
		SubKeywords:    kw.SubKeywords,
	})
	if err != nil {
		return DraftResult{}, err
	}

	elapsed := s.now().Sub(start)
	return DraftResult{
		Title:          title,
		Keywords:       kw,
		Content:        content,
		GenerationTime: elapsed.Seconds(),
		Elapsed:        elapsed,
	}, nil
}

func (s *Service) backendFailed(operation string, err error) {
	if errors.Is(err, ErrBackendDisabled) {
		s.log.Debug("simulation mode, using fallback", "operation", operation)
		return
	}
	metrics.BackendFailures.WithLabelValues(s.backend.Name(), operation).Inc()
	s.log.Warn("backend call failed, using fallback",
		"provider", s.backend.Name(),
		"operation", operation,
		"error", err.Error(),
	)
}

func (s *Service) observe(kind string, source Source, elapsed time.Duration) {
	metrics.GenerationsTotal.WithLabelValues(kind, string(source)).Inc()
	metrics.GenerationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}
