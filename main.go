package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"seo_content_writer/config"
	"seo_content_writer/generator"
	"seo_content_writer/logger"
	"seo_content_writer/metrics"
	"seo_content_writer/render"
	"seo_content_writer/seo"
	"seo_content_writer/server"
)

const (
	serviceName = "seo-content-writer"
	version     = "0.1.0"
)

var verbose bool

func main() {
	configPath := flag.String("config", "config.yaml", "path to optional config.yaml")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides API_HOST/API_PORT)")
	topic := flag.String("topic", "", "draft one article for this topic and print it")
	contentType := flag.String("type", string(generator.Informational), "content type for --topic: informational or sales")
	asHTML := flag.Bool("html", false, "print HTML instead of markdown for --topic")
	inline := flag.Bool("inline-styles", false, "inline heading styles and flatten lists in content_html")
	flag.BoolVar(&verbose, "v", false, "enable debug logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Environment, cfg.Debug || verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := generator.NewBackend(ctx, generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		log.Fatal("build llm backend", "provider", cfg.LLM.Provider, "error", err.Error())
	}
	if cfg.SimulationMode() {
		log.Warn("no api key configured, running in simulation mode", "provider", cfg.LLM.Provider)
	}

	svc, err := generator.NewService(backend, log, generator.WithRenderOptions(render.Options{InlineStyles: *inline}))
	if err != nil {
		log.Fatal("build generator", "error", err.Error())
	}
	thresholds := seo.Thresholds{
		MinSEOScore:       cfg.SEO.MinScore,
		MinKeywordDensity: cfg.SEO.MinKeywordDensity,
		MinCharCount:      cfg.SEO.MinCharCount,
		MaxGenerationTime: cfg.SEO.MaxGenerationTime(),
	}

	if *serve {
		if err := runServer(ctx, cfg, *addr, svc, thresholds, log); err != nil {
			log.Fatal("server exited", "error", err.Error())
		}
		return
	}

	if *topic == "" {
		fmt.Fprintln(os.Stderr, "--serve or --topic is required")
		os.Exit(1)
	}
	if err := printDraft(ctx, svc, thresholds, *topic, generator.ContentType(*contentType), *asHTML); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, cfg config.Config, addr string, svc *generator.Service, th seo.Thresholds, log *logger.Logger) error {
	if cfg.Debug || verbose {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Init(serviceName, version, cfg.Environment, svc.BackendName())

	srv, err := server.New(svc, log, server.Options{
		Thresholds:       th,
		Environment:      cfg.Environment,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})
	if err != nil {
		return err
	}
	listen := cfg.Addr()
	if addr != "" {
		listen = addr
	}
	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting web server", "addr", listen, "backend", svc.BackendName(), "environment", cfg.Environment)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// printDraft runs the whole pipeline once from the command line. The acceptance
// result goes to stderr so stdout stays a clean document.
func printDraft(ctx context.Context, svc *generator.Service, th seo.Thresholds, topic string, ct generator.ContentType, asHTML bool) error {
	if !ct.Valid() {
		return fmt.Errorf("--type must be %s or %s", generator.Informational, generator.Sales)
	}
	res, err := svc.Draft(ctx, topic, ct)
	if err != nil {
		return err
	}

	if asHTML {
		fmt.Println(res.Content.ContentHTML)
	} else {
		fmt.Print(render.Markdown(render.Article{
			Title:        res.Content.Title,
			Introduction: res.Content.Sections.Introduction,
			Body:         res.Content.Sections.Body,
			Conclusion:   res.Content.Sections.Conclusion,
		}))
	}

	summary, _ := json.MarshalIndent(map[string]any{
		"meta_description": res.Content.MetaDescription,
		"seo_metrics":      res.Content.SEOMetrics,
		"total_char_count": res.Content.TotalCharCount,
		"generation_time":  res.GenerationTime,
		"source":           res.Content.Source,
	}, "", "  ")
	fmt.Fprintln(os.Stderr, string(summary))

	return th.Check(res.Content.SEOMetrics, res.Content.TotalCharCount, res.Elapsed)
}
