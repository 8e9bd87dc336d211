package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"newsagent/internal/agent"
	"newsagent/internal/ai"
	"newsagent/internal/cache"
	"newsagent/internal/config"
	"newsagent/internal/models"
	"newsagent/internal/report"
	"newsagent/internal/sources"
	"newsagent/internal/telegram"
	"newsagent/internal/web"
)

func main() {
	topics := flag.String("topics", "", "comma-separated topics to search for")
	trending := flag.Bool("trending", false, "fetch trending headlines instead of topic search")
	autonomous := flag.Bool("autonomous", false, "run continuously on an interval")
	days := flag.Int("days", 1, "number of days to look back for news")
	country := flag.String("country", "", "country code for trending headlines")
	category := flag.String("category", "", "category for trending headlines")
	format := flag.String("format", "", "report format: text, markdown, or html")
	output := flag.String("output", "", "report output path (defaults to a timestamped file)")
	sentiment := flag.String("sentiment", "", "filter articles by sentiment: positive, negative, or neutral")
	sourceFilter := flag.String("source", "", "filter articles by source name")
	limit := flag.Int("limit", 0, "limit the number of articles to process")
	interval := flag.Duration("interval", 0, "time between runs in autonomous mode")
	iterations := flag.Int("iterations", 0, "number of runs in autonomous mode")
	serve := flag.Bool("serve", false, "start the web dashboard API")
	articleURL := flag.String("url", "", "analyze a single article fetched from this URL")
	showConfig := flag.Bool("config", false, "display the current configuration and exit")
	validate := flag.Bool("validate", false, "validate the configuration and exit")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	if *showConfig {
		fmt.Print(cfg)
		return
	}

	errs := cfg.Validate()
	if *validate {
		if len(errs) == 0 {
			fmt.Println("configuration is valid")
			fmt.Print(cfg)
			return
		}
		fmt.Println("configuration errors found:")
		for _, err := range errs {
			fmt.Printf("  - %v\n", err)
		}
		os.Exit(1)
	}
	if len(errs) > 0 {
		for _, err := range errs {
			slog.Error("configuration error", "error", err)
		}
		os.Exit(1)
	}

	if *topics != "" {
		cfg.DefaultTopics = splitTopics(*topics)
	}
	if *format != "" {
		cfg.ReportFormat = *format
	}
	if *country != "" {
		cfg.DefaultCountry = *country
	}
	if *interval > 0 {
		cfg.Interval = *interval
	}
	if *iterations > 0 {
		cfg.Iterations = *iterations
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	aiClient, err := ai.New(cfg)
	if err != nil {
		slog.Error("failed to create llm client", "error", err)
		os.Exit(1)
	}

	if *articleURL != "" {
		if err := runURL(ctx, cfg, aiClient, *articleURL, *output); err != nil {
			slog.Error("url analysis failed", "error", err)
			os.Exit(1)
		}
		return
	}

	fetcher := sources.NewFetcher(cfg.NewsAPIKey, cfg.DefaultLanguage, cfg.MaxArticlesPerTopic)

	opts := agent.RunOptions{
		Topics:    cfg.DefaultTopics,
		Trending:  *trending,
		Country:   cfg.DefaultCountry,
		Category:  *category,
		DaysBack:  *days,
		Sentiment: models.Sentiment(*sentiment),
		Source:    *sourceFilter,
		Limit:     *limit,
	}

	switch {
	case *serve:
		seen := cache.New(cfg.CacheRetention)
		defer seen.Close()

		newsAgent := agent.New(fetcher, aiClient, seen)
		server := web.NewServer(newsAgent, cfg)

		slog.Info("starting dashboard", "addr", cfg.ServerAddr)
		if err := server.Run(cfg.ServerAddr); err != nil {
			slog.Error("dashboard server failed", "error", err)
			os.Exit(1)
		}

	case *autonomous:
		seen := cache.New(cfg.CacheRetention)
		defer seen.Close()

		newsAgent := agent.New(fetcher, aiClient, seen)
		runAutonomous(ctx, cfg, newsAgent, opts)

	default:
		newsAgent := agent.New(fetcher, aiClient, nil)
		if err := runOnce(ctx, cfg, newsAgent, opts, *output); err != nil {
			slog.Error("run failed", "error", err)
			os.Exit(1)
		}
	}
}

// runOnce executes a single pipeline pass and writes the rendered report.
func runOnce(ctx context.Context, cfg *config.Config, newsAgent *agent.Agent, opts agent.RunOptions, outputPath string) error {
	result, err := newsAgent.Run(ctx, opts)
	if err != nil {
		return err
	}

	path, err := writeReport(cfg, result, outputPath)
	if err != nil {
		return err
	}

	slog.Info("report generated", "path", path, "articles", result.TotalCount, "skipped", result.Skipped)

	if result.TotalCount > 0 {
		insights := newsAgent.Insights(ctx, result)
		slog.Info("sentiment breakdown",
			"positive", insights.SentimentBreakdown[models.SentimentPositive],
			"negative", insights.SentimentBreakdown[models.SentimentNegative],
			"neutral", insights.SentimentBreakdown[models.SentimentNeutral])
		if insights.Overview != "" {
			fmt.Println(insights.Overview)
		}
	}

	fmt.Printf("Report generated: %s (%d articles)\n", path, result.TotalCount)
	return nil
}

// runAutonomous is the sleep-loop mode: run, report, deliver, wait.
func runAutonomous(ctx context.Context, cfg *config.Config, newsAgent *agent.Agent, opts agent.RunOptions) {
	var bot *telegram.Bot
	if cfg.TelegramToken != "" {
		var err error
		bot, err = telegram.NewBot(cfg.TelegramToken)
		if err != nil {
			slog.Error("failed to start telegram delivery", "error", err)
		} else {
			go bot.Start(ctx)
		}
	}

	slog.Info("starting autonomous mode", "topics", opts.Topics, "interval", cfg.Interval, "iterations", cfg.Iterations)

	for i := 0; i < cfg.Iterations; i++ {
		slog.Info("autonomous iteration", "iteration", i+1, "total", cfg.Iterations)

		result, err := newsAgent.Run(ctx, opts)
		if err != nil {
			slog.Warn("iteration failed, continuing", "iteration", i+1, "error", err)
		} else {
			path, err := writeReport(cfg, result, "")
			if err != nil {
				slog.Error("failed to write report", "error", err)
			} else {
				slog.Info("report saved", "path", path, "articles", result.TotalCount)
			}

			if bot != nil && result.TotalCount > 0 {
				bot.BroadcastReport(result, newsAgent.Insights(ctx, result))
			}
		}

		if i == cfg.Iterations-1 {
			break
		}

		select {
		case <-time.After(cfg.Interval):
		case <-ctx.Done():
			slog.Info("autonomous mode interrupted")
			return
		}
	}

	slog.Info("autonomous mode completed")
}

// runURL analyzes one article fetched directly from a web page.
func runURL(ctx context.Context, cfg *config.Config, aiClient ai.Client, pageURL, outputPath string) error {
	article, err := sources.NewURLFetcher().Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	analysis, err := aiClient.Analyze(ctx, article)
	if err != nil {
		return err
	}

	result := models.Report{
		Articles: []models.AnalyzedArticle{{
			Article:     article,
			Analysis:    analysis,
			ProcessedAt: time.Now(),
		}},
		GeneratedAt: time.Now(),
		TotalCount:  1,
	}

	path, err := writeReport(cfg, result, outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Report generated: %s\n", path)
	return nil
}

func writeReport(cfg *config.Config, result models.Report, outputPath string) (string, error) {
	rendered, err := report.Render(result, cfg.ReportFormat)
	if err != nil {
		return "", err
	}

	path := outputPath
	if path == "" {
		path = filepath.Join(cfg.OutputDir, report.DefaultFilename(cfg.ReportFormat, result.GeneratedAt))
	}

	if err := report.Write(path, rendered); err != nil {
		return "", err
	}
	return path, nil
}

func splitTopics(raw string) []string {
	parts := strings.Split(raw, ",")
	topics := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			topics = append(topics, trimmed)
		}
	}
	return topics
}
