// Package web exposes the dashboard JSON API: trigger pipeline runs and
// browse the latest report and generated report files.
package web

import (
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"newsagent/internal/agent"
	"newsagent/internal/config"
	"newsagent/internal/models"
	"newsagent/internal/report"
)

type Server struct {
	agent *agent.Agent
	cfg   *config.Config

	mu           sync.RWMutex
	lastReport   *models.Report
	lastInsights *models.Insights
}

func NewServer(a *agent.Agent, cfg *config.Config) *Server {
	return &Server{
		agent: a,
		cfg:   cfg,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/health", s.getHealth)
	r.POST("/run", s.postRun)
	r.GET("/reports", s.getReports)
	r.GET("/reports/latest", s.getLatestReport)
	r.GET("/articles", s.getArticles)

	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type runRequest struct {
	Topics    []string `json:"topics"`
	Trending  bool     `json:"trending"`
	Country   string   `json:"country"`
	Category  string   `json:"category"`
	Days      int      `json:"days"`
	Sentiment string   `json:"sentiment"`
	Source    string   `json:"source"`
	Limit     int      `json:"limit"`
	Format    string   `json:"format"`
}

func (s *Server) postRun(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Topics) == 0 {
		req.Topics = s.cfg.DefaultTopics
	}
	if req.Days <= 0 {
		req.Days = 1
	}
	if req.Country == "" {
		req.Country = s.cfg.DefaultCountry
	}
	if req.Format == "" {
		req.Format = s.cfg.ReportFormat
	}

	opts := agent.RunOptions{
		Topics:    req.Topics,
		Trending:  req.Trending,
		Country:   req.Country,
		Category:  req.Category,
		DaysBack:  req.Days,
		Sentiment: models.Sentiment(req.Sentiment),
		Source:    req.Source,
		Limit:     req.Limit,
	}

	result, err := s.agent.Run(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	rendered, err := report.Render(result, req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path := filepath.Join(s.cfg.OutputDir, report.DefaultFilename(req.Format, result.GeneratedAt))
	if err := report.Write(path, rendered); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	insights := s.agent.Insights(c.Request.Context(), result)

	s.mu.Lock()
	s.lastReport = &result
	s.lastInsights = &insights
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"report":   result,
		"insights": insights,
		"file":     path,
	})
}

func (s *Server) getLatestReport(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastReport == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report generated yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":   s.lastReport,
		"insights": s.lastInsights,
	})
}

func (s *Server) getArticles(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastReport == nil {
		c.JSON(http.StatusOK, gin.H{"articles": []models.AnalyzedArticle{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": s.lastReport.Articles})
}

func (s *Server) getReports(c *gin.Context) {
	entries, err := os.ReadDir(s.cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{"reports": []string{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reports := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			reports = append(reports, entry.Name())
		}
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
