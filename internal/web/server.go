/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package web serves the local extraction form. It is UI glue only: the run
// endpoint shells into the same orchestration the CLI uses and streams back
// its progress lines. A heartbeat-driven watchdog shuts the process down
// after five minutes without browser activity so a forgotten tab does not
// leave the server running.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const inactivityTimeout = 5 * time.Minute

// RunParams are the form fields of one extraction request.
type RunParams struct {
	Project   string `json:"project"`
	SprintIDs string `json:"sprints"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	EpicLabel string `json:"epic_label"`
	OpenEpics bool   `json:"open_epics"`
	ExtraJQL  string `json:"jql"`
}

// Runner executes one extraction and returns its progress log. The web layer
// never touches the API itself; it hands the runner the current settings so
// credentials saved through the form take effect without a restart.
type Runner func(ctx context.Context, cfg config.Config, p RunParams) (log []string, path string, err error)

type Server struct {
	cfg     config.Config
	log     zerolog.Logger
	run     Runner
	envPath string

	mu           sync.Mutex
	lastActivity time.Time
	running      bool
}

func NewServer(cfg config.Config, log zerolog.Logger, run Runner) *Server {
	return &Server{cfg: cfg, log: log, run: run, envPath: "JiraExtractor.env", lastActivity: time.Now()}
}

func (s *Server) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// watchdog exits the process after a period with no requests, unless an
// extraction is still running.
func (s *Server) watchdog() {
	t := time.NewTicker(10 * time.Second)
	defer t.Stop()
	for range t.C {
		s.mu.Lock()
		idle := time.Since(s.lastActivity)
		running := s.running
		s.mu.Unlock()
		if running { continue }
		if idle > inactivityTimeout {
			s.log.Info().Dur("idle", idle).Msg("no browser activity, shutting down")
			os.Exit(0)
		}
	}
}

func (s *Server) Router() *gin.Engine {
	if s.cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		s.touch()
		c.Next()
		s.log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
	})

	r.GET("/", s.index)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/config", s.getConfig)
	r.POST("/config", s.saveConfig)
	r.POST("/heartbeat", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.POST("/run", s.runExtraction)
	r.GET("/download", s.download)
	r.POST("/shutdown", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "shutting down"})
		go func() { time.Sleep(500 * time.Millisecond); os.Exit(0) }()
	})

	return r
}

// Serve blocks on the HTTP listener with the watchdog running.
func (s *Server) Serve() error {
	go s.watchdog()
	s.log.Info().Str("addr", s.cfg.HTTPAddr).Msg("serving extraction form")
	return s.Router().Run(s.cfg.HTTPAddr)
}

func (s *Server) index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, indexHTML)
}

func (s *Server) runExtraction(c *gin.Context) {
	var p RunParams
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.Project == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project key is required"})
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "an extraction is already running"})
		return
	}
	s.running = true
	cfg := s.cfg
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.lastActivity = time.Now()
		s.mu.Unlock()
	}()

	// Detached from the request context: closing the tab must not cancel a
	// run halfway through its API calls.
	lines, path, err := s.run(context.Background(), cfg, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "log": lines})
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": lines, "path": path})
}

type credentials struct {
	BaseURL string `json:"jira_api_url"`
	Email   string `json:"jira_user_email"`
	Token   string `json:"jira_api_token"`
}

// getConfig exposes the saved connection settings. The token itself never
// leaves the server; the form only learns whether one is set.
func (s *Server) getConfig(c *gin.Context) {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"jira_api_url":    cfg.JiraBaseURL,
		"jira_user_email": cfg.JiraEmail,
		"token_set":       cfg.JiraAPIToken != "",
	})
}

// saveConfig persists credentials to the dotenv file next runs load from and
// applies them to the running server. An empty token keeps the current one.
func (s *Server) saveConfig(c *gin.Context) {
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.BaseURL == "" || in.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jira_api_url and jira_user_email are required"})
		return
	}
	s.mu.Lock()
	s.cfg.JiraBaseURL = strings.TrimRight(in.BaseURL, "/")
	s.cfg.JiraEmail = in.Email
	if in.Token != "" { s.cfg.JiraAPIToken = in.Token }
	cfg := s.cfg
	s.mu.Unlock()

	body := fmt.Sprintf("JIRA_API_URL=%s\nJIRA_USER_EMAIL=%s\nJIRA_API_TOKEN=%s\n",
		cfg.JiraBaseURL, cfg.JiraEmail, cfg.JiraAPIToken)
	if err := os.WriteFile(s.envPath, []byte(body), 0o600); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (s *Server) download(c *gin.Context) {
	path := s.cfg.OutputPath
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no export file found; run an extraction first"})
		return
	}
	c.FileAttachment(path, "JiraExport.xlsx")
}
