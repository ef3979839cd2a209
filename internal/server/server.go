package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proofmesh/basalt/internal/config"
	"github.com/proofmesh/basalt/internal/core"
	"github.com/proofmesh/basalt/internal/core/ingest"
	"github.com/proofmesh/basalt/internal/core/model"
	"github.com/proofmesh/basalt/internal/distill"
	"github.com/proofmesh/basalt/internal/llm"
	"github.com/proofmesh/basalt/internal/logger"
	"github.com/proofmesh/basalt/internal/store"
	"github.com/proofmesh/basalt/internal/summarize"
	"github.com/proofmesh/basalt/internal/workspace"
)

type Server struct {
	Builder    *core.Builder
	Distiller  *distill.Distiller
	Summarizer *summarize.Summarizer
	Store      *store.Store // nil when no graph store is configured
	BaseDir    string
	Log        *logger.Logger
}

// NewServer wires the service from config.toml plus environment overrides.
func NewServer(ctx context.Context, log *logger.Logger) (*Server, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warn("could not load config, using defaults", "path", cfgPath, "error", err)
		cfg = &config.Config{}
	}

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("STORE_URI"); v != "" {
		cfg.Store.URI = v
	}
	if v := os.Getenv("STORE_USER"); v != "" {
		cfg.Store.User = v
	}
	if v := os.Getenv("STORE_PASSWORD"); v != "" {
		cfg.Store.Password = v
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		cfg.LLM.Model = "gpt-oss:latest"
	}
	if cfg.Workspace.BaseDir == "" {
		cfg.Workspace.BaseDir = "workspace"
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Builder:    core.NewBuilder(cfg.Dedupe.Threshold, cfg.Concurrency.Ingest, log),
		Distiller:  distill.NewDistiller(llmClient, cfg.Distill),
		Summarizer: summarize.NewSummarizer(llmClient, cfg.Summary),
		BaseDir:    cfg.Workspace.BaseDir,
		Log:        log,
	}

	if cfg.Store.URI != "" {
		driver, err := store.NewMemgraphDriver(ctx, cfg.Store.URI, cfg.Store.User, cfg.Store.Password)
		if err != nil {
			return nil, err
		}
		if err := driver.BuildIndices(ctx); err != nil {
			log.Warn("failed to build store indices", "error", err)
		}
		s.Store = store.NewStore(driver)
		log.Info("graph store connected", "uri", cfg.Store.URI)
	}
	return s, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.POST("/problems", s.CreateProblem)
	r.POST("/distill", s.Distill)
	r.POST("/graphs", s.BuildGraph)
	r.GET("/graphs/:problem_id", s.ListGraphs)
	r.POST("/summaries", s.Summarize)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type CreateProblemRequest struct {
	Statement string `json:"statement"`
}

func (s *Server) CreateProblem(c *gin.Context) {
	var req CreateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Statement == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	problemID := workspace.GenerateProblemID(req.Statement, time.Now().UTC())
	ws, err := workspace.Create(s.BaseDir, problemID)
	if err != nil {
		s.Log.Error("failed to create workspace", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workspace"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"problem_id": problemID,
		"workspace":  ws.Root,
	})
}

type DistillRequest struct {
	Problem string `json:"problem"`
	PaperID string `json:"paper_id"`
	Content string `json:"content"`
}

func (s *Server) Distill(c *gin.Context) {
	var req DistillRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaperID == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	out, err := s.Distiller.DistillPaper(c.Request.Context(), req.Problem, req.PaperID, req.Content)
	if err != nil {
		s.Log.Error("distillation failed", "paper_id", req.PaperID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to distill paper"})
		return
	}

	c.JSON(http.StatusOK, out)
}

type BuildGraphRequest struct {
	ProblemID string            `json:"problem_id"`
	Outputs   []json.RawMessage `json:"outputs"`
	Persist   bool              `json:"persist"`
}

func (s *Server) BuildGraph(c *gin.Context) {
	var req BuildGraphRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProblemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	outputs := make([]ingest.RawOutput, len(req.Outputs))
	for i, raw := range req.Outputs {
		outputs[i] = ingest.RawOutput{Payload: raw}
	}

	snapshot := s.Builder.Build(c.Request.Context(), req.ProblemID, outputs)

	if req.Persist {
		if s.Store == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "No graph store configured"})
			return
		}
		if err := s.Store.SaveSnapshot(c.Request.Context(), snapshot); err != nil {
			s.Log.Error("failed to persist snapshot", "snapshot_id", snapshot.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist snapshot"})
			return
		}
	}

	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) ListGraphs(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No graph store configured"})
		return
	}

	ids, err := s.Store.ListSnapshots(c.Request.Context(), c.Param("problem_id"))
	if err != nil {
		s.Log.Error("failed to list snapshots", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list snapshots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": ids})
}

type SummarizeRequest struct {
	Nodes []model.Node `json:"nodes"`
}

func (s *Server) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Nodes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	summary, err := s.Summarizer.SummarizeCluster(c.Request.Context(), req.Nodes)
	if err != nil {
		s.Log.Error("failed to summarize cluster", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize cluster"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
