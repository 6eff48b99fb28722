package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrivoice/nutrivoice/internal/common"
	"github.com/nutrivoice/nutrivoice/internal/entity"
	"github.com/nutrivoice/nutrivoice/internal/export"
	"github.com/nutrivoice/nutrivoice/internal/pipeline"
	"github.com/nutrivoice/nutrivoice/internal/repository"
)

const summaryTTL = 5 * time.Minute

// Server wires the pipeline, repositories and exporter behind a gin router.
type Server struct {
	logger    *slog.Logger
	processor *pipeline.Processor
	meals     *repository.MealRepository
	users     *repository.UserRepository
	exporter  *export.Service
	jwtSecret string

	cacheMu       sync.Mutex
	summaryCaches map[uuid.UUID]*common.Cache[entity.DailySummary]
}

func New(logger *slog.Logger, processor *pipeline.Processor, meals *repository.MealRepository, users *repository.UserRepository, exporter *export.Service, jwtSecret string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:        logger,
		processor:     processor,
		meals:         meals,
		users:         users,
		exporter:      exporter,
		jwtSecret:     jwtSecret,
		summaryCaches: make(map[uuid.UUID]*common.Cache[entity.DailySummary]),
	}
}

// Router builds the HTTP surface.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(s.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1", s.AuthMiddleware())
	{
		v1.POST("/meals/analyze", s.handleAnalyze)
		v1.POST("/meals/transcribe", s.handleTranscribe)
		v1.GET("/meals", s.handleListMeals)
		v1.GET("/meals/summary", s.handleSummary)
		v1.GET("/meals/export", s.handleExport)
		v1.POST("/activity/energy", s.handleEnergy)
		v1.POST("/activity/steps", s.handleSteps)
	}
	return r
}

// summaryCache returns the per-user cache, creating it lazily.
func (s *Server) summaryCache(userID uuid.UUID) *common.Cache[entity.DailySummary] {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	c, ok := s.summaryCaches[userID]
	if !ok {
		c = common.NewCache[entity.DailySummary](summaryTTL)
		s.summaryCaches[userID] = c
	}
	return c
}
