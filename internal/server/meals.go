package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrivoice/nutrivoice/constants"
	"github.com/nutrivoice/nutrivoice/internal/common"
	"github.com/nutrivoice/nutrivoice/internal/entity"
	"github.com/nutrivoice/nutrivoice/internal/pipeline"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

// readInput accepts either a JSON body with a text field or a multipart form
// with an "audio" file.
func readInput(c *gin.Context) (pipeline.Input, error) {
	ct := c.ContentType()
	if strings.HasPrefix(ct, "multipart/") {
		fh, err := c.FormFile("audio")
		if err != nil {
			return pipeline.Input{}, common.NewAppError("BAD_INPUT", "multipart request needs an audio file", common.ErrInvalidInput)
		}
		f, err := fh.Open()
		if err != nil {
			return pipeline.Input{}, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return pipeline.Input{}, fmt.Errorf("read upload: %w", err)
		}
		mime := fh.Header.Get("Content-Type")
		if mime == "" {
			mime = "audio/m4a"
		}
		return pipeline.Input{Audio: data, AudioMIME: mime, Text: c.PostForm("text")}, nil
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return pipeline.Input{}, common.NewAppError("BAD_INPUT", "invalid request body", common.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Text) == "" {
		return pipeline.Input{}, common.NewAppError("BAD_INPUT", "text is required", common.ErrInvalidInput)
	}
	return pipeline.Input{Text: req.Text}, nil
}

// handleAnalyze runs the full analysis pipeline and persists the result as a
// meal entry.
func (s *Server) handleAnalyze(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, common.ErrUnauthorized)
		return
	}
	in, err := readInput(c)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := s.processor.Run(c.Request.Context(), in, constants.PurposeAnalyze)
	if err != nil {
		writeError(c, err)
		return
	}

	entry := entryFromRecord(userID, res)
	if err := s.meals.Create(c.Request.Context(), entry); err != nil {
		writeError(c, err)
		return
	}
	s.summaryCache(userID).Invalidate()

	c.JSON(http.StatusOK, gin.H{
		"entry":  entry,
		"record": res.Record,
		"model":  res.ModelID,
	})
}

// handleTranscribe returns the cleaned transcription without analysis or
// persistence.
func (s *Server) handleTranscribe(c *gin.Context) {
	if _, ok := userIDFrom(c); !ok {
		writeError(c, common.ErrUnauthorized)
		return
	}
	in, err := readInput(c)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := s.processor.Run(c.Request.Context(), in, constants.PurposeTranscribe)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transcription": res.Record.Transcription,
		"model":         res.ModelID,
	})
}

func (s *Server) handleListMeals(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, common.ErrUnauthorized)
		return
	}
	from, to := parseDateRange(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := s.meals.ListByUser(c.Request.Context(), userID, from, to, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": entries})
}

func (s *Server) handleSummary(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, common.ErrUnauthorized)
		return
	}

	cache := s.summaryCache(userID)
	if sum, ok := cache.Get(); ok {
		c.JSON(http.StatusOK, gin.H{"summary": sum, "cached": true})
		return
	}

	sum, err := s.meals.SummaryForDay(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		writeError(c, err)
		return
	}
	cache.Put(*sum)
	c.JSON(http.StatusOK, gin.H{"summary": sum, "cached": false})
}

func (s *Server) handleExport(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		writeError(c, common.ErrUnauthorized)
		return
	}
	var fromPtr, toPtr *time.Time
	if t, ok := parseDate(c.Query("from")); ok {
		fromPtr = &t
	}
	if t, ok := parseDate(c.Query("to")); ok {
		toPtr = &t
	}

	data, err := s.exporter.ExportMealsXLSX(c.Request.Context(), userID, fromPtr, toPtr)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="meals.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func entryFromRecord(userID uuid.UUID, res *pipeline.Result) *entity.MealEntry {
	rec := res.Record
	names := make([]string, 0, len(rec.Items))
	for _, it := range rec.Items {
		names = append(names, it.Name)
	}
	return &entity.MealEntry{
		ID:            uuid.New(),
		UserID:        userID,
		Description:   strings.Join(names, ", "),
		Transcription: rec.Transcription,
		Calories:      rec.Total.Calories,
		Protein:       rec.Total.Protein,
		Carbs:         rec.Total.Carbs,
		Fat:           rec.Total.Fat,
		Fiber:         rec.Total.Fiber,
		ModelID:       res.ModelID,
		LoggedAt:      time.Now().UTC(),
	}
}

func parseDateRange(c *gin.Context) (time.Time, time.Time) {
	var from, to time.Time
	if t, ok := parseDate(c.Query("from")); ok {
		from = t
	}
	if t, ok := parseDate(c.Query("to")); ok {
		to = t.Add(24 * time.Hour)
	}
	return from, to
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
