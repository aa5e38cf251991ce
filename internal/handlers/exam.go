package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"simulado/api/internal/generator"
	"simulado/api/internal/quota"
	"simulado/api/internal/service"
)

type generateExamRequest struct {
	Subject    string `json:"materia" binding:"required"`
	Difficulty string `json:"dificuldade" binding:"required"`
	Count      int    `json:"numQuestoes" binding:"required,gt=0"`
}

func (h HandlerSet) GenerateExam(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	examID := c.Param("examId")
	if examID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "examId required"})
		return
	}

	var req generateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.examService.Generate(c.Request.Context(), user, examID, service.GenerateInput{
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		Count:      req.Count,
	})
	if err != nil {
		var limitErr *quota.LimitError
		switch {
		case errors.As(err, &limitErr):
			c.JSON(http.StatusForbidden, gin.H{"error": limitErr.Error()})
		case errors.Is(err, generator.ErrMalformedOutput):
			h.log.Error().Err(err).Str("exam", examID).Msg("provider output unparseable")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		case errors.Is(err, service.ErrProviderFailure):
			h.log.Error().Err(err).Str("exam", examID).Msg("provider call failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		case errors.Is(err, service.ErrPersistenceFailure):
			h.log.Error().Err(err).Str("exam", examID).Msg("history write failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		default:
			h.log.Error().Err(err).Str("exam", examID).Msg("generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, questions)
}

type historyEntry struct {
	ID            string    `json:"id"`
	Exam          string    `json:"vestibular"`
	Subject       string    `json:"materia"`
	Difficulty    string    `json:"dificuldade"`
	QuestionCount int       `json:"num_questoes"`
	CreatedAt     time.Time `json:"data_criacao"`
}

func (h HandlerSet) History(c *gin.Context) {
	records, err := h.examService.History(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("history listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}

	resp := make([]historyEntry, 0, len(records))
	for _, record := range records {
		resp = append(resp, historyEntry{
			ID:            record.ID,
			Exam:          record.Exam,
			Subject:       record.Subject,
			Difficulty:    record.Difficulty,
			QuestionCount: record.QuestionCount,
			CreatedAt:     record.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, resp)
}
