package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/studyloop/internal/content"
	"github.com/abhisek/studyloop/internal/rag"
	"github.com/abhisek/studyloop/internal/store"
)

// handleLesson returns a lesson, generating its body on first view.
// A failed generation leaves the lesson empty; the next view retries.
func (s *Server) handleLesson(c *gin.Context) {
	lessonID, ok := pathID(c)
	if !ok {
		return
	}

	lesson, err := s.store.GetLesson(c.Request.Context(), lessonID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}
	if err != nil {
		s.logger.Error("load lesson failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load lesson"})
		return
	}

	body, err := s.content.Ensure(c.Request.Context(), content.LessonRef{
		LessonID:     lesson.LessonID,
		CourseName:   lesson.CourseName,
		ChapterTitle: lesson.ChapterTitle,
		LessonTitle:  lesson.LessonTitle,
	})
	if err != nil {
		s.logger.Error("content generation failed", zap.Error(err), zap.Int64("lesson_id", lessonID))
		c.JSON(http.StatusBadGateway, gin.H{"error": "content generation failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      lesson.LessonID,
		"title":   lesson.LessonTitle,
		"chapter": lesson.ChapterTitle,
		"course":  lesson.CourseName,
		"content": body,
	})
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// handleAsk answers a free-form question about a lesson. The response
// always carries the {success, answer, citation} shape; retrieval and
// model failures are already recovered into a fallback answer below
// this handler, so the only failure surfaced here is a lesson whose
// body has not been generated yet.
func (s *Server) handleAsk(c *gin.Context) {
	lessonID, ok := pathID(c)
	if !ok {
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "question is required"})
		return
	}

	lesson, err := s.store.GetLesson(c.Request.Context(), lessonID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "lesson not found"})
		return
	}
	if err != nil {
		s.logger.Error("load lesson failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not load lesson"})
		return
	}

	answer, err := s.answerer.Answer(c.Request.Context(), rag.Question{
		Text:         req.Question,
		CourseName:   lesson.CourseName,
		ChapterTitle: lesson.ChapterTitle,
		LessonTitle:  lesson.LessonTitle,
		Content:      lesson.Content,
	})
	if err != nil {
		var aerr *rag.AnswerError
		if errors.As(err, &aerr) && aerr.Reason == rag.ReasonNoContent {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   "open the lesson first so its content is generated",
			})
			return
		}
		s.logger.Error("answer failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not answer question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"answer":   answer.Text,
		"citation": answer.Citation,
	})
}
