package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/studyloop/internal/schedule"
	"github.com/abhisek/studyloop/internal/store"
)

// handleTasks returns the scheduled tasks for a day, today unless a
// date query parameter says otherwise.
func (s *Server) handleTasks(c *gin.Context) {
	date := s.now().Format(schedule.DateLayout)
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse(schedule.DateLayout, q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed.Format(schedule.DateLayout)
	}

	tasks, err := s.store.TasksForDate(c.Request.Context(), date)
	if err != nil {
		s.logger.Error("load tasks failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load tasks"})
		return
	}

	out := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, gin.H{
			"id":          t.ID,
			"task_type":   t.TaskType,
			"description": t.Description,
			"course_id":   t.CourseID,
			"course":      t.CourseName,
			"chapter_id":  t.ChapterID,
			"lesson_id":   t.LessonID,
			"completed":   t.Completed,
		})
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "tasks": out})
}

// handleCompleteTask marks a day task done. Completing an
// already-completed task succeeds quietly.
func (s *Server) handleCompleteTask(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	err := s.store.MarkTaskCompleted(c.Request.Context(), taskID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if err != nil {
		s.logger.Error("complete task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": taskID})
}
