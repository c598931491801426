package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/studyloop/internal/schedule"
	"github.com/abhisek/studyloop/internal/store"
)

type proposeRequest struct {
	CourseName string `json:"course_name" binding:"required"`
}

// handleProposeChapters starts a course draft and proposes chapters for
// it. The draft id returned here is the handle for the create call.
func (s *Server) handleProposeChapters(c *gin.Context) {
	var req proposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_name is required"})
		return
	}
	name := strings.TrimSpace(req.CourseName)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_name is required"})
		return
	}

	draft := s.wizard.Begin(name)

	chapters, err := s.curriculum.GenerateChapters(c.Request.Context(), name)
	if err != nil {
		s.logger.Error("chapter generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "chapter generation failed, please try again"})
		return
	}

	if _, err := s.wizard.Propose(draft.ID, chapters); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft_id":    draft.ID,
		"course_name": name,
		"chapters":    chapters,
	})
}

type createCourseRequest struct {
	DraftID   string   `json:"draft_id" binding:"required"`
	Chapters  []string `json:"chapters" binding:"required"`
	StartDate string   `json:"start_date"`
}

// handleCreateCourse finishes a draft: lessons are generated for the
// selected chapters, the schedule is planned, and the whole tree is
// stored in one transaction. A failed generation keeps the draft and
// its proposal so the user can retry the same selection.
func (s *Server) handleCreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "draft_id and chapters are required"})
		return
	}

	draft, err := s.wizard.Get(req.DraftID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := draft.ValidateSelection(req.Chapters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := s.now()
	if req.StartDate != "" {
		start, err = time.Parse(schedule.DateLayout, req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
	}

	structure, err := s.curriculum.GenerateStructure(c.Request.Context(), draft.CourseName, req.Chapters)
	if err != nil {
		s.logger.Error("lesson generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "lesson generation failed, please try again"})
		return
	}

	entries := schedule.Plan(structure, start)

	courseID, err := s.store.CreateCourse(c.Request.Context(), draft.CourseName, structure, entries)
	if err != nil {
		s.logger.Error("course creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save course"})
		return
	}
	s.wizard.Complete(draft.ID)

	c.JSON(http.StatusCreated, gin.H{
		"course_id":   courseID,
		"course_name": draft.CourseName,
		"days":        structure.LessonCount() + len(structure.Chapters),
	})
}

func (s *Server) handleListCourses(c *gin.Context) {
	courses, err := s.store.ListCourses(c.Request.Context())
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load courses"})
		return
	}

	out := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		out = append(out, gin.H{
			"id":         course.ID,
			"name":       course.Name,
			"created_at": course.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"courses": out})
}

func (s *Server) handleCourseDetail(c *gin.Context) {
	courseID, ok := pathID(c)
	if !ok {
		return
	}

	course, err := s.store.GetCourse(c.Request.Context(), courseID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	if err != nil {
		s.logger.Error("load course failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load course"})
		return
	}

	tasks, err := s.store.CourseSchedule(c.Request.Context(), courseID)
	if err != nil {
		s.logger.Error("load schedule failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load schedule"})
		return
	}

	chapters := make([]gin.H, 0, len(course.Chapters))
	for _, ch := range course.Chapters {
		lessons := make([]gin.H, 0, len(ch.Lessons))
		for _, l := range ch.Lessons {
			lessons = append(lessons, gin.H{
				"id":          l.ID,
				"title":       l.Title,
				"has_content": l.HasContent,
			})
		}
		chapters = append(chapters, gin.H{"id": ch.ID, "title": ch.Title, "lessons": lessons})
	}

	scheduleOut := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		scheduleOut = append(scheduleOut, gin.H{
			"date":        t.Date,
			"task_type":   t.TaskType,
			"description": t.Description,
			"chapter_id":  t.ChapterID,
			"lesson_id":   t.LessonID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       course.ID,
		"name":     course.Name,
		"chapters": chapters,
		"schedule": scheduleOut,
	})
}

func (s *Server) handleDeleteCourse(c *gin.Context) {
	courseID, ok := pathID(c)
	if !ok {
		return
	}

	err := s.store.DeleteCourse(c.Request.Context(), courseID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}
	if err != nil {
		s.logger.Error("delete course failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete course"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": courseID})
}

// pathID parses the :id path parameter, responding 400 itself when the
// value is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
