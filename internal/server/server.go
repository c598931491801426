// Package server exposes the studyloop JSON API over HTTP.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/studyloop/internal/content"
	"github.com/abhisek/studyloop/internal/curriculum"
	"github.com/abhisek/studyloop/internal/quiz"
	"github.com/abhisek/studyloop/internal/rag"
	"github.com/abhisek/studyloop/internal/store"
)

// Deps are the collaborators the server needs. Everything is injected;
// the server owns no state beyond routing.
type Deps struct {
	Logger     *zap.Logger
	Store      *store.Store
	Wizard     *curriculum.Wizard
	Curriculum *curriculum.Generator
	Content    *content.Service
	Quizzes    *quiz.Service
	Answerer   *rag.Answerer
}

// Server is the HTTP boundary.
type Server struct {
	logger     *zap.Logger
	store      *store.Store
	wizard     *curriculum.Wizard
	curriculum *curriculum.Generator
	content    *content.Service
	quizzes    *quiz.Service
	answerer   *rag.Answerer

	// now is replaceable in tests so "today" is deterministic.
	now func() time.Time
}

// New creates a Server.
func New(deps Deps) *Server {
	return &Server{
		logger:     deps.Logger,
		store:      deps.Store,
		wizard:     deps.Wizard,
		curriculum: deps.Curriculum,
		content:    deps.Content,
		quizzes:    deps.Quizzes,
		answerer:   deps.Answerer,
		now:        time.Now,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	{
		api.GET("/tasks", s.handleTasks)
		api.POST("/tasks/:id/complete", s.handleCompleteTask)

		api.POST("/courses/propose", s.handleProposeChapters)
		api.POST("/courses", s.handleCreateCourse)
		api.GET("/courses", s.handleListCourses)
		api.GET("/courses/:id", s.handleCourseDetail)
		api.DELETE("/courses/:id", s.handleDeleteCourse)

		api.GET("/lessons/:id", s.handleLesson)
		api.GET("/lessons/:id/quiz", s.handleLessonQuiz)
		api.POST("/lessons/:id/ask", s.handleAsk)

		api.GET("/chapters/:id/quiz", s.handleChapterQuiz)
		api.POST("/quiz/submit", s.handleSubmitQuiz)
	}

	return r
}

// requestLogger tags every request with an id and logs its outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
