// Package app wires configuration, storage, providers, and services
// into a runnable application. Everything is constructed here and
// injected down; no package holds global state.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/studyloop/internal/content"
	"github.com/abhisek/studyloop/internal/curriculum"
	"github.com/abhisek/studyloop/internal/embed"
	"github.com/abhisek/studyloop/internal/llm"
	"github.com/abhisek/studyloop/internal/quiz"
	"github.com/abhisek/studyloop/internal/rag"
	"github.com/abhisek/studyloop/internal/server"
	"github.com/abhisek/studyloop/internal/store"
)

// App is the assembled application.
type App struct {
	cfg    Config
	logger *zap.Logger
	store  *store.Store
	server *server.Server
}

// New builds the application from configuration. The store is opened,
// the LLM provider and embedder are constructed, and every service is
// wired with its dependencies.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*App, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	llmCfg := cfg.LLM
	if !llmCfg.DiscoverKeys() {
		st.Close()
		return nil, fmt.Errorf("no LLM API key found: set GEMINI_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY")
	}
	if err := llmCfg.Validate(); err != nil {
		st.Close()
		return nil, err
	}

	provider, err := llm.NewProvider(ctx, llmCfg, logger, st)
	if err != nil {
		st.Close()
		return nil, err
	}

	embedCfg := cfg.Embed
	if embedCfg.APIKey == "" {
		embedCfg.APIKey = vendorKey(llmCfg, embedCfg.Provider)
	}
	embedder, err := embed.NewEmbedder(ctx, embedCfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	srv := server.New(server.Deps{
		Logger:     logger,
		Store:      st,
		Wizard:     curriculum.NewWizard(),
		Curriculum: curriculum.NewGenerator(provider, curriculum.DefaultConfig()),
		Content:    content.NewService(content.NewGenerator(provider, content.DefaultConfig()), st),
		Quizzes:    quiz.NewService(quiz.NewGenerator(provider, quiz.DefaultConfig()), st),
		Answerer:   rag.NewAnswerer(provider, embedder, rag.DefaultConfig()),
	})

	logger.Info("application assembled",
		zap.String("db", dbPath),
		zap.String("llm_provider", llmCfg.Provider),
		zap.String("llm_model", provider.ModelID()),
		zap.String("embed_provider", embedCfg.Provider),
	)

	return &App{cfg: cfg, logger: logger, store: st, server: srv}, nil
}

// vendorKey reuses the chat provider's API key when the embedding
// provider is the same vendor.
func vendorKey(llmCfg llm.Config, embedProvider string) string {
	switch embedProvider {
	case "gemini":
		return llmCfg.Gemini.APIKey
	case "openai":
		return llmCfg.OpenAI.APIKey
	}
	return ""
}

// Run serves HTTP until the context is canceled, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	if !a.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	httpSrv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", a.cfg.Addr))
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

// Close releases the application's resources.
func (a *App) Close() error {
	return a.store.Close()
}
