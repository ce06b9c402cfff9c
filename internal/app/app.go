package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bhavpulse/config"
	"github.com/guttosm/bhavpulse/internal/api"
	"github.com/guttosm/bhavpulse/internal/ingestion"
	"github.com/guttosm/bhavpulse/internal/logger"
	"github.com/guttosm/bhavpulse/internal/middleware"
	"github.com/guttosm/bhavpulse/internal/service"
	"github.com/guttosm/bhavpulse/internal/storage"
)

// MergeOptions translates cfg into the merger's explicit options.
func MergeOptions(cfg config.Config) ingestion.Options {
	return ingestion.Options{
		SourceDir:   cfg.Paths.SourceDir,
		ScratchDir:  cfg.Paths.ScratchDir,
		ArchiveExt:  cfg.Merge.ArchiveExt,
		FilePrefix:  cfg.Merge.FilePrefix,
		FileExt:     cfg.Merge.FileExt,
		LeadingDrop: cfg.Merge.LeadingDrop,
		Parallel:    cfg.Merge.Parallel,
	}
}

// NewMergeService wires the merger to the combined table named in cfg.
func NewMergeService(cfg config.Config) service.MergeService {
	return service.NewMergeService(MergeOptions(cfg), storage.NewTableRepository(cfg.Paths.MergedFile))
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Prepares the workspace directories (source, scratch, output).
//   - Initializes the combined table repository.
//   - Builds the merge and analyzer services.
//   - Configures the Gin router with all API routes and the per-IP rate limiter.
//   - Registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	ws, err := workspaceOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to prepare workspace: %w", err)
	}

	repo := storage.NewTableRepository(cfg.Paths.MergedFile)
	merger := service.NewMergeService(MergeOptions(cfg), repo)
	analyzer := service.NewAnalyzerService(repo, service.ReferencePaths{
		FnoFile:    cfg.Paths.FnoFile,
		SymbolFile: cfg.Paths.SymbolFile,
	})

	handler := api.NewHandler(analyzer, merger)
	router := api.NewRouter(handler, middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	api.NewHealthHandler(ws.Ready).Register(router)

	cleanup := func() {
		logger.With("app").Info().Str("merged_file", repo.Path()).Bool("table_present", repo.Exists()).Msg("app stopped")
	}

	return router, cleanup, nil
}
