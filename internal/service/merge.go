package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/guttosm/bhavpulse/internal/ingestion"
	"github.com/guttosm/bhavpulse/internal/logger"
	"github.com/guttosm/bhavpulse/internal/storage"
)

var (
	mergeRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bhavpulse_merge_runs_total",
		Help: "Merge runs by outcome (ok, no_data, error).",
	}, []string{"outcome"})

	mergedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bhavpulse_merged_rows_total",
		Help: "Rows written to the combined table across all merge runs.",
	})
)

// MergeService rebuilds the combined table and manages the archive directory.
type MergeService interface {
	Merge(ctx context.Context) (ingestion.Result, error)
	StoreArchive(name string, r io.Reader) (string, error)
	OutputPath() string
}

type mergeService struct {
	opts ingestion.Options
	repo storage.TableRepository
	mu   sync.Mutex // one merge at a time; they share the output file
}

// NewMergeService binds the merger to its options and destination.
func NewMergeService(opts ingestion.Options, repo storage.TableRepository) MergeService {
	return &mergeService{opts: opts, repo: repo}
}

func (s *mergeService) OutputPath() string { return s.repo.Path() }

// Merge runs the archive merger once. ingestion.ErrNoData is returned as is.
func (s *mergeService) Merge(ctx context.Context) (ingestion.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := ingestion.MergeArchives(ctx, s.opts, s.repo)
	switch {
	case errors.Is(err, ingestion.ErrNoData):
		mergeRuns.WithLabelValues("no_data").Inc()
	case err != nil:
		mergeRuns.WithLabelValues("error").Inc()
	default:
		mergeRuns.WithLabelValues("ok").Inc()
		mergedRows.Add(float64(res.Rows))
	}
	return res, err
}

// StoreArchive copies an uploaded archive into the source directory under its
// base name, replacing any archive of the same name. It returns the stored path.
func (s *mergeService) StoreArchive(name string, r io.Reader) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || !strings.HasSuffix(base, s.opts.ArchiveExt) {
		return "", fmt.Errorf("%w: %q", ErrInvalidArchive, name)
	}
	if err := os.MkdirAll(s.opts.SourceDir, 0o755); err != nil {
		return "", fmt.Errorf("create source dir: %w", err)
	}

	dst := filepath.Join(s.opts.SourceDir, base)
	tmp, err := os.CreateTemp(s.opts.SourceDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", base, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", base, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("store %s: %w", base, err)
	}

	logger.With("service").Info().Str("archive", base).Msg("archive stored")
	return dst, nil
}
