package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/bhavpulse/internal/domain/models"
	"github.com/guttosm/bhavpulse/internal/logger"
	"github.com/guttosm/bhavpulse/internal/storage"
)

const maxParallel = 8

// ErrNoData is returned when no archive yields a single row; nothing is written.
var ErrNoData = errors.New("no valid CSV files found for processing")

// Options carries everything one merge run needs; nothing is read from globals.
type Options struct {
	SourceDir   string // directory holding the per-day archives
	ScratchDir  string // parent of the per-archive extraction dirs
	ArchiveExt  string // e.g. ".zip"
	FilePrefix  string // e.g. "Pd"
	FileExt     string // e.g. ".csv"
	LeadingDrop int    // 2 or 3 leading columns dropped
	Parallel    int    // archives processed at once; 0 = min(NumCPU, 8)
}

// Result summarises a successful merge.
type Result struct {
	Archives int
	Files    int
	Rows     int
	Path     string
}

// FileError names the archive (and contained file, when known) that failed.
type FileError struct {
	Archive string
	File    string
	Err     error
}

func (e *FileError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("archive %s: %v", e.Archive, e.Err)
	}
	return fmt.Sprintf("archive %s, file %s: %v", e.Archive, e.File, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// archiveOutput is what one archive contributes to the combined table.
type archiveOutput struct {
	rows       []models.SessionRow
	files      int
	withSymbol bool
}

// MergeArchives rebuilds the combined table from every archive in opts.SourceDir.
//
// Behavior:
//   - Archives are taken in directory order (sorted by name) and only when the
//     name ends in opts.ArchiveExt.
//   - Each archive is extracted to its own scratch dir, removed on every exit path.
//   - Up to opts.Parallel archives are processed at once; the output keeps
//     archive order, then row order within each archive.
//   - The first failing archive cancels the rest and the run returns a *FileError.
//   - When no rows are found, ErrNoData is returned and repo.Save is not called.
func MergeArchives(ctx context.Context, opts Options, repo storage.TableRepository) (Result, error) {
	log := logger.With("ingestion")

	archives, err := listArchives(opts.SourceDir, opts.ArchiveExt)
	if err != nil {
		return Result{}, err
	}
	if len(archives) == 0 {
		log.Warn().Str("dir", opts.SourceDir).Msg("no archives found")
		return Result{}, ErrNoData
	}
	if err := os.MkdirAll(opts.ScratchDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create scratch dir: %w", err)
	}

	limit := opts.Parallel
	if limit <= 0 {
		limit = min(maxParallel, runtime.NumCPU())
	}
	log.Info().Int("archives", len(archives)).Int("max_parallel", limit).Str("dir", opts.SourceDir).Msg("merge start")

	outputs := make([]archiveOutput, len(archives))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, archive := range archives {
		g.Go(func() error {
			start := time.Now()
			out, err := processArchive(gctx, opts, archive)
			if err != nil {
				log.Error().Str("archive", filepath.Base(archive)).Err(err).Msg("archive failed")
				return err
			}
			outputs[i] = out
			log.Info().Int("idx", i+1).Int("total", len(archives)).Str("archive", filepath.Base(archive)).
				Int("files", out.files).Int("rows", len(out.rows)).Dur("elapsed", time.Since(start)).Msg("archive done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var (
		merged     []models.SessionRow
		files      int
		withSymbol bool
	)
	for _, out := range outputs {
		merged = append(merged, out.rows...)
		files += out.files
		withSymbol = withSymbol || out.withSymbol
	}
	if len(merged) == 0 {
		log.Warn().Int("archives", len(archives)).Msg("no rows found")
		return Result{}, ErrNoData
	}

	if err := repo.Save(merged, withSymbol); err != nil {
		return Result{}, fmt.Errorf("save combined table: %w", err)
	}

	res := Result{Archives: len(archives), Files: files, Rows: len(merged), Path: repo.Path()}
	log.Info().Int("archives", res.Archives).Int("files", res.Files).Int("rows", res.Rows).Str("path", res.Path).Msg("merge done")
	return res, nil
}

// listArchives returns the archive paths of dir, sorted by name.
func listArchives(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ext) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// processArchive extracts one archive into a fresh scratch dir and parses
// every matching table inside it.
func processArchive(ctx context.Context, opts Options, archive string) (archiveOutput, error) {
	name := filepath.Base(archive)
	fail := func(file string, err error) (archiveOutput, error) {
		return archiveOutput{}, &FileError{Archive: name, File: file, Err: err}
	}

	scratch, err := os.MkdirTemp(opts.ScratchDir, strings.TrimSuffix(name, opts.ArchiveExt)+"-*")
	if err != nil {
		return fail("", fmt.Errorf("create scratch dir: %w", err))
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	if err := extractArchive(archive, scratch); err != nil {
		return fail("", err)
	}

	tables, err := matchingTables(scratch, opts.FilePrefix, opts.FileExt)
	if err != nil {
		return fail("", fmt.Errorf("walk extracted files: %w", err))
	}

	date := SessionDate(name)
	if date == "" {
		logger.With("ingestion").Warn().Str("archive", name).Msg("archive name carries no DDMMYY date")
	}

	var out archiveOutput
	for _, table := range tables {
		rel, _ := filepath.Rel(scratch, table)
		rows, withSymbol, err := parseTable(ctx, table, opts.LeadingDrop, date)
		if err != nil {
			return fail(rel, err)
		}
		out.rows = append(out.rows, rows...)
		out.files++
		out.withSymbol = out.withSymbol || withSymbol
	}
	return out, nil
}
