package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/guttosm/bhavpulse/internal/domain/models"
	"github.com/guttosm/bhavpulse/internal/storage"
)

// fakeRepo implements storage.TableRepository capturing the saved table.
type fakeRepo struct {
	saved      []models.SessionRow
	withSymbol bool
	calls      int
	err        error
}

func (f *fakeRepo) Save(rows []models.SessionRow, withSymbol bool) error {
	f.calls++
	f.saved = append([]models.SessionRow(nil), rows...)
	f.withSymbol = withSymbol
	return f.err
}
func (f *fakeRepo) Load() ([]models.SessionRow, error) { return f.saved, nil }
func (f *fakeRepo) Exists() bool                       { return f.calls > 0 }
func (f *fakeRepo) Path() string                       { return "fake.csv" }

var _ storage.TableRepository = (*fakeRepo)(nil)

// writeZip creates dir/name containing the given entries (entry name → content).
func writeZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for entry, content := range entries {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("zip entry %s: %v", entry, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", entry, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}
	return p
}

func testOptions(t *testing.T, src string) Options {
	t.Helper()
	return Options{
		SourceDir:   src,
		ScratchDir:  filepath.Join(t.TempDir(), "scratch"),
		ArchiveExt:  ".zip",
		FilePrefix:  "Pd",
		FileExt:     ".csv",
		LeadingDrop: 2,
		Parallel:    2,
	}
}

func assertScratchEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("read scratch: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("scratch dir not cleaned: %d entries left", len(entries))
	}
}

func TestMergeArchives_ThreeSessions(t *testing.T) {
	src := t.TempDir()
	lows := []string{"10", "12", "14"}
	closes := []string{"11", "13", "15"}
	for i, day := range []string{"010124", "020124", "030124"} {
		writeZip(t, src, "PR"+day+".zip", map[string]string{
			"Pd" + day + ".csv": pdHeader + pdRow("ABC", "ABC LTD", lows[i], closes[i]),
			"Bc" + day + ".csv": "ignored,file\n",
		})
	}
	opts := testOptions(t, src)
	repo := &fakeRepo{}

	res, err := MergeArchives(context.Background(), opts, repo)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if res.Archives != 3 || res.Files != 3 || res.Rows != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	wantDates := []string{"01-JAN-2024", "02-JAN-2024", "03-JAN-2024"}
	for i, row := range repo.saved {
		if row.Date != wantDates[i] || row.Low != lows[i] || row.Close != closes[i] {
			t.Fatalf("row %d: unexpected %+v", i, row)
		}
	}
	if !repo.withSymbol {
		t.Fatalf("expected SYMBOL to be kept with leading drop 2")
	}
	assertScratchEmpty(t, opts.ScratchDir)
}

func TestMergeArchives_PreservesArchiveOrder(t *testing.T) {
	src := t.TempDir()
	for d := 1; d <= 12; d++ {
		day := fmt.Sprintf("%02d0324", d)
		writeZip(t, src, "PR"+day+".zip", map[string]string{
			"nested/Pd" + day + ".csv": pdHeader + pdRow("S1", "SEC ONE", "1", "2") + pdRow("S2", "SEC TWO", "3", "4"),
		})
	}
	opts := testOptions(t, src)
	opts.Parallel = 4
	repo := &fakeRepo{}

	if _, err := MergeArchives(context.Background(), opts, repo); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(repo.saved) != 24 {
		t.Fatalf("want 24 rows got %d", len(repo.saved))
	}
	for i, row := range repo.saved {
		wantDate := fmt.Sprintf("%02d-MAR-2024", i/2+1)
		wantSym := []string{"S1", "S2"}[i%2]
		if row.Date != wantDate || row.Symbol != wantSym {
			t.Fatalf("row %d out of order: %+v", i, row)
		}
	}
}

func TestMergeArchives_NoData(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{name: "empty dir", setup: func(*testing.T, string) {}},
		{name: "only non-archives", setup: func(t *testing.T, dir string) {
			writeTempFile(t, dir, "notes.txt", "hello")
		}},
		{name: "archive without Pd files", setup: func(t *testing.T, dir string) {
			writeZip(t, dir, "PR010124.zip", map[string]string{"Bc010124.csv": "a,b\n"})
		}},
		{name: "Pd file with header only", setup: func(t *testing.T, dir string) {
			writeZip(t, dir, "PR010124.zip", map[string]string{"Pd010124.csv": pdHeader})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := t.TempDir()
			tc.setup(t, src)
			out := filepath.Join(t.TempDir(), "merged_output.csv")
			repo := storage.NewTableRepository(out)

			_, err := MergeArchives(context.Background(), testOptions(t, src), repo)
			if !errors.Is(err, ErrNoData) {
				t.Fatalf("want ErrNoData, got %v", err)
			}
			if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
				t.Fatalf("output file must not be written, stat err=%v", statErr)
			}
		})
	}
}

func TestMergeArchives_BadTableFailsRun(t *testing.T) {
	src := t.TempDir()
	writeZip(t, src, "PR010124.zip", map[string]string{"Pd010124.csv": pdHeader + pdRow("A", "A LTD", "1", "2")})
	writeZip(t, src, "PR020124.zip", map[string]string{"Pd020124.csv": "WRONG,HEADER\n1,2\n"})
	opts := testOptions(t, src)
	repo := &fakeRepo{}

	_, err := MergeArchives(context.Background(), opts, repo)
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("want *FileError, got %v", err)
	}
	if fe.Archive != "PR020124.zip" || fe.File != "Pd020124.csv" {
		t.Fatalf("unexpected failing location: %+v", fe)
	}
	if !strings.Contains(err.Error(), "PR020124.zip") || !strings.Contains(err.Error(), "Pd020124.csv") {
		t.Fatalf("error should name archive and file: %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("nothing should be saved on failure")
	}
	assertScratchEmpty(t, opts.ScratchDir)
}

func TestMergeArchives_CorruptArchive(t *testing.T) {
	src := t.TempDir()
	writeTempFile(t, src, "PR010124.zip", "not a zip")

	_, err := MergeArchives(context.Background(), testOptions(t, src), &fakeRepo{})
	var fe *FileError
	if !errors.As(err, &fe) || fe.Archive != "PR010124.zip" || fe.File != "" {
		t.Fatalf("want archive-level FileError, got %v", err)
	}
}

func TestMergeArchives_MissingSourceDir(t *testing.T) {
	opts := testOptions(t, filepath.Join(t.TempDir(), "nope"))
	if _, err := MergeArchives(context.Background(), opts, &fakeRepo{}); err == nil {
		t.Fatalf("expected error for missing source dir")
	}
}

func TestMergeArchives_SaveError(t *testing.T) {
	src := t.TempDir()
	writeZip(t, src, "PR010124.zip", map[string]string{"Pd010124.csv": pdHeader + pdRow("A", "A LTD", "1", "2")})

	_, err := MergeArchives(context.Background(), testOptions(t, src), &fakeRepo{err: errors.New("disk full")})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("want save error, got %v", err)
	}
}

func TestExtractArchive_RejectsZipSlip(t *testing.T) {
	src := t.TempDir()
	zp := writeZip(t, src, "evil.zip", map[string]string{"../../escape.csv": "x"})

	dest := t.TempDir()
	if err := extractArchive(zp, dest); err == nil {
		t.Fatalf("expected zip slip rejection")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(filepath.Dir(dest)), "escape.csv")); err == nil {
		t.Fatalf("entry escaped the extraction dir")
	}
}

func TestExtractArchive_AcceptsCurrentDirEntry(t *testing.T) {
	src := t.TempDir()
	zp := writeZip(t, src, "Pd010124.zip", map[string]string{
		"./":           "",
		"Pd010124.csv": "x",
	})

	dest := t.TempDir()
	if err := extractArchive(zp, dest); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "Pd010124.csv")); err != nil {
		t.Fatalf("table not extracted: %v", err)
	}
}

func TestWithin(t *testing.T) {
	dest := filepath.Join(string(os.PathSeparator), "tmp", "x")
	cases := []struct {
		target string
		want   bool
	}{
		{dest, true},
		{filepath.Join(dest, "a.csv"), true},
		{filepath.Join(dest, "..x", "a.csv"), true},
		{filepath.Join(dest, "..", "a.csv"), false},
		{filepath.Join(dest, "..", ".."), false},
	}
	for _, c := range cases {
		if got := within(dest, c.target); got != c.want {
			t.Fatalf("within(%q, %q)=%v, want %v", dest, c.target, got, c.want)
		}
	}
}

func TestMatchingTables_PrefixAndExt(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Pd010124.csv", "Pd010124.txt", "pd010124.csv", "Bc010124.csv"} {
		writeTempFile(t, dir, name, "x")
	}
	got, err := matchingTables(dir, "Pd", ".csv")
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "Pd010124.csv" {
		t.Fatalf("unexpected matches: %v", got)
	}
}
