package config

import (
	"os"
	"os/exec"
	"reflect"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_PORT", "SOURCE_DIR", "SCRATCH_DIR", "MERGED_FILE", "FNO_FILE", "SYMBOL_FILE",
		"MERGE_ARCHIVE_EXT", "MERGE_FILE_PREFIX", "MERGE_FILE_EXT", "MERGE_LEADING_DROP", "MERGE_PARALLEL",
	} {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	p := AppConfig.Paths
	if p.SourceDir != "zip" || p.ScratchDir != "output" || p.MergedFile != "output/merged_output.csv" || p.FnoFile != "data/FO_SECURITY.xlsx" {
		t.Fatalf("unexpected path defaults: %+v", p)
	}
	m := AppConfig.Merge
	if m.ArchiveExt != ".zip" || m.FilePrefix != "Pd" || m.FileExt != ".csv" || m.LeadingDrop != 2 || m.Parallel != 0 {
		t.Fatalf("unexpected merge defaults: %+v", m)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("MERGE_LEADING_DROP", "3")
	t.Setenv("SOURCE_DIR", "/tmp/archives")

	LoadConfig()

	if AppConfig.Merge.LeadingDrop != 3 {
		t.Fatalf("want LeadingDrop=3 got %d", AppConfig.Merge.LeadingDrop)
	}
	if AppConfig.Paths.SourceDir != "/tmp/archives" {
		t.Fatalf("want SourceDir override, got %q", AppConfig.Paths.SourceDir)
	}
}

func TestInvalidKeys(t *testing.T) {
	valid := Config{
		Server:    ServerConfig{Port: "8080"},
		Paths:     PathsConfig{SourceDir: "zip", ScratchDir: "out", MergedFile: "out/m.csv"},
		Merge:     MergeConfig{ArchiveExt: ".zip", FilePrefix: "Pd", FileExt: ".csv", LeadingDrop: 2},
		RateLimit: RateLimitConfig{RPS: 1, Burst: 10},
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
		want   []string
	}{
		{name: "valid", mutate: func(*Config) {}, want: nil},
		{name: "bad leading drop", mutate: func(c *Config) { c.Merge.LeadingDrop = 4 }, want: []string{"MERGE_LEADING_DROP"}},
		{name: "missing dirs", mutate: func(c *Config) { c.Paths.SourceDir = ""; c.Paths.MergedFile = "" }, want: []string{"MERGED_FILE", "SOURCE_DIR"}},
		{name: "negative parallel", mutate: func(c *Config) { c.Merge.Parallel = -1 }, want: []string{"MERGE_PARALLEL"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if got := invalidKeys(cfg); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
