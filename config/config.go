package config

import (
	"log"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, file locations and merge behaviour.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	SOURCE_DIR=zip
//	SCRATCH_DIR=output
//	MERGED_FILE=output/merged_output.csv
//	FNO_FILE=data/FO_SECURITY.xlsx
//	SYMBOL_FILE=data/SYMBOLS.csv
//	MERGE_LEADING_DROP=2
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Paths     PathsConfig     // Input/output file locations
	Merge     MergeConfig     // Archive merge behaviour
	RateLimit RateLimitConfig // Per-client request limits
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string `validate:"required"` // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PathsConfig groups every filesystem location the application touches.
//
// Fields:
//   - SourceDir: directory holding the per-day archives.
//   - ScratchDir: parent directory for per-archive extraction dirs.
//   - MergedFile: combined table written by the merge stage.
//   - FnoFile: F&O reference list (SECURITY column), XLSX or CSV.
//   - SymbolFile: symbol reference list (SYMBOL column), XLSX or CSV.
type PathsConfig struct {
	SourceDir  string `validate:"required"`
	ScratchDir string `validate:"required"`
	MergedFile string `validate:"required"`
	FnoFile    string
	SymbolFile string
}

// MergeConfig controls which archives and contained files are merged and
// how many leading columns are stripped from each table.
type MergeConfig struct {
	ArchiveExt  string `validate:"required"`
	FilePrefix  string `validate:"required"`
	FileExt     string `validate:"required"`
	LeadingDrop int    `validate:"oneof=2 3"` // 2 keeps SYMBOL, 3 drops it
	Parallel    int    `validate:"gte=0"`     // 0 means auto
}

// RateLimitConfig configures the token bucket applied per client IP.
type RateLimitConfig struct {
	RPS   float64 `validate:"gt=0"`
	Burst int     `validate:"gt=0"`
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read by cmd and app wiring only;
// the stages themselves receive their settings as explicit arguments.
var AppConfig Config

// envKeys maps struct namespaces reported by the validator back to the
// environment variable that sets them.
var envKeys = map[string]string{
	"Config.Server.Port":       "SERVER_PORT",
	"Config.Paths.SourceDir":   "SOURCE_DIR",
	"Config.Paths.ScratchDir":  "SCRATCH_DIR",
	"Config.Paths.MergedFile":  "MERGED_FILE",
	"Config.Merge.ArchiveExt":  "MERGE_ARCHIVE_EXT",
	"Config.Merge.FilePrefix":  "MERGE_FILE_PREFIX",
	"Config.Merge.FileExt":     "MERGE_FILE_EXT",
	"Config.Merge.LeadingDrop": "MERGE_LEADING_DROP",
	"Config.Merge.Parallel":    "MERGE_PARALLEL",
	"Config.RateLimit.RPS":     "RATE_LIMIT_RPS",
	"Config.RateLimit.Burst":   "RATE_LIMIT_BURST",
}

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If a variable is missing or out of range, validateConfig() terminates the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("SOURCE_DIR", "zip")
	viper.SetDefault("SCRATCH_DIR", "output")
	viper.SetDefault("MERGED_FILE", "output/merged_output.csv")
	viper.SetDefault("FNO_FILE", "data/FO_SECURITY.xlsx")
	viper.SetDefault("SYMBOL_FILE", "data/SYMBOLS.csv")

	viper.SetDefault("MERGE_ARCHIVE_EXT", ".zip")
	viper.SetDefault("MERGE_FILE_PREFIX", "Pd")
	viper.SetDefault("MERGE_FILE_EXT", ".csv")
	viper.SetDefault("MERGE_LEADING_DROP", 2)
	viper.SetDefault("MERGE_PARALLEL", 0)

	viper.SetDefault("RATE_LIMIT_RPS", 1)
	viper.SetDefault("RATE_LIMIT_BURST", 60)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Paths: PathsConfig{
			SourceDir:  viper.GetString("SOURCE_DIR"),
			ScratchDir: viper.GetString("SCRATCH_DIR"),
			MergedFile: viper.GetString("MERGED_FILE"),
			FnoFile:    viper.GetString("FNO_FILE"),
			SymbolFile: viper.GetString("SYMBOL_FILE"),
		},
		Merge: MergeConfig{
			ArchiveExt:  viper.GetString("MERGE_ARCHIVE_EXT"),
			FilePrefix:  viper.GetString("MERGE_FILE_PREFIX"),
			FileExt:     viper.GetString("MERGE_FILE_EXT"),
			LeadingDrop: viper.GetInt("MERGE_LEADING_DROP"),
			Parallel:    viper.GetInt("MERGE_PARALLEL"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	validateConfig()
}

// invalidKeys returns the environment variables whose values fail validation,
// sorted for stable messages. It returns nil for a valid configuration.
func invalidKeys(cfg Config) []string {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var keys []string
	for _, fe := range verrs {
		key, found := envKeys[fe.Namespace()]
		if !found {
			key = fe.Namespace()
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing or invalid.
func validateConfig() {
	if bad := invalidKeys(AppConfig); len(bad) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", bad)
	}
}
