// Package config loads runtime settings from the environment. A .env file in
// the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"jamaah/internal/infra/kv/s3"
	"jamaah/internal/kv"
	"jamaah/pkg/domain"
)

// Environment variable names.
const (
	EnvStorageDriver    = "JAMAAH_STORAGE_DRIVER"
	EnvLocalPath        = "JAMAAH_LOCAL_PATH"
	EnvLocalNamespace   = "JAMAAH_LOCAL_NAMESPACE"
	EnvLocalReadLatency = "JAMAAH_LOCAL_READ_LATENCY"
	EnvKVDriver         = "JAMAAH_KV_DRIVER"
	EnvKVFSRoot         = "JAMAAH_KV_FS_ROOT"
	EnvKVS3Bucket       = "JAMAAH_KV_S3_BUCKET"
	EnvKVS3Region       = "JAMAAH_KV_S3_REGION"
	EnvKVS3Endpoint     = "JAMAAH_KV_S3_ENDPOINT"
	EnvKVS3PathStyle    = "JAMAAH_KV_S3_PATH_STYLE"
	EnvSQLDialect       = "JAMAAH_SQL_DIALECT"
	EnvSQLDSN           = "JAMAAH_SQL_DSN"
	EnvMemberNames      = "JAMAAH_MEMBER_NAMES"
	EnvSeed             = "JAMAAH_SEED"
	EnvHTTPAddr         = "JAMAAH_HTTP_ADDR"
	EnvLogLevel         = "JAMAAH_LOG_LEVEL"
)

// Local configures the local-device adapter.
type Local struct {
	Path        string
	Namespace   string
	ReadLatency time.Duration
}

// SQL configures the relational adapter.
type SQL struct {
	Dialect string
	DSN     string
}

// Storage selects and configures the backend.
type Storage struct {
	Driver domain.Driver
	// MemberNames is empty when the driver default applies.
	MemberNames domain.MemberNamePolicy
	Local       Local
	KV          kv.Config
	SQL         SQL
}

// Config is the full runtime configuration.
type Config struct {
	Storage  Storage
	Seed     bool
	HTTPAddr string
	LogLevel slog.Level
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Storage: Storage{
			Driver: domain.DriverLocal,
			Local:  Local{Path: "jamaah.db", Namespace: "jamaah_", ReadLatency: 100 * time.Millisecond},
			KV:     kv.Config{Driver: kv.DriverFilesystem, FSRoot: "./kvdata", S3: s3.Config{Region: "us-east-1"}},
			SQL:    SQL{Dialect: "postgres", DSN: "postgres://localhost/jamaah?sslmode=disable"},
		},
		Seed:     true,
		HTTPAddr: ":3000",
		LogLevel: slog.LevelInfo,
	}
}

// Load reads .env (if any) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	var errs []error

	if v, ok := get(EnvStorageDriver); ok {
		switch d := domain.Driver(strings.ToLower(v)); d {
		case domain.DriverLocal, domain.DriverKV, domain.DriverRelational:
			cfg.Storage.Driver = d
		default:
			errs = append(errs, fmt.Errorf("%s: unknown driver %q", EnvStorageDriver, v))
		}
	}
	if v, ok := get(EnvLocalPath); ok {
		cfg.Storage.Local.Path = v
	}
	if v, ok := get(EnvLocalNamespace); ok {
		cfg.Storage.Local.Namespace = v
	}
	if v, ok := get(EnvLocalReadLatency); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", EnvLocalReadLatency, v))
		} else {
			cfg.Storage.Local.ReadLatency = d
		}
	}
	if v, ok := get(EnvKVDriver); ok {
		switch d := kv.Driver(strings.ToLower(v)); d {
		case kv.DriverMemory, kv.DriverFilesystem, kv.DriverS3:
			cfg.Storage.KV.Driver = d
		default:
			errs = append(errs, fmt.Errorf("%s: unknown driver %q", EnvKVDriver, v))
		}
	}
	if v, ok := get(EnvKVFSRoot); ok {
		cfg.Storage.KV.FSRoot = v
	}
	s3cfg := &cfg.Storage.KV.S3
	if v, ok := get(EnvKVS3Bucket); ok {
		s3cfg.Bucket = v
	}
	if v, ok := get(EnvKVS3Region); ok {
		s3cfg.Region = v
	}
	if v, ok := get(EnvKVS3Endpoint); ok {
		s3cfg.Endpoint = v
	}
	if v, ok := get(EnvKVS3PathStyle); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvKVS3PathStyle, err))
		}
		s3cfg.PathStyle = b
	}
	s3cfg.AccessKeyID, _ = get("AWS_ACCESS_KEY_ID")
	s3cfg.SecretAccessKey, _ = get("AWS_SECRET_ACCESS_KEY")
	s3cfg.SessionToken, _ = get("AWS_SESSION_TOKEN")
	if cfg.Storage.Driver == domain.DriverKV && cfg.Storage.KV.Driver == kv.DriverS3 && s3cfg.Bucket == "" {
		errs = append(errs, fmt.Errorf("%s required for s3 driver", EnvKVS3Bucket))
	}

	if v, ok := get(EnvSQLDialect); ok {
		cfg.Storage.SQL.Dialect = strings.ToLower(v)
	}
	if v, ok := get(EnvSQLDSN); ok {
		cfg.Storage.SQL.DSN = v
	}
	if v, ok := get(EnvMemberNames); ok {
		p, valid := domain.ParseMemberNamePolicy(strings.ToLower(v), "")
		if !valid {
			errs = append(errs, fmt.Errorf("%s: unknown policy %q", EnvMemberNames, v))
		}
		cfg.Storage.MemberNames = p
	}
	if v, ok := get(EnvSeed); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			cfg.Seed = b
		}
	}
	if v, ok := get(EnvHTTPAddr); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := get(EnvLogLevel); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogLevel, err))
		}
	}
	return cfg, errors.Join(errs...)
}

// MemberNamePolicy resolves the effective policy: explicit setting first,
// then join for relational and denormalized elsewhere.
func (s Storage) MemberNamePolicy() domain.MemberNamePolicy {
	if s.MemberNames != "" {
		return s.MemberNames
	}
	if s.Driver == domain.DriverRelational {
		return domain.MemberNamesJoin
	}
	return domain.MemberNamesDenormalized
}
