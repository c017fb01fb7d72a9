// Package config loads and saves the panel settings kept in
// .panel/config.json, with PANEL_* environment variables layered on top.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv/s3store"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

const configFile = ".panel/config.json"
const lockFile = ".panel/config.json.lock"

// Defaults for unset values
const (
	DefaultDriver    = kv.DriverFile
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Load reads the config from disk. A missing file yields an empty config.
func Load(baseDir string) (*models.Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *models.Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, configPath)
}

// Update loads the config, applies fn and saves the result while holding
// the config lock
func Update(baseDir string, fn func(*models.Config) error) error {
	return withConfigLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		return Save(baseDir, cfg)
	})
}

// withConfigLock serializes access to config.json using flock
func withConfigLock(baseDir string, fn func() error) error {
	lockPath := filepath.Join(baseDir, lockFile)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// ApplyEnv overlays PANEL_* environment variables on cfg. Unparseable
// numeric values are ignored.
func ApplyEnv(cfg *models.Config) {
	str := map[string]*string{
		"PANEL_STORE_DRIVER": &cfg.StoreDriver,
		"PANEL_STORE_DSN":    &cfg.StoreDSN,
		"PANEL_API_URL":      &cfg.APIBaseURL,
		"PANEL_LATENCY":      &cfg.Latency,
		"PANEL_HTTP_TIMEOUT": &cfg.HTTPTimeout,
		"PANEL_S3_BUCKET":    &cfg.S3Bucket,
		"PANEL_S3_REGION":    &cfg.S3Region,
		"PANEL_S3_ENDPOINT":  &cfg.S3Endpoint,
		"PANEL_S3_PREFIX":    &cfg.S3Prefix,
		"PANEL_LOG_LEVEL":    &cfg.LogLevel,
		"PANEL_LOG_FORMAT":   &cfg.LogFormat,
	}
	for env, dst := range str {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("PANEL_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("PANEL_FAILURE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.FailureRate = f
		}
	}
	if v := os.Getenv("PANEL_S3_PATH_STYLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.S3PathStyle = b
		}
	}
}

// Settings is a config with defaults filled in and values parsed
type Settings struct {
	Store       kv.Options
	APIBaseURL  string
	PageSize    int
	Latency     time.Duration
	FailureRate float64
	HTTPTimeout time.Duration
	LogLevel    string
	LogFormat   string
}

// Resolve fills defaults and parses cfg for use under baseDir
func Resolve(baseDir string, cfg *models.Config) (Settings, error) {
	s := Settings{
		Store: kv.Options{
			Driver:  kv.Driver(cfg.StoreDriver),
			DSN:     cfg.StoreDSN,
			BaseDir: baseDir,
			S3: s3store.Config{
				Bucket:          cfg.S3Bucket,
				Region:          cfg.S3Region,
				Endpoint:        cfg.S3Endpoint,
				Prefix:          cfg.S3Prefix,
				PathStyle:       cfg.S3PathStyle,
				AccessKeyID:     os.Getenv("PANEL_S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("PANEL_S3_SECRET_ACCESS_KEY"),
			},
		},
		APIBaseURL:  cfg.APIBaseURL,
		PageSize:    cfg.PageSize,
		FailureRate: cfg.FailureRate,
		LogLevel:    cfg.LogLevel,
		LogFormat:   cfg.LogFormat,
	}
	if s.Store.Driver == "" {
		s.Store.Driver = DefaultDriver
	}
	if s.APIBaseURL == "" {
		s.APIBaseURL = remote.DefaultBaseURL
	}
	if s.PageSize <= 0 {
		s.PageSize = models.DefaultPageSize
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.LogFormat == "" {
		s.LogFormat = DefaultLogFormat
	}

	var err error
	if s.Latency, err = parseDuration(cfg.Latency, 0); err != nil {
		return Settings{}, fmt.Errorf("latency: %w", err)
	}
	if s.HTTPTimeout, err = parseDuration(cfg.HTTPTimeout, remote.DefaultTimeout); err != nil {
		return Settings{}, fmt.Errorf("http_timeout: %w", err)
	}
	return s, nil
}

func parseDuration(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", v)
	}
	return d, nil
}

// field binds a config key to its accessors
type field struct {
	get func(*models.Config) string
	set func(*models.Config, string) error
}

func stringField(ptr func(*models.Config) *string, check func(string) error) field {
	return field{
		get: func(c *models.Config) string { return *ptr(c) },
		set: func(c *models.Config, v string) error {
			if check != nil && v != "" {
				if err := check(v); err != nil {
					return err
				}
			}
			*ptr(c) = v
			return nil
		},
	}
}

func checkDuration(v string) error {
	_, err := parseDuration(v, 0)
	return err
}

func checkOneOf(allowed ...string) func(string) error {
	return func(v string) error {
		if !slices.Contains(allowed, v) {
			return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
		}
		return nil
	}
}

func driverNames() []string {
	names := make([]string, len(kv.Drivers))
	for i, d := range kv.Drivers {
		names[i] = string(d)
	}
	return names
}

var fields = map[string]field{
	"store_driver": stringField(func(c *models.Config) *string { return &c.StoreDriver }, checkOneOf(driverNames()...)),
	"store_dsn":    stringField(func(c *models.Config) *string { return &c.StoreDSN }, nil),
	"api_base_url": stringField(func(c *models.Config) *string { return &c.APIBaseURL }, nil),
	"latency":      stringField(func(c *models.Config) *string { return &c.Latency }, checkDuration),
	"http_timeout": stringField(func(c *models.Config) *string { return &c.HTTPTimeout }, checkDuration),
	"s3_bucket":    stringField(func(c *models.Config) *string { return &c.S3Bucket }, nil),
	"s3_region":    stringField(func(c *models.Config) *string { return &c.S3Region }, nil),
	"s3_endpoint":  stringField(func(c *models.Config) *string { return &c.S3Endpoint }, nil),
	"s3_prefix":    stringField(func(c *models.Config) *string { return &c.S3Prefix }, nil),
	"log_level":    stringField(func(c *models.Config) *string { return &c.LogLevel }, checkOneOf("debug", "info", "warn", "error")),
	"log_format":   stringField(func(c *models.Config) *string { return &c.LogFormat }, checkOneOf("text", "json")),
	"page_size": {
		get: func(c *models.Config) string { return intString(c.PageSize) },
		set: func(c *models.Config, v string) error {
			if v == "" {
				c.PageSize = 0
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			c.PageSize = n
			return nil
		},
	},
	"failure_rate": {
		get: func(c *models.Config) string {
			if c.FailureRate == 0 {
				return ""
			}
			return strconv.FormatFloat(c.FailureRate, 'f', -1, 64)
		},
		set: func(c *models.Config, v string) error {
			if v == "" {
				c.FailureRate = 0
				return nil
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 || f > 1 {
				return fmt.Errorf("must be a number between 0 and 1")
			}
			c.FailureRate = f
			return nil
		},
	},
	"s3_path_style": {
		get: func(c *models.Config) string {
			if !c.S3PathStyle {
				return ""
			}
			return "true"
		},
		set: func(c *models.Config, v string) error {
			if v == "" {
				c.S3PathStyle = false
				return nil
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("must be true or false")
			}
			c.S3PathStyle = b
			return nil
		},
	},
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Keys returns every settable key in sorted order
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the stored value of key, "" when unset
func Get(cfg *models.Config, key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return f.get(cfg), nil
}

// Set validates and stores value under key. An empty value unsets it.
func Set(cfg *models.Config, key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := f.set(cfg, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
