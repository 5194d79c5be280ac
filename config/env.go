package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL    = "http://localhost:8080/api/v1"
	defaultAppPort       = "3000"
	defaultAppEnv        = "local"
	defaultRedisAddr     = "localhost:6379"
	defaultSessionDriver = "memory"
	defaultSessionCookie = "farmx_session"
	defaultAPITimeout    = 30 * time.Second
	defaultSessionTTL    = 24 * time.Hour
	defaultUploadMax     = 5 << 20
	defaultUploadTypes   = "image/jpeg,image/png,image/jpg,image/gif,image/webp"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges config/app.json and .env over the built-in defaults.
// Process environment variables always win over both files.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":              defaultAppEnv,
		"APP_PORT":             defaultAppPort,
		"LOG_LEVEL":            "",
		"API_BASE_URL":         defaultAPIBaseURL,
		"API_TIMEOUT":          defaultAPITimeout.String(),
		"SESSION_DRIVER":       defaultSessionDriver,
		"SESSION_FILE":         "",
		"SESSION_COOKIE":       defaultSessionCookie,
		"SESSION_TTL":          defaultSessionTTL.String(),
		"SESSION_SECURE":       "false",
		"SESSION_KEY":          "",
		"TRUSTED_PROXIES":      "",
		"REDIS_ADDR":           defaultRedisAddr,
		"REDIS_PASSWORD":       "",
		"CORS_ALLOWED_ORIGINS": "*",
		"LOGIN_RATE_LIMIT":     "10",
		"UPLOAD_MAX_BYTES":     strconv.Itoa(defaultUploadMax),
		"UPLOAD_ALLOWED_TYPES": defaultUploadTypes,
	}
}

// ── App ──────────────────────────────────────────────────────────────────────

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

// LogLevel is empty unless explicitly set; the logger then picks a level from APP_ENV.
func LogLevel() string {
	_ = Load()
	return strings.ToLower(get("LOG_LEVEL", ""))
}

// ── Backend API ──────────────────────────────────────────────────────────────

func APIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("API_BASE_URL", defaultAPIBaseURL), "/")
}

// APITimeout is the per-attempt timeout for backend calls. Zero disables it.
func APITimeout() time.Duration {
	_ = Load()
	return Duration("API_TIMEOUT", defaultAPITimeout)
}

// ── Session ──────────────────────────────────────────────────────────────────

func SessionDriver() string {
	_ = Load()

	driver := strings.ToLower(get("SESSION_DRIVER", defaultSessionDriver))
	switch driver {
	case "memory", "redis", "file":
		return driver
	default:
		return defaultSessionDriver
	}
}

// SessionFile is where the CLI keeps its token and cached user.
func SessionFile() string {
	_ = Load()
	if p := get("SESSION_FILE", ""); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".farmx", "session.json")
	}
	return filepath.Join(home, ".farmx", "session.json")
}

func SessionCookie() string {
	_ = Load()
	return get("SESSION_COOKIE", defaultSessionCookie)
}

func SessionTTL() time.Duration {
	_ = Load()
	return Duration("SESSION_TTL", defaultSessionTTL)
}

func SessionSecure() bool {
	_ = Load()
	return Bool("SESSION_SECURE", false)
}

// SessionKey, when set, encrypts stored tokens and user records at rest.
func SessionKey() string {
	_ = Load()
	return get("SESSION_KEY", "")
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// ── HTTP surface ─────────────────────────────────────────────────────────────

func CORSAllowedOrigins() []string {
	_ = Load()
	return List("CORS_ALLOWED_ORIGINS", []string{"*"})
}

// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For header
// is believed. Empty means clients are identified by socket address only.
func TrustedProxies() []string {
	_ = Load()
	return List("TRUSTED_PROXIES", nil)
}

// LoginRateLimit is the number of login attempts allowed per IP per minute.
func LoginRateLimit() int {
	_ = Load()
	return Int("LOGIN_RATE_LIMIT", 10)
}

// ── Uploads & storage ────────────────────────────────────────────────────────

func UploadMaxBytes() int64 {
	_ = Load()
	return int64(Int("UPLOAD_MAX_BYTES", defaultUploadMax))
}

func UploadAllowedTypes() []string {
	_ = Load()
	return List("UPLOAD_ALLOWED_TYPES", strings.Split(defaultUploadTypes, ","))
}

func StorageDefault() string {
	_ = Load()
	return get("STORAGE_DISK", "local")
}

func StorageLocalRoot() string {
	_ = Load()
	return get("STORAGE_LOCAL_ROOT", ".")
}

func StorageURL() string {
	_ = Load()
	return get("STORAGE_URL", "")
}

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── Loading ──────────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(v)
		}
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}

	return nil
}

func get(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}

	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a key for the lifetime of the process.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}

// Duration parses key as a Go duration ("30s") or a bare number of seconds.
func Duration(key string, fallback time.Duration) time.Duration {
	raw := get(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func Int(key string, fallback int) int {
	n, err := strconv.Atoi(get(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func Bool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(get(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// List splits a comma-separated value, dropping blanks.
func List(key string, fallback []string) []string {
	raw := get(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
