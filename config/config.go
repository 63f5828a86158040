package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Image stores
const (
	ImageStoreInline = "inline"
	ImageStoreS3     = "s3"
)

// used only when ENVIRONMENT=development and JWT_SECRET is unset
const developmentJWTSecret = "development-only-jwt-secret"

type Config struct {
	Server         ServerConfig
	Storage        StorageConfig
	Security       SecurityConfig
	Root           RootUserConfig
	Images         ImageConfig
	Visitors       VisitorConfig
	SMTP           SMTPConfig
	Tracing        TracingConfig
	NotifyEmail    string
	RestaurantName string
	CORSOrigin     string
	Environment    string
	LogLevel       string
	Version        string
}

type ServerConfig struct {
	Port int
	Host string
	SSL  SSLConfig
	// TrustedProxies may set X-Forwarded-For (addresses or CIDR ranges)
	TrustedProxies []string
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type StorageConfig struct {
	Driver     string
	Database   DatabaseConfig
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SecurityConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// DevSecret is set when JWTSecret fell back to the development value
	DevSecret bool
}

type RootUserConfig struct {
	Email    string
	Password string
	Name     string
}

type ImageConfig struct {
	MaxBytes int64
	Store    string
	S3       S3Config
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type VisitorConfig struct {
	SessionTTL time.Duration
	// Window is how many recent logs feed the device/browser/OS breakdown
	Window int
	Days   int
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// "jaeger", "zipkin", "xray" or "none"
	TraceExporter  string
	JaegerEndpoint string
	ZipkinEndpoint string
	XRayRegion     string

	// "prometheus", "none" or a comma separated list
	MetricsExporter string
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load reads .env from the working directory when present, then the environment
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("STORAGE_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "kitchen")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "kitchen.db")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("ROOT_EMAIL", "admin@oseiserwaa.com")
	v.SetDefault("ROOT_NAME", "Admin")
	v.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)
	v.SetDefault("IMAGE_STORE", ImageStoreInline)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("VISITOR_SESSION_TTL", 30*time.Minute)
	v.SetDefault("VISITOR_WINDOW", 50)
	v.SetDefault("VISITOR_DAYS", 30)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Osei Serwaa Kitchen")
	v.SetDefault("RESTAURANT_NAME", "Osei Serwaa Kitchen")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "kitchen-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}
		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// a missing file is fine
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
			TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
			Database: DatabaseConfig{
				Host:     v.GetString("DB_HOST"),
				Port:     v.GetInt("DB_PORT"),
				User:     v.GetString("DB_USER"),
				Password: v.GetString("DB_PASSWORD"),
				DBName:   v.GetString("DB_NAME"),
				SSLMode:  v.GetString("DB_SSLMODE"),
			},
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Security: SecurityConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("TOKEN_TTL"),
		},
		Root: RootUserConfig{
			Email:    v.GetString("ROOT_EMAIL"),
			Password: v.GetString("ROOT_PASSWORD"),
			Name:     v.GetString("ROOT_NAME"),
		},
		Images: ImageConfig{
			MaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
			Store:    strings.ToLower(v.GetString("IMAGE_STORE")),
			S3: S3Config{
				Bucket:    v.GetString("S3_BUCKET"),
				Region:    v.GetString("S3_REGION"),
				Endpoint:  v.GetString("S3_ENDPOINT"),
				AccessKey: v.GetString("S3_ACCESS_KEY"),
				SecretKey: v.GetString("S3_SECRET_KEY"),
				PublicURL: strings.TrimRight(v.GetString("S3_PUBLIC_URL"), "/"),
			},
		},
		Visitors: VisitorConfig{
			SessionTTL: v.GetDuration("VISITOR_SESSION_TTL"),
			Window:     v.GetInt("VISITOR_WINDOW"),
			Days:       v.GetInt("VISITOR_DAYS"),
		},
		SMTP: SMTPConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			Username:  v.GetString("SMTP_USERNAME"),
			Password:  v.GetString("SMTP_PASSWORD"),
			FromEmail: v.GetString("SMTP_FROM_EMAIL"),
			FromName:  v.GetString("SMTP_FROM_NAME"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:       v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:      v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:      v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			XRayRegion:          v.GetString("TRACING_XRAY_REGION"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:      v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		NotifyEmail:    v.GetString("NOTIFY_EMAIL"),
		RestaurantName: v.GetString("RESTAURANT_NAME"),
		CORSOrigin:     v.GetString("CORS_ALLOW_ORIGIN"),
		Environment:    v.GetString("ENVIRONMENT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		Version:        v.GetString("VERSION"),
	}

	if config.Security.JWTSecret == "" {
		if !config.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		config.Security.JWTSecret = developmentJWTSecret
		config.Security.DevSecret = true
	}
	if config.Root.Password == "" && config.IsDevelopment() {
		config.Root.Password = "admin123"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the combinations viper cannot express as defaults
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER: %q", c.Storage.Driver)
	}

	switch c.Images.Store {
	case ImageStoreInline:
	case ImageStoreS3:
		if c.Images.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when IMAGE_STORE=s3")
		}
	default:
		return fmt.Errorf("unsupported IMAGE_STORE: %q", c.Images.Store)
	}

	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.Images.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// splitList reads a comma separated env value, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
