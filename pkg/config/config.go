package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Activity ActivityConfig `mapstructure:"activity"`
}

type ServerConfig struct {
	Port    int           `mapstructure:"port" default:"8000"`
	Mode    string        `mapstructure:"mode"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTExpiryHours int    `mapstructure:"jwt_expiry_hours"`
	JWTIssuer      string `mapstructure:"jwt_issuer"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ActivityConfig holds tunables for the activity aggregation engine.
type ActivityConfig struct {
	// WeekStartDay is the first day of the aggregation week, 0=Sunday..6=Saturday.
	// Saturday-start locales set 6.
	WeekStartDay int `mapstructure:"week_start_day"`
	// DefaultDailyStepGoal is used until the user sets their own goal.
	DefaultDailyStepGoal int `mapstructure:"default_daily_step_goal"`
	// MirrorTimeout bounds each best-effort mirror write.
	MirrorTimeout time.Duration `mapstructure:"mirror_timeout"`
	// Breaker guards the step-store endpoints.
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of the step store.
type BreakerConfig struct {
	// FailureThreshold is the consecutive 5xx count that opens the breaker.
	FailureThreshold int `mapstructure:"failure_threshold"`
	// SuccessThreshold is the probe count that closes it again.
	SuccessThreshold int `mapstructure:"success_threshold"`
	// ResetTimeout is how long the breaker stays open before probing.
	ResetTimeout time.Duration `mapstructure:"reset_timeout"`
	// HalfOpenMaxRequests caps concurrent probes while half-open.
	HalfOpenMaxRequests int `mapstructure:"half_open_max_requests"`
}

func LoadConfig(configPath string) (*Config, error) {
	var config Config

	// If CONFIG_FILE environment variable is set, use it
	if envConfigFile := os.Getenv("CONFIG_FILE"); envConfigFile != "" {
		configPath = envConfigFile
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		dir := filepath.Dir(configPath)
		file := filepath.Base(configPath)
		ext := filepath.Ext(file)
		name := strings.TrimSuffix(file, ext)

		v.AddConfigPath(dir)
		v.SetConfigName(name)
	} else {
		// Fallback to default locations
		_, filename, _, _ := runtime.Caller(0)
		pkgConfigDir := filepath.Dir(filename)
		projectRoot := filepath.Join(pkgConfigDir, "..", "..")

		v.AddConfigPath(pkgConfigDir)
		v.AddConfigPath(projectRoot)
		v.AddConfigPath(filepath.Join(projectRoot, "pkg", "config"))
		v.SetConfigName("config")
	}

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.timeout", 10*time.Second)
	v.SetDefault("activity.week_start_day", 0)
	v.SetDefault("activity.default_daily_step_goal", 10000)
	v.SetDefault("activity.mirror_timeout", 5*time.Second)
	v.SetDefault("activity.breaker.failure_threshold", 3)
	v.SetDefault("activity.breaker.success_threshold", 2)
	v.SetDefault("activity.breaker.reset_timeout", 30*time.Second)
	v.SetDefault("activity.breaker.half_open_max_requests", 5)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error loading config file: %v", err)
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envVars := map[string]string{
		"database.host":                    "DB_HOST",
		"database.port":                    "DB_PORT",
		"database.user":                    "DB_USER",
		"database.password":                "DB_PASSWORD",
		"database.name":                    "DB_NAME",
		"database.sslmode":                 "DB_SSLMODE",
		"server.mode":                      "SERVER_MODE",
		"server.timeout":                   "SERVER_TIMEOUT",
		"redis.host":                       "REDIS_HOST",
		"redis.port":                       "REDIS_PORT",
		"redis.password":                   "REDIS_PASSWORD",
		"redis.db":                         "REDIS_DB",
		"auth.jwt_secret":                  "JWT_SECRET",
		"auth.jwt_issuer":                  "JWT_ISSUER",
		"auth.jwt_expiry_hours":            "JWT_EXPIRY_HOURS",
		"activity.week_start_day":          "ACTIVITY_WEEK_START_DAY",
		"activity.default_daily_step_goal": "ACTIVITY_DEFAULT_STEP_GOAL",
		"logging.level":                    "LOG_LEVEL",
		"logging.format":                   "LOG_FORMAT",
	}

	for configKey, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			switch envVar {
			case "DB_PORT", "REDIS_PORT", "REDIS_DB", "JWT_EXPIRY_HOURS",
				"ACTIVITY_WEEK_START_DAY", "ACTIVITY_DEFAULT_STEP_GOAL":
				if intVal, err := strconv.Atoi(value); err == nil {
					v.Set(configKey, intVal)
				}
			case "SERVER_TIMEOUT":
				if d, err := time.ParseDuration(value); err == nil {
					v.Set(configKey, d)
				}
			default:
				v.Set(configKey, value)
			}
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if config.Activity.WeekStartDay < 0 || config.Activity.WeekStartDay > 6 {
		return nil, fmt.Errorf("invalid week_start_day %d: must be 0..6", config.Activity.WeekStartDay)
	}

	return &config, nil
}
