package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	App     AppConfig
	Exam    ExamConfig
	Session SessionConfig
	Signing SigningConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisConfig holds the session store connection. An empty Address selects
// an embedded in-process Redis.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Level string
	Env   string
}

// AppConfig carries the presentation strings exposed on the course listing.
type AppConfig struct {
	Name       string
	Theme      string
	HeaderFile string
}

// ExamConfig controls where question banks live and how exams are sized.
type ExamConfig struct {
	Folder           string
	Questions        int
	QuestionsPerPage int
}

type SessionConfig struct {
	SecretKey  string
	CookieName string
	TTL        time.Duration
	ResultTTL  time.Duration
}

// SigningConfig points at the PEM private key used to certify result
// documents. KeyPath empty disables signing.
type SigningConfig struct {
	KeyPath     string
	KeyPassword string
}

const (
	defaultExamQuestions    = 20
	defaultQuestionsPerPage = 5
	defaultCookieName       = "quizexam_session"
	defaultSessionTTL       = 120 * time.Minute
	defaultResultTTL        = 30 * time.Minute
)

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	configFile := v.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := FromViper(v)

	// Override with environment variables if set
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if folder := os.Getenv("EXAMS_FOLDER"); folder != "" {
		cfg.Exam.Folder = folder
	}
	if secret := os.Getenv("SESSION_SECRET_KEY"); secret != "" {
		cfg.Session.SecretKey = secret
	}
	if keyPath := os.Getenv("SIGNING_KEY_PATH"); keyPath != "" {
		cfg.Signing.KeyPath = keyPath
	}
	if keyPassword := os.Getenv("SIGNING_KEY_PASSWORD"); keyPassword != "" {
		cfg.Signing.KeyPassword = keyPassword
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("app.name", "Examinator")
	v.SetDefault("exam.folder", "exams")
	v.SetDefault("exam.questions", defaultExamQuestions)
	v.SetDefault("exam.questions_per_page", defaultQuestionsPerPage)
	v.SetDefault("session.cookie_name", defaultCookieName)
	v.SetDefault("session.ttl_minutes", int(defaultSessionTTL/time.Minute))
	v.SetDefault("session.result_ttl_minutes", int(defaultResultTTL/time.Minute))
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		App: AppConfig{
			Name:       v.GetString("app.name"),
			Theme:      v.GetString("app.theme"),
			HeaderFile: v.GetString("app.header_file"),
		},
		Exam: ExamConfig{
			Folder:           v.GetString("exam.folder"),
			Questions:        v.GetInt("exam.questions"),
			QuestionsPerPage: v.GetInt("exam.questions_per_page"),
		},
		Session: SessionConfig{
			SecretKey:  v.GetString("session.secret_key"),
			CookieName: v.GetString("session.cookie_name"),
			TTL:        time.Duration(v.GetInt("session.ttl_minutes")) * time.Minute,
			ResultTTL:  time.Duration(v.GetInt("session.result_ttl_minutes")) * time.Minute,
		},
		Signing: SigningConfig{
			KeyPath:     v.GetString("signing.key_path"),
			KeyPassword: v.GetString("signing.key_password"),
		},
	}
}

// Validate rejects configurations the quiz engine cannot run with.
func (c *Config) Validate() error {
	if c.Exam.Folder == "" {
		return fmt.Errorf("exam.folder is required")
	}
	if c.Exam.Questions <= 0 {
		return fmt.Errorf("exam.questions must be positive, got %d", c.Exam.Questions)
	}
	if c.Exam.QuestionsPerPage <= 0 {
		return fmt.Errorf("exam.questions_per_page must be positive, got %d", c.Exam.QuestionsPerPage)
	}
	if len(c.Session.SecretKey) < 32 {
		return fmt.Errorf("session.secret_key must be at least 32 bytes long")
	}
	return nil
}

// SigningEnabled reports whether a signing key has been configured.
func (c *Config) SigningEnabled() bool {
	return c.Signing.KeyPath != ""
}
