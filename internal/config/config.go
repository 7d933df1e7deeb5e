package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	PDF      PDFConfig      `mapstructure:"pdf"`
	OCR      OCRConfig      `mapstructure:"ocr"`
	Summary  SummaryConfig  `mapstructure:"summary"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Exports  ExportsConfig  `mapstructure:"exports"`
	Server   ServerConfig   `mapstructure:"server"`
	Wizard   WizardConfig   `mapstructure:"wizard"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=sqlite3 mysql"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite3"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	// ConnectRetries is how many times a failed ping is retried before giving up.
	ConnectRetries uint `mapstructure:"connect_retries"`
}

type PDFConfig struct {
	Validate  bool    `mapstructure:"validate"`
	RenderDPI float64 `mapstructure:"render_dpi" validate:"gt=0"`
}

type OCRConfig struct {
	Binary               string `mapstructure:"binary"`
	Language             string `mapstructure:"language" validate:"required"`
	PageSegmentationMode int    `mapstructure:"page_segmentation_mode" validate:"gte=0,lte=13"`
	EngineMode           int    `mapstructure:"engine_mode" validate:"gte=0,lte=3"`
	TimeoutSeconds       int    `mapstructure:"timeout_seconds" validate:"gt=0"`
}

type SummaryConfig struct {
	Sentences int `mapstructure:"sentences" validate:"gt=0"`
	Keywords  int `mapstructure:"keywords" validate:"gt=0"`
}

type QuizConfig struct {
	Questions int   `mapstructure:"questions" validate:"gt=0"`
	Seed      int64 `mapstructure:"seed"`
}

type ExportsConfig struct {
	Directory        string `mapstructure:"directory"`
	MarkdownTemplate string `mapstructure:"markdown_template" validate:"omitempty,file"`
	QuizTemplate     string `mapstructure:"quiz_template" validate:"omitempty,file"`
}

type ServerConfig struct {
	Port        int        `mapstructure:"port" validate:"gt=0,lte=65535"`
	CORS        CORSConfig `mapstructure:"cors"`
	UploadMaxMB int64      `mapstructure:"upload_max_mb" validate:"gt=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,origin"`
}

type WizardConfig struct {
	DataDirectory string `mapstructure:"data_directory" validate:"required"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	// Values from .env are visible to the env bindings below.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/estudazilla")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", "estudazilla.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "estudazilla")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_retries", 3)
	v.SetDefault("pdf.validate", false)
	v.SetDefault("pdf.render_dpi", 150.0)
	v.SetDefault("ocr.binary", "tesseract")
	v.SetDefault("ocr.language", "por")
	v.SetDefault("ocr.page_segmentation_mode", 6)
	v.SetDefault("ocr.engine_mode", 3)
	v.SetDefault("ocr.timeout_seconds", 120)
	v.SetDefault("summary.sentences", 5)
	v.SetDefault("summary.keywords", 5)
	v.SetDefault("quiz.questions", 5)
	v.SetDefault("quiz.seed", 0)
	v.SetDefault("exports.directory", "exports")
	// Templates are optional; the embedded ones are used otherwise
	v.SetDefault("exports.markdown_template", "")
	v.SetDefault("exports.quiz_template", "")
	v.SetDefault("server.port", 8501)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.upload_max_mb", 64)
	v.SetDefault("wizard.data_directory", "data")

	if err := v.BindEnv("database.password", "ESTUDAZILLA_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind ESTUDAZILLA_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("ocr.binary", "ESTUDAZILLA_TESSERACT"); err != nil {
		return nil, fmt.Errorf("failed to bind ESTUDAZILLA_TESSERACT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// WizardFile returns the path of a state file kept in the wizard data directory.
func (cfg *Config) WizardFile(name string) string {
	return filepath.Join(cfg.Wizard.DataDirectory, name)
}
