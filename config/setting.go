package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port        int    `koanf:"port" validate:"required"`
	Mode        string `koanf:"mode" validate:"required"`
	Concurrency int    `koanf:"concurrency" validate:"required"`
	BodyLimit   int    `koanf:"body_limit" validate:"required"`
	AppName     string `koanf:"app_name" validate:"required"`
	MaxUploadMB int    `koanf:"max_upload_mb" validate:"required"`
}

type logLevel string

const (
	Debug logLevel = "debug"
	Info  logLevel = "info"
	Warn  logLevel = "warn"
	Error logLevel = "error"
	Fatal logLevel = "fatal"
	Panic logLevel = "panic"
)

type Module string

const (
	ModuleDocument Module = "document"
	ModuleSession  Module = "session"
	ModuleTask     Module = "task"
	ModuleQuiz     Module = "quiz"
	ModuleAnalyzer Module = "analyzer"
	ModuleLLM      Module = "llm"
	ModuleDatabase Module = "database"
	ModuleExport   Module = "export"
	ModuleUpload   Module = "upload"
	ModuleS3       Module = "s3"
	ModuleServer   Module = "server"
	ModuleSetting  Module = "setting"
)

type geminiConfig struct {
	Key   string `koanf:"key"`
	Model string `koanf:"model" validate:"required"`
}

type openaiConfig struct {
	Key   string `koanf:"key"`
	Model string `koanf:"model" validate:"required"`
}

type llmConfig struct {
	Provider       string `koanf:"provider" validate:"required,oneof=gemini openai"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"required"`
}

// contextConfig bounds the text sent per model call. MaxChars is a character
// budget, DocFloor is the minimum share of it reserved for the document text.
type contextConfig struct {
	MaxChars int     `koanf:"max_chars" validate:"required,gt=0"`
	DocFloor float64 `koanf:"doc_floor" validate:"required,gt=0,lte=1"`
}

type quizConfig struct {
	OpenThreshold float64 `koanf:"open_threshold" validate:"required,gt=0,lte=1"`
	MaxQuestions  int     `koanf:"max_questions" validate:"required"`
}

type analyzerConfig struct {
	TopN           int      `koanf:"top_n" validate:"required"`
	MinWordLen     int      `koanf:"min_word_len" validate:"required"`
	ExtraStopwords []string `koanf:"extra_stopwords"`
}

type databaseConfig struct {
	Path string `koanf:"path" validate:"required"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

type config struct {
	Server   serverConfig   `koanf:"server"`
	Gemini   geminiConfig   `koanf:"gemini"`
	OpenAI   openaiConfig   `koanf:"openai"`
	LLM      llmConfig      `koanf:"llm"`
	Context  contextConfig  `koanf:"context"`
	Quiz     quizConfig     `koanf:"quiz"`
	Analyzer analyzerConfig `koanf:"analyzer"`
	Database databaseConfig `koanf:"database"`
	S3       s3Config       `koanf:"s3"`
	LogLevel logLevel       `koanf:"log_level"`
}

var defaultConfig = config{
	Server: serverConfig{
		Port:        8000,
		Mode:        "release",
		Concurrency: 256,
		BodyLimit:   110 * 1024 * 1024,
		AppName:     "ai-doc-assistant",
		MaxUploadMB: 100,
	},
	Gemini: geminiConfig{
		Key:   "",
		Model: "gemini-2.0-flash",
	},
	OpenAI: openaiConfig{
		Key:   "",
		Model: "gpt-4o-mini",
	},
	LLM: llmConfig{
		Provider:       "gemini",
		TimeoutSeconds: 60,
	},
	Context: contextConfig{
		MaxChars: 15000,
		DocFloor: 0.7,
	},
	Quiz: quizConfig{
		OpenThreshold: 0.5,
		MaxQuestions:  50,
	},
	Analyzer: analyzerConfig{
		TopN:       20,
		MinWordLen: 3,
	},
	Database: databaseConfig{
		Path: "ai_doc_assistant.db",
	},
	S3: s3Config{
		Endpoint:  "",
		AccessKey: "",
		SecretKey: "",
		Region:    "us-east-1",
		UseSSL:    false,
		Bucket:    "",
	},
	LogLevel: Info,
}

var (
	Cfg  = defaultConfig
	once sync.Once
)

func init() {
	path := "config.yaml"

	once.Do(func() {
		k := koanf.New(".")

		validate := validator.New()
		// defaults
		Cfg = defaultConfig

		// file
		if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !os.IsNotExist(e) {
			return
		}

		// env APP_CONTEXT__MAX_CHARS -> context.max_chars
		if e := k.Load(env.Provider("APP_", ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "__", ".")
		}), nil); e != nil {
			return
		}

		// bind
		if e := k.Unmarshal("", &Cfg); e != nil {
			log.Errorf("failed to unmarshal config: %v", e)
		}

		// validate config
		if err := validate.Struct(Cfg); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok {
				var sb strings.Builder
				sb.WriteString(fmt.Sprintf("%v config validation failed:\n", ModuleSetting))

				for _, e := range errs {
					sb.WriteString(
						fmt.Sprintf("  - %s: failed '%s' (value: %v)\n", e.Field(), e.Tag(), e.Value()),
					)
				}

				log.Error(sb.String())
			} else {
				log.Errorf("config validation failed: %v", err)
			}
		}
	})
}
