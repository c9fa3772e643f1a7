package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"resumeats/ats-analyzer/internal/llm"
)

type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Search   SearchConfig
	Storage  StorageConfig
	OCR      OCRConfig
	Pipeline PipelineConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LLMConfig struct {
	OpenAIAPIKey string
	GeminiAPIKey string
	Model        string
	VisionModel  string
	Temperature  float64
	MaxTokens    int
	Timeout      time.Duration
}

type SearchConfig struct {
	APIKey      string
	URL         string
	ResultCount int
	Timeout     time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type OCRConfig struct {
	Engine    string
	Languages []string
}

type PipelineConfig struct {
	SummarizeGaps        bool
	ConcurrentExtraction bool
}

type LogConfig struct {
	Level string
}

const (
	OCREngineTesseract = "tesseract"
	OCREngineVision    = "vision"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		LLM: LLMConfig{
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("LLM_MODEL", string(llm.DefaultTextModel)),
			VisionModel:  getEnv("LLM_VISION_MODEL", string(llm.DefaultVisionModel)),
			Temperature:  getEnvAsFloat("LLM_TEMPERATURE", llm.DefaultTemperature),
			MaxTokens:    getEnvAsInt("LLM_MAX_TOKENS", 0),
			Timeout:      getEnvAsDuration("LLM_TIMEOUT", "120s"),
		},
		Search: SearchConfig{
			APIKey:      getEnv("SERPER_API_KEY", ""),
			URL:         getEnv("SERPER_URL", "https://google.serper.dev/search"),
			ResultCount: getEnvAsInt("SEARCH_RESULT_COUNT", 3),
			Timeout:     getEnvAsDuration("SEARCH_TIMEOUT", "15s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", filepath.Join(os.TempDir(), "ats-uploads")),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		OCR: OCRConfig{
			Engine:    strings.ToLower(getEnv("OCR_ENGINE", OCREngineTesseract)),
			Languages: getEnvAsList("OCR_LANGUAGES", []string{"eng"}),
		},
		Pipeline: PipelineConfig{
			SummarizeGaps:        getEnvAsBool("SUMMARIZE_GAPS", false),
			ConcurrentExtraction: getEnvAsBool("CONCURRENT_EXTRACTION", false),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// Validate checks the settings that would otherwise only fail on the first
// LLM request.
func (c *Config) Validate() error {
	textModel, err := llm.ParseModel(c.LLM.Model)
	if err != nil {
		return fmt.Errorf("LLM_MODEL: %w", err)
	}
	if err := c.requireKey(textModel); err != nil {
		return err
	}

	if c.OCR.Engine != OCREngineTesseract && c.OCR.Engine != OCREngineVision {
		return fmt.Errorf("OCR_ENGINE must be %q or %q, got %q", OCREngineTesseract, OCREngineVision, c.OCR.Engine)
	}
	if c.OCR.Engine == OCREngineVision {
		visionModel, err := llm.ParseModel(c.LLM.VisionModel)
		if err != nil {
			return fmt.Errorf("LLM_VISION_MODEL: %w", err)
		}
		if err := c.requireKey(visionModel); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) requireKey(m llm.Model) error {
	switch m.Family() {
	case llm.FamilyGemini:
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for model %s", m)
		}
	default:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for model %s", m)
		}
	}
	return nil
}

// APIKeyFor returns the credential of the provider serving m.
func (c *Config) APIKeyFor(m llm.Model) string {
	if m.Family() == llm.FamilyGemini {
		return c.LLM.GeminiAPIKey
	}
	return c.LLM.OpenAIAPIKey
}

// SearchEnabled reports whether tutorial enrichment is configured.
func (c *Config) SearchEnabled() bool {
	return c.Search.APIKey != ""
}

// GenerationOptions converts the LLM settings into generator options.
func (c *Config) GenerationOptions() []llm.Option {
	opts := []llm.Option{llm.WithTemperature(float32(c.LLM.Temperature))}
	if c.LLM.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(c.LLM.MaxTokens))
	}
	return opts
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
