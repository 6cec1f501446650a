package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultSystemPrompt = "You are an expert blog writer with a deep understanding of finance, technology, " +
	"and investment strategies. Your task is to create highly engaging and informative content for an " +
	"audience interested in passive income opportunities."

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port        string   `json:"port"`
	Host        string   `json:"host"`
	CORSOrigins []string `json:"cors_origins"`

	// OpenAI settings
	OpenAIAPIKey       string `json:"-"` // Don't expose in JSON
	OpenAIBaseURL      string `json:"openai_base_url"`
	OpenAIModel        string `json:"openai_model"`
	OpenAIImageModel   string `json:"openai_image_model"`
	OpenAIImageSize    string `json:"openai_image_size"`
	OpenAISystemPrompt string `json:"-"`

	// WordPress settings
	MySQLDSN       string `json:"-"`
	UploadsDir     string `json:"uploads_dir"`
	UploadsBaseURL string `json:"uploads_base_url"`
	TermIDFloor    int    `json:"term_id_floor"`
	PostAuthorID   int    `json:"post_author_id"`

	// Image settings
	ImageJPEGQuality  int    `json:"image_jpeg_quality"`
	ImageMirrorBucket string `json:"image_mirror_bucket"`

	// Drafts and prompts
	ArchiveBucket string `json:"archive_bucket"` // empty keeps drafts in memory
	TemplatesFile string `json:"templates_file"`

	// Draft retention; zero days keeps drafts forever
	ArchiveRetentionDays int    `json:"archive_retention_days"`
	ArchivePruneSchedule string `json:"archive_prune_schedule"`

	WebhookAuthToken string `json:"-"`

	// Slack run reports, disabled without a token
	SlackBotToken string `json:"-"`
	SlackChannel  string `json:"slack_channel"`

	LogMode string `json:"log_mode"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Host:                 getEnvOrDefault("HOST", "0.0.0.0"),
		CORSOrigins:          parseStringSlice(getEnvOrDefault("CORS_ORIGINS", "*")),
		OpenAIAPIKey:         getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:          getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIImageModel:     getEnvOrDefault("OPENAI_IMAGE_MODEL", "dall-e-3"),
		OpenAIImageSize:      getEnvOrDefault("OPENAI_IMAGE_SIZE", "1024x1024"),
		OpenAISystemPrompt:   getEnvOrDefault("OPENAI_SYSTEM_PROMPT", defaultSystemPrompt),
		MySQLDSN:             getEnvOrDefault("MYSQL_DSN", ""),
		UploadsDir:           getEnvOrDefault("UPLOADS_DIR", "/var/www/html/wp-content/uploads"),
		UploadsBaseURL:       getEnvOrDefault("UPLOADS_BASE_URL", "https://example.com/wp-content/uploads"),
		TermIDFloor:          getEnvOrDefaultInt("TERM_ID_FLOOR", 89),
		PostAuthorID:         getEnvOrDefaultInt("POST_AUTHOR_ID", 1),
		ImageJPEGQuality:     getEnvOrDefaultInt("IMAGE_JPEG_QUALITY", 70),
		ImageMirrorBucket:    getEnvOrDefault("IMAGE_MIRROR_BUCKET", ""),
		ArchiveBucket:        getEnvOrDefault("ARCHIVE_BUCKET", ""),
		TemplatesFile:        getEnvOrDefault("TEMPLATES_FILE", "configs/templates.yaml"),
		ArchiveRetentionDays: getEnvOrDefaultInt("ARCHIVE_RETENTION_DAYS", 30),
		ArchivePruneSchedule: getEnvOrDefault("ARCHIVE_PRUNE_SCHEDULE", "@daily"),
		WebhookAuthToken:     getEnvOrDefault("WEBHOOK_AUTH_TOKEN", ""),
		SlackBotToken:        getEnvOrDefault("SLACK_BOT_TOKEN", ""),
		SlackChannel:         getEnvOrDefault("SLACK_CHANNEL", ""),
		LogMode:              getEnvOrDefault("LOG_MODE", "development"),
	}

	return config, config.validate()
}

// validate checks if required configuration values are present
func (c *Config) validate() error {
	if c.OpenAIAPIKey == "" {
		return &ConfigError{Field: "OPENAI_API_KEY", Message: "OpenAI API key is required"}
	}
	if c.MySQLDSN == "" {
		return &ConfigError{Field: "MYSQL_DSN", Message: "WordPress database DSN is required"}
	}
	if c.ImageJPEGQuality < 1 || c.ImageJPEGQuality > 100 {
		return &ConfigError{Field: "IMAGE_JPEG_QUALITY", Message: "must be between 1 and 100"}
	}
	if c.TermIDFloor < 0 {
		return &ConfigError{Field: "TERM_ID_FLOOR", Message: "must not be negative"}
	}
	if c.ArchiveRetentionDays < 0 {
		return &ConfigError{Field: "ARCHIVE_RETENTION_DAYS", Message: "must not be negative"}
	}
	if c.SlackBotToken != "" && c.SlackChannel == "" {
		return &ConfigError{Field: "SLACK_CHANNEL", Message: "Slack channel is required when SLACK_BOT_TOKEN is set"}
	}
	if c.PostAuthorID <= 0 {
		return &ConfigError{Field: "POST_AUTHOR_ID", Message: "must be positive"}
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseStringSlice parses comma-separated string into slice
func parseStringSlice(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
