package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("MYSQL_DSN", "wp:secret@tcp(localhost:3306)/wordpress")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.OpenAIAPIKey != "test-key" {
		t.Errorf("Expected OpenAIAPIKey to be 'test-key', got '%s'", cfg.OpenAIAPIKey)
	}
	if cfg.Port != "8080" || cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Expected default address, got '%s'", cfg.Addr())
	}
	if cfg.ImageJPEGQuality != 70 || cfg.TermIDFloor != 89 || cfg.PostAuthorID != 1 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.ArchiveRetentionDays != 30 || cfg.ArchivePruneSchedule != "@daily" {
		t.Errorf("Unexpected archive defaults: %d / %s", cfg.ArchiveRetentionDays, cfg.ArchivePruneSchedule)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" || cfg.OpenAIImageModel != "dall-e-3" {
		t.Errorf("Unexpected model defaults: %s / %s", cfg.OpenAIModel, cfg.OpenAIImageModel)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{"missing api key", map[string]string{"MYSQL_DSN": "dsn"}, "OPENAI_API_KEY"},
		{"missing dsn", map[string]string{"OPENAI_API_KEY": "k"}, "MYSQL_DSN"},
		{"bad quality", map[string]string{"OPENAI_API_KEY": "k", "MYSQL_DSN": "dsn", "IMAGE_JPEG_QUALITY": "150"}, "IMAGE_JPEG_QUALITY"},
		{"negative retention", map[string]string{"OPENAI_API_KEY": "k", "MYSQL_DSN": "dsn", "ARCHIVE_RETENTION_DAYS": "-2"}, "ARCHIVE_RETENTION_DAYS"},
		{"slack without channel", map[string]string{"OPENAI_API_KEY": "k", "MYSQL_DSN": "dsn", "SLACK_BOT_TOKEN": "xoxb"}, "SLACK_CHANNEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"OPENAI_API_KEY", "MYSQL_DSN", "IMAGE_JPEG_QUALITY", "SLACK_BOT_TOKEN", "SLACK_CHANNEL", "ARCHIVE_RETENTION_DAYS"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestParseStringSlice(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a, b , c ", []string{"a", "b", "c"}},
		{"a,,b", []string{"a", "b"}},
	}

	for _, test := range tests {
		if diff := cmp.Diff(test.expected, parseStringSlice(test.input)); diff != "" {
			t.Errorf("For input '%s' (-want +got):\n%s", test.input, diff)
		}
	}
}
