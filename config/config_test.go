package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.Storage.Driver != "disk" {
		t.Errorf("Storage.Driver = %q", cfg.Storage.Driver)
	}
	if cfg.OpenAI.TranscribeLanguage != "pt" {
		t.Errorf("TranscribeLanguage = %q", cfg.OpenAI.TranscribeLanguage)
	}
	if cfg.OpenAI.CompletionModel != "gpt-3.5-turbo-16k" {
		t.Errorf("CompletionModel = %q", cfg.OpenAI.CompletionModel)
	}
	if cfg.Upload.MaxUploadSize != 25*1024*1024 {
		t.Errorf("MaxUploadSize = %d", cfg.Upload.MaxUploadSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MAX_UPLOAD_SIZE", "1048576")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerPort != "9999" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Upload.MaxUploadSize != 1<<20 {
		t.Errorf("MaxUploadSize = %d", cfg.Upload.MaxUploadSize)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing api key",
			env:  map[string]string{"OPENAI_API_KEY": ""},
		},
		{
			name: "unknown storage driver",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"STORAGE_DRIVER": "ftp",
			},
		},
		{
			name: "spaces driver without bucket",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"STORAGE_DRIVER": "spaces",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}
