package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want default 8000", cfg.Port)
	}
	if cfg.DBPath != "data/words.db" {
		t.Errorf("DBPath = %q, want default %q", cfg.DBPath, "data/words.db")
	}
	if cfg.SMTP.Server != "smtp.hostinger.com" {
		t.Errorf("SMTP.Server = %q, want default %q", cfg.SMTP.Server, "smtp.hostinger.com")
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d, want default 587", cfg.SMTP.Port)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want the two default origins", cfg.AllowedOrigins)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	// t.Setenv automatically restores the previous value when the test ends.
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("SMTP_USERNAME", "mailer@example.com")
	t.Setenv("SMTP_PASSWORD", "hunter2")
	t.Setenv("SENDER_EMAIL", "words@example.com")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,https://example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/test.db")
	}
	if cfg.SMTP.Username != "mailer@example.com" {
		t.Errorf("SMTP.Username = %q, want %q", cfg.SMTP.Username, "mailer@example.com")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v, want the two configured origins", cfg.AllowedOrigins)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail on a non-numeric PORT")
	}
}
