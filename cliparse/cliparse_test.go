package cliparse

import (
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASE_URL", "")
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if cfg.Port != 3318 {
		t.Errorf("Port = %d, want 3318", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "pointdeck.db" {
		t.Errorf("DatabaseURL = %q, want pointdeck.db", cfg.DatabaseURL)
	}
	if cfg.BaseURL != "http://localhost:3318" {
		t.Errorf("BaseURL = %q, want http://localhost:3318", cfg.BaseURL)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "env.db")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "flag.db"})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080 (flag wins over env)", cfg.Port)
	}
	if cfg.DatabaseURL != "flag.db" {
		t.Errorf("DatabaseURL = %q, want flag.db", cfg.DatabaseURL)
	}
}

func TestEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4444")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/pointdeck")
	t.Setenv("BASE_URL", "https://deck.example.com")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if cfg.Port != 4444 {
		t.Errorf("Port = %d, want 4444", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "postgres://localhost/pointdeck" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.BaseURL != "https://deck.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestInvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("Expected error for invalid PORT env")
	}
}

func TestUnsupportedDatabaseType(t *testing.T) {
	clearEnv(t)

	if _, err := ParseFlags([]string{"-t", "mysql"}); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestPostgresRequiresURL(t *testing.T) {
	clearEnv(t)

	if _, err := ParseFlags([]string{"-t", "postgres"}); err == nil {
		t.Error("Expected error for postgres without a connection string")
	}
}

func TestBaseURLTracksPort(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-p", "9100"})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.BaseURL != "http://localhost:9100" {
		t.Errorf("BaseURL = %q, want http://localhost:9100", cfg.BaseURL)
	}
}
