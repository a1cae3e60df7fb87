package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MongoURL != "mongodb://localhost:27017" {
		t.Errorf("MongoURL = %q", cfg.MongoURL)
	}
	if cfg.DatabaseName != "projecthub" {
		t.Errorf("DatabaseName = %q", cfg.DatabaseName)
	}
	if cfg.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadLegacyNames(t *testing.T) {
	// Load promotes legacy names with os.Setenv; registering the current
	// names here makes t.Setenv restore them afterwards.
	t.Setenv("MONGODB_URL", "")
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("DB_NAME", "legacy")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MongoURL != "mongodb://db:27017" {
		t.Errorf("MongoURL = %q", cfg.MongoURL)
	}
	if cfg.DatabaseName != "legacy" {
		t.Errorf("DatabaseName = %q", cfg.DatabaseName)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
}

func TestLoadCurrentNameWins(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://current:27017")
	t.Setenv("MONGO_URI", "mongodb://legacy:27017")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MongoURL != "mongodb://current:27017" {
		t.Errorf("MongoURL = %q", cfg.MongoURL)
	}
}

func TestLoadAuthRequiresSecret(t *testing.T) {
	t.Setenv("USE_MIDDLEWARE", "true")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when USE_MIDDLEWARE is set without JWT_SECRET")
	}
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Setenv("BACKEND_CORS_ORIGINS", "http://localhost:3000,https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://app.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}
