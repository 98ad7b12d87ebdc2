package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port: got %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Env: got %q, want development", cfg.Server.Env)
	}
	if cfg.Storage.DataDir != "./data" {
		t.Errorf("DataDir: got %q, want ./data", cfg.Storage.DataDir)
	}

	tests := []struct {
		name     string
		actual   time.Duration
		expected time.Duration
	}{
		{"SessionTTL", cfg.Auth.SessionTTL, 24 * time.Hour},
		{"RememberMeTTL", cfg.Auth.RememberMeTTL, 30 * 24 * time.Hour},
		{"FailureLookback", cfg.Auth.FailureLookback, 15 * time.Minute},
		{"SweepInterval", cfg.Auth.SweepInterval, 1 * time.Hour},
	}
	for _, tt := range tests {
		if tt.actual != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.name, tt.actual, tt.expected)
		}
	}

	if cfg.Auth.MaxAttemptHint != 5 {
		t.Errorf("MaxAttemptHint: got %d, want 5", cfg.Auth.MaxAttemptHint)
	}
	if cfg.Auth.DemoUsername != "admin" {
		t.Errorf("DemoUsername: got %q, want admin", cfg.Auth.DemoUsername)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("DATA_DIR", "/var/lib/honeywatch")
	os.Setenv("SESSION_TTL", "1h")
	os.Setenv("REMEMBER_ME_TTL", "48h")
	os.Setenv("MAX_ATTEMPT_HINT", "3")
	os.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port: got %q, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "/var/lib/honeywatch" {
		t.Errorf("DataDir: got %q, want /var/lib/honeywatch", cfg.Storage.DataDir)
	}
	if cfg.Auth.SessionTTL != time.Hour {
		t.Errorf("SessionTTL: got %v, want 1h", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.RememberMeTTL != 48*time.Hour {
		t.Errorf("RememberMeTTL: got %v, want 48h", cfg.Auth.RememberMeTTL)
	}
	if cfg.Auth.MaxAttemptHint != 3 {
		t.Errorf("MaxAttemptHint: got %d, want 3", cfg.Auth.MaxAttemptHint)
	}

	want := []string{"10.0.0.0/8", "172.16.0.0/12"}
	if len(cfg.Server.TrustedProxies) != len(want) {
		t.Fatalf("TrustedProxies: got %v, want %v", cfg.Server.TrustedProxies, want)
	}
	for i := range want {
		if cfg.Server.TrustedProxies[i] != want[i] {
			t.Errorf("TrustedProxies[%d]: got %q, want %q", i, cfg.Server.TrustedProxies[i], want[i])
		}
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	os.Setenv("SESSION_TTL", "not-a-duration")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL: got %v, want the 24h default", cfg.Auth.SessionTTL)
	}
}

func TestLoad_ProductionRequiresDemoSecret(t *testing.T) {
	os.Setenv("ENV", "production")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil error, want failure when DEMO_SECRET is unset in production")
	}

	os.Setenv("DEMO_SECRET", "s3cret-not-the-default")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() = %v, want nil once DEMO_SECRET is set", err)
	}
}

func TestLoad_ProductionOriginsFromEnv(t *testing.T) {
	os.Setenv("ENV", "production")
	os.Setenv("DEMO_SECRET", "s3cret")
	os.Setenv("ALLOWED_ORIGINS", "https://demo.example.com")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://demo.example.com" {
		t.Errorf("AllowedOrigins: got %v, want the configured origin only", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_DevelopmentOriginsIncludeLocalhost(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	found := false
	for _, origin := range cfg.Server.AllowedOrigins {
		if origin == "http://localhost:3000" {
			found = true
		}
	}
	if !found {
		t.Errorf("AllowedOrigins: %v missing localhost development origin", cfg.Server.AllowedOrigins)
	}
}
