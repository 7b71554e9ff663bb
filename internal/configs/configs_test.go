package configs

import "testing"

// TestLoadConfigDefaults checks the defaults applied when nothing is set.
func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("ROOM_NAME", "")
	t.Setenv("HISTORY_CAPACITY", "")
	t.Setenv("SEND_QUEUE_CAPACITY", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if want, got := "development", cfg.Environment; want != got {
		t.Errorf("Invalid environment: expected '%s' but got '%s'", want, got)
	}
	if want, got := 8080, cfg.Port; want != got {
		t.Errorf("Invalid port: expected '%d' but got '%d'", want, got)
	}
	if want, got := "lobby", cfg.RoomName; want != got {
		t.Errorf("Invalid room name: expected '%s' but got '%s'", want, got)
	}
	if want, got := 1000, cfg.HistoryCapacity; want != got {
		t.Errorf("Invalid history capacity: expected '%d' but got '%d'", want, got)
	}
	if want, got := 256, cfg.SendQueueCapacity; want != got {
		t.Errorf("Invalid queue capacity: expected '%d' but got '%d'", want, got)
	}
}

// TestLoadConfigRejectsBadValues checks range and parse validation.
func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"privileged port", "PORT", "80"},
		{"non-numeric port", "PORT", "eighty"},
		{"zero history", "HISTORY_CAPACITY", "0"},
		{"negative queue", "SEND_QUEUE_CAPACITY", "-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			if _, err := LoadConfig(); err == nil {
				t.Errorf("Expected an error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

// TestLoadConfigParsesOrigins checks the comma-separated origin list.
func TestLoadConfigParsesOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if want, got := 2, len(cfg.AllowedOrigins); want != got {
		t.Fatalf("Invalid origin count: expected '%d' but got '%d'", want, got)
	}
	if want, got := "https://a.example", cfg.AllowedOrigins[0]; want != got {
		t.Errorf("Invalid origin: expected '%s' but got '%s'", want, got)
	}
	if want, got := "https://b.example", cfg.AllowedOrigins[1]; want != got {
		t.Errorf("Invalid origin: expected '%s' but got '%s'", want, got)
	}
}
