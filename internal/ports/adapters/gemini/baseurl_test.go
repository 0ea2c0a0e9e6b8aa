package gemini

import "testing"

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		allowed []string
		wantErr bool
	}{
		{"empty defaults to google", "", nil, false},
		{"default host explicit", "https://generativelanguage.googleapis.com", nil, false},
		{"trailing slash ok", "https://generativelanguage.googleapis.com/", nil, false},
		{"http rejected", "http://generativelanguage.googleapis.com", nil, true},
		{"unlisted host", "https://evil.example.com", nil, true},
		{"userinfo rejected", "https://user@generativelanguage.googleapis.com", nil, true},
		{"query rejected", "https://generativelanguage.googleapis.com?x=1", nil, true},
		{"custom allowlist accepts", "https://proxy.internal.example", []string{"proxy.internal.example"}, false},
		{"custom allowlist still filters", "https://evil.example.com", []string{"proxy.internal.example"}, true},
		{"allowlist entry with scheme and port", "https://proxy.internal.example", []string{"https://proxy.internal.example:443/"}, false},
		{"relative url", "not-a-url", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.baseURL, tt.allowed)
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
