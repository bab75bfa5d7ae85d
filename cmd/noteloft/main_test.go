package main

import "testing"

func TestSiteURL(t *testing.T) {
	tests := []struct {
		name   string
		apiURL string
		want   string
	}{
		{"strips api label", "https://api.noteloft.app", "https://noteloft.app"},
		{"keeps path", "https://api.noteloft.app/v1", "https://noteloft.app/v1"},
		{"keeps port", "http://api.localhost:8080", "http://localhost:8080"},
		{"no api label", "https://noteloft.app", "https://noteloft.app"},
		{"bare host unchanged", "http://localhost:3000", "http://localhost:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := siteURL(tt.apiURL); got != tt.want {
				t.Errorf("siteURL(%q) = %q, want %q", tt.apiURL, got, tt.want)
			}
		})
	}
}
