package cmd

import (
	"strings"
	"testing"

	"frametrim/infrastructure/config"
)

func TestSeekHint(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"ffmpeg", "decoder.backend opencv"},
		{"", "decoder.backend opencv"},
		{"opencv", ""},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			got := seekHint(&config.Config{Decoder: config.DecoderConfig{Backend: tt.backend}})
			if tt.want == "" {
				if got != "" {
					t.Errorf("seekHint(%q) = %q, want no hint", tt.backend, got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("seekHint(%q) = %q, want it to mention %q", tt.backend, got, tt.want)
			}
		})
	}
}

func TestSessionHelpMentionsOpenCVBackend(t *testing.T) {
	if !strings.Contains(sessionCmd.Long, "decoder.backend: opencv") {
		t.Errorf("session help should point to the opencv backend, got:\n%s", sessionCmd.Long)
	}
}
