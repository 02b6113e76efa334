package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://127.0.0.1:9090", "-s", "s.db", "-d", "dl", "-w", "36h", "-l", "debug"},
			expected: &Config{
				APIBaseURL: "http://127.0.0.1:9090", StatePath: "s.db", DownloadDir: "dl",
				DueSoonWindow: 36 * time.Hour, LogLevel: "debug",
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-c", "cfg.json", "-v", "-a=http://x:1"},
			expected: &Config{APIBaseURL: "http://x:1"},
		},
		{name: "bad window", args: []string{"-w", "soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
