package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/confportal/internal/flagx"
	"github.com/dmitrijs2005/confportal/internal/timex"
)

// jsonConfig is used exclusively for unmarshalling. Absent keys leave the
// corresponding Config field untouched.
type jsonConfig struct {
	APIBaseURL    *string         `json:"api_base_url"`
	StatePath     *string         `json:"state_path"`
	DownloadDir   *string         `json:"download_dir"`
	DueSoonWindow *timex.Duration `json:"due_soon_window"`
	LogLevel      *string         `json:"log_level"`
	PageSize      *int            `json:"page_size"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.StatePath, jc.StatePath)
	setIf(&cfg.DownloadDir, jc.DownloadDir)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.PageSize, jc.PageSize)
	if jc.DueSoonWindow != nil {
		cfg.DueSoonWindow = jc.DueSoonWindow.Duration
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
