package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vietcraft/storefront/internal/flagx"
	"github.com/vietcraft/storefront/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be written either as strings like "500ms"
// or as integer nanoseconds. Parsed values are copied into the runtime
// Config. Zero-value fields are skipped so a partial file only overrides
// what it names.
type JsonConfig struct {
	ServerBaseURL    string         `json:"server_base_url"`
	MirrorPath       string         `json:"mirror_path"`
	PushDebounce     timex.Duration `json:"push_debounce"`
	PullThrottle     timex.Duration `json:"pull_throttle"`
	TabApplyCooldown timex.Duration `json:"tab_apply_cooldown"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. No flag, no overlay. Read and unmarshal errors
// panic; the caller may recover if it wants softer behavior.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.MirrorPath != "" {
		cfg.MirrorPath = jc.MirrorPath
	}
	if jc.PushDebounce.Duration != 0 {
		cfg.PushDebounce = time.Duration(jc.PushDebounce.Duration)
	}
	if jc.PullThrottle.Duration != 0 {
		cfg.PullThrottle = time.Duration(jc.PullThrottle.Duration)
	}
	if jc.TabApplyCooldown.Duration != 0 {
		cfg.TabApplyCooldown = time.Duration(jc.TabApplyCooldown.Duration)
	}
}
