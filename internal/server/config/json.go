package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vietcraft/storefront/internal/flagx"
	"github.com/vietcraft/storefront/internal/timex"
)

// JsonConfig is a DTO used only for reading JSON configuration files. It
// uses timex.Duration for interval fields, which allows parsing both string
// values such as "5s" and integer nanoseconds. After unmarshalling, its
// fields are copied into the runtime Config. Zero-value fields are skipped
// so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	StorageDriver    string         `json:"storage_driver"`
	DataDir          string         `json:"data_dir"`
	BackupKeep       int            `json:"backup_keep"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. No flag, no overlay. Read and unmarshal errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	jc := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddrHTTP != "" {
		cfg.EndpointAddrHTTP = jc.EndpointAddrHTTP
	}
	if jc.StorageDriver != "" {
		cfg.StorageDriver = jc.StorageDriver
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.BackupKeep != 0 {
		cfg.BackupKeep = jc.BackupKeep
	}
	if jc.ShutdownTimeout.Duration != 0 {
		cfg.ShutdownTimeout = time.Duration(jc.ShutdownTimeout.Duration)
	}
	if jc.S3RootUser != "" {
		cfg.S3RootUser = jc.S3RootUser
	}
	if jc.S3RootPassword != "" {
		cfg.S3RootPassword = jc.S3RootPassword
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
}
