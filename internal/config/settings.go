package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings holds the run options that are not part of a scenario.
type Settings struct {
	Workers      int              `mapstructure:"workers"`
	InnerWorkers int              `mapstructure:"innerWorkers"`
	ChunkSize    int              `mapstructure:"chunkSize"`
	Index        string           `mapstructure:"index"`
	Schema       string           `mapstructure:"schema"`
	Log          LogSettings      `mapstructure:"log"`
	Greptime     GreptimeSettings `mapstructure:"greptime"`
}

// LogSettings selects the slog level and handler.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GreptimeSettings points the report writer at a GreptimeDB instance. An
// empty endpoint disables it.
type GreptimeSettings struct {
	Endpoint string `mapstructure:"endpoint"`
	Database string `mapstructure:"database"`
	Table    string `mapstructure:"table"`
}

// flag names bound to settings keys when the command defines them
var flagKeys = map[string]string{
	"workers":           "workers",
	"innerWorkers":      "inner-workers",
	"chunkSize":         "chunk-size",
	"index":             "index",
	"schema":            "schema",
	"log.level":         "log-level",
	"log.format":        "log-format",
	"greptime.endpoint": "greptime-endpoint",
}

// LoadSettings reads defaults, an optional settings file, UNITSIGHT_*
// environment variables and finally any changed command line flags.
func LoadSettings(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("workers", 0)
	v.SetDefault("innerWorkers", 1)
	v.SetDefault("chunkSize", 256)
	v.SetDefault("index", "kdtree")
	v.SetDefault("schema", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("greptime.endpoint", "")
	v.SetDefault("greptime.database", "public")
	v.SetDefault("greptime.table", "unit_visibility")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("unitsight")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("UNITSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("greptime.endpoint", "UNITSIGHT_GREPTIME_ENDPOINT", "GREPTIMEDB_ENDPOINT")
	_ = v.BindEnv("greptime.database", "UNITSIGHT_GREPTIME_DATABASE", "GREPTIMEDB_DATABASE")
	_ = v.BindEnv("greptime.table", "UNITSIGHT_GREPTIME_TABLE", "GREPTIMEDB_TABLE")

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, err
	}
	return s, nil
}
