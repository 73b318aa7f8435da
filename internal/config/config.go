// Package config contains barchart Config and the code to load it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "BARCHART"

type Log struct {
	// Level is one of trace, debug, info, warn, error, fatal or none.
	Level string `mapstructure:"level" toml:"level" yaml:"level" json:"level"`
	// File is an optional log file. Logs go to stderr when empty.
	File string `mapstructure:"file" toml:"file" yaml:"file" json:"file"`
}

type Render struct {
	// Width and Height are used by documents that do not set them.
	Width  float64 `mapstructure:"width" toml:"width" yaml:"width" json:"width"`
	Height float64 `mapstructure:"height" toml:"height" yaml:"height" json:"height"`
	// Output is the directory charts are written to. "-" writes to stdout.
	Output string `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	// Jobs bounds the number of documents rendered at the same time.
	Jobs int `mapstructure:"jobs" toml:"jobs" yaml:"jobs" json:"jobs"`
}

type HTTPServer struct {
	Address      string        `mapstructure:"address" toml:"address" yaml:"address" json:"address"`
	Port         int           `mapstructure:"port" toml:"port" yaml:"port" json:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" toml:"read_timeout" yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" toml:"write_timeout" yaml:"write_timeout" json:"write_timeout"`
	// MaxBody limits the size of documents posted to the render endpoint.
	MaxBody int64 `mapstructure:"max_body" toml:"max_body" yaml:"max_body" json:"max_body"`
}

func (h HTTPServer) Addr() string {
	return fmt.Sprintf("%s:%d", h.Address, h.Port)
}

type Prometheus struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
}

type Config struct {
	Log        Log        `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
	Render     Render     `mapstructure:"render" toml:"render" yaml:"render" json:"render"`
	HTTP       HTTPServer `mapstructure:"http_server" toml:"http_server" yaml:"http_server" json:"http_server"`
	Prometheus Prometheus `mapstructure:"prometheus" toml:"prometheus" yaml:"prometheus" json:"prometheus"`
}

type Meta struct {
	FileNotFound bool
}

var defaults = map[string]any{
	"log.level":                 "info",
	"log.file":                  "",
	"render.width":              800.0,
	"render.height":             600.0,
	"render.output":             ".",
	"render.jobs":               4,
	"http_server.address":       "",
	"http_server.port":          8000,
	"http_server.read_timeout":  "10s",
	"http_server.write_timeout": "10s",
	"http_server.max_body":      1 << 20,
	"prometheus.enabled":        false,
}

var bindPFlags = []string{
	"log.level", "log.file", "render.output", "render.jobs", "render.width", "render.height",
	"http_server.address", "http_server.port", "prometheus.enabled",
}

func DefineFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("log.level", "", "info", "set the log level: trace, debug, info, warn, error, fatal or none")
	cmd.PersistentFlags().StringP("log.file", "", "", "optional log file - if not specified logs go to STDERR")
	cmd.PersistentFlags().StringP("render.output", "o", ".", "directory charts are written to, - for stdout")
	cmd.PersistentFlags().IntP("render.jobs", "j", 4, "number of charts rendered in parallel")
	cmd.PersistentFlags().Float64P("render.width", "", 800, "default chart width")
	cmd.PersistentFlags().Float64P("render.height", "", 600, "default chart height")
	cmd.PersistentFlags().StringP("http_server.address", "a", "", "interface address to listen on")
	cmd.PersistentFlags().IntP("http_server.port", "p", 8000, "port to bind HTTP server to")
	cmd.PersistentFlags().BoolP("prometheus.enabled", "", false, "enable Prometheus metrics endpoint")
}

// GetConfig merges defaults, the optional config file, BARCHART_ environment
// variables and the flags of cmd, in increasing order of priority.
func GetConfig(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for _, flag := range bindPFlags {
			if f := cmd.Flags().Lookup(flag); f != nil {
				_ = v.BindPFlag(flag, f)
			}
		}
	}

	meta := Meta{}
	if configFile != "" {
		v.SetConfigFile(configFile)
		err := v.ReadInConfig()
		if err != nil {
			var configFileNotFoundError *os.PathError
			if errors.As(err, &configFileNotFoundError) {
				meta.FileNotFound = true
			} else {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, Meta{}, err
	}
	return conf, meta, nil
}

func (c Config) Validate() error {
	if c.Render.Jobs < 1 {
		return fmt.Errorf("render.jobs should be at least 1, got %d", c.Render.Jobs)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render dimension should be positive, got %gx%g", c.Render.Width, c.Render.Height)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http_server.port out of range: %d", c.HTTP.Port)
	}
	if c.HTTP.MaxBody <= 0 {
		return fmt.Errorf("http_server.max_body should be positive")
	}
	return nil
}
