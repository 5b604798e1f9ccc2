// Package config loads the JSON document which configures a sifetl run.
//
// Recognized keys:
//
//	{
//	  "spark_conf": {"master": "local[*]", "appname": "myapp"},
//	  "log": {"level": "WARN"},
//	  "config": {"partition_size": 128, "num_in_memory_partitions": 100, "temp_dir": "", "infer_schema": false}
//	}
//
// Every key is optional. The "config" object is kept as-is in Config.Raw, and the engine
// tunables it recognizes are decoded into Config.Engine.
package config

import (
	"fmt"
	"os"

	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/logging"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

const (
	// DefaultPath is where drivers look for a config document, relative to the working directory
	DefaultPath = "json/sales.json"
	// DefaultMaster runs the engine locally with one worker per core
	DefaultMaster = "local[*]"
	// DefaultAppName names sessions which are not given an app name
	DefaultAppName = "myapp"
)

// EngineConf holds the engine tunables recognized within the "config" object
type EngineConf struct {
	PartitionSize         int    `mapstructure:"partition_size"`           // maximum rows per Partition
	NumInMemoryPartitions int    `mapstructure:"num_in_memory_partitions"` // Partitions retained in memory before spilling to disk
	TempDir               string `mapstructure:"temp_dir"`                 // where spilled Partitions are written
	InferSchema           bool   `mapstructure:"infer_schema"`             // infer CSV column types instead of reading strings
}

// Config is the configuration of a sifetl run. It is read-only once loaded.
type Config struct {
	Master   string
	AppName  string
	LogLevel string // empty when no level is configured
	Engine   EngineConf
	Raw      map[string]interface{} // the "config" object, passed through untouched
}

// Default returns the configuration used when a document sets nothing
func Default() *Config {
	return &Config{
		Master:  DefaultMaster,
		AppName: DefaultAppName,
		Raw:     map[string]interface{}{},
	}
}

// HasLogLevel returns true iff a log level was configured
func (c *Config) HasLogLevel() bool {
	return len(c.LogLevel) > 0
}

// Load reads and parses the config document at path
func Load(path string) (*Config, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Err: err}
	}
	return Parse(doc)
}

// Parse parses a config document
func Parse(doc []byte) (*Config, error) {
	if !gjson.ValidBytes(doc) {
		return nil, &errors.ConfigError{Err: fmt.Errorf("document is not valid JSON")}
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, &errors.ConfigError{Err: fmt.Errorf("document must be a JSON object")}
	}
	cfg := Default()
	var err error
	if cfg.Master, err = lookupString(root, "spark_conf.master", DefaultMaster); err != nil {
		return nil, err
	}
	if cfg.AppName, err = lookupString(root, "spark_conf.appname", DefaultAppName); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = lookupString(root, "log.level", ""); err != nil {
		return nil, err
	}
	if cfg.HasLogLevel() {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			return nil, &errors.ConfigError{Key: "log.level", Err: err}
		}
	}
	if raw := root.Get("config"); raw.Exists() && raw.Type != gjson.Null {
		obj, ok := raw.Value().(map[string]interface{})
		if !ok {
			return nil, &errors.ConfigError{Key: "config", Err: fmt.Errorf("must be an object")}
		}
		cfg.Raw = obj
		if err := decodeEngineConf(obj, &cfg.Engine); err != nil {
			return nil, &errors.ConfigError{Key: "config", Err: err}
		}
	}
	return cfg, nil
}

func lookupString(root gjson.Result, key string, defaultValue string) (string, error) {
	value := root.Get(key)
	if !value.Exists() || value.Type == gjson.Null {
		return defaultValue, nil
	}
	if value.Type != gjson.String {
		return "", &errors.ConfigError{Key: key, Err: fmt.Errorf("must be a string, was %s", value.Raw)}
	}
	return value.Str, nil
}

func decodeEngineConf(raw map[string]interface{}, out *EngineConf) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
