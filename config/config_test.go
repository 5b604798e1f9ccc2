package config

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hpetrov29/sifetl/errors"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	require.Nil(t, err)
	require.Equal(t, "local[*]", cfg.Master)
	require.Equal(t, "myapp", cfg.AppName)
	require.False(t, cfg.HasLogLevel())
	require.Equal(t, EngineConf{}, cfg.Engine)
	require.Empty(t, cfg.Raw)
}

func TestParseFullDocument(t *testing.T) {
	cfg, err := Parse([]byte(`{
		"spark_conf": {"master": "local[2]", "appname": "sales"},
		"log": {"level": "WARN"},
		"config": {"partition_size": 64, "num_in_memory_partitions": "8", "temp_dir": "/tmp/x", "infer_schema": true, "owner": "etl"}
	}`))
	require.Nil(t, err)
	require.Equal(t, "local[2]", cfg.Master)
	require.Equal(t, "sales", cfg.AppName)
	require.Equal(t, "WARN", cfg.LogLevel)
	require.Equal(t, EngineConf{
		PartitionSize:         64,
		NumInMemoryPartitions: 8,
		TempDir:               "/tmp/x",
		InferSchema:           true,
	}, cfg.Engine)
	require.Equal(t, "etl", cfg.Raw["owner"])
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"invalid json":     `{"spark_conf":`,
		"not an object":    `[1, 2]`,
		"non-string key":   `{"spark_conf": {"master": 4}}`,
		"unknown level":    `{"log": {"level": "LOUD"}}`,
		"non-object conf":  `{"config": "x"}`,
		"undecodable conf": `{"config": {"partition_size": "many"}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			var cerr *errors.ConfigError
			require.True(t, goerrors.As(err, &cerr), "expected ConfigError, got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.json")
	require.Nil(t, os.WriteFile(path, []byte(`{"spark_conf": {"appname": "sales"}}`), 0644))
	cfg, err := Load(path)
	require.Nil(t, err)
	require.Equal(t, "sales", cfg.AppName)
	require.Equal(t, DefaultMaster, cfg.Master)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	var cerr *errors.ConfigError
	require.True(t, goerrors.As(err, &cerr))
	require.True(t, goerrors.Is(err, os.ErrNotExist))
}
