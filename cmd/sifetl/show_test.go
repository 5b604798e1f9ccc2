package main

import (
	"bytes"
	"context"
	goerrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hpetrov29/sifetl/config"
	"github.com/hpetrov29/sifetl/errors"
	"github.com/hpetrov29/sifetl/logging"
	siftest "github.com/hpetrov29/sifetl/testing"
	"github.com/stretchr/testify/require"
)

func TestShowCommand(t *testing.T) {
	dir := t.TempDir()
	siftest.WriteFile(t, dir, "data/a.csv", "item,amount\napple,3\npear,5\n")
	cfgPath := siftest.WriteFile(t, dir, "conf.json", `{"spark_conf": {"master": "local[2]", "appname": "show-test"}, "log": {"level": "OFF"}, "config": {"temp_dir": "`+filepath.ToSlash(dir)+`"}}`)

	var out bytes.Buffer
	cmd := newShowCommand(logging.Discard())
	cmd.SetOut(&out)
	cmd.SetArgs([]string{filepath.Join(dir, "data"), "--config", cfgPath, "--rows", "1"})
	require.Nil(t, cmd.ExecuteContext(context.Background()))
	require.Contains(t, out.String(), "apple")
	require.NotContains(t, out.String(), "pear")
	require.Contains(t, out.String(), "2 rows from 1 csv files")
}

func TestShowCommandErrors(t *testing.T) {
	dir := t.TempDir()
	cmd := newShowCommand(logging.Discard())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(dir, "missing"), "--config", filepath.Join(dir, "none.json")})
	err := cmd.ExecuteContext(context.Background())
	var cerr *errors.ConfigError
	require.True(t, goerrors.As(err, &cerr))

	cwd, err := os.Getwd()
	require.Nil(t, err)
	require.Nil(t, os.Chdir(dir))
	defer os.Chdir(cwd)
	cmd = newShowCommand(logging.Discard())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(dir, "missing")})
	err = cmd.ExecuteContext(context.Background())
	var perr *errors.PathNotFoundError
	require.True(t, goerrors.As(err, &perr))
}

func TestLoadConfigDefaultIsOptional(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), config.DefaultPath), false)
	require.Nil(t, err)
	require.Equal(t, config.DefaultMaster, cfg.Master)
}
