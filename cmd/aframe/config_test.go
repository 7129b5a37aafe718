package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aframe.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Host != defaultHost || cfg.Server.Port != defaultPort {
			t.Errorf("defaults = %+v", cfg.Server)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "server:\n  host: 0.0.0.0\n  port: 9000\ntemplate: grid\nworkers: 3\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9000 {
			t.Errorf("server = %+v", cfg.Server)
		}
		if cfg.Template != "grid" || cfg.Workers != 3 {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "bogus: true\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})
}

func TestConfigMerge(t *testing.T) {
	t.Parallel()

	t.Run("config fills default-valued flags", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Server: ServerConfig{Host: "0.0.0.0", Port: 9000}, Workers: 3}
		flags := &cliFlags{host: defaultHost, port: defaultPort}
		cfg.merge(flags)

		if flags.host != "0.0.0.0" || flags.port != 9000 || flags.workers != 3 {
			t.Errorf("merged flags = %+v", flags)
		}
	})

	t.Run("explicit flags win", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Server: ServerConfig{Host: "0.0.0.0", Port: 9000}, Workers: 3}
		flags := &cliFlags{host: "10.0.0.1", port: 8888, workers: 1}
		cfg.merge(flags)

		if flags.host != "10.0.0.1" || flags.port != 8888 || flags.workers != 1 {
			t.Errorf("merged flags = %+v", flags)
		}
	})
}
