package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wiretrace/xnet/internal/config"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Traversal.IncludeDNS || len(cfg.Traversal.SkipTypes) != 0 {
		t.Fatalf("expected zero-value defaults, got %+v", cfg.Traversal)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xnet.yaml")
	content := "traversal:\n  skip_types: [\"TP\", \"FID\"]\n  include_dns: true\n  stop_nets: [\"VREF\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Traversal.IncludeDNS {
		t.Errorf("expected include_dns=true")
	}
	if !cfg.Traversal.SkipTypeSet()["TP"] || !cfg.Traversal.SkipTypeSet()["FID"] {
		t.Errorf("expected skip types TP and FID, got %v", cfg.Traversal.SkipTypes)
	}
	if !cfg.Traversal.StopNetSet()["VREF"] {
		t.Errorf("expected VREF in stop-net overrides, got %v", cfg.Traversal.StopNets)
	}
}
