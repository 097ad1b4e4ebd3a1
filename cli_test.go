package main

import (
	"path/filepath"
	"testing"

	core "compass.dev/compass-job/core"
)

func TestBuildJobConfigDefaults(t *testing.T) {
	t.Setenv(core.ConfigEnv, filepath.Join(t.TempDir(), "config.json"))
	config := core.Config{
		"chrysalis": {
			Account:   "e3sm",
			Partition: "compute",
			WallTime:  "02:00:00",
			Nodes:     4,
		},
	}
	if err := core.WriteConfig(config); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	flags := JobFlags{Machine: "chrysalis", Nodes: 2}
	cfg, err := buildJobConfig(flags, "nightly")
	if err != nil {
		t.Fatalf("buildJobConfig: %v", err)
	}
	if cfg.JobName != "compass_nightly" {
		t.Errorf("job name = %q, want compass_nightly", cfg.JobName)
	}
	if cfg.Nodes != 2 {
		t.Errorf("nodes = %d, want explicit flag value 2", cfg.Nodes)
	}
	if cfg.Account != "e3sm" || cfg.WallTime != "02:00:00" {
		t.Errorf("machine defaults not applied: %+v", cfg)
	}
}

func TestBuildJobConfigNoSuite(t *testing.T) {
	t.Setenv(core.ConfigEnv, filepath.Join(t.TempDir(), "config.json"))
	if _, err := buildJobConfig(JobFlags{}, ""); err == nil {
		t.Error("expected error for missing suite")
	}
}

func TestBuildJobConfigUnknownMachine(t *testing.T) {
	t.Setenv(core.ConfigEnv, filepath.Join(t.TempDir(), "config.json"))
	if _, err := buildJobConfig(JobFlags{Machine: "frontier"}, "nightly"); err == nil {
		t.Error("expected error for unknown machine with no config")
	}
}
