package core

import (
	"strconv"
	"strings"
)

// Script fired off by the rendered job script to set up the compass
// environment on the compute node
const EnvLoadScript = "load_compass_env.sh"

// Data for a compass SLURM batch script
/*
#!/bin/bash
#SBATCH  --job-name=compass_nightly
#SBATCH  --account=climate
#SBATCH  --nodes=4
#SBATCH  --output=compass_nightly.o%j
#SBATCH  --exclusive
#SBATCH  --time=02:00:00

source load_compass_env.sh
compass run nightly
*/
type JobConfig struct {
	JobName  string `json:"job_name"`
	Account  string `json:"account"`
	Nodes    int    `json:"nodes"`
	WallTime string `json:"wall_time"`

	QOS         string `json:"qos"`
	Reservation string `json:"reservation"`
	Partition   string `json:"partition"`
	Constraint  string `json:"constraint"`

	// Inserted verbatim before/after the compass invocation
	PreRunCommands  string `json:"pre_run_commands"`
	PostRunCommands string `json:"post_run_commands"`

	Suite string `json:"suite"`
}

// A zero Nodes count is indistinguishable from the field being left out
// of the record, so it is reported as missing. Range checks beyond that
// (and the wall time format) are the caller's problem; SLURM rejects
// what it does not like.
func (c JobConfig) checkRequired() error {
	if len(c.JobName) == 0 {
		return &MissingFieldError{Field: "job_name"}
	}
	if c.Nodes == 0 {
		return &MissingFieldError{Field: "nodes"}
	}
	if len(c.WallTime) == 0 {
		return &MissingFieldError{Field: "wall_time"}
	}
	if len(c.Suite) == 0 {
		return &MissingFieldError{Field: "suite"}
	}
	return nil
}

// Render produces the batch script for a job configuration. Optional
// directives are emitted only when their field is set; empty pre/post
// command blocks contribute no line at all.
func Render(cfg JobConfig) (string, error) {
	if err := cfg.checkRequired(); err != nil {
		return "", err
	}
	lines := []string{
		"#!/bin/bash",
		"#SBATCH  --job-name=" + cfg.JobName,
	}
	if len(cfg.Account) > 0 {
		lines = append(lines, "#SBATCH  --account="+cfg.Account)
	}
	lines = append(lines,
		"#SBATCH  --nodes="+strconv.Itoa(cfg.Nodes),
		"#SBATCH  --output="+cfg.JobName+".o%j",
		"#SBATCH  --exclusive",
		"#SBATCH  --time="+cfg.WallTime,
	)
	optional := []struct {
		flag  string
		value string
	}{
		{"qos", cfg.QOS},
		{"reservation", cfg.Reservation},
		{"partition", cfg.Partition},
		{"constraint", cfg.Constraint},
	}
	for _, opt := range optional {
		if len(opt.value) > 0 {
			lines = append(lines, "#SBATCH  --"+opt.flag+"="+opt.value)
		}
	}
	lines = append(lines, "", "source "+EnvLoadScript)
	if len(cfg.PreRunCommands) > 0 {
		lines = append(lines, cfg.PreRunCommands)
	}
	lines = append(lines, "compass run "+cfg.Suite)
	if len(cfg.PostRunCommands) > 0 {
		lines = append(lines, cfg.PostRunCommands)
	}
	return strings.Join(lines, "\n") + "\n", nil
}
