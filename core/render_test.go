package core

import (
	"errors"
	"strings"
	"testing"
)

func nightlyConfig() JobConfig {
	return JobConfig{
		JobName:  "run1",
		Nodes:    4,
		WallTime: "02:00:00",
		Suite:    "nightly",
	}
}

func countDirectives(script string) int {
	count := 0
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(line, "#SBATCH") {
			count++
		}
	}
	return count
}

func TestRenderMinimal(t *testing.T) {
	script, err := Render(nightlyConfig())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "#!/bin/bash\n" +
		"#SBATCH  --job-name=run1\n" +
		"#SBATCH  --nodes=4\n" +
		"#SBATCH  --output=run1.o%j\n" +
		"#SBATCH  --exclusive\n" +
		"#SBATCH  --time=02:00:00\n" +
		"\n" +
		"source load_compass_env.sh\n" +
		"compass run nightly\n"
	if script != want {
		t.Errorf("unexpected script:\n%s\nwant:\n%s", script, want)
	}
	if got := countDirectives(script); got != 5 {
		t.Errorf("got %d #SBATCH lines, want 5", got)
	}
	for _, flag := range []string{"--account=", "--qos=", "--reservation=",
		"--partition=", "--constraint="} {
		if strings.Contains(script, flag) {
			t.Errorf("script contains %s with no value configured", flag)
		}
	}
	lines := strings.Split(strings.TrimSuffix(script, "\n"), "\n")
	if lines[len(lines)-1] != "compass run nightly" {
		t.Errorf("invocation line = %q, want %q", lines[len(lines)-1], "compass run nightly")
	}
}

func TestRenderAccountAndQOS(t *testing.T) {
	cfg := nightlyConfig()
	cfg.Account = "climate"
	cfg.QOS = "premium"
	script, err := Render(cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	jobName := strings.Index(script, "#SBATCH  --job-name=run1")
	account := strings.Index(script, "#SBATCH  --account=climate")
	nodes := strings.Index(script, "#SBATCH  --nodes=4")
	wallTime := strings.Index(script, "#SBATCH  --time=02:00:00")
	qos := strings.Index(script, "#SBATCH  --qos=premium")
	if account < 0 || qos < 0 {
		t.Fatalf("missing account or qos line:\n%s", script)
	}
	if !(jobName < account && account < nodes) {
		t.Errorf("account line not between job-name and nodes:\n%s", script)
	}
	if !(wallTime < qos) {
		t.Errorf("qos line not after time line:\n%s", script)
	}
	if strings.Count(script, "#SBATCH  --qos=premium") != 1 {
		t.Errorf("want exactly one qos line:\n%s", script)
	}
}

func TestRenderOptionalOrder(t *testing.T) {
	cfg := nightlyConfig()
	cfg.QOS = "regular"
	cfg.Reservation = "maintenance"
	cfg.Partition = "compute"
	cfg.Constraint = "cpu"
	script, err := Render(cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	order := []string{
		"#SBATCH  --time=02:00:00",
		"#SBATCH  --qos=regular",
		"#SBATCH  --reservation=maintenance",
		"#SBATCH  --partition=compute",
		"#SBATCH  --constraint=cpu",
	}
	last := -1
	for _, line := range order {
		pos := strings.Index(script, line)
		if pos < 0 {
			t.Fatalf("missing line %q:\n%s", line, script)
		}
		if pos < last {
			t.Errorf("line %q out of order:\n%s", line, script)
		}
		last = pos
	}
}

func TestRenderIdempotent(t *testing.T) {
	cfg := nightlyConfig()
	cfg.Account = "climate"
	cfg.PreRunCommands = "module load gcc"
	first, err := Render(cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := Render(cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if first != second {
		t.Error("rendering the same config twice gave different output")
	}
}

func TestRenderPrePostVerbatim(t *testing.T) {
	cfg := nightlyConfig()
	cfg.PreRunCommands = "module load gcc\nexport OMP_NUM_THREADS=1\necho \"$PATH\""
	cfg.PostRunCommands = "compass cache update\nrm -rf scratch"
	script, err := Render(cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	pre := strings.Index(script, cfg.PreRunCommands)
	run := strings.Index(script, "compass run nightly")
	post := strings.Index(script, cfg.PostRunCommands)
	if pre < 0 || post < 0 {
		t.Fatalf("pre/post commands not inserted verbatim:\n%s", script)
	}
	if !(pre < run && run < post) {
		t.Errorf("pre/post commands on the wrong side of the invocation:\n%s", script)
	}
}

func TestRenderMissingFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*JobConfig)
	}{
		{"job_name", func(c *JobConfig) { c.JobName = "" }},
		{"nodes", func(c *JobConfig) { c.Nodes = 0 }},
		{"wall_time", func(c *JobConfig) { c.WallTime = "" }},
		{"suite", func(c *JobConfig) { c.Suite = "" }},
	}
	for _, tc := range cases {
		cfg := nightlyConfig()
		tc.mutate(&cfg)
		_, err := Render(cfg)
		if err == nil {
			t.Errorf("%s: expected error, got none", tc.field)
			continue
		}
		var missing *MissingFieldError
		if !errors.As(err, &missing) {
			t.Errorf("%s: error %v is not a MissingFieldError", tc.field, err)
			continue
		}
		if missing.Field != tc.field {
			t.Errorf("got field %q, want %q", missing.Field, tc.field)
		}
	}
}

func TestRenderNegativeNodesNotValidated(t *testing.T) {
	// Range validation is external; only the zero value is "missing"
	cfg := nightlyConfig()
	cfg.Nodes = -2
	script, err := Render(cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(script, "#SBATCH  --nodes=-2") {
		t.Errorf("negative node count not passed through:\n%s", script)
	}
}
