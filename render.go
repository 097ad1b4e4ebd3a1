package main

import (
	"errors"
	"fmt"
	"os"

	core "compass.dev/compass-job/core"
	logger "compass.dev/compass-job/logger"
)

// JobFlags are the submission options shared by the render and submit
// commands. Anything left unset falls back to the machine profile.
type JobFlags struct {
	JobName     string `short:"J" long:"job-name" description:"Name for the job allocation (default: compass_<suite>)"`
	Account     string `short:"A" long:"account" description:"Charge resources used by this job to specified account"`
	Nodes       int    `short:"N" long:"nodes" description:"Number of nodes to be allocated to this job"`
	WallTime    string `short:"t" long:"time" description:"Wall time limit hours:minutes:seconds"`
	QOS         string `short:"q" long:"qos" description:"Quality of service for the job"`
	Reservation string `long:"reservation" description:"Allocate resources from the named reservation"`
	Partition   string `short:"p" long:"partition" description:"Request a specific partition for the resource allocation"`
	Constraint  string `short:"C" long:"constraint" description:"Node feature constraint"`
	PreRun      string `long:"pre-run" description:"Commands inserted before the compass invocation"`
	PostRun     string `long:"post-run" description:"Commands inserted after the compass invocation"`
	Machine     string `short:"m" long:"machine" description:"Machine profile supplying submission defaults"`
}

type RenderCommand struct {
	Help     bool     `short:"h" long:"help" description:"Show this help message"`
	Job      JobFlags `group:"Job Options"`
	Output   string   `short:"o" long:"output" description:"Write the job script to a file instead of stdout"`
	Skeleton string   `long:"skeleton" description:"Render a custom skeleton file instead of the built-in one"`
	Args     struct {
		Suite string `positional-arg-name:"suite" description:"compass suite to run"`
	} `positional-args:"true"`
}

var renderCommand RenderCommand

// buildJobConfig merges command line values with the machine profile
// defaults into the record the renderer consumes.
func buildJobConfig(flags JobFlags, suite string) (core.JobConfig, error) {
	if len(suite) == 0 {
		return core.JobConfig{}, errors.New("missing suite name")
	}
	machine, err := core.GetMachine(flags.Machine)
	if err != nil {
		return core.JobConfig{}, err
	}
	cfg := core.JobConfig{
		JobName:         flags.JobName,
		Account:         flags.Account,
		Nodes:           flags.Nodes,
		WallTime:        flags.WallTime,
		QOS:             flags.QOS,
		Reservation:     flags.Reservation,
		Partition:       flags.Partition,
		Constraint:      flags.Constraint,
		PreRunCommands:  flags.PreRun,
		PostRunCommands: flags.PostRun,
		Suite:           suite,
	}
	cfg = core.ApplyDefaults(cfg, machine)
	if len(cfg.JobName) == 0 {
		cfg.JobName = "compass_" + suite
	}
	logger.DebugObj("job config", cfg)
	return cfg, nil
}

func renderJobScript(cfg core.JobConfig, skeletonFile string) (string, error) {
	if len(skeletonFile) == 0 {
		return core.Render(cfg)
	}
	skeleton, err := os.ReadFile(skeletonFile)
	if err != nil {
		return "", errors.New("cannot read skeleton: " + skeletonFile)
	}
	return core.RenderTemplate(cfg, string(skeleton))
}

func (x *RenderCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	cfg, err := buildJobConfig(x.Job, x.Args.Suite)
	if err != nil {
		return errors.New("render: " + err.Error())
	}
	script, err := renderJobScript(cfg, x.Skeleton)
	if err != nil {
		return errors.New("render: " + err.Error())
	}
	if len(x.Output) > 0 {
		if err := os.WriteFile(x.Output, []byte(script), 0755); err != nil {
			return errors.New("render: " + err.Error())
		}
		logger.InfoPrintf("wrote job script %s", x.Output)
		return nil
	}
	fmt.Print(script)
	return nil
}

func init() {
	parser.AddCommand("render",
		"Render a job script",
		"Render the SLURM batch script for a compass suite without submitting it",
		&renderCommand)
}
