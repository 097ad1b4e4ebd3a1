package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	core "compass.dev/compass-job/core"
	db "compass.dev/compass-job/db"
	logger "compass.dev/compass-job/logger"
	"github.com/google/uuid"
)

type SubmitCommand struct {
	Help     bool     `short:"h" long:"help" description:"Show this help message"`
	Job      JobFlags `group:"Job Options"`
	Chdir    string   `short:"D" long:"chdir" description:"Working directory for the job (default: current directory)"`
	Skeleton string   `long:"skeleton" description:"Render a custom skeleton file instead of the built-in one"`
	DryRun   bool     `short:"n" long:"dry-run" description:"Write the job script but do not submit it"`
	Args     struct {
		Suite string `positional-arg-name:"suite" description:"compass suite to run"`
	} `positional-args:"true"`
}

var submitCommand SubmitCommand

func (x *SubmitCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	cfg, err := buildJobConfig(x.Job, x.Args.Suite)
	if err != nil {
		return errors.New("submit: " + err.Error())
	}
	script, err := renderJobScript(cfg, x.Skeleton)
	if err != nil {
		return errors.New("submit: " + err.Error())
	}

	workDir := x.Chdir
	if len(workDir) == 0 {
		if cwd, werr := os.Getwd(); werr == nil {
			workDir = cwd
		} else {
			workDir = "."
		}
	}
	scriptPath := filepath.Join(workDir, cfg.JobName+".sh")
	if err := os.WriteFile(scriptPath, []byte(script), 0755); err != nil {
		return errors.New("submit: " + err.Error())
	}
	logger.InfoPrintf("wrote job script %s", scriptPath)
	if x.DryRun {
		fmt.Printf("Job script written to %s (not submitted)\n", scriptPath)
		return nil
	}

	if !core.SchedulerAvailable() {
		return errors.New("submit: sbatch not found in PATH")
	}
	number, err := core.SubmitScript(workDir, scriptPath)
	if err != nil {
		return errors.New("submit: " + err.Error())
	}

	// Record the submission; the job is already queued, so a history
	// failure is only worth a warning
	if err := db.InitDatabase(db.DefaultPath()); err != nil {
		logger.WarningPrintf("cannot open submission history: %v", err)
	} else {
		defer db.CloseDatabase()
		record := db.Submission{
			ID:          uuid.NewString(),
			JobName:     cfg.JobName,
			Suite:       cfg.Suite,
			Machine:     x.Job.Machine,
			ScriptPath:  scriptPath,
			JobNumber:   number,
			State:       db.StateSubmitted,
			SubmittedAt: time.Now(),
		}
		if err := db.AddSubmission(record); err != nil {
			logger.WarningPrintf("cannot record submission: %v", err)
		}
	}

	fmt.Printf("Submitted batch job %d\n", number)
	return nil
}

func init() {
	parser.AddCommand("submit",
		"Submit a compass suite",
		"Render the SLURM batch script for a compass suite and submit it with sbatch",
		&submitCommand)
}
