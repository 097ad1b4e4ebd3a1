package main

import (
	"errors"
	"fmt"

	core "compass.dev/compass-job/core"
	db "compass.dev/compass-job/db"
	logger "compass.dev/compass-job/logger"
)

type CancelCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
	Args struct {
		JobNumber int `positional-arg-name:"jobid" description:"SLURM job number to cancel"`
	} `positional-args:"true" required:"1"`
}

var cancelCommand CancelCommand

func (x *CancelCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	if err := core.CancelJob(x.Args.JobNumber); err != nil {
		return errors.New("cancel: " + err.Error())
	}
	if err := db.InitDatabase(db.DefaultPath()); err == nil {
		defer db.CloseDatabase()
		if err := db.UpdateState(x.Args.JobNumber, db.StateCanceled); err != nil {
			logger.WarningPrintf("cannot update job %d: %v", x.Args.JobNumber, err)
		}
	}
	fmt.Printf("Canceled job: %v\n", x.Args.JobNumber)
	return nil
}

func init() {
	parser.AddCommand("cancel",
		"Cancel a submitted job",
		"Cancel a recorded compass suite submission with scancel",
		&cancelCommand)
}
