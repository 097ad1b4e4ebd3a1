package main

import (
	"errors"
	"fmt"

	core "compass.dev/compass-job/core"
	db "compass.dev/compass-job/db"
	logger "compass.dev/compass-job/logger"
)

type JobsCommand struct {
	Help    bool   `short:"h" long:"help" description:"Show this help message"`
	Refresh bool   `short:"r" long:"refresh" description:"Query squeue for the current state of active jobs"`
	Suite   string `short:"s" long:"suite" description:"Only show submissions for this suite"`
}

var jobsCommand JobsCommand

func activeState(state string) bool {
	return state != db.StateCanceled && state != db.StateCompleted &&
		state != "FAILED" && state != "TIMEOUT"
}

func (x *JobsCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	if err := db.InitDatabase(db.DefaultPath()); err != nil {
		return errors.New("jobs: cannot open submission history")
	}
	defer db.CloseDatabase()

	submissions, err := db.ListSubmissions(x.Suite)
	if err != nil {
		return errors.New("jobs: " + err.Error())
	}
	if len(submissions) == 0 {
		fmt.Println("No recorded submissions")
		return nil
	}

	if x.Refresh {
		for i, s := range submissions {
			if !activeState(s.State) {
				continue
			}
			state, serr := core.JobState(s.JobNumber)
			if serr != nil {
				logger.WarningPrintf("cannot refresh job %d: %v", s.JobNumber, serr)
				continue
			}
			if state != s.State {
				if uerr := db.UpdateState(s.JobNumber, state); uerr != nil {
					logger.WarningPrintf("cannot update job %d: %v", s.JobNumber, uerr)
				}
				submissions[i].State = state
			}
		}
	}

	fmt.Printf("%-8s %-20s %-16s %-12s %-10s %s\n",
		"JOBID", "NAME", "SUITE", "MACHINE", "STATE", "SUBMITTED")
	for _, s := range submissions {
		machine := s.Machine
		if len(machine) == 0 {
			machine = "-"
		}
		fmt.Printf("%-8d %-20s %-16s %-12s %-10s %s\n",
			s.JobNumber, s.JobName, s.Suite, machine, s.State,
			s.SubmittedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func init() {
	parser.AddCommand("jobs",
		"List submitted jobs",
		"List the compass suite submissions recorded in the local history",
		&jobsCommand)
}
