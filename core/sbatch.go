package core

import (
	"errors"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// SLURM client commands
const (
	SBatchCommand  = "sbatch"
	SCancelCommand = "scancel"
	SQueueCommand  = "squeue"
)

var jobNumberRe = regexp.MustCompile(`Submitted batch job (\d+)`)

// SchedulerAvailable reports whether sbatch can be found on PATH.
func SchedulerAvailable() bool {
	_, err := exec.LookPath(SBatchCommand)
	return err == nil
}

// ParseJobNumber extracts the job number from sbatch output.
func ParseJobNumber(out string) (int, error) {
	match := jobNumberRe.FindStringSubmatch(out)
	if match == nil {
		return 0, errors.New("sbatch: unexpected output: " + strings.TrimSpace(out))
	}
	return strconv.Atoi(match[1])
}

// SubmitScript runs sbatch on a rendered job script from the given
// working directory and returns the SLURM job number.
func SubmitScript(workDir, scriptPath string) (int, error) {
	cmd := exec.Command(SBatchCommand, scriptPath)
	cmd.Dir = workDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, errors.New("sbatch: " + strings.TrimSpace(string(out)))
	}
	return ParseJobNumber(string(out))
}

func CancelJob(number int) error {
	out, err := exec.Command(SCancelCommand,
		strconv.Itoa(number)).CombinedOutput()
	if err != nil {
		return errors.New("scancel: " + strings.TrimSpace(string(out)))
	}
	return nil
}

// JobState asks squeue for the state of a job. A job squeue no longer
// knows about has left the queue one way or another.
func JobState(number int) (string, error) {
	out, err := exec.Command(SQueueCommand, "--noheader", "--format=%T",
		"--job", strconv.Itoa(number)).Output()
	if err != nil {
		return "", errors.New("squeue: unable to query job state")
	}
	state := strings.TrimSpace(string(out))
	if len(state) == 0 {
		return "COMPLETED", nil
	}
	return state, nil
}
