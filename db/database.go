package db

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Submission states tracked for the history listing. Anything past
// SUBMITTED/PENDING/RUNNING comes straight from squeue.
const (
	StateSubmitted = "SUBMITTED"
	StateCanceled  = "CANCELLED"
	StateCompleted = "COMPLETED"
)

// Submission is one recorded sbatch invocation.
type Submission struct {
	ID          string    `json:"id"`
	JobName     string    `json:"job_name"`
	Suite       string    `json:"suite"`
	Machine     string    `json:"machine"`
	ScriptPath  string    `json:"script_path"`
	JobNumber   int       `json:"job_number"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
}

var db *sql.DB

// InitDatabase opens the SQLite submission history at path
func InitDatabase(path string) error {
	var err error
	db, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	// Create the submissions table
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		job_name TEXT,
		suite TEXT,
		machine TEXT,
		script_path TEXT,
		job_number INTEGER,
		state TEXT,
		submitted_at TEXT
	)`)
	return err
}

// AddSubmission adds a new submission record to the database
func AddSubmission(s Submission) error {
	_, err := db.Exec("INSERT INTO submissions (id, job_name, suite, machine, script_path, job_number, state, submitted_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		s.ID, s.JobName, s.Suite, s.Machine, s.ScriptPath, s.JobNumber,
		s.State, s.SubmittedAt.Format(time.RFC3339))
	return err
}

// UpdateState updates the recorded state of a submission by SLURM job number
func UpdateState(jobNumber int, state string) error {
	_, err := db.Exec("UPDATE submissions SET state = ? WHERE job_number = ?",
		state, jobNumber)
	return err
}

// GetSubmission returns the submission recorded for a SLURM job number
func GetSubmission(jobNumber int) (Submission, error) {
	row := db.QueryRow("SELECT id, job_name, suite, machine, script_path, job_number, state, submitted_at FROM submissions WHERE job_number = ?",
		jobNumber)
	return scanSubmission(row.Scan)
}

// ListSubmissions returns all recorded submissions, newest first.
// A non-empty suite restricts the listing to that suite.
func ListSubmissions(suite string) ([]Submission, error) {
	query := "SELECT id, job_name, suite, machine, script_path, job_number, state, submitted_at FROM submissions ORDER BY submitted_at DESC"
	args := []interface{}{}
	if len(suite) > 0 {
		query = "SELECT id, job_name, suite, machine, script_path, job_number, state, submitted_at FROM submissions WHERE suite = ? ORDER BY submitted_at DESC"
		args = append(args, suite)
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []Submission
	for rows.Next() {
		s, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

func scanSubmission(scan func(dest ...interface{}) error) (Submission, error) {
	var s Submission
	var submittedAt string
	if err := scan(&s.ID, &s.JobName, &s.Suite, &s.Machine, &s.ScriptPath,
		&s.JobNumber, &s.State, &submittedAt); err != nil {
		return Submission{}, err
	}
	if t, err := time.Parse(time.RFC3339, submittedAt); err == nil {
		s.SubmittedAt = t
	}
	return s, nil
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
