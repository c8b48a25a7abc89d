package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/database"
)

// WALCheckpointJob periodically forces a WAL checkpoint on the universe
// database so the WAL file does not grow unbounded between restarts.
type WALCheckpointJob struct {
	db  *database.DB
	log zerolog.Logger
}

// NewWALCheckpointJob creates a new WAL checkpoint job
func NewWALCheckpointJob(db *database.DB, log zerolog.Logger) *WALCheckpointJob {
	return &WALCheckpointJob{
		db:  db,
		log: log.With().Str("job", "wal_checkpoint").Logger(),
	}
}

// Name returns the job name
func (j *WALCheckpointJob) Name() string {
	return "wal_checkpoint"
}

// Run executes the WAL checkpoint
func (j *WALCheckpointJob) Run() error {
	busy, logPages, checkpointed, err := j.db.CheckpointWAL()
	if err != nil {
		return err
	}

	j.log.Debug().
		Str("database", j.db.Name()).
		Int64("busy", busy).
		Int64("log_pages", logPages).
		Int64("checkpointed", checkpointed).
		Msg("WAL checkpoint completed")

	return nil
}
