package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync/atomic"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Job struct {
	ID   string
	Args []string
	Ctx  context.Context
	Done chan error
}

// JobQueue bounds how many ffmpeg processes can queue up at once so
// a burst of uploads can't fork-bomb the host
type JobQueue struct {
	jobs       chan *Job
	running    atomic.Int32
	workers    int
	ffmpegPath string
}

// NewJobQueue initializes a new job queue that limits the
// max amount of jobs that can be queued at once
func NewJobQueue() *JobQueue {
	maxJobs := viper.GetInt("ffmpeg.max_jobs")
	workers := viper.GetInt("ffmpeg.workers")

	zap.L().Debug("Initializing job queue", zap.Int("max_jobs", maxJobs), zap.Int("workers", workers))

	return &JobQueue{
		jobs:       make(chan *Job, maxJobs),
		workers:    workers,
		ffmpegPath: viper.GetString("ffmpeg.path"),
	}
}

func (q *JobQueue) StartWorkerPool() {
	for range q.workers {
		go q.worker()
	}
}

func (q *JobQueue) worker() {
	for job := range q.jobs {
		err := q.run(job)

		job.Done <- err
		close(job.Done)

		q.running.Add(-1)

		if err != nil {
			zap.L().Error("FFmpeg job finished with an error",
				zap.String("job_id", job.ID),
				zap.Error(err))
		} else {
			zap.L().Debug("FFmpeg job finished successfully", zap.String("job_id", job.ID))
		}
	}
}

func (q *JobQueue) Enqueue(job *Job) error {
	select {
	case q.jobs <- job:
		q.running.Add(1)
		zap.L().Debug("New ffmpeg job enqueued", zap.Int32("enqueued", q.running.Load()), zap.String("job_id", job.ID))
		return nil
	default:
		return errors.New("job queue full")
	}
}

func (q *JobQueue) run(job *Job) error {
	if len(job.Args) == 0 {
		return errors.New("no arguments provided")
	}

	cmd := exec.CommandContext(job.Ctx, q.ffmpegPath, job.Args...)

	zap.L().Debug("Running FFmpeg command", zap.String("cmd", cmd.String()))

	stderrBuf := &bytes.Buffer{}
	cmd.Stderr = stderrBuf

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed, %w (%s)", err, stderrBuf.String())
	}

	return nil
}
