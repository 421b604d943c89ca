package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wearwise/style-advisor/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID)
}

type worker struct {
	jobRepo      repositories.RecommendationJobRepository
	advisor      AdvisorService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

func NewWorker(
	jobRepo repositories.RecommendationJobRepository,
	advisor AdvisorService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	return &worker{
		jobRepo:      jobRepo,
		advisor:      advisor,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Info().Int("concurrency", w.concurrency).Msg("Starting recommendation worker")

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Info().Msg("Stopping recommendation worker")
		close(w.stopChan)
		w.wg.Wait()
		log.Info().Msg("Recommendation worker stopped")
	})
}

// EnqueueJob implements Worker. It never blocks; a job that does not fit in
// the queue stays queued in the repository for the poller.
func (w *worker) EnqueueJob(jobID uuid.UUID) {
	select {
	case <-w.stopChan:
		log.Warn().Str("job_id", jobID.String()).Msg("Worker stopped, cannot enqueue job")
		return
	default:
	}

	select {
	case w.jobQueue <- jobID:
		log.Debug().Str("job_id", jobID.String()).Msg("Job enqueued")
	default:
		log.Warn().Str("job_id", jobID.String()).Msg("Job queue full, leaving job for the poller")
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logger := log.With().Int("worker", workerID).Logger()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case jobID := <-w.jobQueue:
			jobCtx := logger.WithContext(ctx)
			if err := w.advisor.ProcessJob(jobCtx, jobID); err != nil {
				logger.Error().Err(err).Str("job_id", jobID.String()).Msg("Failed to process job")
			}
		}
	}
}

// pollPendingJobs re-enqueues jobs still marked queued. Jobs already claimed
// by another worker are skipped in ProcessJob.
func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pendingJobs, err := w.jobRepo.FindPendingJobs(10)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to fetch pending jobs")
				continue
			}

			for _, job := range pendingJobs {
				select {
				case w.jobQueue <- job.ID:
				default:
				}
			}
		}
	}
}
