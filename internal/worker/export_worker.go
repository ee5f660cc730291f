// Package worker runs background rebuilds of the schedule workbook. Tasks
// are queued through Redis when it is available and fall back to an
// in-process channel when it is not, so booking writes never block on the
// export pipeline.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"estudio/internal/metrics"
	"estudio/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	exportQueueKey = "estudio:exports:queue"
	deadLetterKey  = "estudio:exports:dead"

	redisPopTimeout = time.Second
	idleSleep       = 500 * time.Millisecond
)

// ScheduleExporter builds the workbook for one date range.
type ScheduleExporter interface {
	Export(ctx context.Context, start, end time.Time) (string, error)
}

// ExportTask describes one workbook rebuild request.
type ExportTask struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportWorker struct {
	exporter ScheduleExporter
	redis    *redis.Client
	retry    RetryPolicy
	local    chan ExportTask
	logger   *zerolog.Logger
}

// NewExportWorker creates a worker. redisClient may be nil, in which case
// every task goes through the in-process queue only.
func NewExportWorker(exporter ScheduleExporter, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	return &ExportWorker{
		exporter: exporter,
		redis:    redisClient,
		retry:    retry,
		local:    make(chan ExportTask, models.WorkerQueueSize),
		logger:   logger,
	}
}

// EnqueueScheduleExport queues a workbook rebuild for [start, end).
func (w *ExportWorker) EnqueueScheduleExport(ctx context.Context, start, end time.Time) error {
	task := ExportTask{Start: start, End: end, CreatedAt: time.Now()}

	if w.redis != nil {
		data, err := json.Marshal(task)
		if err != nil {
			return fmt.Errorf("failed to marshal export task: %w", err)
		}
		err = w.redis.LPush(ctx, exportQueueKey, data).Err()
		if err == nil {
			return nil
		}
		w.logger.Warn().Err(err).Msg("redis enqueue failed, using local queue")
	}

	select {
	case w.local <- task:
		return nil
	default:
		return fmt.Errorf("export queue is full")
	}
}

// Start consumes tasks until ctx is cancelled. Run it in its own goroutine.
func (w *ExportWorker) Start(ctx context.Context) {
	w.logger.Info().Bool("redis", w.redis != nil).Msg("export worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("export worker stopped")
			return
		case task := <-w.local:
			w.processTask(ctx, task)
		default:
		}

		task, ok := w.popRedis(ctx)
		if ok {
			w.processTask(ctx, task)
			continue
		}

		select {
		case <-ctx.Done():
		case task := <-w.local:
			w.processTask(ctx, task)
		case <-time.After(idleSleep):
		}
	}
}

func (w *ExportWorker) popRedis(ctx context.Context) (ExportTask, bool) {
	if w.redis == nil {
		return ExportTask{}, false
	}

	result, err := w.redis.BRPop(ctx, redisPopTimeout, exportQueueKey).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.logger.Warn().Err(err).Msg("failed to pop export task from redis")
		}
		return ExportTask{}, false
	}
	if len(result) < 2 {
		return ExportTask{}, false
	}

	var task ExportTask
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		w.logger.Error().Err(err).Str("raw", result[1]).Msg("discarding malformed export task")
		return ExportTask{}, false
	}
	return task, true
}

func (w *ExportWorker) processTask(ctx context.Context, task ExportTask) {
	var lastErr error
	for attempt := 1; attempt <= w.retry.MaxRetries; attempt++ {
		filePath, err := w.exporter.Export(ctx, task.Start, task.End)
		if err == nil {
			metrics.IncExportRun("success")
			w.logger.Info().
				Str("file_path", filePath).
				Time("week_start", task.Start).
				Int("attempt", attempt).
				Msg("schedule export completed")
			return
		}

		lastErr = err
		w.logger.Warn().Err(err).Int("attempt", attempt).Msg("schedule export failed")

		if attempt < w.retry.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.retry.NextDelay(attempt)):
			}
		}
	}

	metrics.IncExportRun("failure")
	w.logger.Error().Err(lastErr).Time("week_start", task.Start).Msg("schedule export gave up")
	w.deadLetter(ctx, task)
}

func (w *ExportWorker) deadLetter(ctx context.Context, task ExportTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		return
	}
	if err := w.redis.LPush(ctx, deadLetterKey, data).Err(); err != nil {
		w.logger.Warn().Err(err).Msg("failed to store dead-lettered export task")
	}
}
