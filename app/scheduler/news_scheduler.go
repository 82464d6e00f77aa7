// Package scheduler runs the background jobs that publish and retire
// articles on their scheduled times
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/khabarhub/newsads/models"
	"github.com/khabarhub/newsads/repository"
	"github.com/khabarhub/newsads/utils"
)

// schedulerBatchSize caps how many due articles a single pass picks up
const schedulerBatchSize = 100

// NewsScheduler periodically promotes scheduled articles to published and
// retires expired ones. Every transition is guarded by the current status so
// a concurrent manual change always wins over the scheduler.
type NewsScheduler struct {
	newsRepo    repository.NewsRepository
	historyRepo repository.NewsHistoryRepository
	txm         repository.TxManager
	logger      *log.Logger
	interval    time.Duration
	now         func() time.Time

	logRotator *lumberjack.Logger
}

func NewNewsScheduler(
	newsRepo repository.NewsRepository,
	historyRepo repository.NewsHistoryRepository,
	txm repository.TxManager,
	interval time.Duration,
) *NewsScheduler {
	if interval <= 0 {
		interval = time.Minute
	}

	s := &NewsScheduler{
		newsRepo:    newsRepo,
		historyRepo: historyRepo,
		txm:         txm,
		interval:    interval,
		now:         utils.UTCNow,
	}

	// Initialize scheduler-specific logger (to stdout and persistent file)
	if err := s.initSchedulerLogger(); err != nil {
		// Fallback to default stdout logger if file logger init fails
		s.logger = log.Default()
		s.logger.Printf("scheduler: failed to initialize file logger: %v", err)
	}

	return s
}

// initSchedulerLogger configures a logger that writes to both stdout and a rotated file under data/ (or /data)
func (s *NewsScheduler) initSchedulerLogger() error {
	// Prefer relative data/ then fallback to /data for containerized environments
	candidates := []string{
		filepath.Join("data"),
		"/data",
	}
	for _, dir := range candidates {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			continue
		}
		s.logRotator = &lumberjack.Logger{
			Filename:   filepath.Join(dir, "scheduler.log"),
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		mw := io.MultiWriter(os.Stdout, s.logRotator)
		s.logger = log.New(mw, "scheduler ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
		return nil
	}
	return fmt.Errorf("could not create scheduler log directory in any candidate location")
}

// Start launches the scheduler loop in a background goroutine and returns a stop function
func (s *NewsScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				if s.logRotator != nil {
					_ = s.logRotator.Close()
				}
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *NewsScheduler) runOnce(ctx context.Context) {
	now := s.now()
	s.publishDue(ctx, now)
	s.unpublishExpired(ctx, now)
}

// publishDue moves articles in review whose publish time has arrived to published
func (s *NewsScheduler) publishDue(ctx context.Context, now time.Time) {
	due, err := s.newsRepo.ListDueForPublish(ctx, now, schedulerBatchSize)
	if err != nil {
		s.logger.Printf("scheduler: list due for publish failed: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}
	s.logger.Printf("scheduler: %d articles due for publish", len(due))

	for _, item := range due {
		if err := s.transition(ctx, item, models.NewsStatusReview, models.NewsStatusPublished, models.HistoryActionAutoPublish, item.PublishAt); err != nil {
			s.logger.Printf("scheduler: auto publish failed for news id=%d: %v", item.ID, err)
			continue
		}
		s.logger.Printf("scheduler: news id=%d published", item.ID)
	}
}

// unpublishExpired moves published articles past their unpublish time to unpublished
func (s *NewsScheduler) unpublishExpired(ctx context.Context, now time.Time) {
	due, err := s.newsRepo.ListDueForUnpublish(ctx, now, schedulerBatchSize)
	if err != nil {
		s.logger.Printf("scheduler: list due for unpublish failed: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}
	s.logger.Printf("scheduler: %d articles due for unpublish", len(due))

	for _, item := range due {
		if err := s.transition(ctx, item, models.NewsStatusPublished, models.NewsStatusUnpublished, models.HistoryActionAutoUnpublish, item.UnpublishAt); err != nil {
			s.logger.Printf("scheduler: auto unpublish failed for news id=%d: %v", item.ID, err)
			continue
		}
		s.logger.Printf("scheduler: news id=%d unpublished", item.ID)
	}
}

// transition applies a guarded status change for one article and records it
// in the history. When the guard does not match, someone else already moved
// the article and the item is skipped without a history entry.
func (s *NewsScheduler) transition(ctx context.Context, item *models.News, from, to models.NewsStatus, action string, scheduledAt *time.Time) error {
	return s.txm.WithTx(ctx, func(txCtx context.Context) error {
		updated, err := s.newsRepo.UpdateStatusIfCurrent(txCtx, item.ID, from, to)
		if err != nil {
			return fmt.Errorf("guarded status update: %w", err)
		}
		if !updated {
			s.logger.Printf("scheduler: news id=%d no longer in %s, skipping", item.ID, from)
			return nil
		}

		fromStr := string(from)
		entry := &models.NewsHistory{
			NewsID:     item.ID,
			FromStatus: &fromStr,
			ToStatus:   string(to),
			Diff: models.NewsDiff{
				Field:       "status",
				From:        string(from),
				To:          string(to),
				Action:      action,
				Actor:       "scheduler",
				ScheduledAt: scheduledAt,
			},
		}
		if err := s.historyRepo.Save(txCtx, entry); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		return nil
	})
}
