// Package scheduler owns the daily email trigger and the job it fires.
//
// The trigger is a real cron recurrence, not a fixed-delay timer: robfig/cron
// computes the NEXT wall-clock occurrence of the schedule in the configured
// time zone. A process restart never causes catch-up runs, and a run that
// somehow crossed midnight would not delay the next trigger.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sakif/word-of-the-day/internal/apperror"
	"github.com/sakif/word-of-the-day/internal/mailer"
	"github.com/sakif/word-of-the-day/internal/model"
)

// The job fires once a day at this Eastern wall-clock time.
const (
	jobHour   = 9
	jobMinute = 56
)

// WordResolver yields the word of the day, or apperror.ErrNotFound when the
// catalog has no entry for today's Eastern date.
type WordResolver interface {
	TodaysWord(ctx context.Context) (*model.Word, error)
}

// EmailLister yields every subscriber's email address.
type EmailLister interface {
	ListEmails(ctx context.Context) ([]string, error)
}

// Sender delivers one email per recipient.
type Sender interface {
	Send(subject string, content mailer.Content, recipients []string) error
}

// Scheduler runs the daily word email job.
//
// It is an explicitly constructed object with a Start/Stop lifecycle owned
// by the server — no package-level cron instance, no init() magic.
type Scheduler struct {
	cron   *cron.Cron
	words  WordResolver
	users  EmailLister
	sender Sender
	logger *slog.Logger
}

// New creates a Scheduler. The cron runner is pinned to US Eastern time so
// "9:56" means 9:56 in New York wherever the server happens to run.
func New(words WordResolver, users EmailLister, sender Sender, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("loading US Eastern time zone: %w", err)
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		words:  words,
		users:  users,
		sender: sender,
		logger: logger,
	}, nil
}

// Start registers the daily job and starts the background timer.
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("%d %d * * *", jobMinute, jobHour)
	if _, err := s.cron.AddFunc(spec, s.runJob); err != nil {
		return fmt.Errorf("registering daily job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		slog.String("schedule", fmt.Sprintf("daily at %02d:%02d Eastern", jobHour, jobMinute)),
	)
	return nil
}

// Stop halts the timer and waits for an in-flight job run to finish.
func (s *Scheduler) Stop() {
	// cron.Stop returns a context that is done once running jobs complete.
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// runJob is the daily job body: resolve today's word, collect subscriber
// addresses, hand everything to the mailer.
//
// Every failure path here is terminal for THIS run and logged only — there
// is no caller to report to, no retry, no backoff. The schedule itself is
// the retry mechanism: the job fires again tomorrow.
func (s *Scheduler) runJob() {
	ctx := context.Background()
	s.logger.Info("running daily word job")

	word, err := s.words.TodaysWord(ctx)
	if errors.Is(err, apperror.ErrNotFound) {
		// Normal no-op day: nobody published a word for today.
		s.logger.Info("job aborted: no word published for today")
		return
	}
	if err != nil {
		s.logger.Error("job failed: resolving today's word", slog.String("error", err.Error()))
		return
	}

	emails, err := s.users.ListEmails(ctx)
	if err != nil {
		s.logger.Error("job failed: listing subscribers", slog.String("error", err.Error()))
		return
	}
	if len(emails) == 0 {
		s.logger.Info("job aborted: no users to email")
		return
	}

	subject := "Word of the Day: " + word.Title
	content := mailer.Content{
		Title:       word.Title,
		Description: word.Description,
		Example:     word.Example,
	}

	if err := s.sender.Send(subject, content, emails); err != nil {
		s.logger.Error("job failed: sending emails",
			slog.Int("recipients", len(emails)),
			slog.String("error", err.Error()),
		)
	}
}
