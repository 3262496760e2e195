package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/word-of-the-day/internal/apperror"
	"github.com/sakif/word-of-the-day/internal/model"
	"github.com/sakif/word-of-the-day/internal/repository"
)

// publishDateLayout is the calendar-date format used for published_date
// values and for formatting "today" in the resolver. The two MUST match —
// the lookup is an exact string comparison.
const publishDateLayout = "2006-01-02"

// WordService handles the vocabulary catalog and the word-of-the-day lookup.
//
// THE CLOCK FIELD:
// TodaysWord depends on "now". Hard-coding time.Now would make the resolver
// untestable (you can't wait for midnight in a unit test), so the clock is a
// struct field that tests can replace. Production code never touches it.
type WordService struct {
	repo   repository.WordRepository
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewWordService creates a new WordService.
//
// The word of the day is keyed to the calendar date in US Eastern time,
// regardless of where the server runs. time.LoadLocation reads the IANA
// database, so this fails only on hosts with no tzdata installed.
func NewWordService(repo repository.WordRepository, logger *slog.Logger) (*WordService, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("loading US Eastern time zone: %w", err)
	}

	return &WordService{
		repo:   repo,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}, nil
}

// Create validates and stores a single word.
//
// There is no duplicate-date pre-check here — only the UNIQUE constraint on
// published_date can reject the insert. That mirrors how the endpoint has
// always behaved: single creates trust the store, only the bulk path wraps
// everything in a transaction.
func (s *WordService) Create(ctx context.Context, title, description, example, publishedDate string) (*model.Word, error) {
	title = strings.TrimSpace(title)
	publishedDate = strings.TrimSpace(publishedDate)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if publishedDate == "" {
		return nil, apperror.ValidationFailed("published_date", "published_date is required")
	}

	word := &model.Word{
		Title:         title,
		Description:   strings.TrimSpace(description),
		Example:       strings.TrimSpace(example),
		PublishedDate: publishedDate,
	}
	if err := s.repo.Create(ctx, word); err != nil {
		return nil, err
	}

	s.logger.Info("word created",
		slog.Int64("id", word.ID),
		slog.String("title", word.Title),
		slog.String("published_date", word.PublishedDate),
	)

	return word, nil
}

// List returns every word in the catalog.
func (s *WordService) List(ctx context.Context) ([]model.Word, error) {
	words, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list words", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing words: %w", err)
	}
	return words, nil
}

// BulkCreate stores a batch of words transactionally and returns the number
// of words inserted. Either the whole batch commits or none of it does — on
// any failure the count is 0 and the store is untouched.
func (s *WordService) BulkCreate(ctx context.Context, words []model.Word) (int, error) {
	if len(words) == 0 {
		return 0, apperror.ValidationFailed("words", "at least one word is required")
	}
	for i := range words {
		if strings.TrimSpace(words[i].Title) == "" {
			return 0, apperror.ValidationFailed("title", "every word needs a title")
		}
		if strings.TrimSpace(words[i].PublishedDate) == "" {
			return 0, apperror.ValidationFailed("published_date", "every word needs a published_date")
		}
	}

	if err := s.repo.BulkCreate(ctx, words); err != nil {
		s.logger.Warn("bulk word insert rolled back",
			slog.Int("batch_size", len(words)),
			slog.String("error", err.Error()),
		)
		return 0, err
	}

	s.logger.Info("bulk word insert committed", slog.Int("count", len(words)))
	return len(words), nil
}

// TodaysWord resolves the word of the day: the word whose published_date
// equals today's calendar date in US Eastern time, exactly.
//
// A missing word is a NORMAL outcome (the catalog may simply not be
// populated for today) and comes back as apperror.ErrNotFound. There is
// deliberately no fallback to the most recently published word — if the
// product ever wants that, it is a one-line ORDER BY change in the
// repository, but today's behaviour is exact-match only.
func (s *WordService) TodaysWord(ctx context.Context) (*model.Word, error) {
	today := s.now().In(s.loc).Format(publishDateLayout)

	word, err := s.repo.GetByPublishedDate(ctx, today)
	if err != nil {
		return nil, err
	}
	return word, nil
}
