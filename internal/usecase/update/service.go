package update

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"weekly-aws-mcp/internal/domain/entity"
	"weekly-aws-mcp/internal/observability/logging"
	"weekly-aws-mcp/internal/observability/metrics"
)

// maxLookbackDays bounds the cutoff date arithmetic. Wider windows reach
// past any feed entry, so they behave as "no cutoff".
const maxLookbackDays = 1_000_000

// Service provides the feed queries exposed as agent tools.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	Feed   FeedSource
	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewService creates a Service reading from feed.
func NewService(feed FeedSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Feed:   feed,
		Logger: logger,
		Now:    time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// logger prefers the call-scoped logger in ctx so records carry the call ID.
func (s *Service) logger(ctx context.Context) *slog.Logger {
	fallback := s.Logger
	if fallback == nil {
		fallback = slog.Default()
	}
	return logging.FromContextOr(ctx, fallback)
}

// FetchFeed retrieves one snapshot of the feed.
//
// A malformed document is logged at WARN and its recovered entries are still
// returned. A transport failure is logged at ERROR and yields an empty feed,
// so callers see "no entries" rather than an error.
func (s *Service) FetchFeed(ctx context.Context) *Feed {
	logger := s.logger(ctx)
	start := time.Now()

	feed, err := s.Feed.Fetch(ctx)
	if err != nil {
		logger.Error("feed fetch failed", slog.Any("error", err))
		metrics.RecordFeedFetch("failure", time.Since(start))
		return &Feed{}
	}
	if feed == nil {
		feed = &Feed{}
	}

	if feed.Malformed {
		parseErr := "unknown parse error"
		if feed.ParseError != nil {
			parseErr = feed.ParseError.Error()
		}
		// パースエラーでも取得できたエントリで処理を続行
		logger.Warn("RSS parse error",
			slog.String("error", parseErr),
			slog.Int("recovered_entries", len(feed.Entries)))
		metrics.RecordFeedFetch("malformed", time.Since(start))
		return feed
	}

	metrics.RecordFeedFetch("success", time.Since(start))
	return feed
}

// ListRecent returns up to limit posts published within the last days days,
// in feed order. Collection stops as soon as limit records exist; later
// entries are never examined.
//
// Entries without a parsed publish time are skipped. A link that is not a
// valid absolute URL is a feed contract violation and is returned as error.
func (s *Service) ListRecent(ctx context.Context, days, limit int) ([]entity.Update, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must be non-negative, got %d", ErrInvalidArgument, days)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative, got %d", ErrInvalidArgument, limit)
	}

	logger := s.logger(ctx)
	feed := s.FetchFeed(ctx)
	cutoff := lookbackCutoff(s.now(), days)

	updates := make([]entity.Update, 0, min(limit, len(feed.Entries)))
	for i, e := range feed.Entries {
		if len(updates) >= limit {
			break
		}
		if e.Published == nil {
			logger.Warn("skipping feed entry without publish time",
				slog.Int("index", i),
				slog.String("title", e.Title))
			continue
		}

		published := e.Published.UTC().Truncate(time.Second)
		if published.Before(cutoff) {
			continue
		}

		u, err := entity.NewUpdate(e.Title, e.Link, published, e.Summary)
		if err != nil {
			return nil, fmt.Errorf("feed entry %d: %w", i, err)
		}
		updates = append(updates, u)
	}

	return updates, nil
}

// lookbackCutoff returns the earliest publish time inside a days-long window
// ending at now. Calendar arithmetic keeps large windows from overflowing
// time.Duration.
func lookbackCutoff(now time.Time, days int) time.Time {
	if days > maxLookbackDays {
		return time.Time{}
	}
	return now.UTC().AddDate(0, 0, -days)
}

// LatestWeeklyAWS returns the newest 週刊AWS post, or nil when none exists.
func (s *Service) LatestWeeklyAWS(ctx context.Context) (*entity.DetailedUpdate, error) {
	return s.LatestInCategory(ctx, WeeklyAWS)
}

// LatestGenerativeAI returns the newest 週刊生成AI with AWS post, or nil when none exists.
func (s *Service) LatestGenerativeAI(ctx context.Context) (*entity.DetailedUpdate, error) {
	return s.LatestInCategory(ctx, WeeklyGenerativeAI)
}

// LatestInCategory returns the most recently published entry of cat with its
// normalised content.
//
// nil with a nil error is a valid outcome: the feed was empty, nothing matched,
// or reading the selected entries failed (logged at ERROR with a stack).
// Only URL validation of the chosen entry surfaces as an error.
func (s *Service) LatestInCategory(ctx context.Context, cat Category) (*entity.DetailedUpdate, error) {
	logger := s.logger(ctx).With(slog.String("category", cat.Name))

	feed := s.FetchFeed(ctx)
	if len(feed.Entries) == 0 {
		return nil, nil
	}

	matched := make([]Entry, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		if cat.Matches(e.Title) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		logger.Info("latest post not found for category")
		return nil, nil
	}

	sel, err := selectLatest(logger, matched)
	if err != nil {
		stack := debug.Stack()
		var pe *PanicError
		if errors.As(err, &pe) {
			stack = pe.Stack
		}
		logger.Error("failed to process latest post for category",
			slog.Any("error", err),
			slog.String("stack", string(stack)))
		metrics.RecordSelectionFailure(cat.Name)
		return nil, nil
	}

	return entity.NewDetailedUpdate(sel.entry.Title, sel.entry.Link, sel.published, sel.entry.Summary, sel.content)
}

type selection struct {
	entry     Entry
	published time.Time
	content   *string
}

// selectLatest picks the entry with the greatest publish time and normalises
// its content. Panics while reading entry data are converted into a PanicError.
func selectLatest(logger *slog.Logger, entries []Entry) (sel selection, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	best := -1
	var bestAt time.Time
	for i, e := range entries {
		if e.Published == nil {
			return selection{}, fmt.Errorf("%w: %q", ErrEntryMissingPublished, e.Title)
		}
		at := e.Published.UTC().Truncate(time.Second)
		if best < 0 || at.After(bestAt) {
			best, bestAt = i, at
		}
	}

	latest := entries[best]
	sel = selection{entry: latest, published: bestAt}
	if content, ok := NormalizeContent(logger, latest.Content); ok {
		sel.content = &content
	}
	return sel, nil
}
