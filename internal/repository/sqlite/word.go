package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/word-of-the-day/internal/apperror"
	"github.com/sakif/word-of-the-day/internal/model"
	"github.com/sakif/word-of-the-day/internal/repository"
)

// WordDB implements repository.WordRepository on top of the shared pool.
type WordDB struct {
	conn *sql.DB
}

// compile-time check that *WordDB implements repository.WordRepository
var _ repository.WordRepository = (*WordDB)(nil)

// Create inserts a single word and fills in the assigned ID.
// A duplicate published_date trips the UNIQUE constraint — there is
// deliberately no pre-check here, the constraint is the source of truth.
func (w *WordDB) Create(ctx context.Context, word *model.Word) error {
	result, err := w.conn.ExecContext(ctx,
		`INSERT INTO words (title, description, example, published_date)
		 VALUES (?, ?, ?, ?)`,
		word.Title, word.Description, word.Example, word.PublishedDate,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return apperror.Conflict(
				fmt.Sprintf("A word is already published for %s", word.PublishedDate))
		}
		return fmt.Errorf("sqlite: inserting word %q: %w", word.Title, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading word insert id: %w", err)
	}

	word.ID = id
	return nil
}

// List returns every word in natural storage order.
func (w *WordDB) List(ctx context.Context) ([]model.Word, error) {
	rows, err := w.conn.QueryContext(ctx,
		`SELECT id, title, description, example, published_date FROM words`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing words: %w", err)
	}
	defer rows.Close()

	words := []model.Word{}
	for rows.Next() {
		var word model.Word
		if err := rows.Scan(&word.ID, &word.Title, &word.Description,
			&word.Example, &word.PublishedDate); err != nil {
			return nil, fmt.Errorf("sqlite: scanning word row: %w", err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating word rows: %w", err)
	}

	return words, nil
}

// BulkCreate inserts a batch of words inside a single transaction.
//
// ALL-OR-NOTHING:
// If any insert fails (typically a duplicate published_date), the whole
// transaction is rolled back and the store is left exactly as it was.
// The caller gets one aggregate error, never a partial result.
//
// The deferred Rollback is a no-op after a successful Commit — this is the
// standard database/sql pattern for guaranteeing release on every exit path.
func (w *WordDB) BulkCreate(ctx context.Context, words []model.Word) error {
	tx, err := w.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning bulk insert: %w", err)
	}
	defer tx.Rollback()

	for i := range words {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO words (title, description, example, published_date)
			 VALUES (?, ?, ?, ?)`,
			words[i].Title, words[i].Description, words[i].Example, words[i].PublishedDate,
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return apperror.Conflict(
					"An error occurred during bulk upload. No words were added.")
			}
			return fmt.Errorf("sqlite: bulk inserting word %q: %w", words[i].Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing bulk insert: %w", err)
	}
	return nil
}

// GetByPublishedDate returns the word published on exactly the given date
// string, or apperror.ErrNotFound if no word exists for that date.
// Exact string match only — the resolver depends on this.
func (w *WordDB) GetByPublishedDate(ctx context.Context, date string) (*model.Word, error) {
	var word model.Word
	err := w.conn.QueryRowContext(ctx,
		`SELECT id, title, description, example, published_date
		 FROM words WHERE published_date = ?`, date,
	).Scan(&word.ID, &word.Title, &word.Description, &word.Example, &word.PublishedDate)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("Word of the day")
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying word for %s: %w", date, err)
	}
	return &word, nil
}
