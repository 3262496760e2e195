package repository

import (
	"context"

	"github.com/sakif/word-of-the-day/internal/model"
)

// UserRepository stores registered subscribers.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int, error)
}

// WordRepository stores the vocabulary catalog.
//
// BulkCreate is all-or-nothing: either every word in the batch commits, or
// the whole batch is rolled back and an error is returned. Partial success
// never occurs.
type WordRepository interface {
	Create(ctx context.Context, word *model.Word) error
	List(ctx context.Context) ([]model.Word, error)
	BulkCreate(ctx context.Context, words []model.Word) error
	GetByPublishedDate(ctx context.Context, date string) (*model.Word, error)
}
