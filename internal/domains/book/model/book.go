package model

import (
	"github.com/shopspring/decimal"
)

const (
	MaxISBNLength    = 13
	DefaultCopyCount = 1
)

type Book struct {
	ID          int64           `json:"id" db:"id"`
	ISBN        string          `json:"isbn" db:"isbn"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	YearRelease int16           `json:"year_release" db:"year_release"`
	AuthorID    int64           `json:"author_id" db:"author_id"`
	PublisherID int64           `json:"publisher_id" db:"publisher_id"`
	FriendID    *int64          `json:"friend_id,omitempty" db:"friend_id"`
	CopyCount   int16           `json:"copy_count" db:"copy_count"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Cover       string          `json:"cover,omitempty" db:"cover"` // object key, "" = no cover
}

// String is what the plain-text dump prints for a book.
func (b *Book) String() string {
	return b.Title
}

// BookDetail is a book joined with the display names of its references.
type BookDetail struct {
	Book
	AuthorName    string `json:"author_name"`
	PublisherName string `json:"publisher_name"`
	FriendName    string `json:"friend_name,omitempty"`
}
