package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/formset"
)

type Publisher struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// PublisherWithTitles is a publisher plus the titles of its books, ordered by book id.
type PublisherWithTitles struct {
	Publisher
	Titles []string `json:"titles"`
}

// AllBooks joins the titles the way the listing page shows them: "A, B".
func (p PublisherWithTitles) AllBooks() string {
	return strings.Join(p.Titles, ", ")
}

type PublisherForm struct {
	Name string `json:"name"`
}

func BindForm(src formset.Source) PublisherForm {
	return PublisherForm{Name: src.Value("name")}
}

func (f PublisherForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
	)
}
