package model

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/validators"
)

const MaxCountryLength = 2

type Author struct {
	ID        int64  `json:"id" db:"id"`
	FullName  string `json:"full_name" db:"full_name"`
	BirthYear int16  `json:"birth_year" db:"birth_year"`
	Country   string `json:"country" db:"country"`
}

// AuthorForm is the raw submitted author, before validation.
type AuthorForm struct {
	FullName  string `json:"full_name"`
	BirthYear string `json:"birth_year"`
	Country   string `json:"country"`
}

// Fields lists the author inputs, used to spot blank formset members.
var Fields = []formset.Field{
	{Name: "full_name"},
	{Name: "birth_year"},
	{Name: "country"},
}

// BindForm reads an author from a (possibly member-scoped) source.
func BindForm(src formset.Source) AuthorForm {
	return AuthorForm{
		FullName:  src.Value("full_name"),
		BirthYear: src.Value("birth_year"),
		Country:   src.Value("country"),
	}
}

func (f AuthorForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Required),
		validation.Field(&f.BirthYear, validation.Required, validators.SmallInt),
		validation.Field(&f.Country, validation.Required, validation.RuneLength(0, MaxCountryLength)),
	)
}

// ToAuthor converts a validated form.
func (f AuthorForm) ToAuthor() *Author {
	year, _ := strconv.ParseInt(f.BirthYear, 10, 16)
	return &Author{
		FullName:  f.FullName,
		BirthYear: int16(year),
		Country:   f.Country,
	}
}
