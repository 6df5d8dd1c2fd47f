package model

import (
	"mime/multipart"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"library-catalog/internal/shared/formset"
	"library-catalog/internal/shared/validators"
)

// CoverUpload is a cover image that passed validation and awaits storage.
type CoverUpload struct {
	Data        []byte
	Ext         string // "jpg" | "png"
	ContentType string
}

// BookForm is the raw submitted book.
type BookForm struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	Description string `json:"description"`
	YearRelease string `json:"year_release"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	Friend      string `json:"friend"`
	CopyCount   string `json:"copy_count"`
	Price       string `json:"price"`

	Cover      *multipart.FileHeader `json:"cover"`
	CoverClear bool                  `json:"-"`
	// set by the service once Cover passed the image checks
	CoverUpload *CoverUpload `json:"-"`
	// CurrentCover is the stored key when editing
	CurrentCover string `json:"-"`
}

// Fields lists the book inputs; copy_count renders as 1 on blank members.
var Fields = []formset.Field{
	{Name: "isbn"},
	{Name: "title"},
	{Name: "description"},
	{Name: "year_release"},
	{Name: "author"},
	{Name: "publisher"},
	{Name: "friend"},
	{Name: "copy_count", Initial: strconv.Itoa(DefaultCopyCount)},
	{Name: "price"},
	{Name: "cover"},
}

// Columns is the spreadsheet header order for import and export.
var Columns = []string{"isbn", "title", "description", "year_release", "author", "publisher", "friend", "copy_count", "price"}

func NewForm() BookForm {
	return BookForm{CopyCount: strconv.Itoa(DefaultCopyCount)}
}

func BindForm(src formset.Source) BookForm {
	return BookForm{
		ISBN:        src.Value("isbn"),
		Title:       src.Value("title"),
		Description: src.Value("description"),
		YearRelease: src.Value("year_release"),
		Author:      src.Value("author"),
		Publisher:   src.Value("publisher"),
		Friend:      src.Value("friend"),
		CopyCount:   src.Value("copy_count"),
		Price:       src.Value("price"),
		Cover:       src.File("cover"),
		CoverClear:  src.Value("cover_clear") != "",
	}
}

// FormFromBook pre-fills the edit form.
func FormFromBook(b *Book) BookForm {
	f := BookForm{
		ISBN:         b.ISBN,
		Title:        b.Title,
		Description:  b.Description,
		YearRelease:  strconv.Itoa(int(b.YearRelease)),
		Author:       strconv.FormatInt(b.AuthorID, 10),
		Publisher:    strconv.FormatInt(b.PublisherID, 10),
		CopyCount:    strconv.Itoa(int(b.CopyCount)),
		Price:        b.Price.StringFixed(2),
		CurrentCover: b.Cover,
	}
	if b.FriendID != nil {
		f.Friend = strconv.FormatInt(*b.FriendID, 10)
	}
	return f
}

// Validate checks field rules; references must be among choices.
// Cover content is checked separately by the cover service.
func (f *BookForm) Validate(choices *Choices) error {
	if choices == nil {
		choices = &Choices{}
	}
	return validation.ValidateStruct(f,
		validation.Field(&f.ISBN, validation.Required, validation.RuneLength(0, MaxISBNLength)),
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Description, validation.Required),
		validation.Field(&f.YearRelease, validation.Required, validators.SmallInt),
		validation.Field(&f.Author, validation.Required, validators.Choice(ids(choices.Authors))),
		validation.Field(&f.Publisher, validation.Required, validators.Choice(ids(choices.Publishers))),
		validation.Field(&f.Friend, validators.Choice(ids(choices.Friends))),
		validation.Field(&f.CopyCount, validation.Required, validators.IntRange(0, 32767)),
		validation.Field(&f.Price, validation.Required, validators.Decimal(6, 2)),
	)
}

// ToBook converts a validated form. Cover is left for the service to fill.
func (f *BookForm) ToBook() *Book {
	year, _ := strconv.ParseInt(f.YearRelease, 10, 16)
	authorID, _ := strconv.ParseInt(f.Author, 10, 64)
	publisherID, _ := strconv.ParseInt(f.Publisher, 10, 64)
	copies, _ := strconv.ParseInt(f.CopyCount, 10, 16)
	price, _ := decimal.NewFromString(f.Price)

	b := &Book{
		ISBN:        f.ISBN,
		Title:       f.Title,
		Description: f.Description,
		YearRelease: int16(year),
		AuthorID:    authorID,
		PublisherID: publisherID,
		CopyCount:   int16(copies),
		Price:       price.Round(2),
	}
	if f.Friend != "" {
		if id, err := strconv.ParseInt(f.Friend, 10, 64); err == nil {
			b.FriendID = &id
		}
	}
	return b
}
