package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"

	authormodel "library-catalog/internal/domains/author/model"
	authorsvc "library-catalog/internal/domains/author/service"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/internal/infrastructure/queue"
	"library-catalog/internal/shared/formset"
	"library-catalog/pkg/database"
	"library-catalog/pkg/logger"
)

// ImportPrefix is the set name spreadsheet rows are bound under.
const ImportPrefix = "books"

type bulkService struct {
	books   *bookService
	authors authorsvc.ServiceInterface
	repo    repository.RepositoryInterface
	tx      database.Transactor
}

func NewBulkService(
	repo repository.RepositoryInterface,
	choices ChoiceLoader,
	covers CoverService,
	jobs queue.Enqueuer,
	authors authorsvc.ServiceInterface,
	tx database.Transactor,
) BulkServiceInterface {
	return &bulkService{
		books:   &bookService{repo: repo, choices: choices, covers: covers, jobs: jobs},
		authors: authors,
		repo:    repo,
		tx:      tx,
	}
}

func (s *bulkService) CreateAuthorsAndBooks(ctx context.Context, authors *formset.Set[authormodel.AuthorForm], books *formset.Set[model.BookForm]) (*BulkResult, error) {
	choices, err := s.books.choices.Choices(ctx)
	if err != nil {
		return nil, err
	}

	// validate cả hai set để form hiển thị đủ lỗi
	authorsOK := authors.Validate((*authormodel.AuthorForm).Validate)
	booksOK := s.validateBooks(books, choices)
	if !authorsOK || !booksOK {
		return nil, model.ErrInvalidBatch
	}

	return s.commit(ctx, authors.Forms(), books)
}

func (s *bulkService) validateBooks(set *formset.Set[model.BookForm], choices *model.Choices) bool {
	return set.Validate(func(f *model.BookForm) error {
		return s.books.validate(f, choices)
	})
}

// commit uploads covers, then inserts authors and books in one transaction.
// Covers of a failed commit are removed again.
func (s *bulkService) commit(ctx context.Context, authorForms []authormodel.AuthorForm, set *formset.Set[model.BookForm]) (*BulkResult, error) {
	members := set.Active()
	books := make([]*model.Book, len(members))
	var stored []string

	for i, m := range members {
		books[i] = m.Form.ToBook()
		if err := s.books.storeCover(ctx, &m.Form, books[i]); err != nil {
			s.discard(ctx, stored)
			return nil, err
		}
		if books[i].Cover != "" {
			stored = append(stored, books[i].Cover)
		}
	}

	result, err := database.WithTransactionResult(ctx, s.tx, func(tx pgx.Tx) (*BulkResult, error) {
		if len(authorForms) > 0 {
			if _, err := s.authors.InsertValidated(ctx, tx, authorForms); err != nil {
				return nil, err
			}
		}
		for _, b := range books {
			if err := s.repo.CreateWithTx(ctx, tx, b); err != nil {
				return nil, err
			}
		}
		return &BulkResult{Authors: len(authorForms), Books: len(books)}, nil
	})
	if err != nil {
		s.discard(ctx, stored)
		if errors.Is(err, model.ErrInvalidReference) {
			set.Error = err
			return nil, model.ErrInvalidBatch
		}
		return nil, err
	}
	s.repo.InvalidateListings(ctx)

	for i, m := range members {
		s.books.afterCoverStored(ctx, books[i], &m.Form)
	}
	logger.Info("bulk create committed", map[string]interface{}{"authors": result.Authors, "books": result.Books})
	return result, nil
}

func (s *bulkService) discard(ctx context.Context, keys []string) {
	for _, k := range keys {
		s.books.discardCover(ctx, k)
	}
}

func (s *bulkService) ImportXLSX(ctx context.Context, r io.Reader) (*formset.Set[model.BookForm], error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrImportUnreadable, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrImportUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, model.ErrImportHeader
	}

	columns, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}
	data := rows[1:]
	if len(data) == 0 {
		return nil, model.ErrImportEmpty
	}

	choices, err := s.books.choices.Choices(ctx)
	if err != nil {
		return nil, err
	}

	set := formset.Bind(ImportPrefix, formset.NewValues(rowsToValues(data, columns, choices), nil), model.Fields, model.BindForm)
	if !s.validateBooks(set, choices) {
		return set, model.ErrInvalidBatch
	}
	if len(set.Active()) == 0 {
		return set, model.ErrImportEmpty
	}

	if _, err := s.commit(ctx, nil, set); err != nil {
		return set, err
	}
	return set, nil
}

// headerIndex maps each expected column to its position in the header row.
func headerIndex(header []string) (map[string]int, error) {
	found := make(map[string]int, len(header))
	for i, h := range header {
		found[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, c := range model.Columns {
		if _, ok := found[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrImportHeader, strings.Join(missing, ", "))
	}
	return found, nil
}

// rowsToValues lays the rows out as a submitted "books" set so they go
// through the same binding as the web form. Reference cells may hold an id
// or a name.
func rowsToValues(rows [][]string, columns map[string]int, choices *model.Choices) url.Values {
	v := url.Values{}
	v.Set(ImportPrefix+"-"+formset.TotalFormsKey, strconv.Itoa(len(rows)))
	v.Set(ImportPrefix+"-"+formset.InitialFormsKey, "0")
	v.Set(ImportPrefix+"-"+formset.MinNumFormsKey, "0")
	v.Set(ImportPrefix+"-"+formset.MaxNumFormsKey, strconv.Itoa(formset.MaxNumForms))

	for i, row := range rows {
		for _, c := range model.Columns {
			cell := ""
			if idx := columns[c]; idx < len(row) {
				cell = strings.TrimSpace(row[idx])
			}
			switch c {
			case "author":
				cell = model.ResolveLabel(choices.Authors, cell)
			case "publisher":
				cell = model.ResolveLabel(choices.Publishers, cell)
			case "friend":
				cell = model.ResolveLabel(choices.Friends, cell)
			}
			v.Set(fmt.Sprintf("%s-%d-%s", ImportPrefix, i, c), cell)
		}
	}
	return v
}

func (s *bulkService) ExportXLSX(ctx context.Context) ([]byte, error) {
	books, err := s.repo.ListDetailed(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Books"
	f.SetSheetName("Sheet1", sheetName)

	for colIdx, header := range model.Columns {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(model.Columns), 1)
		f.SetCellStyle(sheetName, "A1", last, style)
	}

	// Data rows, bắt đầu từ row 2
	for i, b := range books {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			b.ISBN,
			b.Title,
			b.Description,
			int(b.YearRelease),
			b.AuthorName,
			b.PublisherName,
			b.FriendName,
			int(b.CopyCount),
			b.Price.StringFixed(2),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write spreadsheet: %w", err)
	}
	logger.Info("books exported", map[string]interface{}{"count": len(books)})
	return buf.Bytes(), nil
}
