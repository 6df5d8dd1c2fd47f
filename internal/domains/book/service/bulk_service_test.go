package service

import (
	"bytes"
	"context"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/formset"
)

func newTestBulk() (*bulkService, *mockRepo, *mockAuthors, *fakeTx) {
	repo, authors, tx := new(mockRepo), new(mockAuthors), &fakeTx{}
	svc := NewBulkService(repo, defaultChoices(), new(mockCovers), new(mockJobs), authors, tx).(*bulkService)
	return svc, repo, authors, tx
}

func management(v url.Values, prefix string, total int) {
	v.Set(prefix+"-TOTAL_FORMS", strconv.Itoa(total))
	v.Set(prefix+"-INITIAL_FORMS", "0")
}

func jointSets(bookTitles ...string) (*formset.Set[authormodel.AuthorForm], *formset.Set[model.BookForm]) {
	v := url.Values{}
	management(v, "authors", 1)
	v.Set("authors-0-full_name", "Anton Chekhov")
	v.Set("authors-0-birth_year", "1860")
	v.Set("authors-0-country", "RU")

	management(v, "books", len(bookTitles))
	for i, title := range bookTitles {
		p := "books-" + strconv.Itoa(i) + "-"
		v.Set(p+"isbn", "97801404479"+strconv.Itoa(10+i))
		v.Set(p+"title", title)
		v.Set(p+"description", "d")
		v.Set(p+"year_release", "1900")
		v.Set(p+"author", "1")
		v.Set(p+"publisher", "2")
		v.Set(p+"copy_count", "2")
		v.Set(p+"price", "5.00")
	}

	src := formset.NewValues(v, nil)
	return formset.Bind("authors", src, authormodel.Fields, authormodel.BindForm),
		formset.Bind("books", src, model.Fields, model.BindForm)
}

func TestCreateAuthorsAndBooks_BothValid(t *testing.T) {
	svc, repo, authors, tx := newTestBulk()
	a, b := jointSets("Ward No. 6", "The Steppe")
	authors.On("InsertValidated", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := svc.CreateAuthorsAndBooks(context.Background(), a, b)

	require.NoError(t, err)
	assert.Equal(t, &BulkResult{Authors: 1, Books: 2}, res)
	assert.True(t, tx.committed)
	repo.AssertNumberOfCalls(t, "CreateWithTx", 2)
	assert.Equal(t, 1, repo.invalidated)
}

func TestCreateAuthorsAndBooks_InvalidatesListingAfterCommit(t *testing.T) {
	svc, repo, authors, tx := newTestBulk()
	a, b := jointSets("Ward No. 6")
	authors.On("InsertValidated", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var committedAtInvalidate bool
	repo.onInvalidate = func() { committedAtInvalidate = tx.committed }

	_, err := svc.CreateAuthorsAndBooks(context.Background(), a, b)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.invalidated)
	assert.True(t, committedAtInvalidate, "listing cache must be dropped only after commit")
}

func TestCreateAuthorsAndBooks_InvalidBookPersistsNothing(t *testing.T) {
	svc, repo, authors, tx := newTestBulk()
	a, b := jointSets("Ward No. 6", "")

	_, err := svc.CreateAuthorsAndBooks(context.Background(), a, b)

	assert.ErrorIs(t, err, model.ErrInvalidBatch)
	assert.Zero(t, tx.calls)
	authors.AssertNotCalled(t, "InsertValidated", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)

	assert.True(t, a.Valid())
	require.Len(t, b.Members, 2)
	assert.Empty(t, b.Members[0].Errors)
	assert.Contains(t, b.Members[1].Errors, "title")
}

func TestCreateAuthorsAndBooks_VanishedReferenceMarksSet(t *testing.T) {
	svc, repo, authors, tx := newTestBulk()
	a, b := jointSets("Ward No. 6")
	authors.On("InsertValidated", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrInvalidReference)

	_, err := svc.CreateAuthorsAndBooks(context.Background(), a, b)

	assert.ErrorIs(t, err, model.ErrInvalidBatch)
	assert.ErrorIs(t, b.Error, model.ErrInvalidReference)
	assert.False(t, tx.committed)
	assert.Zero(t, repo.invalidated)
}

func spreadsheet(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func header() []interface{} {
	out := make([]interface{}, len(model.Columns))
	for i, c := range model.Columns {
		out[i] = c
	}
	return out
}

func TestImportXLSX_ResolvesLabels(t *testing.T) {
	svc, repo, authors, tx := newTestBulk()
	var saved []*model.Book
	repo.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = append(saved, args.Get(2).(*model.Book)) }).
		Return(nil)

	buf := spreadsheet(t,
		header(),
		[]interface{}{"9780140447934", "War and Peace", "Novel", 1869, "leo tolstoy", "Acme", "Masha", 3, "12.5"},
		[]interface{}{},
		[]interface{}{"9780140449174", "Anna Karenina", "Novel", 1878, 1, 2, "", 1, "9.99"},
	)

	set, err := svc.ImportXLSX(context.Background(), buf)

	require.NoError(t, err)
	assert.True(t, set.Valid())
	assert.True(t, tx.committed)
	require.Len(t, saved, 2)
	assert.Equal(t, int64(1), saved[0].AuthorID)
	require.NotNil(t, saved[0].FriendID)
	assert.Equal(t, int64(3), *saved[0].FriendID)
	assert.Nil(t, saved[1].FriendID)

	// import chỉ tạo book, không tạo author
	authors.AssertNotCalled(t, "InsertValidated", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, repo.invalidated)
}

func TestImportXLSX_BadRowRejectsAll(t *testing.T) {
	svc, repo, _, tx := newTestBulk()

	buf := spreadsheet(t,
		header(),
		[]interface{}{"9780140447934", "War and Peace", "Novel", 1869, 1, 2, "", 1, "12.50"},
		[]interface{}{"9780140449174", "Anna Karenina", "Novel", 1878, "Unknown Person", 2, "", 1, "9.99"},
	)

	set, err := svc.ImportXLSX(context.Background(), buf)

	assert.ErrorIs(t, err, model.ErrInvalidBatch)
	require.NotNil(t, set)
	assert.Contains(t, set.Members[1].Errors, "author")
	assert.Zero(t, tx.calls)
	repo.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportXLSX_MissingColumns(t *testing.T) {
	svc, _, _, _ := newTestBulk()

	_, err := svc.ImportXLSX(context.Background(), spreadsheet(t, []interface{}{"isbn", "title"}))

	assert.ErrorIs(t, err, model.ErrImportHeader)
}

func TestImportXLSX_NoRows(t *testing.T) {
	svc, _, _, _ := newTestBulk()

	_, err := svc.ImportXLSX(context.Background(), spreadsheet(t, header()))

	assert.ErrorIs(t, err, model.ErrImportEmpty)
}

func TestExportXLSX(t *testing.T) {
	svc, repo, _, _ := newTestBulk()
	b := &model.BookDetail{AuthorName: "Leo Tolstoy", PublisherName: "Acme"}
	b.ISBN, b.Title, b.CopyCount = "9780140447934", "War and Peace", 3
	repo.On("ListDetailed", mock.Anything).Return([]*model.BookDetail{b}, nil)

	data, err := svc.ExportXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	rows, err := f.GetRows("Books")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, model.Columns, rows[0])
	assert.Equal(t, "War and Peace", rows[1][1])
	assert.Equal(t, "Leo Tolstoy", rows[1][4])
	assert.Equal(t, "0.00", rows[1][8])
}
