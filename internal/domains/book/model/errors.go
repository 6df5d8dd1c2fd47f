package model

import "errors"

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrInvalidBatch     = errors.New("one or more submitted forms are invalid")
	ErrInvalidReference = errors.New("author, publisher or friend no longer exists")
	ErrImportHeader     = errors.New("spreadsheet header row is missing required columns")
	ErrImportEmpty      = errors.New("spreadsheet has no data rows")
	ErrImportUnreadable = errors.New("file is not a readable xlsx spreadsheet")
)
