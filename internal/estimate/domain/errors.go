package estimate

import "errors"

var (
	// ErrUnsupportedFormat is returned when the uploaded file is not an xlsx workbook.
	ErrUnsupportedFormat = errors.New("estimate: unsupported file format")
	// ErrParse is returned when the workbook structure cannot be read.
	ErrParse = errors.New("estimate: parse error")
	// ErrEmptyFileName is returned when the source file name is missing.
	ErrEmptyFileName = errors.New("estimate: empty file name")
	// ErrEmptyID is returned when a document id is missing.
	ErrEmptyID = errors.New("estimate: empty document id")
	// ErrNilDocument is returned when saving a nil document.
	ErrNilDocument = errors.New("estimate: nil document")
	// ErrDocumentNotFound is returned when a document is not found.
	ErrDocumentNotFound = errors.New("estimate: document not found")
)
