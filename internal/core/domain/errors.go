package domain

import "errors"

var (
	ErrForbidden          = errors.New("access forbidden")
	ErrReportLocked       = errors.New("report is locked")
	ErrReportNotFound     = errors.New("report not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrCaseIDExists       = errors.New("case id already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is deactivated")

	// ErrNotADocument is returned when a file operation targets a report that
	// carries no stored object.
	ErrNotADocument = errors.New("report is not a document")
	// ErrUnsupportedLanguage is returned for a translation target outside the
	// supported set.
	ErrUnsupportedLanguage = errors.New("unsupported target language")
	// ErrNoExtractableText is returned when neither the record nor OCR yields
	// any text to translate.
	ErrNoExtractableText = errors.New("report contains no extractable text")
)
