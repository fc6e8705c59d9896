package apperr

import "errors"

var (
	ErrInvalidWiki = errors.New("incorrect wiki directory")
	ErrStale       = errors.New("index is out of date")
	ErrBrokenLinks = errors.New("index links to missing wiki pages")
)
