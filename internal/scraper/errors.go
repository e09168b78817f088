package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL        = errors.New("URL must use http or https")
	ErrNoURLFound        = errors.New("no URL found in input")
	ErrTimeout           = errors.New("request timed out")
	ErrEmptyDocument     = errors.New("document has no readable text")
	ErrMalformedDocument = errors.New("document cannot be parsed")
)

// StatusError reports a non-2xx response from the target page.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.Code)
}

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindBadInput
	KindNetwork
	KindParse
)

// KindOf classifies a scrape error for the presentation layer. Anything
// that is not a bad-input or parse failure happened on the wire.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	if errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrNoURLFound) {
		return KindBadInput
	}

	if errors.Is(err, ErrEmptyDocument) || errors.Is(err, ErrMalformedDocument) {
		return KindParse
	}

	return KindNetwork
}
