package domain

import "errors"

var (
	// ErrConfiguration marks startup configuration problems. It is fatal.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingSelection is returned when a duration or guide is requested
	// before any product was chosen.
	ErrMissingSelection = errors.New("no product selected")

	// ErrUnknownTopic is returned for FAQ ids absent from the link table.
	ErrUnknownTopic = errors.New("unknown faq topic")

	ErrUnknownProduct      = errors.New("unknown product")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
