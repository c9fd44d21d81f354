package parse

import "errors"

var (
	// ErrParse indicates a parser failed to turn document bytes into elements.
	ErrParse = errors.New("parse failed")

	// ErrUnsupportedType indicates no parser is registered for a document type.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrNilParser is returned when registering a nil parser.
	ErrNilParser = errors.New("parser cannot be nil")
)
