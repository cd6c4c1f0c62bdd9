package rules

import "errors"

var (
	// ErrInvalidFEN marks positions that could not be parsed or fail basic
	// structural checks (both kings present, side to move valid).
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrInvalidMove marks candidate moves that are unparseable or illegal
	// in the given position.
	ErrInvalidMove = errors.New("invalid move")
)
