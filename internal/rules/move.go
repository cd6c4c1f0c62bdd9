package rules

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// MoveDescriptor is a fully resolved candidate move: both notations plus the
// flags downstream feature extraction needs. It never holds library state, so
// it can be stored and compared freely.
type MoveDescriptor struct {
	From      nchess.Square
	To        nchess.Square
	Promotion nchess.PieceType // NoPieceType unless promoting

	SAN string
	UCI string

	IsCapture   bool
	IsEnPassant bool
	IsCastle    bool
	GivesCheck  bool
}

// IsPromotion reports whether the move promotes a pawn.
func (m MoveDescriptor) IsPromotion() bool {
	return m.Promotion != nchess.NoPieceType
}

// ParseMove accepts SAN first and falls back to UCI, then verifies legality
// by playing the move on a clone.
func (p *Position) ParseMove(text string) (MoveDescriptor, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return MoveDescriptor{}, fmt.Errorf("%w: empty move", ErrInvalidMove)
	}
	pos := p.game.Position()

	mv, err := nchess.AlgebraicNotation{}.Decode(pos, raw)
	if err != nil {
		mv, err = nchess.UCINotation{}.Decode(pos, strings.ToLower(raw))
		if err != nil {
			return MoveDescriptor{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidMove, raw)
		}
	}

	trial := p.game.Clone()
	if err := trial.Move(mv, nil); err != nil {
		return MoveDescriptor{}, fmt.Errorf("%w: %q is not legal here", ErrInvalidMove, raw)
	}

	d := MoveDescriptor{
		From:      mv.S1(),
		To:        mv.S2(),
		Promotion: mv.Promo(),
		SAN:       nchess.AlgebraicNotation{}.Encode(pos, mv),
		UCI:       strings.ToLower(mv.String()),
	}

	// Capture flags come from the board rather than move tags so they stay
	// correct regardless of which notation produced the move.
	board := p.Snapshot()
	moved := board.Piece(d.From)
	if board.Piece(d.To) != nchess.NoPiece {
		d.IsCapture = true
	} else if moved != nchess.NoPiece && moved.Type() == nchess.Pawn && d.From.File() != d.To.File() {
		d.IsCapture = true
		d.IsEnPassant = true
	}
	if moved != nchess.NoPiece && moved.Type() == nchess.King && abs(int(d.To.File())-int(d.From.File())) >= 2 {
		d.IsCastle = true
	}

	after := &Position{game: trial}
	d.GivesCheck = after.InCheck()
	return d, nil
}
