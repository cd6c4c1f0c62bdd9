package rules

import (
	"fmt"
	"strconv"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// CastlingRights mirrors the castling availability field of a FEN string.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// Position is an immutable game state parsed from FEN. Derived views such as
// snapshots and legal move lists are computed on demand.
type Position struct {
	game *nchess.Game
}

// FromFEN parses fen and validates basic structure. Positions without both
// kings are rejected even when the notation itself parses.
func FromFEN(fen string) (*Position, error) {
	trimmed := strings.TrimSpace(fen)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidFEN)
	}
	option, err := nchess.FEN(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	p := &Position{game: nchess.NewGame(option)}

	board := p.Snapshot()
	if _, ok := board.KingSquare(nchess.White); !ok {
		return nil, fmt.Errorf("%w: missing white king", ErrInvalidFEN)
	}
	if _, ok := board.KingSquare(nchess.Black); !ok {
		return nil, fmt.Errorf("%w: missing black king", ErrInvalidFEN)
	}
	return p, nil
}

// StartingPosition returns the standard initial position.
func StartingPosition() *Position {
	return &Position{game: nchess.NewGame()}
}

// Opponent returns the other side.
func Opponent(c nchess.Color) nchess.Color {
	if c == nchess.White {
		return nchess.Black
	}
	return nchess.White
}

func (p *Position) FEN() string {
	return p.game.FEN()
}

func (p *Position) Turn() nchess.Color {
	return p.game.Position().Turn()
}

// Snapshot copies the piece placement into a detached board.
func (p *Position) Snapshot() Board {
	var b Board
	board := p.game.Position().Board()
	for file := nchess.FileA; file <= nchess.FileH; file++ {
		for rank := nchess.Rank1; rank <= nchess.Rank8; rank++ {
			sq := nchess.NewSquare(file, rank)
			b.set(sq, board.Piece(sq))
		}
	}
	return b
}

// ApplyUCI plays one move and returns the resulting position. The receiver is
// left untouched.
func (p *Position) ApplyUCI(uci string) (*Position, error) {
	clone := p.game.Clone()
	if err := clone.PushNotationMove(strings.ToLower(strings.TrimSpace(uci)), nchess.UCINotation{}, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	return &Position{game: clone}, nil
}

// CastlingRights reads the castling field of the current FEN.
func (p *Position) CastlingRights() CastlingRights {
	fields := strings.Fields(p.FEN())
	var r CastlingRights
	if len(fields) < 3 {
		return r
	}
	for _, c := range fields[2] {
		switch c {
		case 'K':
			r.WhiteKingside = true
		case 'Q':
			r.WhiteQueenside = true
		case 'k':
			r.BlackKingside = true
		case 'q':
			r.BlackQueenside = true
		}
	}
	return r
}

// FullMoveNumber reads the move counter of the current FEN.
func (p *Position) FullMoveNumber() int {
	fields := strings.Fields(p.FEN())
	if len(fields) < 6 {
		return 1
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (p *Position) enPassantTarget() (nchess.Square, bool) {
	fields := strings.Fields(p.FEN())
	if len(fields) < 4 || fields[3] == "-" || len(fields[3]) != 2 {
		return 0, false
	}
	file := int(fields[3][0] - 'a')
	rank := int(fields[3][1] - '1')
	if !onBoard(file, rank) {
		return 0, false
	}
	return SquareAt(file, rank), true
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.sideInCheck(p.Turn())
}

func (p *Position) sideInCheck(side nchess.Color) bool {
	board := p.Snapshot()
	kingSq, ok := board.KingSquare(side)
	if !ok {
		return false
	}
	return board.IsAttacked(kingSq, Opponent(side))
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && len(p.LegalTargets(p.Turn())) == 0
}

// IsStalemate reports whether the side to move has no legal move while not
// in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && len(p.LegalTargets(p.Turn())) == 0
}

// HasInsufficientMaterial reports whether neither side can possibly deliver
// mate: bare kings, a single minor piece, or same-colored bishops only.
func (p *Position) HasInsufficientMaterial() bool {
	board := p.Snapshot()
	var minors int
	var bishopSquareColors []int
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			pc := board.At(file, rank)
			if pc == nchess.NoPiece {
				continue
			}
			switch pc.Type() {
			case nchess.King:
			case nchess.Knight:
				minors++
			case nchess.Bishop:
				minors++
				bishopSquareColors = append(bishopSquareColors, (file+rank)%2)
			default:
				return false
			}
		}
	}
	if minors <= 1 {
		return true
	}
	// Two or more minors only draw by force when all of them are bishops
	// standing on squares of one color.
	if len(bishopSquareColors) != minors {
		return false
	}
	for _, c := range bishopSquareColors {
		if c != bishopSquareColors[0] {
			return false
		}
	}
	return true
}
