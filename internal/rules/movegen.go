package rules

import (
	nchess "github.com/corentings/chess/v2"
)

// MoveTarget is one legal move reduced to what mobility and control counting
// need. Promotions appear once per promotion piece, matching how engines and
// move generators count them.
type MoveTarget struct {
	From      nchess.Square
	To        nchess.Square
	IsCapture bool
}

type genMove struct {
	from, to  nchess.Square
	capture   bool
	enPassant bool
	castle    bool
	promotion bool
}

// LegalTargets generates every legal move for side. When side is not the side
// to move, the position is treated as if it were side's turn with no en
// passant available, which is how "could they move here" questions are asked.
func (p *Position) LegalTargets(side nchess.Color) []MoveTarget {
	board := p.Snapshot()
	st := genState{
		board:  board,
		side:   side,
		rights: p.CastlingRights(),
	}
	if side == p.Turn() {
		if ep, ok := p.enPassantTarget(); ok {
			st.epTarget = ep
			st.hasEP = true
		}
	}
	var out []MoveTarget
	for _, m := range st.pseudoLegal() {
		if !st.legal(m) {
			continue
		}
		t := MoveTarget{From: m.from, To: m.to, IsCapture: m.capture || m.enPassant}
		if m.promotion {
			// Queen, rook, bishop, knight.
			out = append(out, t, t, t, t)
			continue
		}
		out = append(out, t)
	}
	return out
}

type genState struct {
	board    Board
	side     nchess.Color
	rights   CastlingRights
	epTarget nchess.Square
	hasEP    bool
}

func (s *genState) pseudoLegal() []genMove {
	var out []genMove
	s.board.EachPiece(func(sq nchess.Square, pc nchess.Piece) {
		if pc.Color() != s.side {
			return
		}
		switch pc.Type() {
		case nchess.Pawn:
			out = append(out, s.pawnMoves(sq)...)
		case nchess.Knight:
			out = append(out, s.stepMoves(sq, knightOffsets)...)
		case nchess.King:
			out = append(out, s.stepMoves(sq, kingOffsets)...)
		case nchess.Bishop:
			out = append(out, s.slideMoves(sq, diagDirs[:])...)
		case nchess.Rook:
			out = append(out, s.slideMoves(sq, orthoDirs[:])...)
		case nchess.Queen:
			dirs := append(append([][2]int{}, orthoDirs[:]...), diagDirs[:]...)
			out = append(out, s.slideMoves(sq, dirs)...)
		}
	})
	out = append(out, s.castleMoves()...)
	return out
}

func (s *genState) pawnMoves(sq nchess.Square) []genMove {
	var out []genMove
	f, r := int(sq.File()), int(sq.Rank())
	forward, startRank, promoRank := 1, 1, 7
	if s.side == nchess.Black {
		forward, startRank, promoRank = -1, 6, 0
	}

	push := func(to nchess.Square, capture, ep bool) {
		out = append(out, genMove{
			from:      sq,
			to:        to,
			capture:   capture,
			enPassant: ep,
			promotion: int(to.Rank()) == promoRank,
		})
	}

	if onBoard(f, r+forward) && s.board.At(f, r+forward) == nchess.NoPiece {
		push(SquareAt(f, r+forward), false, false)
		if r == startRank && s.board.At(f, r+2*forward) == nchess.NoPiece {
			push(SquareAt(f, r+2*forward), false, false)
		}
	}
	for _, df := range []int{-1, 1} {
		cf, cr := f+df, r+forward
		if !onBoard(cf, cr) {
			continue
		}
		to := SquareAt(cf, cr)
		victim := s.board.At(cf, cr)
		if victim != nchess.NoPiece && victim.Color() != s.side {
			push(to, true, false)
		} else if s.hasEP && to == s.epTarget {
			push(to, false, true)
		}
	}
	return out
}

func (s *genState) stepMoves(sq nchess.Square, offsets [8][2]int) []genMove {
	var out []genMove
	f, r := int(sq.File()), int(sq.Rank())
	for _, off := range offsets {
		tf, tr := f+off[0], r+off[1]
		if !onBoard(tf, tr) {
			continue
		}
		victim := s.board.At(tf, tr)
		if victim != nchess.NoPiece && victim.Color() == s.side {
			continue
		}
		out = append(out, genMove{
			from:    sq,
			to:      SquareAt(tf, tr),
			capture: victim != nchess.NoPiece,
		})
	}
	return out
}

func (s *genState) slideMoves(sq nchess.Square, dirs [][2]int) []genMove {
	var out []genMove
	f, r := int(sq.File()), int(sq.Rank())
	for _, d := range dirs {
		tf, tr := f+d[0], r+d[1]
		for onBoard(tf, tr) {
			victim := s.board.At(tf, tr)
			if victim != nchess.NoPiece {
				if victim.Color() != s.side {
					out = append(out, genMove{from: sq, to: SquareAt(tf, tr), capture: true})
				}
				break
			}
			out = append(out, genMove{from: sq, to: SquareAt(tf, tr)})
			tf += d[0]
			tr += d[1]
		}
	}
	return out
}

func (s *genState) castleMoves() []genMove {
	var out []genMove
	enemy := Opponent(s.side)
	homeRank := 0
	kingside, queenside := s.rights.WhiteKingside, s.rights.WhiteQueenside
	if s.side == nchess.Black {
		homeRank = 7
		kingside, queenside = s.rights.BlackKingside, s.rights.BlackQueenside
	}

	kingSq := SquareAt(4, homeRank)
	pc := s.board.Piece(kingSq)
	if pc == nchess.NoPiece || pc.Type() != nchess.King || pc.Color() != s.side {
		return nil
	}
	if s.board.IsAttacked(kingSq, enemy) {
		return nil
	}

	clear := func(files ...int) bool {
		for _, f := range files {
			if s.board.At(f, homeRank) != nchess.NoPiece {
				return false
			}
		}
		return true
	}
	safe := func(files ...int) bool {
		for _, f := range files {
			if s.board.IsAttacked(SquareAt(f, homeRank), enemy) {
				return false
			}
		}
		return true
	}

	if kingside && clear(5, 6) && safe(5, 6) {
		out = append(out, genMove{from: kingSq, to: SquareAt(6, homeRank), castle: true})
	}
	if queenside && clear(1, 2, 3) && safe(2, 3) {
		out = append(out, genMove{from: kingSq, to: SquareAt(2, homeRank), castle: true})
	}
	return out
}

// legal filters pseudo-legal moves by own-king safety on the resulting board.
func (s *genState) legal(m genMove) bool {
	b := s.board
	pc := b.Piece(m.from)
	b.set(m.from, nchess.NoPiece)
	if m.enPassant {
		b.set(SquareAt(int(m.to.File()), int(m.from.Rank())), nchess.NoPiece)
	}
	b.set(m.to, pc)
	if m.castle {
		homeRank := int(m.from.Rank())
		if int(m.to.File()) == 6 {
			rook := b.At(7, homeRank)
			b.set(SquareAt(7, homeRank), nchess.NoPiece)
			b.set(SquareAt(5, homeRank), rook)
		} else {
			rook := b.At(0, homeRank)
			b.set(SquareAt(0, homeRank), nchess.NoPiece)
			b.set(SquareAt(3, homeRank), rook)
		}
	}
	kingSq, ok := b.KingSquare(s.side)
	if !ok {
		return false
	}
	return !b.IsAttacked(kingSq, Opponent(s.side))
}
