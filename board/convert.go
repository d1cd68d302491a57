package board

import (
	"fmt"
	"strings"
)

type castleInfo struct {
	Castle Castle
	Piece  [2]Piece
	Square [2]Square
}

var symbolToCastleInfo = map[rune]castleInfo{
	'K': {Castle: WhiteOO, Piece: [2]Piece{WhiteKing, WhiteRook}, Square: [2]Square{SquareE1, SquareH1}},
	'k': {Castle: BlackOO, Piece: [2]Piece{BlackKing, BlackRook}, Square: [2]Square{SquareE8, SquareH8}},
	'Q': {Castle: WhiteOOO, Piece: [2]Piece{WhiteKing, WhiteRook}, Square: [2]Square{SquareE1, SquareA1}},
	'q': {Castle: BlackOOO, Piece: [2]Piece{BlackKing, BlackRook}, Square: [2]Square{SquareE8, SquareA8}},
}

var symbolToColor = map[string]Color{"w": White, "b": Black}

var symbolToPiece = map[rune]Piece{
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
}

// parsePiecePlacement parses the first FEN field into pos.
func parsePiecePlacement(str string, pos *Position) error {
	ranks := strings.Split(str, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for r := range ranks {
		f := 0
		for _, p := range ranks[r] {
			pi := symbolToPiece[p]
			if pi == NoPiece {
				if '1' <= p && p <= '8' {
					f += int(p) - int('0') - 1
				} else {
					return fmt.Errorf("expected piece or digit, got %q", p)
				}
			}
			if f >= 8 {
				return fmt.Errorf("rank %d too long", 8-r)
			}
			// 7-r because FEN describes the board starting at the 8th rank.
			pos.Put(RankFile(7-r, f), pi)
			f++
		}
		if f < 8 {
			return fmt.Errorf("rank %d too short", 8-r)
		}
	}
	return nil
}

func parseEnpassantSquare(str string, pos *Position) error {
	if str == "-" {
		pos.SetEnpassantSquare(SquareA1)
		return nil
	}
	sq, err := SquareFromString(str)
	if err != nil {
		return err
	}
	pos.SetEnpassantSquare(sq)
	return nil
}

func parseSideToMove(str string, pos *Position) error {
	col, ok := symbolToColor[str]
	if !ok {
		return fmt.Errorf("invalid color %q", str)
	}
	pos.SetSideToMove(col)
	return nil
}

func parseCastlingAbility(str string, pos *Position) error {
	if str == "-" {
		pos.SetCastlingAbility(NoCastle)
		return nil
	}
	ability := NoCastle
	for _, p := range str {
		info, ok := symbolToCastleInfo[p]
		if !ok {
			return fmt.Errorf("invalid castling ability %q", str)
		}
		ability |= info.Castle
		for i := 0; i < 2; i++ {
			if info.Piece[i] != pos.Get(info.Square[i]) {
				return fmt.Errorf("expected %v at %v, got %v", info.Piece[i], info.Square[i], pos.Get(info.Square[i]))
			}
		}
	}
	pos.SetCastlingAbility(ability)
	return nil
}
