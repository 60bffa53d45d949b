package engine

import (
	"github.com/lgbarn/hostage-chess/internal/chess"
	"github.com/lgbarn/hostage-chess/internal/errors"
)

type promotion struct {
	board *chess.Board
	piece *chess.Piece
}

var promotionChecks = []chess.Check[promotion]{
	chess.Rule("board", errors.Wrap(errors.ErrNilInput, "board"), func(p promotion) bool { return p.board != nil }),
	chess.Rule("piece", errors.Wrap(errors.ErrNilInput, "piece"), func(p promotion) bool { return p.piece != nil }),
	chess.Rule("piece-free", errors.ErrPieceCaptured, func(p promotion) bool {
		return !p.piece.IsCaptured() && p.board.IsActive(p.piece.ID)
	}),
	chess.Rule("not-promoted", errors.ErrAlreadyPromoted, func(p promotion) bool { return !p.piece.IsPromoted() }),
	chess.Rule("promotable", errors.ErrNotPromotable, func(p promotion) bool { return p.piece.Rank().Promotable }),
	chess.Rule("enemy-back-row", errors.ErrWrongPromotionRow, func(p promotion) bool {
		row, ok := PromotionRow(p.board, p.piece)
		c, placed := p.piece.CurrentPosition()
		return ok && placed && c.Row == row
	}),
}

// PromotionRow returns the enemy back row index for piece's team.
func PromotionRow(b *chess.Board, piece *chess.Piece) (int, bool) {
	if b == nil || piece == nil {
		return 0, false
	}
	if enemy := b.Opponent(piece.Team); enemy != nil {
		return enemy.BackRow, true
	}
	if t := b.Team(piece.Team); t != nil {
		return t.EnemyBackRow(), true
	}
	return 0, false
}

// Promotion swaps a piece's rank to the promotion rank in place. Identity
// and position history are kept, so squares and rosters need no update.
type Promotion struct {
	tx *txn
	p  promotion
}

// NewPromotion prepares the promotion of piece on b.
func NewPromotion(b *chess.Board, piece *chess.Piece, opts ...Option) *Promotion {
	return &Promotion{tx: newTxn(b, PromotionTx, opts), p: promotion{board: b, piece: piece}}
}

// ID returns the transaction id.
func (pr *Promotion) ID() int {
	return pr.tx.id
}

// Execute validates and applies the promotion.
func (pr *Promotion) Execute() Result {
	res := Result{TxID: pr.tx.id, Kind: PromotionTx}
	err := pr.tx.validate(func() error {
		_, err := chess.Validate("promotion", pr.p, promotionChecks...)
		return err
	})
	if piece := pr.p.piece; piece != nil {
		res.Actor = piece.ID
		res.From, _ = piece.CurrentPosition()
		res.To = res.From
	}
	if err != nil {
		pr.tx.reject(&res, err)
		return res
	}

	piece := pr.p.piece
	original := piece.Kind
	steps := []action{
		{
			step: StepRecordPreviousRank,
			apply: func() error {
				piece.PreviousKind = original
				return nil
			},
			verify: func() error {
				if piece.PreviousKind != original {
					return mismatch("%s previous rank %v, want %v", piece.Name, piece.PreviousKind, original)
				}
				return nil
			},
			undo: func() {
				piece.PreviousKind = chess.NoKind
			},
			restore: func() error {
				if piece.PreviousKind != chess.NoKind {
					return mismatch("%s previous rank %v", piece.Name, piece.PreviousKind)
				}
				return nil
			},
		},
		{
			step: StepSwapRank,
			apply: func() error {
				piece.Kind = chess.PromotionKind
				return nil
			},
			verify: func() error {
				if piece.Kind != chess.PromotionKind {
					return mismatch("%s rank %v, want %v", piece.Name, piece.Kind, chess.PromotionKind)
				}
				return nil
			},
			undo: func() {
				piece.Kind = original
			},
			restore: func() error {
				if piece.Kind != original {
					return mismatch("%s rank %v, want %v", piece.Name, piece.Kind, original)
				}
				return nil
			},
		},
	}

	for _, s := range steps {
		if failed := pr.tx.run(s); failed != nil {
			pr.tx.fail(&res, s.step, failed)
			return res
		}
	}
	pr.tx.succeed(&res)
	return res
}

// CanPromote reports whether piece meets every promotion precondition.
func CanPromote(b *chess.Board, piece *chess.Piece) bool {
	_, err := chess.Validate("promotion", promotion{board: b, piece: piece}, promotionChecks...)
	return err == nil
}
