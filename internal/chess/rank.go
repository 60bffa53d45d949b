package chess

// Rank is the immutable metadata shared by every piece of one kind.
type Rank struct {
	Kind         Kind
	Name         string
	Letter       byte
	CaptureValue int     // Material value
	TeamQuota    int     // Maximum pieces of this kind a team may start with
	Territories  []Flank // Flanks this kind starts on
	Promotable   bool
}

// The rank table. Pieces refer to it by Kind; nothing instantiates a Rank
// per piece.
var ranks = [NumKinds]Rank{
	NoKind: {Kind: NoKind, Name: "None", Letter: ' '},
	Pawn: {
		Kind: Pawn, Name: "Pawn", Letter: 'P', CaptureValue: 1, TeamQuota: 8,
		Territories: []Flank{QueenSide, KingSide}, Promotable: true,
	},
	Knight: {
		Kind: Knight, Name: "Knight", Letter: 'N', CaptureValue: 3, TeamQuota: 2,
		Territories: []Flank{QueenSide, KingSide},
	},
	Bishop: {
		Kind: Bishop, Name: "Bishop", Letter: 'B', CaptureValue: 3, TeamQuota: 2,
		Territories: []Flank{QueenSide, KingSide},
	},
	Rook: {
		Kind: Rook, Name: "Rook", Letter: 'R', CaptureValue: 5, TeamQuota: 2,
		Territories: []Flank{QueenSide, KingSide},
	},
	Queen: {
		Kind: Queen, Name: "Queen", Letter: 'Q', CaptureValue: 9, TeamQuota: 1,
		Territories: []Flank{QueenSide},
	},
	King: {
		Kind: King, Name: "King", Letter: 'K', CaptureValue: 0, TeamQuota: 1,
		Territories: []Flank{KingSide},
	},
}

// RankOf returns the shared metadata for k. Unknown kinds map to the NoKind
// entry.
func RankOf(k Kind) *Rank {
	if k < 0 || k >= NumKinds {
		return &ranks[NoKind]
	}
	return &ranks[k]
}

// PromotionKind is the kind a promotable piece becomes.
const PromotionKind = Queen
