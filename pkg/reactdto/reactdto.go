// Package reactdto defines the JSON wire types of the move analysis API.
package reactdto

// AnalyzeRequest asks for a reaction to one candidate move. Move accepts SAN
// ("Nf3") or UCI ("g1f3").
type AnalyzeRequest struct {
	FEN  string `json:"fen"`
	Move string `json:"move"`
}

type AnalyzeResponse struct {
	RequestID      string   `json:"request_id"`
	NormalizedMove string   `json:"normalized_move"`
	UCI            string   `json:"uci"`
	Category       string   `json:"category"`
	Reaction       string   `json:"reaction"`
	Reasons        []string `json:"reasons"`
	Details        Details  `json:"details"`
}

// Details carries everything behind the reaction: the extracted features,
// the raw engine report, its normalized summary, and the optional heuristic
// advisory.
type Details struct {
	Features      Features       `json:"features"`
	Engine        EngineReport   `json:"engine"`
	EngineSummary EngineSummary  `json:"engine_summary"`
	Advisory      *MoveAdvisory  `json:"ml_prediction"`
}

type SideCounts struct {
	White int `json:"white"`
	Black int `json:"black"`
}

type CastlingRights struct {
	WhiteKingside  bool `json:"white_can_castle_k"`
	WhiteQueenside bool `json:"white_can_castle_q"`
	BlackKingside  bool `json:"black_can_castle_k"`
	BlackQueenside bool `json:"black_can_castle_q"`
}

type CastlingLost struct {
	WhiteKingside  bool `json:"white_can_castle_k_lost"`
	WhiteQueenside bool `json:"white_can_castle_q_lost"`
	BlackKingside  bool `json:"black_can_castle_k_lost"`
	BlackQueenside bool `json:"black_can_castle_q_lost"`
}

// LoosePiece names an underdefended piece by square and FEN piece letter.
type LoosePiece struct {
	Square string `json:"square"`
	Piece  string `json:"piece"`
}

type Underdefended struct {
	White []LoosePiece `json:"white"`
	Black []LoosePiece `json:"black"`
}

type PawnIssues struct {
	Doubled  []string `json:"doubled"`
	Isolated []string `json:"isolated"`
	Passed   []string `json:"passed"`
}

type PawnStructure struct {
	White PawnIssues `json:"white"`
	Black PawnIssues `json:"black"`
}

type Features struct {
	Turn        string `json:"turn"`
	IsCapture   bool   `json:"is_capture"`
	IsEnPassant bool   `json:"is_en_passant"`
	IsCheckMove bool   `json:"is_check_move"`
	IsPromotion bool   `json:"is_promotion"`
	IsCastle    bool   `json:"is_castle"`

	MovedPiece string `json:"moved_piece"`
	FromSquare string `json:"from_square"`
	ToSquare   string `json:"to_square"`

	MaterialBefore int `json:"material_before"`
	MaterialAfter  int `json:"material_after"`
	MaterialDelta  int `json:"material_delta"`

	PinsBefore SideCounts `json:"pins_before"`
	PinsAfter  SideCounts `json:"pins_after"`

	CastlingBefore CastlingRights `json:"castling_rights_before"`
	CastlingAfter  CastlingRights `json:"castling_rights_after"`
	CastlingLost   CastlingLost   `json:"castling_rights_lost"`

	UnderdefendedBefore Underdefended `json:"ud_material_before"`
	UnderdefendedAfter  Underdefended `json:"ud_material_after"`

	MobilityBefore SideCounts `json:"mobility_before"`
	MobilityAfter  SideCounts `json:"mobility_after"`

	CenterBefore SideCounts `json:"center_control_before"`
	CenterAfter  SideCounts `json:"center_control_after"`

	// KingExposed maps squares near the mover's king to how much more
	// attacked they became.
	KingExposed map[string]int `json:"king_exposed"`

	PawnsBefore PawnStructure `json:"pawn_structure_before"`
	PawnsAfter  PawnStructure `json:"pawn_structure_after"`

	OpeningNotes []string `json:"opening_notes"`

	IsHangingToLesser  bool `json:"is_hanging_to_lesser"`
	ImmediateRecapture bool `json:"immediate_recapture"`

	IsCheckmateAfter            bool `json:"is_checkmate_after"`
	IsStalemateAfter            bool `json:"is_stalemate_after"`
	IsInsufficientMaterialAfter bool `json:"is_insufficient_material_after"`
}

type EngineReport struct {
	Enabled bool           `json:"enabled"`
	Depth   int            `json:"depth,omitempty"`
	Note    string         `json:"note,omitempty"`
	Before  *PositionEval  `json:"before,omitempty"`
	After   *PositionEval  `json:"after,omitempty"`
}

type PositionEval struct {
	OK             bool   `json:"ok"`
	ScoreCentipawn *int   `json:"score_centipawn,omitempty"`
	MateIn         *int   `json:"mate_in,omitempty"`
	BestMove       string `json:"bestmove,omitempty"`
	Note           string `json:"note,omitempty"`
}

type EngineSummary struct {
	Available bool   `json:"available"`
	Tone      string `json:"tone,omitempty"`
	BeforeCP  *int   `json:"before_cp"`
	AfterCP   *int   `json:"after_cp"`
	DeltaCP   *int   `json:"delta_cp"`
}

type MoveAdvisory struct {
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
	Method        string             `json:"method"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Engine bool   `json:"engine"`
}
