package ast

type (
	FileID     uint32
	StmtID     uint32
	ExprID     uint32
	TypeExprID uint32
	PatternID  uint32
	// PayloadID indexes the per-kind payload arena of a node.
	PayloadID uint32
)

const (
	NoFileID     FileID     = 0
	NoStmtID     StmtID     = 0
	NoExprID     ExprID     = 0
	NoTypeExprID TypeExprID = 0
	NoPatternID  PatternID  = 0
	NoPayloadID  PayloadID  = 0
)

func (id FileID) IsValid() bool     { return id != NoFileID }
func (id StmtID) IsValid() bool     { return id != NoStmtID }
func (id ExprID) IsValid() bool     { return id != NoExprID }
func (id TypeExprID) IsValid() bool { return id != NoTypeExprID }
func (id PatternID) IsValid() bool  { return id != NoPatternID }
func (id PayloadID) IsValid() bool  { return id != NoPayloadID }
