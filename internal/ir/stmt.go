package ir

import "onion/internal/source"

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtReturn
	StmtBlock
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "Expr"
	case StmtReturn:
		return "Return"
	case StmtBlock:
		return "Block"
	default:
		return "Unknown"
	}
}

// Stmt is an immutable statement node.
type Stmt struct {
	kind  StmtKind
	span  source.Span
	expr  *Expr
	stmts []*Stmt
}

func NewExprStmt(e *Expr, span source.Span) *Stmt {
	return &Stmt{kind: StmtExpr, expr: e, span: span}
}

// NewReturn builds a return; e is nil for a void return.
func NewReturn(e *Expr, span source.Span) *Stmt {
	return &Stmt{kind: StmtReturn, expr: e, span: span}
}

func NewBlock(span source.Span, stmts ...*Stmt) *Stmt {
	return &Stmt{kind: StmtBlock, stmts: append([]*Stmt(nil), stmts...), span: span}
}

func (s *Stmt) Kind() StmtKind    { return s.kind }
func (s *Stmt) Span() source.Span { return s.span }
func (s *Stmt) Expr() *Expr       { return s.expr }

// Stmts returns a copy of a block's statements.
func (s *Stmt) Stmts() []*Stmt { return append([]*Stmt(nil), s.stmts...) }
