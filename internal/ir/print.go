package ir

import (
	"fmt"
	"io"
	"strings"

	"onion/internal/types"
)

// TypeNamer renders a TypeID; symbols.Table.TypeName fits.
type TypeNamer func(types.TypeID) string

// Printer dumps typed IR as indented text.
type Printer struct {
	w      io.Writer
	names  TypeNamer
	indent int
	err    error
}

// NewPrinter creates a printer; a nil namer prints raw type IDs.
func NewPrinter(w io.Writer, names TypeNamer) *Printer {
	return &Printer{w: w, names: names}
}

// Print writes one expression tree, one node per line.
func Print(w io.Writer, e *Expr, names TypeNamer) error {
	p := NewPrinter(w, names)
	p.printExpr(e)
	return p.err
}

// PrintStmt writes a statement tree.
func PrintStmt(w io.Writer, s *Stmt, names TypeNamer) error {
	p := NewPrinter(w, names)
	p.printStmt(s)
	return p.err
}

func (p *Printer) printStmt(s *Stmt) {
	p.printIndent()
	switch s.kind {
	case StmtBlock:
		p.printf("block\n")
		p.indent++
		for _, child := range s.stmts {
			p.printStmt(child)
		}
		p.indent--
	case StmtReturn:
		p.printf("return\n")
		if s.expr != nil {
			p.indent++
			p.printExpr(s.expr)
			p.indent--
		}
	default:
		p.printf("expr\n")
		p.indent++
		p.printExpr(s.expr)
		p.indent--
	}
}

func (p *Printer) printExpr(e *Expr) {
	p.printIndent()
	p.printf("%s", e.kind)
	switch e.kind {
	case ExprLiteral, ExprLocal:
		p.printf(" %s", e.text)
	case ExprNew:
		p.printf(" (%s)", strings.Join(p.typeStrs(e.ctor.Params), ", "))
	case ExprCall:
		p.printf(" %s(%s)", e.method.Name, strings.Join(p.typeStrs(e.method.Params), ", "))
	case ExprStaticCall:
		p.printf(" %s.%s(%s)", p.typeStr(e.owner), e.method.Name, strings.Join(p.typeStrs(e.method.Params), ", "))
	case ExprFieldRef:
		p.printf(" .%s", e.field.Name)
	case ExprStaticFieldRef:
		p.printf(" %s.%s", p.typeStr(e.owner), e.field.Name)
	case ExprCast:
		p.printf(" %s", e.cast)
	}
	p.printf(": %s\n", p.typeStr(e.typ))
	p.indent++
	for _, op := range e.operands {
		p.printExpr(op)
	}
	p.indent--
}

func (p *Printer) printIndent() {
	for range p.indent {
		p.printf("  ")
	}
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) typeStr(id types.TypeID) string {
	if id == types.NoTypeID {
		return "?"
	}
	if p.names == nil {
		return fmt.Sprintf("type#%d", id)
	}
	return p.names(id)
}

func (p *Printer) typeStrs(ids []types.TypeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = p.typeStr(id)
	}
	return out
}

// ExprString returns the printed form of an expression.
func ExprString(e *Expr, names TypeNamer) string {
	var sb strings.Builder
	p := NewPrinter(&sb, names)
	p.printExpr(e)
	return sb.String()
}
