// Package expr defines the typed expression language consumed by the
// symbolic evaluator. Expressions arrive already translated and typed;
// this package only describes their shape.
package expr

import (
	"fmt"
	"strings"
)

// Expr represents a typed expression tree node.
type Expr interface {
	isExpr()
	String() string
}

// VarExpr references a program variable or identifier. Temp marks
// compiler-introduced temporaries, which scope-exit bookkeeping treats
// differently from genuine locals. Global marks program-level variables
// whose contents outlive every procedure.
type VarExpr struct {
	Name   string
	Temp   bool
	Global bool
}

func (VarExpr) isExpr() {}
func (e VarExpr) String() string {
	return e.Name
}

// FieldExpr is a field access: base.name.
type FieldExpr struct {
	Base Expr
	Name string
}

func (FieldExpr) isExpr() {}
func (e FieldExpr) String() string {
	return e.Base.String() + "." + e.Name
}

// IndexExpr is an array access: base[index].
type IndexExpr struct {
	Base  Expr
	Index Expr
}

func (IndexExpr) isExpr() {}
func (e IndexExpr) String() string {
	return e.Base.String() + "[" + e.Index.String() + "]"
}

// DerefExpr is a pointer dereference: *base.
type DerefExpr struct {
	Base Expr
}

func (DerefExpr) isExpr() {}
func (e DerefExpr) String() string {
	return "*" + e.Base.String()
}

// CastExpr is a type cast, transparent to evaluation.
type CastExpr struct {
	Type  string
	Inner Expr
}

func (CastExpr) isExpr() {}
func (e CastExpr) String() string {
	return "(" + e.Type + ")" + e.Inner.String()
}

// SizeOfExpr is a size-of operator. When the size is statically known it
// evaluates like the corresponding integer constant.
type SizeOfExpr struct {
	Type  string
	Known int64
	Exact bool
}

func (SizeOfExpr) isExpr() {}
func (e SizeOfExpr) String() string {
	return "sizeof(" + e.Type + ")"
}

// Literal is a compile-time constant payload.
type Literal interface {
	isLiteral()
	String() string
}

// IntLit is an integer constant. The zero constant doubles as null.
type IntLit struct {
	Val int64
}

func (IntLit) isLiteral() {}
func (l IntLit) String() string {
	return fmt.Sprintf("%d", l.Val)
}

// FloatLit is a floating-point constant.
type FloatLit struct {
	Val float64
}

func (FloatLit) isLiteral() {}
func (l FloatLit) String() string {
	return fmt.Sprintf("%g", l.Val)
}

// StrLit is a string constant.
type StrLit struct {
	Val string
}

func (StrLit) isLiteral() {}
func (l StrLit) String() string {
	return fmt.Sprintf("%q", l.Val)
}

// ClassLit is a class-object constant.
type ClassLit struct {
	Name string
}

func (ClassLit) isLiteral() {}
func (l ClassLit) String() string {
	return l.Name + ".class"
}

// ConstExpr wraps a literal constant.
type ConstExpr struct {
	Lit Literal
}

func (ConstExpr) isExpr() {}
func (e ConstExpr) String() string {
	return e.Lit.String()
}

// IsNull reports whether the expression is the null/zero constant.
func (e ConstExpr) IsNull() bool {
	i, ok := e.Lit.(IntLit)
	return ok && i.Val == 0
}

// CaptureMode says how a closure captures a variable.
type CaptureMode int

const (
	ByValue CaptureMode = iota
	ByReference
)

func (m CaptureMode) String() string {
	if m == ByReference {
		return "byref"
	}
	return "byval"
}

// Capture is one captured variable of a closure.
type Capture struct {
	Name string
	Mode CaptureMode
	Weak bool
}

// ClosureExpr is a function value. Lambda closures carry captured
// variables; plain function references capture nothing.
type ClosureExpr struct {
	Proc     string
	Lambda   bool
	Captures []Capture
}

func (ClosureExpr) isExpr() {}
func (e ClosureExpr) String() string {
	if !e.Lambda {
		return "&" + e.Proc
	}
	names := make([]string, len(e.Captures))
	for i, c := range e.Captures {
		names[i] = c.Name
	}
	return "closure " + e.Proc + "[" + strings.Join(names, ", ") + "]"
}

// UnaryOp represents unary operators.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
	OpBitNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	case OpBitNot:
		return "~"
	default:
		return "?"
	}
}

// UnaryExpr applies a unary operator.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (UnaryExpr) isExpr() {}
func (e UnaryExpr) String() string {
	return "(" + e.Op.String() + e.Operand.String() + ")"
}

// BinaryOp represents binary operators.
type BinaryOp int

const (
	_ BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "?"
	}
}

// IsComparison reports whether the operator is a comparison.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return true
	default:
		return false
	}
}

// IsEquality reports whether the operator is == or !=.
func (op BinaryOp) IsEquality() bool {
	return op == OpEq || op == OpNeq
}

// BinaryExpr applies a binary operator.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}
func (e BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}
