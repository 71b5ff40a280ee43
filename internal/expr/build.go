package expr

// Helper functions to construct expression nodes.

// Var creates a variable reference.
func Var(name string) Expr {
	return VarExpr{Name: name}
}

// Temp creates a compiler-introduced temporary reference.
func Temp(name string) Expr {
	return VarExpr{Name: name, Temp: true}
}

// Global creates a program-level variable reference.
func Global(name string) Expr {
	return VarExpr{Name: name, Global: true}
}

// Field creates a field access.
func Field(base Expr, name string) Expr {
	return FieldExpr{Base: base, Name: name}
}

// Index creates an array access.
func Index(base, idx Expr) Expr {
	return IndexExpr{Base: base, Index: idx}
}

// Deref creates a pointer dereference.
func Deref(base Expr) Expr {
	return DerefExpr{Base: base}
}

// Cast creates a transparent type cast.
func Cast(typ string, inner Expr) Expr {
	return CastExpr{Type: typ, Inner: inner}
}

// Int creates an integer constant.
func Int(v int64) Expr {
	return ConstExpr{Lit: IntLit{Val: v}}
}

// Float creates a floating-point constant.
func Float(v float64) Expr {
	return ConstExpr{Lit: FloatLit{Val: v}}
}

// Str creates a string constant.
func Str(v string) Expr {
	return ConstExpr{Lit: StrLit{Val: v}}
}

// Class creates a class-object constant.
func Class(name string) Expr {
	return ConstExpr{Lit: ClassLit{Name: name}}
}

// Null creates the null/zero constant.
func Null() Expr {
	return ConstExpr{Lit: IntLit{Val: 0}}
}

// SizeOf creates a size-of expression with a known size.
func SizeOf(typ string, known int64) Expr {
	return SizeOfExpr{Type: typ, Known: known, Exact: true}
}

// SizeOfUnknown creates a size-of expression with unknown size.
func SizeOfUnknown(typ string) Expr {
	return SizeOfExpr{Type: typ}
}

// Fun creates a plain function reference.
func Fun(proc string) Expr {
	return ClosureExpr{Proc: proc}
}

// Closure creates a lambda closure with captures.
func Closure(proc string, captures ...Capture) Expr {
	return ClosureExpr{Proc: proc, Lambda: true, Captures: captures}
}

// Unary creates a unary expression.
func Unary(op UnaryOp, operand Expr) Expr {
	return UnaryExpr{Op: op, Operand: operand}
}

// Not creates a logical not expression.
func Not(e Expr) Expr {
	return UnaryExpr{Op: OpNot, Operand: e}
}

// Binary creates a binary expression.
func Binary(op BinaryOp, left, right Expr) Expr {
	return BinaryExpr{Op: op, Left: left, Right: right}
}

// Eq creates an equality expression.
func Eq(left, right Expr) Expr {
	return BinaryExpr{Op: OpEq, Left: left, Right: right}
}

// Neq creates a not-equal expression.
func Neq(left, right Expr) Expr {
	return BinaryExpr{Op: OpNeq, Left: left, Right: right}
}
