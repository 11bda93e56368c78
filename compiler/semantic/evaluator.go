package semantic

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shellyln/go-sql-like-expr/likeexpr"
	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
)

// EvalConst evaluates a constant expression to a Value at validation time.
// It handles literals, arithmetic, comparison, logic, string predicates,
// containers, subscripting, CASE, casts, and the temporal constructor
// functions.  Non-constant expressions (see ast.IsConstant) and evaluation
// faults return an *Error.
func EvalConst(e ast.Expr) (volta.Value, error) {
	if e == nil {
		return volta.Null, semanticErrorf("cannot evaluate empty expression")
	}
	if !ast.IsConstant(e) {
		return volta.Null, semanticErrorf("expression %s is not constant", ast.Format(e))
	}
	return evalExpr(e)
}

func evalExpr(e ast.Expr) (volta.Value, error) {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.UnaryExpr:
		return evalUnary(e)
	case *ast.BinaryExpr:
		return evalBinary(e)
	case *ast.ListExpr:
		elems := make([]volta.Value, len(e.Elems))
		for i, elem := range e.Elems {
			v, err := evalExpr(elem)
			if err != nil {
				return volta.Null, err
			}
			elems[i] = v
		}
		return volta.NewList(elems), nil
	case *ast.MapExpr:
		entries := make(map[string]volta.Value, len(e.Entries))
		for _, entry := range e.Entries {
			v, err := evalExpr(entry.Value)
			if err != nil {
				return volta.Null, err
			}
			entries[entry.Key] = v
		}
		return volta.NewMap(entries), nil
	case *ast.SubscriptExpr:
		return evalSubscript(e)
	case *ast.CaseExpr:
		return evalCase(e)
	case *ast.CastExpr:
		return evalCast(e)
	case *ast.Call:
		return evalCall(e)
	}
	return volta.Null, semanticErrorf("expression %s cannot be evaluated at compile time", ast.Format(e))
}

func evalUnary(e *ast.UnaryExpr) (volta.Value, error) {
	operand, err := evalExpr(e.Operand)
	if err != nil {
		return volta.Null, err
	}
	switch e.Op {
	case "-":
		if operand.Type.IsIntFamily() {
			return volta.NewInt(-operand.Int), nil
		}
		if operand.Type.IsFloatFamily() {
			return volta.NewFloat(-operand.Float), nil
		}
	case "+":
		if operand.Type.IsNumeric() {
			return operand, nil
		}
	case "!", "not":
		if operand.Type == volta.TypeBool {
			return volta.NewBool(!operand.Bool), nil
		}
	}
	return volta.Null, typeErrorf("invalid operand for unary %q: %s", e.Op, operand.Type)
}

func evalBinary(e *ast.BinaryExpr) (volta.Value, error) {
	lhs, err := evalExpr(e.LHS)
	if err != nil {
		return volta.Null, err
	}
	rhs, err := evalExpr(e.RHS)
	if err != nil {
		return volta.Null, err
	}
	switch e.Op {
	case "+", "-", "*", "/", "%":
		return evalArith(e.Op, lhs, rhs)
	case "==", "!=", "<", "<=", ">", ">=":
		return evalCompare(e.Op, lhs, rhs)
	case "and", "or", "xor":
		return evalLogical(e.Op, lhs, rhs)
	case "in":
		if rhs.Type != volta.TypeList && rhs.Type != volta.TypeSet {
			return volta.Null, typeErrorf("right operand of IN must be a list, got %s", rhs.Type)
		}
		for _, elem := range rhs.List {
			if lhs.Equal(elem) {
				return volta.NewBool(true), nil
			}
		}
		return volta.NewBool(false), nil
	case "like":
		if !lhs.Type.IsStringFamily() || !rhs.Type.IsStringFamily() {
			return volta.Null, typeErrorf("LIKE requires string operands")
		}
		re, err := regexp.Compile(likeexpr.ToRegexp(rhs.Str, '\\', false))
		if err != nil {
			return volta.Null, semanticErrorf("bad LIKE pattern %q: %v", rhs.Str, err)
		}
		return volta.NewBool(re.MatchString(lhs.Str)), nil
	case "starts with":
		return evalStringPred(lhs, rhs, strings.HasPrefix)
	case "ends with":
		return evalStringPred(lhs, rhs, strings.HasSuffix)
	case "contains":
		return evalStringPred(lhs, rhs, strings.Contains)
	}
	return volta.Null, semanticErrorf("operator %q cannot be evaluated at compile time", e.Op)
}

func evalStringPred(lhs, rhs volta.Value, pred func(string, string) bool) (volta.Value, error) {
	if !lhs.Type.IsStringFamily() || !rhs.Type.IsStringFamily() {
		return volta.Null, typeErrorf("string predicate requires string operands")
	}
	return volta.NewBool(pred(lhs.Str, rhs.Str)), nil
}

func evalArith(op string, lhs, rhs volta.Value) (volta.Value, error) {
	if op == "+" && lhs.Type.IsStringFamily() && rhs.Type.IsStringFamily() {
		return volta.NewString(lhs.Str + rhs.Str), nil
	}
	if !lhs.Type.IsNumeric() || !rhs.Type.IsNumeric() {
		return volta.Null, typeErrorf("invalid operands for %q: %s and %s", op, lhs.Type, rhs.Type)
	}
	if lhs.Type.IsIntFamily() && rhs.Type.IsIntFamily() {
		a, b := lhs.Int, rhs.Int
		switch op {
		case "+":
			return volta.NewInt(a + b), nil
		case "-":
			return volta.NewInt(a - b), nil
		case "*":
			return volta.NewInt(a * b), nil
		case "/":
			if b == 0 {
				return volta.Null, newError(ErrDivisionByZero, "division by zero")
			}
			return volta.NewInt(a / b), nil
		case "%":
			if b == 0 {
				return volta.Null, newError(ErrDivisionByZero, "division by zero")
			}
			return volta.NewInt(a % b), nil
		}
	}
	a, b := lhs.AsFloat(), rhs.AsFloat()
	switch op {
	case "+":
		return volta.NewFloat(a + b), nil
	case "-":
		return volta.NewFloat(a - b), nil
	case "*":
		return volta.NewFloat(a * b), nil
	case "/":
		if b == 0 {
			return volta.Null, newError(ErrDivisionByZero, "division by zero")
		}
		return volta.NewFloat(a / b), nil
	case "%":
		if b == 0 {
			return volta.Null, newError(ErrDivisionByZero, "division by zero")
		}
		return volta.NewFloat(math.Mod(a, b)), nil
	}
	return volta.Null, semanticErrorf("unsupported arithmetic operator %q", op)
}

func evalCompare(op string, lhs, rhs volta.Value) (volta.Value, error) {
	if lhs.IsNull() || rhs.IsNull() {
		return volta.Null, nil
	}
	var cmp int
	switch {
	case lhs.Type.IsNumeric() && rhs.Type.IsNumeric():
		a, b := lhs.AsFloat(), rhs.AsFloat()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case lhs.Type.IsStringFamily() && rhs.Type.IsStringFamily():
		cmp = strings.Compare(lhs.Str, rhs.Str)
	case lhs.Type == volta.TypeBool && rhs.Type == volta.TypeBool:
		if lhs.Bool != rhs.Bool {
			if rhs.Bool {
				cmp = -1
			} else {
				cmp = 1
			}
		}
	case lhs.Type.IsTemporal() && rhs.Type.IsTemporal():
		switch {
		case lhs.Time.Before(rhs.Time):
			cmp = -1
		case lhs.Time.After(rhs.Time):
			cmp = 1
		}
	default:
		return volta.Null, typeErrorf("incomparable operands: %s and %s", lhs.Type, rhs.Type)
	}
	switch op {
	case "==":
		return volta.NewBool(cmp == 0), nil
	case "!=":
		return volta.NewBool(cmp != 0), nil
	case "<":
		return volta.NewBool(cmp < 0), nil
	case "<=":
		return volta.NewBool(cmp <= 0), nil
	case ">":
		return volta.NewBool(cmp > 0), nil
	default:
		return volta.NewBool(cmp >= 0), nil
	}
}

func evalLogical(op string, lhs, rhs volta.Value) (volta.Value, error) {
	if lhs.Type != volta.TypeBool || rhs.Type != volta.TypeBool {
		return volta.Null, typeErrorf("invalid operands for %q: %s and %s", op, lhs.Type, rhs.Type)
	}
	switch op {
	case "and":
		return volta.NewBool(lhs.Bool && rhs.Bool), nil
	case "or":
		return volta.NewBool(lhs.Bool || rhs.Bool), nil
	default:
		return volta.NewBool(lhs.Bool != rhs.Bool), nil
	}
}

func evalSubscript(e *ast.SubscriptExpr) (volta.Value, error) {
	coll, err := evalExpr(e.Expr)
	if err != nil {
		return volta.Null, err
	}
	index, err := evalExpr(e.Index)
	if err != nil {
		return volta.Null, err
	}
	switch coll.Type {
	case volta.TypeList:
		if !index.Type.IsIntFamily() {
			return volta.Null, typeErrorf("list subscript must be an integer, got %s", index.Type)
		}
		i := index.Int
		if i < 0 {
			i += int64(len(coll.List))
		}
		if i < 0 || i >= int64(len(coll.List)) {
			return volta.Null, nil
		}
		return coll.List[i], nil
	case volta.TypeMap:
		if !index.Type.IsStringFamily() {
			return volta.Null, typeErrorf("map subscript must be a string, got %s", index.Type)
		}
		if v, ok := coll.Map[index.Str]; ok {
			return v, nil
		}
		return volta.Null, nil
	}
	return volta.Null, typeErrorf("cannot subscript %s", coll.Type)
}

func evalCase(e *ast.CaseExpr) (volta.Value, error) {
	var operand *volta.Value
	if e.Expr != nil {
		v, err := evalExpr(e.Expr)
		if err != nil {
			return volta.Null, err
		}
		operand = &v
	}
	for _, w := range e.Whens {
		cond, err := evalExpr(w.Cond)
		if err != nil {
			return volta.Null, err
		}
		matched := false
		if operand != nil {
			matched = operand.Equal(cond)
		} else {
			matched = cond.Type == volta.TypeBool && cond.Bool
		}
		if matched {
			return evalExpr(w.Then)
		}
	}
	if e.Else != nil {
		return evalExpr(e.Else)
	}
	return volta.Null, nil
}

func evalCast(e *ast.CastExpr) (volta.Value, error) {
	v, err := evalExpr(e.Expr)
	if err != nil {
		return volta.Null, err
	}
	switch {
	case e.Type == v.Type:
		return v, nil
	case e.Type.IsIntFamily() && v.Type.IsFloatFamily():
		return volta.NewInt(int64(v.Float)), nil
	case e.Type.IsFloatFamily() && v.Type.IsIntFamily():
		return volta.NewFloat(float64(v.Int)), nil
	case e.Type.IsStringFamily():
		return volta.NewString(v.String()), nil
	case e.Type.IsIntFamily() && v.Type.IsStringFamily():
		i, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return volta.Null, typeErrorf("cannot cast %q to %s", v.Str, e.Type)
		}
		return volta.NewInt(i), nil
	case e.Type.IsFloatFamily() && v.Type.IsStringFamily():
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return volta.Null, typeErrorf("cannot cast %q to %s", v.Str, e.Type)
		}
		return volta.NewFloat(f), nil
	case e.Type.IsIntFamily() && v.Type.IsIntFamily(),
		e.Type.IsFloatFamily() && v.Type.IsFloatFamily():
		return v, nil
	}
	return volta.Null, typeErrorf("cannot cast %s to %s", v.Type, e.Type)
}

func evalCall(e *ast.Call) (volta.Value, error) {
	name := strings.ToLower(e.Name)
	switch name {
	case "date", "time", "datetime", "timestamp":
		return evalTemporal(name, e.Args)
	}
	// The remaining builtins take exactly one argument.  EvalConst is
	// public API, so the guard cannot be left to the checker.
	if len(e.Args) != 1 {
		return volta.Null, semanticErrorf("%s() received %d arguments", e.Name, len(e.Args))
	}
	switch name {
	case "lower", "upper", "trim", "reverse":
		arg, err := evalExpr(e.Args[0])
		if err != nil {
			return volta.Null, err
		}
		if !arg.Type.IsStringFamily() {
			return volta.Null, typeErrorf("%s() requires a string argument", name)
		}
		switch name {
		case "lower":
			return volta.NewString(strings.ToLower(arg.Str)), nil
		case "upper":
			return volta.NewString(strings.ToUpper(arg.Str)), nil
		case "trim":
			return volta.NewString(strings.TrimSpace(arg.Str)), nil
		default:
			runes := []rune(arg.Str)
			for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
				runes[i], runes[j] = runes[j], runes[i]
			}
			return volta.NewString(string(runes)), nil
		}
	case "abs":
		arg, err := evalExpr(e.Args[0])
		if err != nil {
			return volta.Null, err
		}
		if arg.Type.IsIntFamily() {
			if arg.Int < 0 {
				return volta.NewInt(-arg.Int), nil
			}
			return arg, nil
		}
		if arg.Type.IsFloatFamily() {
			return volta.NewFloat(math.Abs(arg.Float)), nil
		}
		return volta.Null, typeErrorf("abs() requires a numeric argument")
	case "size":
		arg, err := evalExpr(e.Args[0])
		if err != nil {
			return volta.Null, err
		}
		switch arg.Type {
		case volta.TypeList, volta.TypeSet:
			return volta.NewInt(int64(len(arg.List))), nil
		case volta.TypeMap:
			return volta.NewInt(int64(len(arg.Map))), nil
		case volta.TypeString, volta.TypeFixedString:
			return volta.NewInt(int64(len(arg.Str))), nil
		}
		return volta.Null, typeErrorf("size() does not apply to %s", arg.Type)
	}
	return volta.Null, semanticErrorf("%s() cannot be evaluated at compile time", e.Name)
}

// evalTemporal builds the temporal constants.  String arguments accept any
// reasonable layout; dateparse figures out the format.
func evalTemporal(name string, args []ast.Expr) (volta.Value, error) {
	var t time.Time
	if len(args) == 0 {
		t = time.Now().UTC()
	} else {
		arg, err := evalExpr(args[0])
		if err != nil {
			return volta.Null, err
		}
		switch {
		case arg.Type.IsStringFamily():
			t, err = dateparse.ParseAny(arg.Str)
			if err != nil {
				return volta.Null, semanticErrorf("%s(%q): %v", name, arg.Str, err)
			}
		case arg.Type.IsIntFamily():
			t = time.Unix(arg.Int, 0).UTC()
		default:
			return volta.Null, typeErrorf("%s() does not accept %s", name, arg.Type)
		}
	}
	switch name {
	case "date":
		return volta.NewDate(t), nil
	case "time":
		return volta.NewTime(t), nil
	case "datetime":
		return volta.NewDateTime(t), nil
	default:
		return volta.NewTimestamp(t), nil
	}
}
