package whilelang

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/wfi-lang/wfi/internal/diag"
)

// Env is the WHILE environment: a copy-on-write mapping from variable
// name to integer value. Assign produces a new Env rather than
// mutating the caller's; external observability is unaffected since
// Read and WriteId always consult the latest binding threaded through
// the worklist.
type Env map[string]int

func (e Env) assign(name string, v int) Env {
	next := make(Env, len(e)+1)
	for k, val := range e {
		next[k] = val
	}
	next[name] = v
	return next
}

// names lists e's bound variables, for "did you mean" suggestions on
// an undefined-name diagnostic.
func (e Env) names() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	return out
}

// Interp holds the I/O collaborators the evaluator treats as external:
// a line-buffered stdin for Read and a byte sink for write/Write*.
type Interp struct {
	Stdin  *bufio.Scanner
	Stdout io.Writer
}

// NewInterp wraps r/w as the evaluator's stdin/stdout.
func NewInterp(r io.Reader, w io.Writer) *Interp {
	return &Interp{Stdin: bufio.NewScanner(r), Stdout: w}
}

// Run executes a WHILE program's statement list against env, returning
// the final environment. It uses an explicit worklist instead of
// recursing over the block structure: If and While prepend their
// selected continuation onto the front of the pending statement list,
// so loop iteration count does not grow the host call stack (spec
// §4.6, §9).
func (in *Interp) Run(stmts []Stmt, env Env) (Env, error) {
	worklist := append([]Stmt(nil), stmts...)
	for len(worklist) > 0 {
		stmt := worklist[0]
		worklist = worklist[1:]

		var err error
		env, worklist, err = in.step(stmt, env, worklist)
		if err != nil {
			return nil, err
		}
	}
	return env, nil
}

func (in *Interp) step(stmt Stmt, env Env, worklist []Stmt) (Env, []Stmt, error) {
	switch s := stmt.(type) {
	case Skip:
		return env, worklist, nil

	case Assign:
		v, err := evalAExp(env, s.Expr)
		if err != nil {
			return nil, nil, err
		}
		return env.assign(s.Name, v), worklist, nil

	case Read:
		if !in.Stdin.Scan() {
			return nil, nil, diag.IoError("", in.Stdin.Err())
		}
		line := in.Stdin.Text()
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, nil, diag.IoError(line, err)
		}
		return env.assign(s.Name, v), worklist, nil

	case WriteId:
		v, ok := env[s.Name]
		if !ok {
			return nil, nil, diag.UndefinedName(s.Name).WithSuggestion(s.Name, env.names())
		}
		fmt.Fprintf(in.Stdout, "%d", v)
		return env, worklist, nil

	case WriteString:
		io.WriteString(in.Stdout, s.Text)
		return env, worklist, nil

	case If:
		cond, err := evalBExp(env, s.Cond)
		if err != nil {
			return nil, nil, err
		}
		branch := s.Else
		if cond {
			branch = s.Then
		}
		return env, append(append([]Stmt(nil), branch...), worklist...), nil

	case While:
		cond, err := evalBExp(env, s.Cond)
		if err != nil {
			return nil, nil, err
		}
		if !cond {
			return env, worklist, nil
		}
		body := append(append([]Stmt(nil), s.Body...), s)
		return env, append(body, worklist...), nil

	default:
		return nil, nil, fmt.Errorf("whilelang: unknown statement %T", stmt)
	}
}

// aFrame is either a pending AExp to evaluate or a pending combine of
// the two most recently evaluated operands. Using an explicit stack
// rather than host recursion keeps arithmetic evaluation depth
// independent of the Go call stack.
type aFrame struct {
	expr AExp
	op   string
	leaf bool
}

func evalAExp(env Env, root AExp) (int, error) {
	stack := []aFrame{{expr: root, leaf: true}}
	var vals []int

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.leaf {
			right := vals[len(vals)-1]
			left := vals[len(vals)-2]
			vals = vals[:len(vals)-2]
			v, err := applyAop(f.op, left, right)
			if err != nil {
				return 0, err
			}
			vals = append(vals, v)
			continue
		}

		switch n := f.expr.(type) {
		case Num:
			vals = append(vals, n.Value)
		case Var:
			v, ok := env[n.Name]
			if !ok {
				return 0, diag.UndefinedName(n.Name).WithSuggestion(n.Name, env.names())
			}
			vals = append(vals, v)
		case Aop:
			stack = append(stack, aFrame{op: n.Op})
			stack = append(stack, aFrame{expr: n.Right, leaf: true})
			stack = append(stack, aFrame{expr: n.Left, leaf: true})
		default:
			return 0, fmt.Errorf("whilelang: unknown arithmetic expression %T", n)
		}
	}
	return vals[0], nil
}

func applyAop(op string, l, r int) (int, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, diag.DivideByZero()
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return 0, diag.DivideByZero()
		}
		return l % r, nil
	default:
		return 0, fmt.Errorf("whilelang: unknown arithmetic operator %q", op)
	}
}

// bFrame mirrors aFrame for boolean evaluation: Lop nodes push a
// combine frame over two evaluated BExp operands.
type bFrame struct {
	expr BExp
	op   string
	leaf bool
}

func evalBExp(env Env, root BExp) (bool, error) {
	stack := []bFrame{{expr: root, leaf: true}}
	var vals []bool

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.leaf {
			right := vals[len(vals)-1]
			left := vals[len(vals)-2]
			vals = vals[:len(vals)-2]
			vals = append(vals, applyLop(f.op, left, right))
			continue
		}

		switch n := f.expr.(type) {
		case TrueConst:
			vals = append(vals, true)
		case FalseConst:
			vals = append(vals, false)
		case Bop:
			left, err := evalAExp(env, n.Left)
			if err != nil {
				return false, err
			}
			right, err := evalAExp(env, n.Right)
			if err != nil {
				return false, err
			}
			v, err := applyBop(n.Op, left, right)
			if err != nil {
				return false, err
			}
			vals = append(vals, v)
		case Lop:
			stack = append(stack, bFrame{op: n.Op})
			stack = append(stack, bFrame{expr: n.Right, leaf: true})
			stack = append(stack, bFrame{expr: n.Left, leaf: true})
		default:
			return false, fmt.Errorf("whilelang: unknown boolean expression %T", n)
		}
	}
	return vals[0], nil
}

func applyBop(op string, l, r int) (bool, error) {
	switch op {
	case "==":
		return l == r, nil
	case "!=":
		return l != r, nil
	case "<":
		return l < r, nil
	case ">":
		return l > r, nil
	case "<=":
		return l <= r, nil
	case ">=":
		return l >= r, nil
	default:
		return false, fmt.Errorf("whilelang: unknown comparison operator %q", op)
	}
}

func applyLop(op string, l, r bool) bool {
	switch op {
	case "&&":
		return l && r
	case "||":
		return l || r
	default:
		return false
	}
}
