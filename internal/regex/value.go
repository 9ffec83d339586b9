package regex

import "strings"

// Val is a match value: its shape mirrors the Rexp that produced it.
type Val interface {
	val()
}

// Empty is the match value for One.
type Empty struct{}

// Chr is the match value for Char and RangeR: the single byte matched.
type Chr struct{ C byte }

// Sequ is the match value for Seq.
type Sequ struct{ V1, V2 Val }

// Left and Right are the match values for the two Alt branches.
type Left struct{ V Val }
type Right struct{ V Val }

// Stars is the match value for Star: the list of per-iteration values.
type Stars struct{ Vs []Val }

// Pls is the match value for Plus: at least one iteration value.
type Pls struct{ Vs []Val }

// Opt is the match value for Optional.
type Opt struct{ V Val }

// Ntms is the match value for NTimes.
type Ntms struct{ Vs []Val }

// Rec is the match value for Recd: Tag survives into the token environment.
type Rec struct {
	Tag string
	V   Val
}

func (Empty) val()  {}
func (Chr) val()    {}
func (Sequ) val()   {}
func (Left) val()   {}
func (Right) val()  {}
func (Stars) val()  {}
func (Pls) val()    {}
func (Opt) val()    {}
func (Ntms) val()   {}
func (Rec) val()    {}

// Flatten yields the substring a value matched.
func Flatten(v Val) string {
	var b strings.Builder
	flattenInto(&b, v)
	return b.String()
}

func flattenInto(b *strings.Builder, v Val) {
	switch x := v.(type) {
	case Empty:
	case Chr:
		b.WriteByte(x.C)
	case Left:
		flattenInto(b, x.V)
	case Right:
		flattenInto(b, x.V)
	case Sequ:
		flattenInto(b, x.V1)
		flattenInto(b, x.V2)
	case Stars:
		for _, v := range x.Vs {
			flattenInto(b, v)
		}
	case Pls:
		for _, v := range x.Vs {
			flattenInto(b, v)
		}
	case Opt:
		flattenInto(b, x.V)
	case Ntms:
		for _, v := range x.Vs {
			flattenInto(b, v)
		}
	case Rec:
		flattenInto(b, x.V)
	default:
		panic("regex: unknown Val in Flatten")
	}
}

// EnvPair is one named capture recovered from a match value by Env.
type EnvPair struct {
	Tag   string
	Value string
}

// Env walks a match value and returns every Recd capture, in the order
// they appear in the matched string (outermost Rec first, children after).
func Env(v Val) []EnvPair {
	switch x := v.(type) {
	case Empty, Chr:
		return nil
	case Left:
		return Env(x.V)
	case Right:
		return Env(x.V)
	case Sequ:
		return append(Env(x.V1), Env(x.V2)...)
	case Stars:
		var out []EnvPair
		for _, v := range x.Vs {
			out = append(out, Env(v)...)
		}
		return out
	case Pls:
		var out []EnvPair
		for _, v := range x.Vs {
			out = append(out, Env(v)...)
		}
		return out
	case Opt:
		return Env(x.V)
	case Ntms:
		var out []EnvPair
		for _, v := range x.Vs {
			out = append(out, Env(v)...)
		}
		return out
	case Rec:
		return append([]EnvPair{{Tag: x.Tag, Value: Flatten(x.V)}}, Env(x.V)...)
	default:
		panic("regex: unknown Val in Env")
	}
}

// MkEps constructs the canonical value for the empty string match of a
// nullable regex r. Callers must only call this when Nullable(r).
func MkEps(r Rexp) Val {
	switch x := r.(type) {
	case One:
		return Empty{}
	case Alt:
		if Nullable(x.R1) {
			return Left{MkEps(x.R1)}
		}
		return Right{MkEps(x.R2)}
	case Seq:
		return Sequ{MkEps(x.R1), MkEps(x.R2)}
	case Star:
		return Stars{nil}
	case Plus:
		return Pls{[]Val{MkEps(x.R)}}
	case Optional:
		return Opt{Empty{}}
	case NTimes:
		if x.N == 0 {
			return Ntms{nil}
		}
		return Ntms{[]Val{MkEps(x.R)}}
	case Recd:
		return Rec{x.Tag, MkEps(x.R)}
	default:
		panic("regex: MkEps called on a non-nullable or unknown Rexp")
	}
}

// Inject is inj(r, c, v): given a value v matching der(c, r), reconstructs
// the value for r whose flattened form is c followed by flatten(v).
func Inject(r Rexp, c byte, v Val) Val {
	switch x := r.(type) {
	case Star:
		sequ := v.(Sequ)
		star := sequ.V2.(Stars)
		return Stars{append([]Val{Inject(x.R, c, sequ.V1)}, star.Vs...)}
	case Seq:
		switch vv := v.(type) {
		case Sequ:
			return Sequ{Inject(x.R1, c, vv.V1), vv.V2}
		case Left:
			seq := vv.V.(Sequ)
			return Sequ{Inject(x.R1, c, seq.V1), seq.V2}
		case Right:
			return Sequ{MkEps(x.R1), Inject(x.R2, c, vv.V)}
		default:
			panic("regex: Inject(Seq, ...) got an unexpected value shape")
		}
	case Alt:
		switch vv := v.(type) {
		case Left:
			return Left{Inject(x.R1, c, vv.V)}
		case Right:
			return Right{Inject(x.R2, c, vv.V)}
		default:
			panic("regex: Inject(Alt, ...) got an unexpected value shape")
		}
	case Char:
		return Chr{c}
	case *RangeR:
		return Chr{c}
	case Plus:
		sequ := v.(Sequ)
		star := sequ.V2.(Stars)
		return Pls{append([]Val{Inject(x.R, c, sequ.V1)}, star.Vs...)}
	case Optional:
		return Opt{Inject(x.R, c, v)}
	case NTimes:
		sequ := v.(Sequ)
		ntms := sequ.V2.(Ntms)
		return Ntms{append([]Val{Inject(x.R, c, sequ.V1)}, ntms.Vs...)}
	case Recd:
		return Rec{x.Tag, Inject(x.R, c, v)}
	default:
		panic("regex: unknown Rexp in Inject")
	}
}
