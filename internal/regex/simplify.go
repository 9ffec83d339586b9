package regex

// Simplify rewrites r into an equivalent, smaller regex r', returning a
// RectFun f such that Apply(f, v) lifts any value matching r' into a
// value matching r. It is applied bottom-up: each recursive call already
// holds the simplified children before deciding the parent's shape.
func Simplify(r Rexp) (Rexp, *RectFun) {
	switch x := r.(type) {
	case Alt:
		r1, f1 := Simplify(x.R1)
		r2, f2 := Simplify(x.R2)
		if _, ok := r1.(Zero); ok {
			return r2, &RectFun{Tag: RectRight, Sub1: f2}
		}
		if _, ok := r2.(Zero); ok {
			return r1, &RectFun{Tag: RectLeft, Sub1: f1}
		}
		if Equal(r1, r2) {
			return r1, &RectFun{Tag: RectLeft, Sub1: f1}
		}
		return Alt{r1, r2}, &RectFun{Tag: RectAlt, Sub1: f1, Sub2: f2}
	case Seq:
		r1, f1 := Simplify(x.R1)
		r2, f2 := Simplify(x.R2)
		_, zero1 := r1.(Zero)
		_, zero2 := r2.(Zero)
		if zero1 || zero2 {
			return Zero{}, &RectFun{Tag: RectError}
		}
		if _, ok := r1.(One); ok {
			return r2, &RectFun{Tag: RectSeqEmpty1, Sub1: f1, Sub2: f2}
		}
		if _, ok := r2.(One); ok {
			return r1, &RectFun{Tag: RectSeqEmpty2, Sub1: f1, Sub2: f2}
		}
		return Seq{r1, r2}, &RectFun{Tag: RectSeq, Sub1: f1, Sub2: f2}
	default:
		return r, &RectFun{Tag: RectID}
	}
}
