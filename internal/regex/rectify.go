package regex

import "errors"

// RectTag names a rectification rule. RectFun is kept as tagged data
// (a tag plus up to two child RectFuns) rather than a closure, so that
// simplifying a regex does not allocate a function value per character
// of input — the tagged form is cheap to build and cheap to replay.
type RectTag int

const (
	RectID RectTag = iota
	RectRight
	RectLeft
	RectAlt
	RectSeq
	RectSeqEmpty1
	RectSeqEmpty2
	RectError
	RectRecd
)

// RectFun lifts a value matched against a simplified regex back to a
// value of the regex Simplify started from.
type RectFun struct {
	Tag  RectTag
	Sub1 *RectFun
	Sub2 *RectFun
}

// ErrRectification is returned by Apply when a RectError-tagged function
// is invoked; it only happens when Simplify has reduced a Seq to Zero,
// which Simplify never pairs with a reachable value, so in practice
// Apply never raises it outside of a construction bug.
var ErrRectification = errors.New("regex: rectification reached an unmatched sequence")

// Apply replays rf against v.
func Apply(rf *RectFun, v Val) (Val, error) {
	switch rf.Tag {
	case RectID:
		return v, nil
	case RectRight:
		inner, err := Apply(rf.Sub1, v)
		if err != nil {
			return nil, err
		}
		return Right{inner}, nil
	case RectLeft:
		inner, err := Apply(rf.Sub1, v)
		if err != nil {
			return nil, err
		}
		return Left{inner}, nil
	case RectAlt:
		switch vv := v.(type) {
		case Left:
			inner, err := Apply(rf.Sub1, vv.V)
			if err != nil {
				return nil, err
			}
			return Left{inner}, nil
		case Right:
			inner, err := Apply(rf.Sub2, vv.V)
			if err != nil {
				return nil, err
			}
			return Right{inner}, nil
		default:
			return nil, errors.New("regex: RectAlt applied to a non Left/Right value")
		}
	case RectSeq:
		vv, ok := v.(Sequ)
		if !ok {
			return nil, errors.New("regex: RectSeq applied to a non Sequ value")
		}
		v1, err := Apply(rf.Sub1, vv.V1)
		if err != nil {
			return nil, err
		}
		v2, err := Apply(rf.Sub2, vv.V2)
		if err != nil {
			return nil, err
		}
		return Sequ{v1, v2}, nil
	case RectSeqEmpty1:
		empty, err := Apply(rf.Sub1, Empty{})
		if err != nil {
			return nil, err
		}
		rest, err := Apply(rf.Sub2, v)
		if err != nil {
			return nil, err
		}
		return Sequ{empty, rest}, nil
	case RectSeqEmpty2:
		empty, err := Apply(rf.Sub2, Empty{})
		if err != nil {
			return nil, err
		}
		rest, err := Apply(rf.Sub1, v)
		if err != nil {
			return nil, err
		}
		return Sequ{rest, empty}, nil
	case RectError:
		return nil, ErrRectification
	case RectRecd:
		vv, ok := v.(Rec)
		if !ok {
			return nil, errors.New("regex: RectRecd applied to a non Rec value")
		}
		inner, err := Apply(rf.Sub1, vv.V)
		if err != nil {
			return nil, err
		}
		return Rec{vv.Tag, inner}, nil
	default:
		return nil, errors.New("regex: unknown RectFun tag")
	}
}
