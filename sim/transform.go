package sim

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ErrInvalidTransform is returned when an operation expression cannot be
// turned into a Transform.
var ErrInvalidTransform = errors.New("invalid transform")

// TransformKind enumerates the closed set of worry transforms.
type TransformKind int

const (
	AddConstant TransformKind = iota
	AddSelf
	MultiplyConstant
	MultiplySelf
)

func (k TransformKind) String() string {
	switch k {
	case AddConstant:
		return "add-constant"
	case AddSelf:
		return "add-self"
	case MultiplyConstant:
		return "multiply-constant"
	case MultiplySelf:
		return "multiply-self"
	default:
		return fmt.Sprintf("TransformKind(%d)", int(k))
	}
}

// Transform is a pure mapping applied to a worry value during inspection.
// Operand is only meaningful for AddConstant and MultiplyConstant.
type Transform struct {
	Kind    TransformKind
	Operand uint64
}

// Apply evaluates the transform at full precision. The result is a fresh
// value; v is never modified.
func (t Transform) Apply(v *big.Int) *big.Int {
	out := new(big.Int)
	switch t.Kind {
	case AddConstant:
		out.Add(v, new(big.Int).SetUint64(t.Operand))
	case AddSelf:
		out.Add(v, v)
	case MultiplyConstant:
		out.Mul(v, new(big.Int).SetUint64(t.Operand))
	case MultiplySelf:
		out.Mul(v, v)
	default:
		panic(fmt.Sprintf("Apply: unknown transform kind %d", int(t.Kind)))
	}
	return out
}

// String renders the transform in the notes' "old <op> <arg>" form.
func (t Transform) String() string {
	switch t.Kind {
	case AddConstant:
		return fmt.Sprintf("old + %d", t.Operand)
	case AddSelf:
		return "old + old"
	case MultiplyConstant:
		return fmt.Sprintf("old * %d", t.Operand)
	case MultiplySelf:
		return "old * old"
	default:
		return t.Kind.String()
	}
}

// NewTransform builds a Transform from the operator and right-hand operand of
// an "old <op> <arg>" expression. The operand is either "old" or a
// non-negative integer.
func NewTransform(operator, operand string) (Transform, error) {
	self := operand == "old"
	var k uint64
	if !self {
		n, err := strconv.ParseUint(operand, 10, 64)
		if err != nil {
			return Transform{}, fmt.Errorf("%w: operand %q", ErrInvalidTransform, operand)
		}
		k = n
	}
	switch operator {
	case "+":
		if self {
			return Transform{Kind: AddSelf}, nil
		}
		return Transform{Kind: AddConstant, Operand: k}, nil
	case "*":
		if self {
			return Transform{Kind: MultiplySelf}, nil
		}
		return Transform{Kind: MultiplyConstant, Operand: k}, nil
	default:
		return Transform{}, fmt.Errorf("%w: unsupported operator %q", ErrInvalidTransform, operator)
	}
}

// ParseTransform parses "old * 19", "old + old" or the full "new = old * 19"
// form used by definition files.
func ParseTransform(expr string) (Transform, error) {
	fields := strings.Fields(expr)
	if len(fields) == 5 && fields[0] == "new" && fields[1] == "=" {
		fields = fields[2:]
	}
	if len(fields) != 3 || fields[0] != "old" {
		return Transform{}, fmt.Errorf("%w: expression %q", ErrInvalidTransform, expr)
	}
	return NewTransform(fields[1], fields[2])
}
