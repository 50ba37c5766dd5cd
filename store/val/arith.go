// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package val

import (
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrUnsupportedOperands is returned for operand kinds outside the numeric
	// coercion table.
	ErrUnsupportedOperands = errors.NewKind("unsupported operands for %s: %s and %s")

	ErrDivisionByZero = errors.NewKind("integer division by zero")
)

// Add sums two values. Integers add with 64-bit wraparound, mixing in a float
// promotes the result to float, and Null is an additive identity on either side.
func Add(l, r OwnedValue) (OwnedValue, error) {
	switch {
	case l.kind == IntegerKind && r.kind == IntegerKind:
		return NewInteger(l.Int() + r.Int()), nil
	case l.kind == IntegerKind && r.kind == FloatKind:
		return NewFloat(float64(l.Int()) + r.Float()), nil
	case l.kind == FloatKind && r.kind == IntegerKind:
		return NewFloat(l.Float() + float64(r.Int())), nil
	case l.kind == FloatKind && r.kind == FloatKind:
		return NewFloat(l.Float() + r.Float()), nil
	case r.kind == NullKind:
		return l, nil
	case l.kind == NullKind:
		return r, nil
	}
	return OwnedValue{}, ErrUnsupportedOperands.New("+", l.kind, r.kind)
}

// AddInt is the accumulation fast path for a bare integer operand.
func AddInt(l OwnedValue, r int64) (OwnedValue, error) {
	switch l.kind {
	case IntegerKind:
		return NewInteger(l.Int() + r), nil
	case FloatKind:
		return NewFloat(l.Float() + float64(r)), nil
	}
	return OwnedValue{}, ErrUnsupportedOperands.New("+", l.kind, IntegerKind)
}

// AddFloat is the accumulation fast path for a bare float operand.
func AddFloat(l OwnedValue, r float64) (OwnedValue, error) {
	switch l.kind {
	case IntegerKind:
		return NewFloat(float64(l.Int()) + r), nil
	case FloatKind:
		return NewFloat(l.Float() + r), nil
	}
	return OwnedValue{}, ErrUnsupportedOperands.New("+", l.kind, FloatKind)
}

// Div divides |l| by |r|. Integer by integer truncates toward zero; every
// other numeric pair is computed in float64. Null is not accepted.
func Div(l, r OwnedValue) (OwnedValue, error) {
	switch {
	case l.kind == IntegerKind && r.kind == IntegerKind:
		if r.Int() == 0 {
			return OwnedValue{}, ErrDivisionByZero.New()
		}
		return NewInteger(l.Int() / r.Int()), nil
	case l.kind == IntegerKind && r.kind == FloatKind:
		return NewFloat(float64(l.Int()) / r.Float()), nil
	case l.kind == FloatKind && r.kind == IntegerKind:
		return NewFloat(l.Float() / float64(r.Int())), nil
	case l.kind == FloatKind && r.kind == FloatKind:
		return NewFloat(l.Float() / r.Float()), nil
	}
	return OwnedValue{}, ErrUnsupportedOperands.New("/", l.kind, r.kind)
}

// AddAssign replaces |v| with v + r. |v| is unchanged on error.
func (v *OwnedValue) AddAssign(r OwnedValue) error {
	sum, err := Add(*v, r)
	if err != nil {
		return err
	}
	*v = sum
	return nil
}

func (v *OwnedValue) AddAssignInt(r int64) error {
	sum, err := AddInt(*v, r)
	if err != nil {
		return err
	}
	*v = sum
	return nil
}

func (v *OwnedValue) AddAssignFloat(r float64) error {
	sum, err := AddFloat(*v, r)
	if err != nil {
		return err
	}
	*v = sum
	return nil
}

// DivAssign replaces |v| with v / r. |v| is unchanged on error.
func (v *OwnedValue) DivAssign(r OwnedValue) error {
	q, err := Div(*v, r)
	if err != nil {
		return err
	}
	*v = q
	return nil
}
