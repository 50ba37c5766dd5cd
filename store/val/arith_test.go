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
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		l, r OwnedValue
		exp  OwnedValue
	}{
		{"int+int", NewInteger(3), NewInteger(4), NewInteger(7)},
		{"int+float", NewInteger(3), NewFloat(2.5), NewFloat(5.5)},
		{"float+int", NewFloat(2.5), NewInteger(3), NewFloat(5.5)},
		{"float+float", NewFloat(1.25), NewFloat(2.5), NewFloat(3.75)},
		{"null+int", NullValue(), NewInteger(4), NewInteger(4)},
		{"int+null", NewInteger(4), NullValue(), NewInteger(4)},
		{"float+null", NewFloat(1.5), NullValue(), NewFloat(1.5)},
		{"null+null", NullValue(), NullValue(), NullValue()},
		{"text+null", NewText("a"), NullValue(), NewText("a")},
		{"null+blob", NullValue(), NewBlob([]byte{1}), NewBlob([]byte{1})},
		{"wraps", NewInteger(math.MaxInt64), NewInteger(1), NewInteger(math.MinInt64)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			act, err := Add(test.l, test.r)
			require.NoError(t, err)
			assert.Equal(t, test.exp, act)
		})
	}
}

func TestAddUnsupported(t *testing.T) {
	tests := []struct {
		name string
		l, r OwnedValue
	}{
		{"text+int", NewText("a"), NewInteger(1)},
		{"int+text", NewInteger(1), NewText("a")},
		{"blob+float", NewBlob([]byte{1}), NewFloat(1)},
		{"text+text", NewText("a"), NewText("b")},
		{"agg+int", NewAgg(NewSum()), NewInteger(1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Add(test.l, test.r)
			require.Error(t, err)
			assert.True(t, ErrUnsupportedOperands.Is(err))
		})
	}
}

func TestAddBareOperands(t *testing.T) {
	v, err := AddInt(NewInteger(2), 3)
	require.NoError(t, err)
	assert.Equal(t, NewInteger(5), v)

	v, err = AddInt(NewFloat(0.5), 3)
	require.NoError(t, err)
	assert.Equal(t, NewFloat(3.5), v)

	v, err = AddFloat(NewInteger(2), 0.5)
	require.NoError(t, err)
	assert.Equal(t, NewFloat(2.5), v)

	v, err = AddFloat(NewFloat(2), 0.5)
	require.NoError(t, err)
	assert.Equal(t, NewFloat(2.5), v)

	_, err = AddInt(NullValue(), 1)
	assert.True(t, ErrUnsupportedOperands.Is(err))
	_, err = AddFloat(NewText("x"), 1)
	assert.True(t, ErrUnsupportedOperands.Is(err))
}

func TestAddAssign(t *testing.T) {
	acc := NullValue()
	require.NoError(t, acc.AddAssign(NewInteger(1)))
	require.NoError(t, acc.AddAssignInt(2))
	assert.Equal(t, NewInteger(3), acc)

	require.NoError(t, acc.AddAssignFloat(0.5))
	assert.Equal(t, NewFloat(3.5), acc)

	err := acc.AddAssign(NewText("oops"))
	assert.True(t, ErrUnsupportedOperands.Is(err))
	assert.Equal(t, NewFloat(3.5), acc, "receiver must be unchanged on error")
}

func TestDiv(t *testing.T) {
	tests := []struct {
		name string
		l, r OwnedValue
		exp  OwnedValue
	}{
		{"int/int", NewInteger(7), NewInteger(2), NewInteger(3)},
		{"negative int/int truncates", NewInteger(-7), NewInteger(2), NewInteger(-3)},
		{"int/float", NewInteger(7), NewFloat(2), NewFloat(3.5)},
		{"float/int", NewFloat(7.0), NewInteger(2), NewFloat(3.5)},
		{"float/float", NewFloat(1), NewFloat(4), NewFloat(0.25)},
		{"float/zero", NewFloat(1), NewInteger(0), NewFloat(math.Inf(1))},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			act, err := Div(test.l, test.r)
			require.NoError(t, err)
			assert.Equal(t, test.exp, act)
		})
	}

	t.Run("int/zero", func(t *testing.T) {
		_, err := Div(NewInteger(1), NewInteger(0))
		require.Error(t, err)
		assert.True(t, ErrDivisionByZero.Is(err))
	})

	t.Run("null operands", func(t *testing.T) {
		_, err := Div(NullValue(), NewInteger(1))
		assert.True(t, ErrUnsupportedOperands.Is(err))
		_, err = Div(NewInteger(1), NullValue())
		assert.True(t, ErrUnsupportedOperands.Is(err))
	})

	t.Run("div assign", func(t *testing.T) {
		v := NewInteger(9)
		require.NoError(t, v.DivAssign(NewInteger(2)))
		assert.Equal(t, NewInteger(4), v)
		assert.Error(t, v.DivAssign(NewText("2")))
		assert.Equal(t, NewInteger(4), v)
	})
}

func TestNumericCoercionMatrix(t *testing.T) {
	for n := 0; n < 200; n++ {
		li, ri := rand.Int63n(1000)-500, rand.Int63n(1000)+1
		lf, rf := float64(li)/3, float64(ri)/7

		sum, err := Add(NewInteger(li), NewInteger(ri))
		require.NoError(t, err)
		assert.Equal(t, NewInteger(li+ri), sum)

		sum, err = Add(NewInteger(li), NewFloat(rf))
		require.NoError(t, err)
		assert.Equal(t, NewFloat(float64(li)+rf), sum)

		sum, err = Add(NewFloat(lf), NewInteger(ri))
		require.NoError(t, err)
		assert.Equal(t, NewFloat(lf+float64(ri)), sum)

		q, err := Div(NewInteger(li), NewInteger(ri))
		require.NoError(t, err)
		assert.Equal(t, NewInteger(li/ri), q)

		q, err = Div(NewFloat(lf), NewFloat(rf))
		require.NoError(t, err)
		assert.Equal(t, NewFloat(lf/rf), q)
	}
}

func TestSharedTextSurvivesArithmetic(t *testing.T) {
	text := NewText("shared")
	cpy := text
	_, err := Add(cpy, NewInteger(1))
	assert.Error(t, err)
	sum, err := Add(cpy, NullValue())
	require.NoError(t, err)
	assert.Equal(t, "shared", text.Text())
	assert.Equal(t, "shared", sum.Text())
}
