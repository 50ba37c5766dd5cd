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

import "strconv"

type AggFunc uint8

const (
	AggAvg AggFunc = iota
	AggSum
	AggCount
	AggMax
	AggMin
)

func (f AggFunc) String() string {
	switch f {
	case AggAvg:
		return "avg"
	case AggSum:
		return "sum"
	case AggCount:
		return "count"
	case AggMax:
		return "max"
	case AggMin:
		return "min"
	default:
		return "agg(" + strconv.Itoa(int(f)) + ")"
	}
}

// AggContext is the partial state of an aggregate threaded through Step
// calls. It becomes a plain scalar only after finalization, which happens
// outside this package.
type AggContext struct {
	Func AggFunc
	// Acc is the running sum (avg, sum), the running count (count), or
	// the current extreme (max, min).
	Acc OwnedValue
	// Count is the number of non-null inputs folded into an avg.
	Count OwnedValue
}

func NewAvg() *AggContext {
	return &AggContext{Func: AggAvg, Acc: NullValue(), Count: NewInteger(0)}
}

func NewSum() *AggContext {
	return &AggContext{Func: AggSum, Acc: NullValue()}
}

func NewCount() *AggContext {
	return &AggContext{Func: AggCount, Acc: NewInteger(0)}
}

func NewMax() *AggContext {
	return &AggContext{Func: AggMax, Acc: NullValue()}
}

func NewMin() *AggContext {
	return &AggContext{Func: AggMin, Acc: NullValue()}
}

// Step folds |v| into the accumulator. Null inputs are skipped.
func (a *AggContext) Step(v OwnedValue) error {
	if v.kind == AggKind && v.agg != nil {
		v = v.agg.Value()
	}
	if v.IsNull() {
		return nil
	}

	switch a.Func {
	case AggAvg:
		if err := a.Acc.AddAssign(v); err != nil {
			return err
		}
		return a.Count.AddAssignInt(1)
	case AggSum:
		return a.Acc.AddAssign(v)
	case AggCount:
		return a.Acc.AddAssignInt(1)
	case AggMax:
		if a.Acc.IsNull() || Compare(v, a.Acc) > 0 {
			a.Acc = v.Clone()
		}
	case AggMin:
		if a.Acc.IsNull() || Compare(v, a.Acc) < 0 {
			a.Acc = v.Clone()
		}
	}
	return nil
}

// Value returns the scalar shown for this accumulator. For avg this is the
// running sum: callers must finalize before reading an average.
func (a *AggContext) Value() OwnedValue {
	return a.Acc
}

func (a *AggContext) Clone() *AggContext {
	c := *a
	c.Acc = a.Acc.Clone()
	c.Count = a.Count.Clone()
	return &c
}
