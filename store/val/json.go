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

	"github.com/goccy/go-json"
)

// MarshalJSON renders integers and finite floats as numbers, text as a
// string, blobs as base64 and nested records as arrays. Non-finite floats
// have no JSON form and are rendered as strings.
func (v OwnedValue) MarshalJSON() ([]byte, error) {
	v = unwrapAgg(v)
	switch v.kind {
	case NullKind:
		return []byte("null"), nil
	case IntegerKind:
		return json.Marshal(v.Int())
	case FloatKind:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return json.Marshal(formatFloat(f))
		}
		return json.Marshal(f)
	case TextKind:
		return json.Marshal(v.text)
	case BlobKind:
		return json.Marshal(v.blob)
	default:
		if v.rec == nil {
			return []byte("null"), nil
		}
		return v.rec.MarshalJSON()
	}
}

func (r *OwnedRecord) MarshalJSON() ([]byte, error) {
	vals, err := r.Values()
	if err != nil {
		return nil, err
	}
	return json.Marshal(vals)
}
