// Copyright 2023 Northern.tech AS
//
//	Licensed under the Apache License, Version 2.0 (the "License");
//	you may not use this file except in compliance with the License.
//	You may obtain a copy of the License at
//
//	    http://www.apache.org/licenses/LICENSE-2.0
//
//	Unless required by applicable law or agreed to in writing, software
//	distributed under the License is distributed on an "AS IS" BASIS,
//	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//	See the License for the specific language governing permissions and
//	limitations under the License.

package model

import (
	"reflect"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/mendersoftware/go-lib-micro/mongo/doc"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Footprint maps flattened field paths ("a.b.c") to a hash of the value
// stored at that path.
type Footprint map[string]uint64

// leaf boxes values the flattener must not descend into or would drop:
// nil interfaces, empty documents, arrays and BSON types implemented as
// structs (Decimal128, Binary, Timestamp...).
type leaf [1]interface{}

// NewFootprint computes the footprint of a set of document fields.
func NewFootprint(fields bson.M) (Footprint, error) {
	flat, err := doc.FlattenDocument(
		boxLeaves(fields),
		doc.NewFlattenOptions().SetTransform(
			func(key string, elem interface{}) (string, interface{}) {
				if box, ok := elem.(leaf); ok {
					if box[0] == nil {
						return key, primitive.Null{}
					}
					return key, box[0]
				}
				return key, elem
			},
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to flatten document")
	}
	fp := make(Footprint, len(flat))
	for _, elem := range flat {
		sum, err := hashValue(elem.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to hash field %q", elem.Key)
		}
		fp[elem.Key] = sum
	}
	return fp, nil
}

// Diff compares fp with a newer footprint. changed holds paths that are new
// or hold a different value, removed holds paths missing from other.
func (fp Footprint) Diff(other Footprint) (changed, removed []string) {
	for path, sum := range other {
		if prev, ok := fp[path]; !ok || prev != sum {
			changed = append(changed, path)
		}
	}
	for path := range fp {
		if _, ok := other[path]; !ok {
			removed = append(removed, path)
		}
	}
	sort.Strings(changed)
	sort.Strings(removed)
	return changed, removed
}

func hashValue(value interface{}) (uint64, error) {
	typ, data, err := bson.MarshalValue(value)
	if err != nil {
		return 0, err
	}
	digest := xxhash.New()
	_, _ = digest.Write([]byte{byte(typ)})
	_, _ = digest.Write(data)
	return digest.Sum64(), nil
}

func boxLeaves(m map[string]interface{}) bson.M {
	ret := make(bson.M, len(m))
	for key, value := range m {
		if sub, ok := asMap(value); ok {
			if len(sub) == 0 {
				ret[key] = leaf{value}
			} else {
				ret[key] = boxLeaves(sub)
			}
			continue
		}
		switch value.(type) {
		case bson.A, []interface{}, bson.D:
			ret[key] = leaf{canonical(value)}
			continue
		}
		switch reflect.ValueOf(value).Kind() {
		case reflect.Invalid, reflect.Struct, reflect.Ptr, reflect.Interface:
			ret[key] = leaf{value}
		default:
			ret[key] = value
		}
	}
	return ret
}

// canonical rewrites documents found inside arrays as bson.D with sorted
// keys, so equal values encode to the same bytes whatever the map order.
func canonical(value interface{}) interface{} {
	switch v := value.(type) {
	case bson.A:
		return canonicalArray(v)
	case []interface{}:
		return canonicalArray(v)
	case bson.D:
		ret := make(bson.D, len(v))
		for i, elem := range v {
			ret[i] = bson.E{Key: elem.Key, Value: canonical(elem.Value)}
		}
		return ret
	}
	m, ok := asMap(value)
	if !ok {
		return value
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	ret := make(bson.D, len(keys))
	for i, key := range keys {
		ret[i] = bson.E{Key: key, Value: canonical(m[key])}
	}
	return ret
}

func canonicalArray(arr []interface{}) bson.A {
	ret := make(bson.A, len(arr))
	for i, elem := range arr {
		ret[i] = canonical(elem)
	}
	return ret
}
