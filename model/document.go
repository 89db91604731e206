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
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	FieldID = "_id"
)

var (
	ErrNotADocument = errors.New("value at path is not a document")
)

// Document is a typed record bound to the collection it was read from (or
// will be written to).
type Document interface {
	Collection() *mongo.Collection
	// BuildFootprint computes and caches the structural fingerprint of
	// the document fields.
	BuildFootprint() error
	// Footprint returns the cached fingerprint, nil if it was never built.
	Footprint() Footprint
}

// Factory constructs a document from a raw row. generateIndex is false when
// rehydrating query results.
type Factory[D Document] func(
	raw bson.Raw,
	coll *mongo.Collection,
	generateIndex bool,
) (D, error)

// Doc is the schemaless document; custom document types embed it.
type Doc struct {
	Fields bson.M

	coll      *mongo.Collection
	footprint Footprint
}

// NewDoc is the Factory for *Doc.
func NewDoc(raw bson.Raw, coll *mongo.Collection, generateIndex bool) (*Doc, error) {
	d := &Doc{
		Fields: bson.M{},
		coll:   coll,
	}
	if len(raw) > 0 {
		if err := bson.Unmarshal(raw, &d.Fields); err != nil {
			return nil, errors.Wrap(err, "failed to decode document")
		}
	}
	if generateIndex {
		d.GenerateIndex()
	}
	return d, nil
}

// NewDocFromFields creates a document from already decoded fields.
func NewDocFromFields(
	fields bson.M,
	coll *mongo.Collection,
	generateIndex bool,
) *Doc {
	if fields == nil {
		fields = bson.M{}
	}
	d := &Doc{
		Fields: fields,
		coll:   coll,
	}
	if generateIndex {
		d.GenerateIndex()
	}
	return d
}

// GenerateIndex assigns a new primary key unless one is already present.
func (d *Doc) GenerateIndex() {
	if id, ok := d.Fields[FieldID]; !ok || id == nil {
		d.Fields[FieldID] = uuid.NewString()
	}
}

func (d *Doc) Collection() *mongo.Collection {
	return d.coll
}

func (d *Doc) ID() interface{} {
	return d.Fields[FieldID]
}

func (d *Doc) BuildFootprint() error {
	fp, err := NewFootprint(d.Fields)
	if err != nil {
		return err
	}
	d.footprint = fp
	return nil
}

func (d *Doc) Footprint() Footprint {
	return d.footprint
}

func (d Doc) Validate() error {
	return validation.Validate(d.Fields[FieldID],
		validation.Required.Error("document has no "+FieldID),
	)
}

// Get returns the value at the dotted path.
func (d *Doc) Get(path string) (interface{}, bool) {
	keys := strings.Split(path, ".")
	var cur interface{} = d.Fields
	for _, key := range keys {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set assigns value at the dotted path, creating intermediate documents.
func (d *Doc) Set(path string, value interface{}) error {
	keys := strings.Split(path, ".")
	m := map[string]interface{}(d.Fields)
	for _, key := range keys[:len(keys)-1] {
		next, ok := m[key]
		if !ok || next == nil {
			sub := bson.M{}
			m[key] = sub
			m = sub
			continue
		}
		m, ok = asMap(next)
		if !ok {
			return errors.Wrapf(ErrNotADocument, "set %q", path)
		}
	}
	m[keys[len(keys)-1]] = value
	return nil
}

// Unset removes the value at the dotted path; missing paths are ignored.
func (d *Doc) Unset(path string) {
	keys := strings.Split(path, ".")
	m := map[string]interface{}(d.Fields)
	for _, key := range keys[:len(keys)-1] {
		var ok bool
		if m, ok = asMap(m[key]); !ok {
			return
		}
	}
	delete(m, keys[len(keys)-1])
}

// Changes returns the update documents that bring the stored record in line
// with the current fields. Changes are reported per top-level field.
func (d *Doc) Changes() (set bson.D, unset bson.D, err error) {
	current, err := NewFootprint(d.Fields)
	if err != nil {
		return nil, nil, err
	}
	changed, removed := d.footprint.Diff(current)
	seen := make(map[string]struct{})
	for _, path := range append(changed, removed...) {
		top, _, _ := strings.Cut(path, ".")
		if _, ok := seen[top]; ok {
			continue
		}
		seen[top] = struct{}{}
		if value, ok := d.Fields[top]; ok {
			set = append(set, bson.E{Key: top, Value: value})
		} else {
			unset = append(unset, bson.E{Key: top, Value: ""})
		}
	}
	return set, unset, nil
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]interface{}:
		return m, true
	}
	return nil, false
}
