// Copyright 2023 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.
package main

import (
	"strings"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mendersoftware/mongokit/model"
	"github.com/mendersoftware/mongokit/store"
	"github.com/mendersoftware/mongokit/store/mongo"
)

// queryOptions holds the query shaping flags shared by the query commands.
type queryOptions struct {
	Collection string
	Filter     bson.D
	Sort       bson.D
	Limit      int64
	Skip       int64
	Hint       interface{}
	Where      string
}

func (o queryOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Collection, validation.Required),
		validation.Field(&o.Skip, validation.Min(int64(0))),
	)
}

func parseQueryOptions(c *cli.Context) (*queryOptions, error) {
	var err error
	opts := &queryOptions{
		Collection: c.String(FlagCollection),
		Limit:      c.Int64(FlagLimit),
		Skip:       c.Int64(FlagSkip),
		Where:      c.String(FlagWhere),
	}
	if opts.Filter, err = parseDocument(FlagFilter, c.String(FlagFilter)); err != nil {
		return nil, err
	}
	if opts.Sort, err = parseDocument(FlagSort, c.String(FlagSort)); err != nil {
		return nil, err
	}
	if hint := c.String(FlagHint); hint != "" {
		if strings.HasPrefix(strings.TrimSpace(hint), "{") {
			if opts.Hint, err = parseDocument(FlagHint, hint); err != nil {
				return nil, err
			}
		} else {
			opts.Hint = hint
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Cursor builds the document cursor for the query, applying only the
// refinements that were requested.
func (o *queryOptions) Cursor(
	ds *mongo.DataStoreMongo,
) (*store.DocumentCursor[*model.Doc], error) {
	var err error
	cur := mongo.FindDocuments(ds, o.Collection, o.Filter, model.NewDoc)
	if o.Where != "" {
		if cur, err = cur.Where(o.Where); err != nil {
			return nil, err
		}
	}
	if len(o.Sort) > 0 {
		if cur, err = cur.Sort(o.Sort); err != nil {
			return nil, err
		}
	}
	if o.Skip > 0 {
		if cur, err = cur.Skip(o.Skip); err != nil {
			return nil, err
		}
	}
	if o.Limit != 0 {
		if cur, err = cur.Limit(o.Limit); err != nil {
			return nil, err
		}
	}
	if o.Hint != nil {
		if cur, err = cur.Hint(o.Hint); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// touchOptions describes the modifications applied by the touch command.
type touchOptions struct {
	Collection string
	ID         interface{}
	Set        map[string]interface{}
	Unset      []string
}

func (o touchOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Collection, validation.Required),
		validation.Field(&o.ID, validation.Required),
		validation.Field(&o.Set, validation.When(len(o.Unset) == 0,
			validation.Required.Error("nothing to modify"))),
	)
}

func parseTouchOptions(c *cli.Context) (*touchOptions, error) {
	opts := &touchOptions{
		Collection: c.String(FlagCollection),
		Set:        map[string]interface{}{},
		Unset:      c.StringSlice(FlagUnset),
	}
	if id := c.String(FlagID); id != "" {
		opts.ID = parseID(id)
	}
	for _, assignment := range c.StringSlice(FlagSet) {
		path, raw, ok := strings.Cut(assignment, "=")
		if !ok || path == "" {
			return nil, errors.Errorf(
				"%s: expected PATH=VALUE, got %q", FlagSet, assignment)
		}
		opts.Set[path] = parseValue(raw)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Apply performs the modifications on doc.
func (o *touchOptions) Apply(doc *model.Doc) error {
	for path, value := range o.Set {
		if err := doc.Set(path, value); err != nil {
			return err
		}
	}
	for _, path := range o.Unset {
		doc.Unset(path)
	}
	return nil
}

func parseDocument(name, s string) (bson.D, error) {
	if s == "" {
		return nil, nil
	}
	if !govalidator.IsJSON(s) {
		return nil, errors.Errorf("%s: invalid JSON document", name)
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON([]byte(s), false, &doc); err != nil {
		return nil, errors.Wrapf(err, "%s: invalid extended JSON document", name)
	}
	return doc, nil
}

// parseValue interprets s as an extended JSON value, falling back to the
// plain string.
func parseValue(s string) interface{} {
	if !govalidator.IsJSON(s) {
		return s
	}
	var wrapper struct {
		V interface{} `bson:"v"`
	}
	err := bson.UnmarshalExtJSON([]byte(`{"v":`+s+`}`), false, &wrapper)
	if err != nil {
		return s
	}
	return wrapper.V
}

func parseID(s string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(s); err == nil {
		return oid
	}
	return s
}
