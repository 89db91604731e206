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

package store

import (
	"context"
	"errors"
	"iter"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mendersoftware/mongokit/model"
)

// DocumentCursor wraps a raw Cursor and turns every row it yields into a
// document built by the factory. Errors from the raw cursor and from the
// factory are returned as-is.
type DocumentCursor[D model.Document] struct {
	cursor  Cursor
	coll    *mongo.Collection
	db      *mongo.Database
	factory model.Factory[D]
}

// NewDocumentCursor wraps cursor so every row is built into a D by factory.
func NewDocumentCursor[D model.Document](
	cursor Cursor,
	factory model.Factory[D],
) *DocumentCursor[D] {
	coll := cursor.Collection()
	var db *mongo.Database
	if coll != nil {
		db = coll.Database()
	}
	return &DocumentCursor[D]{
		cursor:  cursor,
		coll:    coll,
		db:      db,
		factory: factory,
	}
}

// Raw returns the underlying raw cursor.
func (c *DocumentCursor[D]) Raw() Cursor {
	return c.cursor
}

// Collection returns the collection the cursor queries.
func (c *DocumentCursor[D]) Collection() *mongo.Collection {
	return c.coll
}

// Database returns the database of the queried collection.
func (c *DocumentCursor[D]) Database() *mongo.Database {
	return c.db
}

// Distinct returns the distinct values of field among the matching rows.
func (c *DocumentCursor[D]) Distinct(ctx context.Context, field string) ([]interface{}, error) {
	return c.cursor.Distinct(ctx, field)
}

// Count returns the number of matching rows, honoring limit and skip
// when withLimitAndSkip is set.
func (c *DocumentCursor[D]) Count(ctx context.Context, withLimitAndSkip bool) (int64, error) {
	return c.cursor.Count(ctx, withLimitAndSkip)
}

// Explain returns the server's query plan for the cursor.
func (c *DocumentCursor[D]) Explain(ctx context.Context) (bson.M, error) {
	return c.cursor.Explain(ctx)
}

// Where returns a copy restricted by a $where predicate. An empty code
// removes the predicate.
func (c *DocumentCursor[D]) Where(code string) (*DocumentCursor[D], error) {
	return c.wrap(c.cursor.Where(code))
}

// Sort returns a copy ordered by keys.
func (c *DocumentCursor[D]) Sort(keys bson.D) (*DocumentCursor[D], error) {
	return c.wrap(c.cursor.Sort(keys))
}

// Limit returns a copy yielding at most n documents.
func (c *DocumentCursor[D]) Limit(n int64) (*DocumentCursor[D], error) {
	return c.wrap(c.cursor.Limit(n))
}

// Hint returns a copy forcing the given index.
func (c *DocumentCursor[D]) Hint(index interface{}) (*DocumentCursor[D], error) {
	return c.wrap(c.cursor.Hint(index))
}

// Skip returns a copy that skips the first n rows.
func (c *DocumentCursor[D]) Skip(n int64) (*DocumentCursor[D], error) {
	return c.wrap(c.cursor.Skip(n))
}

// Clone returns an unstarted copy of the cursor.
func (c *DocumentCursor[D]) Clone() *DocumentCursor[D] {
	return NewDocumentCursor(c.cursor.Clone(), c.factory)
}

// Rewind returns a fresh cursor for the same query.
func (c *DocumentCursor[D]) Rewind(ctx context.Context) (*DocumentCursor[D], error) {
	return c.wrap(c.cursor.Rewind(ctx))
}

// Next returns the next document. Once the results are consumed the error
// is ErrCursorExhausted (or whatever the raw cursor reports).
func (c *DocumentCursor[D]) Next(ctx context.Context) (D, error) {
	raw, err := c.cursor.Next(ctx)
	if err != nil {
		var zero D
		return zero, err
	}
	return c.document(raw)
}

// All returns a single-use sequence over the remaining documents. The
// sequence ends silently on ErrCursorExhausted; any other error is yielded
// once and ends it.
func (c *DocumentCursor[D]) All(ctx context.Context) iter.Seq2[D, error] {
	return func(yield func(D, error) bool) {
		for {
			doc, err := c.Next(ctx)
			if errors.Is(err, ErrCursorExhausted) {
				return
			}
			if !yield(doc, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the server-side cursor.
func (c *DocumentCursor[D]) Close(ctx context.Context) error {
	return c.cursor.Close(ctx)
}

func (c *DocumentCursor[D]) document(raw bson.Raw) (D, error) {
	var zero D
	doc, err := c.factory(raw, c.coll, false)
	if err != nil {
		return zero, err
	}
	if err = doc.BuildFootprint(); err != nil {
		return zero, err
	}
	return doc, nil
}

func (c *DocumentCursor[D]) wrap(cursor Cursor, err error) (*DocumentCursor[D], error) {
	if err != nil {
		return nil, err
	}
	return NewDocumentCursor(cursor, c.factory), nil
}
