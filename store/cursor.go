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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrCursorExhausted is returned by Next once all results are consumed.
	ErrCursorExhausted = errors.New("cursor exhausted")
	// ErrCursorStarted is returned when refining a cursor that has
	// already started iterating.
	ErrCursorStarted = errors.New("cannot refine a cursor after iteration started")
)

// Cursor is a lazily evaluated query over a single collection. Refinements
// return a new cursor; whether the receiver is affected is up to the
// implementation.
type Cursor interface {
	Collection() *mongo.Collection

	Distinct(ctx context.Context, field string) ([]interface{}, error)
	Count(ctx context.Context, withLimitAndSkip bool) (int64, error)
	Explain(ctx context.Context) (bson.M, error)

	// Where restricts the results with a JavaScript predicate ($where).
	// An empty code removes a previously set predicate.
	Where(code string) (Cursor, error)
	Sort(keys bson.D) (Cursor, error)
	Limit(n int64) (Cursor, error)
	// Hint forces the index to use, either by name or by key document.
	Hint(index interface{}) (Cursor, error)
	Skip(n int64) (Cursor, error)
	Clone() Cursor
	// Rewind returns the query reset to its unevaluated state.
	Rewind(ctx context.Context) (Cursor, error)

	// Next returns the next raw row or ErrCursorExhausted.
	Next(ctx context.Context) (bson.Raw, error)
	Close(ctx context.Context) error
}
