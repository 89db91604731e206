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

package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mendersoftware/go-lib-micro/log"

	"github.com/mendersoftware/mongokit/store"
)

const (
	explainVerbosity = "queryPlanner"
)

// Cursor is a store.Cursor over a collection. The query is sent to the
// server on the first call to Next; refinements after that point fail with
// store.ErrCursorStarted.
type Cursor struct {
	coll   *mongo.Collection
	filter bson.D
	where  string
	sort   bson.D
	limit  int64
	skip   int64
	hint   interface{}

	cur *mongo.Cursor
}

func NewCursor(coll *mongo.Collection, filter bson.D) *Cursor {
	return &Cursor{
		coll:   coll,
		filter: filter,
	}
}

func (c *Cursor) Collection() *mongo.Collection {
	return c.coll
}

func (c *Cursor) Distinct(ctx context.Context, field string) ([]interface{}, error) {
	values, err := c.coll.Distinct(ctx, field, c.query())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get distinct values of %q", field)
	}
	return values, nil
}

// Count returns the number of documents matching the query. Limit and skip
// only apply when withLimitAndSkip is set.
func (c *Cursor) Count(ctx context.Context, withLimitAndSkip bool) (int64, error) {
	cmd := bson.D{
		{Key: "count", Value: c.coll.Name()},
		{Key: "query", Value: c.query()},
	}
	if withLimitAndSkip {
		if c.limit != 0 {
			limit := c.limit
			if limit < 0 {
				limit = -limit
			}
			cmd = append(cmd, bson.E{Key: "limit", Value: limit})
		}
		if c.skip != 0 {
			cmd = append(cmd, bson.E{Key: "skip", Value: c.skip})
		}
	}
	if c.hint != nil {
		cmd = append(cmd, bson.E{Key: "hint", Value: c.hint})
	}
	var res struct {
		N int64 `bson:"n"`
	}
	err := c.coll.Database().RunCommand(ctx, cmd).Decode(&res)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count documents")
	}
	return res.N, nil
}

func (c *Cursor) Explain(ctx context.Context) (bson.M, error) {
	cmd := bson.D{
		{Key: "explain", Value: c.findCommand()},
		{Key: "verbosity", Value: explainVerbosity},
	}
	var res bson.M
	err := c.coll.Database().RunCommand(ctx, cmd).Decode(&res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to explain query")
	}
	return res, nil
}

// Where sets the $where predicate. An empty code removes it.
func (c *Cursor) Where(code string) (store.Cursor, error) {
	return c.refine(func(q *Cursor) { q.where = code })
}

func (c *Cursor) Sort(keys bson.D) (store.Cursor, error) {
	keys = append(bson.D(nil), keys...)
	return c.refine(func(q *Cursor) { q.sort = keys })
}

func (c *Cursor) Limit(n int64) (store.Cursor, error) {
	return c.refine(func(q *Cursor) { q.limit = n })
}

func (c *Cursor) Hint(index interface{}) (store.Cursor, error) {
	return c.refine(func(q *Cursor) { q.hint = index })
}

func (c *Cursor) Skip(n int64) (store.Cursor, error) {
	return c.refine(func(q *Cursor) { q.skip = n })
}

func (c *Cursor) Clone() store.Cursor {
	return c.clone()
}

// Rewind closes the server cursor held by c, if any, and returns an
// unstarted copy of the query. c itself can be iterated again afterwards.
func (c *Cursor) Rewind(ctx context.Context) (store.Cursor, error) {
	if err := c.Close(ctx); err != nil {
		return nil, err
	}
	return c.clone(), nil
}

func (c *Cursor) Next(ctx context.Context) (bson.Raw, error) {
	if c.cur == nil {
		filter := c.query()
		log.FromContext(ctx).F(log.Ctx{
			"collection": c.coll.Name(),
		}).Debugf("executing query %v", filter)
		cur, err := c.coll.Find(ctx, filter, c.findOptions())
		if err != nil {
			return nil, errors.Wrap(err, "failed to execute query")
		}
		c.cur = cur
	}
	if !c.cur.Next(ctx) {
		if err := c.cur.Err(); err != nil {
			return nil, errors.Wrap(err, "failed to fetch next document")
		}
		return nil, store.ErrCursorExhausted
	}
	// Current is only valid until the next call to Next.
	return append(bson.Raw(nil), c.cur.Current...), nil
}

func (c *Cursor) Close(ctx context.Context) error {
	if c.cur == nil {
		return nil
	}
	err := c.cur.Close(ctx)
	c.cur = nil
	if err != nil {
		return errors.Wrap(err, "failed to close cursor")
	}
	return nil
}

func (c *Cursor) refine(apply func(q *Cursor)) (store.Cursor, error) {
	if c.cur != nil {
		return nil, store.ErrCursorStarted
	}
	q := c.clone()
	apply(q)
	return q, nil
}

func (c *Cursor) clone() *Cursor {
	return &Cursor{
		coll:   c.coll,
		filter: append(bson.D(nil), c.filter...),
		where:  c.where,
		sort:   append(bson.D(nil), c.sort...),
		limit:  c.limit,
		skip:   c.skip,
		hint:   c.hint,
	}
}

func (c *Cursor) query() bson.D {
	if c.where == "" {
		if c.filter == nil {
			return bson.D{}
		}
		return c.filter
	}
	where := bson.E{Key: "$where", Value: primitive.JavaScript(c.where)}
	if len(c.filter) == 0 {
		return bson.D{where}
	}
	return bson.D{{Key: "$and", Value: bson.A{c.filter, bson.D{where}}}}
}

func (c *Cursor) findOptions() *mopts.FindOptions {
	opts := mopts.Find()
	if len(c.sort) > 0 {
		opts.SetSort(c.sort)
	}
	if c.limit != 0 {
		opts.SetLimit(c.limit)
	}
	if c.skip != 0 {
		opts.SetSkip(c.skip)
	}
	if c.hint != nil {
		opts.SetHint(c.hint)
	}
	return opts
}

func (c *Cursor) findCommand() bson.D {
	cmd := bson.D{
		{Key: "find", Value: c.coll.Name()},
		{Key: "filter", Value: c.query()},
	}
	if len(c.sort) > 0 {
		cmd = append(cmd, bson.E{Key: "sort", Value: c.sort})
	}
	if c.limit != 0 {
		limit := c.limit
		if limit < 0 {
			limit = -limit
			cmd = append(cmd, bson.E{Key: "singleBatch", Value: true})
		}
		cmd = append(cmd, bson.E{Key: "limit", Value: limit})
	}
	if c.skip != 0 {
		cmd = append(cmd, bson.E{Key: "skip", Value: c.skip})
	}
	if c.hint != nil {
		cmd = append(cmd, bson.E{Key: "hint", Value: c.hint})
	}
	return cmd
}
