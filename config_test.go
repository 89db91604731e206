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
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mendersoftware/mongokit/model"
)

func newContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

func touchFlags() []cli.Flag {
	for _, cmd := range commands() {
		if cmd.Name == "touch" {
			return cmd.Flags
		}
	}
	return nil
}

func TestParseQueryOptions(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		Args []string

		Options *queryOptions
		Error   string
	}{
		"ok, collection only": {
			Args: []string{"-c", "docs"},

			Options: &queryOptions{Collection: "docs"},
		},
		"ok, everything": {
			Args: []string{
				"--collection", "docs",
				"--filter", `{"kind": "a", "n": {"$gt": 1}}`,
				"--sort", `{"n": -1}`,
				"--limit", "5",
				"--skip", "2",
				"--hint", "kind_1",
				"--where", "this.n % 2 == 0",
			},

			Options: &queryOptions{
				Collection: "docs",
				Filter: bson.D{
					{Key: "kind", Value: "a"},
					{Key: "n", Value: bson.D{{Key: "$gt", Value: int32(1)}}},
				},
				Sort:  bson.D{{Key: "n", Value: int32(-1)}},
				Limit: 5,
				Skip:  2,
				Hint:  "kind_1",
				Where: "this.n % 2 == 0",
			},
		},
		"ok, hint document": {
			Args: []string{"-c", "docs", "--hint", ` {"kind": 1}`},

			Options: &queryOptions{
				Collection: "docs",
				Hint:       bson.D{{Key: "kind", Value: int32(1)}},
			},
		},
		"ok, negative limit": {
			Args: []string{"-c", "docs", "--limit", "-1"},

			Options: &queryOptions{Collection: "docs", Limit: -1},
		},
		"error, no collection": {
			Args: []string{"--limit", "1"},

			Error: "Collection: cannot be blank.",
		},
		"error, negative skip": {
			Args: []string{"-c", "docs", "--skip", "-1"},

			Error: "Skip: must be no less than 0.",
		},
		"error, bad filter": {
			Args: []string{"-c", "docs", "--filter", "{kind: a}"},

			Error: "filter: invalid JSON document",
		},
		"error, bad sort": {
			Args: []string{"-c", "docs", "--sort", `{"n": {"$numberLong": 1}}`},

			Error: "sort: invalid extended JSON document",
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := newContext(t, queryFlags(), tc.Args...)
			opts, err := parseQueryOptions(c)
			if tc.Error != "" {
				assert.ErrorContains(t, err, tc.Error)
				assert.Nil(t, opts)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.Options, opts,
				cmp.AllowUnexported(queryOptions{})); diff != "" {
				t.Errorf("unexpected options (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTouchOptions(t *testing.T) {
	t.Parallel()

	oid := primitive.NewObjectID()
	testCases := map[string]struct {
		Args []string

		Options *touchOptions
		Error   string
	}{
		"ok": {
			Args: []string{
				"-c", "docs",
				"--id", oid.Hex(),
				"--set", "name=bar",
				"--set", "meta.count=5",
				"--set", `meta.tags=["a","b"]`,
				"--unset", "old",
			},

			Options: &touchOptions{
				Collection: "docs",
				ID:         oid,
				Set: map[string]interface{}{
					"name":       "bar",
					"meta.count": int32(5),
					"meta.tags":  bson.A{"a", "b"},
				},
				Unset: []string{"old"},
			},
		},
		"ok, unset only": {
			Args: []string{"-c", "docs", "--id", "abc", "--unset", "old"},

			Options: &touchOptions{
				Collection: "docs",
				ID:         "abc",
				Set:        map[string]interface{}{},
				Unset:      []string{"old"},
			},
		},
		"ok, value with equal sign": {
			Args: []string{"-c", "docs", "--id", "abc", "--set", "expr=a=b"},

			Options: &touchOptions{
				Collection: "docs",
				ID:         "abc",
				Set:        map[string]interface{}{"expr": "a=b"},
			},
		},
		"error, nothing to modify": {
			Args: []string{"-c", "docs", "--id", "abc"},

			Error: "Set: nothing to modify.",
		},
		"error, no id": {
			Args: []string{"-c", "docs", "--set", "a=1"},

			Error: "ID: cannot be blank.",
		},
		"error, malformed assignment": {
			Args: []string{"-c", "docs", "--id", "abc", "--set", "name"},

			Error: `set: expected PATH=VALUE, got "name"`,
		},
		"error, empty path": {
			Args: []string{"-c", "docs", "--id", "abc", "--set", "=1"},

			Error: `set: expected PATH=VALUE, got "=1"`,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := newContext(t, touchFlags(), tc.Args...)
			opts, err := parseTouchOptions(c)
			if tc.Error != "" {
				assert.ErrorContains(t, err, tc.Error)
				assert.Nil(t, opts)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Options, opts)
		})
	}
}

func TestTouchOptionsApply(t *testing.T) {
	t.Parallel()

	doc := model.NewDocFromFields(bson.M{
		"_id":  "abc",
		"name": "foo",
		"meta": bson.M{"owner": "alice"},
		"old":  true,
	}, nil, false)

	opts := &touchOptions{
		Set: map[string]interface{}{
			"name":        "bar",
			"meta.owner":  "bob",
			"stats.total": int32(1),
		},
		Unset: []string{"old"},
	}
	require.NoError(t, opts.Apply(doc))
	assert.Equal(t, bson.M{
		"_id":   "abc",
		"name":  "bar",
		"meta":  bson.M{"owner": "bob"},
		"stats": bson.M{"total": int32(1)},
	}, doc.Fields)

	opts = &touchOptions{Set: map[string]interface{}{"name.first": "x"}}
	assert.ErrorIs(t, opts.Apply(doc), model.ErrNotADocument)
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		Input string
		Value interface{}
	}{
		"plain string":  {Input: "hello", Value: "hello"},
		"quoted string": {Input: `"hello"`, Value: "hello"},
		"int":           {Input: "42", Value: int32(42)},
		"double":        {Input: "1.5", Value: 1.5},
		"bool":          {Input: "true", Value: true},
		"null":          {Input: "null", Value: nil},
		"long":          {Input: `{"$numberLong": "7"}`, Value: int64(7)},
		"document": {
			Input: `{"a": 1}`,
			Value: bson.D{{Key: "a", Value: int32(1)}},
		},
		"array": {Input: `[1, "x"]`, Value: bson.A{int32(1), "x"}},
		"bad extended json": {
			Input: `{"$numberLong": 7}`,
			Value: `{"$numberLong": 7}`,
		},
	}
	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.Value, parseValue(tc.Input))
		})
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	oid := primitive.NewObjectID()
	assert.Equal(t, oid, parseID(oid.Hex()))
	assert.Equal(t, "abc", parseID("abc"))
	assert.Equal(t, "42", parseID("42"))
}
