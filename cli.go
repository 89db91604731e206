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
	"context"
	"fmt"
	"io"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mendersoftware/mongokit/model"
	"github.com/mendersoftware/mongokit/store/mongo"
)

const (
	FlagCollection       = "collection"
	FlagFilter           = "filter"
	FlagSort             = "sort"
	FlagLimit            = "limit"
	FlagSkip             = "skip"
	FlagHint             = "hint"
	FlagWhere            = "where"
	FlagField            = "field"
	FlagWithLimitAndSkip = "with-limit-and-skip"
	FlagID               = "id"
	FlagSet              = "set"
	FlagUnset            = "unset"
)

func queryFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  FlagCollection + ", c",
			Usage: "Collection `NAME` to query.",
		},
		cli.StringFlag{
			Name:  FlagFilter + ", f",
			Usage: "Query filter as an extended JSON `DOCUMENT`.",
		},
		cli.StringFlag{
			Name:  FlagSort,
			Usage: "Sort specification as an extended JSON `DOCUMENT`, e.g. '{\"name\": 1}'.",
		},
		cli.Int64Flag{
			Name:  FlagLimit,
			Usage: "Maximum `NUMBER` of documents to return (0: no limit).",
		},
		cli.Int64Flag{
			Name:  FlagSkip,
			Usage: "`NUMBER` of documents to skip.",
		},
		cli.StringFlag{
			Name:  FlagHint,
			Usage: "Index name or index key `DOCUMENT` to use.",
		},
		cli.StringFlag{
			Name:  FlagWhere,
			Usage: "JavaScript `PREDICATE` ($where) documents must satisfy.",
		},
	}
}

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:   "find",
			Usage:  "Print the documents matching a query.",
			Flags:  queryFlags(),
			Action: cmdFind,
		},
		{
			Name:  "count",
			Usage: "Count the documents matching a query.",
			Flags: append(queryFlags(), cli.BoolFlag{
				Name:  FlagWithLimitAndSkip,
				Usage: "Apply --limit and --skip to the count.",
			}),
			Action: cmdCount,
		},
		{
			Name:  "distinct",
			Usage: "Print the distinct values of a field among the matching documents.",
			Flags: append(queryFlags(), cli.StringFlag{
				Name:  FlagField,
				Usage: "Field `PATH` to collect values from.",
			}),
			Action: cmdDistinct,
		},
		{
			Name:   "explain",
			Usage:  "Print the query plan chosen by the server.",
			Flags:  queryFlags(),
			Action: cmdExplain,
		},
		{
			Name:  "touch",
			Usage: "Modify fields of a single document and save the changes.",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  FlagCollection + ", c",
					Usage: "Collection `NAME`.",
				},
				cli.StringFlag{
					Name:  FlagID,
					Usage: "Document `ID` (ObjectID hex strings are converted).",
				},
				cli.StringSliceFlag{
					Name:  FlagSet,
					Usage: "`PATH=VALUE` to set, VALUE is extended JSON or a plain string.",
				},
				cli.StringSliceFlag{
					Name:  FlagUnset,
					Usage: "Field `PATH` to remove.",
				},
			},
			Action: cmdTouch,
		},
	}
}

func cmdFind(c *cli.Context) error {
	opts, err := parseQueryOptions(c)
	if err != nil {
		return cli.NewExitError(err, 2)
	}
	return withDataStore(c, func(ctx context.Context, ds *mongo.DataStoreMongo) error {
		cur, err := opts.Cursor(ds)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)
		n := 0
		for doc, err := range cur.All(ctx) {
			if err != nil {
				return err
			}
			if err := writeDocument(c.App.Writer, doc); err != nil {
				return err
			}
			n++
		}
		log.FromContext(ctx).Debugf("found %d documents", n)
		return nil
	})
}

func cmdCount(c *cli.Context) error {
	opts, err := parseQueryOptions(c)
	if err != nil {
		return cli.NewExitError(err, 2)
	}
	return withDataStore(c, func(ctx context.Context, ds *mongo.DataStoreMongo) error {
		cur, err := opts.Cursor(ds)
		if err != nil {
			return err
		}
		n, err := cur.Count(ctx, c.Bool(FlagWithLimitAndSkip))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, n)
		return err
	})
}

func cmdDistinct(c *cli.Context) error {
	opts, err := parseQueryOptions(c)
	if err != nil {
		return cli.NewExitError(err, 2)
	}
	field := c.String(FlagField)
	if field == "" {
		return cli.NewExitError(
			errors.Errorf("missing required flag --%s", FlagField), 2)
	}
	return withDataStore(c, func(ctx context.Context, ds *mongo.DataStoreMongo) error {
		cur, err := opts.Cursor(ds)
		if err != nil {
			return err
		}
		values, err := cur.Distinct(ctx, field)
		if err != nil {
			return err
		}
		return writeValue(c.App.Writer, bson.M{field: values})
	})
}

func cmdExplain(c *cli.Context) error {
	opts, err := parseQueryOptions(c)
	if err != nil {
		return cli.NewExitError(err, 2)
	}
	return withDataStore(c, func(ctx context.Context, ds *mongo.DataStoreMongo) error {
		cur, err := opts.Cursor(ds)
		if err != nil {
			return err
		}
		plan, err := cur.Explain(ctx)
		if err != nil {
			return err
		}
		return writeValue(c.App.Writer, plan)
	})
}

func cmdTouch(c *cli.Context) error {
	opts, err := parseTouchOptions(c)
	if err != nil {
		return cli.NewExitError(err, 2)
	}
	return withDataStore(c, func(ctx context.Context, ds *mongo.DataStoreMongo) error {
		doc, err := mongo.FindOneDocument(ctx, ds, opts.Collection,
			bson.D{{Key: model.FieldID, Value: opts.ID}}, model.NewDoc)
		if err != nil {
			return errors.Wrapf(err, "document %v", opts.ID)
		}
		if err := opts.Apply(doc); err != nil {
			return err
		}
		if err := mongo.SaveDocument(ctx, doc); err != nil {
			return err
		}
		return writeDocument(c.App.Writer, doc)
	})
}

func writeDocument(w io.Writer, doc *model.Doc) error {
	return writeValue(w, doc.Fields)
}

func writeValue(w io.Writer, value interface{}) error {
	b, err := bson.MarshalExtJSON(value, false, false)
	if err != nil {
		return errors.Wrap(err, "failed to serialize document")
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
