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
	"crypto/tls"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"

	dconfig "github.com/mendersoftware/mongokit/config"
	"github.com/mendersoftware/mongokit/model"
	"github.com/mendersoftware/mongokit/store"
)

const (
	connectTimeout = 10 * time.Second
)

var (
	ErrNoCollection     = errors.New("document is not bound to a collection")
	ErrDocumentNotFound = errors.New("document not found")
)

// NewMongoClient connects to the server configured in c and verifies the
// connection.
func NewMongoClient(ctx context.Context, c config.Reader) (*mongo.Client, error) {

	clientOptions := mopts.Client()
	mongoURL := c.GetString(dconfig.SettingMongo)
	if !strings.Contains(mongoURL, "://") {
		return nil, errors.Errorf("Invalid mongoURL %q: missing schema.",
			mongoURL)
	}
	clientOptions.ApplyURI(mongoURL)

	username := c.GetString(dconfig.SettingDbUsername)
	if username != "" {
		credentials := mopts.Credential{
			Username: c.GetString(dconfig.SettingDbUsername),
		}
		password := c.GetString(dconfig.SettingDbPassword)
		if password != "" {
			credentials.Password = password
			credentials.PasswordSet = true
		}
		clientOptions.SetAuth(credentials)
	}

	if c.GetBool(dconfig.SettingDbSSL) {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = c.GetBool(dconfig.SettingDbSSLSkipVerify)
		clientOptions.SetTLSConfig(tlsConfig)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mongo server")
	}

	// Validate connection
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "Error reaching mongo server")
	}

	return client, nil
}

// DataStoreMongo issues queries against a single database.
type DataStoreMongo struct {
	client *mongo.Client
	dbName string
}

func NewDataStoreMongoWithClient(client *mongo.Client, dbName string) *DataStoreMongo {
	return &DataStoreMongo{
		client: client,
		dbName: dbName,
	}
}

func (db *DataStoreMongo) Database() *mongo.Database {
	return db.client.Database(db.dbName)
}

func (db *DataStoreMongo) Collection(name string) *mongo.Collection {
	return db.Database().Collection(name)
}

// Find returns an unevaluated cursor over the documents of the collection
// matching filter.
func (db *DataStoreMongo) Find(collection string, filter bson.D) *Cursor {
	return NewCursor(db.Collection(collection), filter)
}

func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.Database().RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

func (db *DataStoreMongo) Disconnect(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// FindDocuments returns a cursor yielding documents built by factory.
func FindDocuments[D model.Document](
	db *DataStoreMongo,
	collection string,
	filter bson.D,
	factory model.Factory[D],
) *store.DocumentCursor[D] {
	return store.NewDocumentCursor[D](db.Find(collection, filter), factory)
}

// FindOneDocument returns the first document matching filter or
// ErrDocumentNotFound.
func FindOneDocument[D model.Document](
	ctx context.Context,
	db *DataStoreMongo,
	collection string,
	filter bson.D,
	factory model.Factory[D],
) (D, error) {
	var zero D
	cur, err := FindDocuments(db, collection, filter, factory).Limit(-1)
	if err != nil {
		return zero, err
	}
	defer cur.Close(ctx)
	doc, err := cur.Next(ctx)
	if errors.Is(err, store.ErrCursorExhausted) {
		return zero, ErrDocumentNotFound
	}
	return doc, err
}

// SaveDocument writes d to its collection. Documents that were never
// footprinted are replaced (or inserted) as a whole, others only get the
// fields that changed since the footprint was taken. The footprint is
// rebuilt after a successful write.
func SaveDocument(ctx context.Context, d *model.Doc) error {
	l := log.FromContext(ctx)
	if err := d.Validate(); err != nil {
		return errors.Wrap(err, "invalid document")
	}
	coll := d.Collection()
	if coll == nil {
		return ErrNoCollection
	}
	idFilter := bson.D{{Key: model.FieldID, Value: d.ID()}}

	if d.Footprint() == nil {
		_, err := coll.ReplaceOne(ctx, idFilter, d.Fields,
			mopts.Replace().SetUpsert(true))
		if err != nil {
			return errors.Wrap(err, "failed to store document")
		}
		return d.BuildFootprint()
	}

	set, unset, err := d.Changes()
	if err != nil {
		return err
	}
	if len(set) == 0 && len(unset) == 0 {
		l.Debugf("document %v unchanged, skipping update", d.ID())
		return nil
	}
	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	l.F(log.Ctx{"collection": coll.Name()}).
		Debugf("updating document %v: %v", d.ID(), update)
	res, err := coll.UpdateOne(ctx, idFilter, update)
	if err != nil {
		return errors.Wrap(err, "failed to update document")
	}
	if res.MatchedCount == 0 {
		return ErrDocumentNotFound
	}
	return d.BuildFootprint()
}
