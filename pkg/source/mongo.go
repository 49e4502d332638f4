package source

import (
	"context"
	stderrors "errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/sketchview/pkg/errors"
)

// record is the stored shape of a document.
type record struct {
	Path string `bson:"path"`
	Data string `bson:"data"`
}

// collection is the subset of *mongo.Collection used by MongoStore.
type collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// MongoStore serves documents from a collection whose records hold a
// "path" key and the raw document JSON under "data".
type MongoStore struct {
	client *mongo.Client
	coll   collection
}

// NewMongoStore connects to uri and uses database.collection.
func NewMongoStore(ctx context.Context, uri, database, coll string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocumentRead, err, "connect to mongo")
	}
	return &MongoStore{client: client, coll: client.Database(database).Collection(coll)}, nil
}

func (s *MongoStore) Read(ctx context.Context, p string) ([]byte, error) {
	if err := errors.ValidatePath(p); err != nil {
		return nil, err
	}
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"path": p}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeNotFound, "document %s not found", p)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocumentRead, err, "find %s", p)
	}
	return []byte(rec.Data), nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"path": 1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocumentRead, err, "list documents")
	}
	var recs []record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocumentRead, err, "list documents")
	}
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Path)
	}
	sort.Strings(out)
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
