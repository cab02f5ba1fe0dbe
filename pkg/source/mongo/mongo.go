// Package mongo reads trial rows from a MongoDB collection, one document
// per row. Document fields use the same column names as the CSV export.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linker268/Swimmer-plot/pkg/errors"
	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// Config locates the collection to read.
type Config struct {
	URI        string `json:"uri"`
	Database   string `json:"database"`
	Collection string `json:"collection"`
}

// Source reads rows from one MongoDB collection.
type Source struct {
	cfg    Config
	client *mongo.Client
}

// New connects to the deployment and verifies it is reachable.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.URI == "" || cfg.Database == "" || cfg.Collection == "" {
		return nil, errors.New(errors.ErrCodeInvalidSource, "mongo source needs uri, database, and collection")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "connect to %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeSource, err, "ping %s", cfg.URI)
	}
	return &Source{cfg: cfg, client: client}, nil
}

// Name identifies the source for cache keys and logs.
func (s *Source) Name() string {
	return fmt.Sprintf("mongo:%s/%s", s.cfg.Database, s.cfg.Collection)
}

// Rows loads every document in the collection.
func (s *Source) Rows(ctx context.Context) ([]trial.RawRow, error) {
	coll := s.client.Database(s.cfg.Database).Collection(s.cfg.Collection)

	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "query %s", s.Name())
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "decode %s", s.Name())
	}

	rows := make([]trial.RawRow, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, docToRow(doc))
	}
	return rows, nil
}

// Close releases the client connection.
func (s *Source) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// docToRow converts a BSON document into a raw row. Mongo date values
// surface as time.Time so the date resolver's instant path applies; the
// document identifier is dropped since the row schema has its own ID
// column.
func docToRow(doc bson.M) trial.RawRow {
	row := make(trial.RawRow, len(doc))
	for key, value := range doc {
		if key == "_id" {
			continue
		}
		switch v := value.(type) {
		case primitive.DateTime:
			row[key] = v.Time().UTC()
		default:
			row[key] = value
		}
	}
	return row
}
