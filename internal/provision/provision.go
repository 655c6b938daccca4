package provision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const namespaceExists = 48

type Field struct {
	Name  string
	Order int
}

type Index struct {
	Keys   []Field
	Unique bool
}

// Name follows the server's default naming, e.g. "jobId_1_applicantId_1".
func (i Index) Name() string {
	parts := make([]string, 0, len(i.Keys)*2)
	for _, k := range i.Keys {
		parts = append(parts, k.Name, fmt.Sprint(k.Order))
	}
	return strings.Join(parts, "_")
}

func (i Index) model() mongo.IndexModel {
	keys := bson.D{}
	for _, k := range i.Keys {
		keys = append(keys, bson.E{Key: k.Name, Value: k.Order})
	}
	opts := options.Index().SetName(i.Name())
	if i.Unique {
		opts.SetUnique(true)
	}
	return mongo.IndexModel{Keys: keys, Options: opts}
}

type Collection struct {
	Database string
	Name     string
	Indexes  []Index
}

// Plan lists the databases each backend service owns.
func Plan() []Collection {
	email := Index{Keys: []Field{{"email", 1}}, Unique: true}
	return []Collection{
		{Database: "auth-db", Name: "users", Indexes: []Index{email}},
		{Database: "user-db", Name: "users", Indexes: []Index{email}},
		{Database: "job-db", Name: "jobs", Indexes: []Index{
			{Keys: []Field{{"createdBy", 1}}},
			{Keys: []Field{{"createdAt", -1}}},
		}},
		{Database: "application-db", Name: "applications", Indexes: []Index{
			{Keys: []Field{{"jobId", 1}, {"applicantId", 1}}, Unique: true},
			{Keys: []Field{{"recruiterId", 1}}},
			{Keys: []Field{{"applicantId", 1}}},
		}},
	}
}

type Provisioner struct {
	client *mongo.Client
	log    zerolog.Logger
}

func New(client *mongo.Client, log zerolog.Logger) *Provisioner {
	return &Provisioner{client: client, log: log}
}

// Apply creates missing collections and indexes. Running it twice is safe.
func (p *Provisioner) Apply(ctx context.Context, plan []Collection) error {
	for _, c := range plan {
		db := p.client.Database(c.Database)
		if err := db.CreateCollection(ctx, c.Name); err != nil && !alreadyExists(err) {
			return fmt.Errorf("create %s.%s: %w", c.Database, c.Name, err)
		}

		models := make([]mongo.IndexModel, 0, len(c.Indexes))
		for _, idx := range c.Indexes {
			models = append(models, idx.model())
		}
		if len(models) > 0 {
			names, err := db.Collection(c.Name).Indexes().CreateMany(ctx, models)
			if err != nil {
				return fmt.Errorf("indexes %s.%s: %w", c.Database, c.Name, err)
			}
			p.log.Info().
				Str("database", c.Database).
				Str("collection", c.Name).
				Strs("indexes", names).
				Msg("collection provisioned")
		}
	}
	return nil
}

func alreadyExists(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == namespaceExists
	}
	return false
}
