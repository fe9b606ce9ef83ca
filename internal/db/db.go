package db

import (
	"context"
	"regexp"
	"time"

	"paurax-bot/internal/config"
	"paurax-bot/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Issues   *mongo.Collection
	Contacts *mongo.Collection
}

func Connect(cfg *config.Config) (*DB, error) {
	clientOpts := options.Client().ApplyURI(cfg.MongoDBURI)
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.DatabaseName)

	d := &DB{
		Client:   client,
		Database: db,
		Issues:   db.Collection("issues"),
		Contacts: db.Collection("contacts"),
	}

	if err := d.createIndexes(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *DB) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := d.Issues.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: 1}},
	})

	if err != nil {
		return err
	}

	return nil
}

// AppendIssue records one reported issue. Each report is a single-document
// insert, so concurrent reporters cannot clobber each other.
func (d *DB) AppendIssue(ctx context.Context, issueType, location, reportedBy string) (*models.Issue, error) {
	now := time.Now()
	issue := &models.Issue{
		ID:         now.UnixMilli(),
		Type:       issueType,
		Location:   location,
		ReportedBy: reportedBy,
		CreatedAt:  now,
	}

	_, err := d.Issues.InsertOne(ctx, issue)
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// RecentIssues returns the most recently reported issues, newest first.
func (d *DB) RecentIssues(ctx context.Context, limit int64) ([]models.Issue, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: -1}}).SetLimit(limit)
	cursor, err := d.Issues.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}

	return issues, nil
}

// CountIssuesByLocation counts reports whose location matches, ignoring case.
func (d *DB) CountIssuesByLocation(ctx context.Context, location string) (int64, error) {
	filter := bson.M{"location": bson.M{"$regex": "^" + regexp.QuoteMeta(location) + "$", "$options": "i"}}
	return d.Issues.CountDocuments(ctx, filter)
}

// TouchContact upserts the sender's contact record, bumping last-seen and
// the message counter.
func (d *DB) TouchContact(ctx context.Context, phone string) error {
	opts := options.UpdateOne().SetUpsert(true)
	filter := bson.M{"_id": phone}
	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"last_seen": now},
		"$setOnInsert": bson.M{"first_seen": now},
		"$inc":         bson.M{"messages": 1},
	}
	_, err := d.Contacts.UpdateOne(ctx, filter, update, opts)
	return err
}
