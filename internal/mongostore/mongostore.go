// Package mongostore keeps the append-only analytics event collections in
// MongoDB. Collection names and document fields match the ones the public
// site has always written, so existing event history stays readable.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"blogdesk/internal/models"
)

const (
	visitsCollection = "pagevisits"
	timeCollection   = "timespents"
)

// AnalyticsStore records and aggregates analytics events in MongoDB.
type AnalyticsStore struct {
	client *mongo.Client
	visits *mongo.Collection
	times  *mongo.Collection
}

// Connect opens a client for uri, verifies it with a ping and ensures the
// page indexes exist on both collections.
func Connect(ctx context.Context, uri, database string) (*AnalyticsStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(database)
	s := &AnalyticsStore{
		client: client,
		visits: db.Collection(visitsCollection),
		times:  db.Collection(timeCollection),
	}

	for _, coll := range []*mongo.Collection{s.visits, s.times} {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "page", Value: 1}},
		})
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo create index on %s: %w", coll.Name(), err)
		}
	}

	slog.Info("mongodb connected", "database", database)
	return s, nil
}

// Close disconnects the client.
func (s *AnalyticsStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// RecordVisit appends a page-visit event.
func (s *AnalyticsStore) RecordVisit(ctx context.Context, v *models.PageVisit) error {
	if _, err := s.visits.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("record page visit: %w", err)
	}
	return nil
}

// RecordTimeSpent appends a time-on-page event.
func (s *AnalyticsStore) RecordTimeSpent(ctx context.Context, e *models.TimeSpent) error {
	if _, err := s.times.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("record time spent: %w", err)
	}
	return nil
}

// PageTotals counts visits and sums time events for one page.
func (s *AnalyticsStore) PageTotals(ctx context.Context, page string) (*models.PageTotals, error) {
	filter := bson.D{{Key: "page", Value: page}}

	visits, err := s.visits.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count page visits: %w", err)
	}

	cursor, err := s.times.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$timeSpent"}}},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate page time: %w", err)
	}

	var groups []struct {
		Count int64   `bson:"count"`
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode page time: %w", err)
	}

	totals := &models.PageTotals{Visits: visits}
	if len(groups) > 0 {
		totals.TimeEvents = groups[0].Count
		totals.TotalTime = groups[0].Total
	}
	return totals, nil
}

// VisitCounts groups visits by page.
func (s *AnalyticsStore) VisitCounts(ctx context.Context) ([]models.VisitCount, error) {
	cursor, err := s.visits.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$page"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate visits: %w", err)
	}

	items := []models.VisitCount{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode visits: %w", err)
	}
	return items, nil
}

// TimeStats groups time events by page with average and total.
func (s *AnalyticsStore) TimeStats(ctx context.Context) ([]models.TimeStat, error) {
	cursor, err := s.times.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$page"},
			{Key: "avgTime", Value: bson.D{{Key: "$avg", Value: "$timeSpent"}}},
			{Key: "totalTime", Value: bson.D{{Key: "$sum", Value: "$timeSpent"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate time stats: %w", err)
	}

	items := []models.TimeStat{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode time stats: %w", err)
	}
	return items, nil
}
