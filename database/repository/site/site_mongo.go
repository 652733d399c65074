package siteRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sitekit/database"
	"sitekit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a site has no stored booking settings yet.
var ErrNotFound = errors.New("booking settings not found")

// MongoSiteRepo implements Repository using MongoDB.
type MongoSiteRepo struct {
	coll *mongo.Collection
}

// NewMongoSiteRepo constructs a new instance of MongoSiteRepo.
func NewMongoSiteRepo() Repository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoSiteRepo{
		coll: db.Collection("sitesettings"),
	}
}

func (repo *MongoSiteRepo) GetSettings(siteID string) (*models.BookingSettings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var settings models.BookingSettings
	filter := bson.M{"siteId": siteID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&settings); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching settings for site %s: %w", siteID, err)
	}
	return &settings, nil
}

func (repo *MongoSiteRepo) UpsertSettings(settings *models.BookingSettings) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings.UpdatedAt = time.Now()
	filter := bson.M{"siteId": settings.SiteID}
	update := bson.M{"$set": settings}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting settings for site %s: %w", settings.SiteID, err)
	}
	return nil
}
