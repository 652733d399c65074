package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"sitekit/database"
	"sitekit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoReservationRepo implements Repository using MongoDB.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new instance of MongoReservationRepo.
func NewMongoReservationRepo() Repository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &MongoReservationRepo{
		coll: db.Collection("reservations"),
	}
}

func (repo *MongoReservationRepo) Create(res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("error creating reservation: %w", err)
	}
	return nil
}

func (repo *MongoReservationRepo) GetByID(id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var res models.Reservation
	filter := bson.M{"id": id}
	if err := repo.coll.FindOne(ctx, filter).Decode(&res); err != nil {
		return nil, fmt.Errorf("error fetching reservation with id %s: %w", id, err)
	}
	return &res, nil
}

func (repo *MongoReservationRepo) ListByDate(siteID, date string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"siteId": siteID, "date": date}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	for cursor.Next(ctx) {
		var r models.Reservation
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return reservations, nil
}

func (repo *MongoReservationRepo) UpdateStatus(id, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"status": status}}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error updating reservation %s status: %w", id, err)
	}
	return nil
}

func (repo *MongoReservationRepo) SetCheckoutSession(id, sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"checkoutSessionId": sessionID}}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error storing checkout session on reservation %s: %w", id, err)
	}
	return nil
}
