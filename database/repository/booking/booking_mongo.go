package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"festa/database"
	"festa/errs"
	"festa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientId", Value: 1}}},
		// Supports the ledger's per-date uniqueness lookups and provider lists.
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "eventDate", Value: 1}}},
		{Keys: bson.D{{Key: "packageId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

// CompareAndSet replaces the booking document, filtered on the version the
// caller read. A matched count of zero means another writer got there first.
func (r *MongoBookingRepo) CompareAndSet(booking *models.Booking, expectedVersion int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	filter := bson.M{"id": booking.ID, "version": expectedVersion}
	update := bson.M{"$set": booking}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		existing, getErr := r.GetByID(booking.ID)
		if getErr == nil && existing == nil {
			return errs.NotFound("booking", booking.ID)
		}
		return errs.ConcurrentModification("booking %s was modified concurrently", booking.ID)
	}
	return nil
}

// ListByClient returns all bookings requested by the given client.
func (r *MongoBookingRepo) ListByClient(clientID string) ([]models.Booking, error) {
	return r.find(bson.M{"clientId": clientID})
}

// ListByProvider returns all bookings addressed to the given provider.
func (r *MongoBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	return r.find(bson.M{"providerId": providerID})
}

// CountActiveByPackage counts bookings referencing the package in any
// non-cancelled status.
func (r *MongoBookingRepo) CountActiveByPackage(packageID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"packageId": packageID,
		"status":    bson.M{"$ne": models.BookingCancelled},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for package %s: %w", packageID, err)
	}
	return count, nil
}

func (r *MongoBookingRepo) find(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
