package slotRepo

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

// MongoSlotRepo implements SlotRepository using MongoDB. Atomicity relies on
// conditional single-document updates plus the unique (providerId, date)
// index: of two racing writers one matches the filter, the other either
// matches nothing or trips the duplicate-key error.
type MongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo creates a new instance of SlotRepository using MongoDB.
func NewMongoSlotRepo() SlotRepository {
	coll := database.Collection("availability_slots")
	repo := &MongoSlotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSlotRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Get returns the slot record for the key, or (nil, nil) when absent.
func (r *MongoSlotRepo) Get(providerID, date string) (*models.AvailabilitySlot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var slot models.AvailabilitySlot
	err := r.coll.FindOne(ctx, bson.M{"providerId": providerID, "date": date}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot: %w", err)
	}
	return &slot, nil
}

// Transition conditionally moves the slot between states.
func (r *MongoSlotRepo) Transition(providerID, date string, from, to models.SlotState) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "date": date, "state": from}
	update := bson.M{"$set": bson.M{"state": to, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to transition slot: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// No explicit record matched. From free that can still mean "no record
	// yet": try to claim the key by insertion; the unique index rejects the
	// losers of a race.
	if from == models.SlotFree {
		slot := models.AvailabilitySlot{
			ProviderID: providerID,
			Date:       date,
			State:      to,
			UpdatedAt:  time.Now(),
		}
		_, err := r.coll.InsertOne(ctx, slot)
		if mongo.IsDuplicateKeyError(err) {
			return errs.Conflict("slot %s/%s is not %s", providerID, date, from)
		}
		if err != nil {
			return fmt.Errorf("failed to claim slot: %w", err)
		}
		return nil
	}

	return errs.Conflict("slot %s/%s is not %s", providerID, date, from)
}

// Free deletes the slot record, returning the date to the free state. A
// missing record is not an error so retried cancellations stay harmless.
func (r *MongoSlotRepo) Free(providerID, date string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"providerId": providerID, "date": date})
	if err != nil {
		return fmt.Errorf("failed to free slot: %w", err)
	}
	return nil
}

// ListByProvider returns the provider's non-free slots in the range.
func (r *MongoSlotRepo) ListByProvider(providerID, fromDate, toDate string) ([]models.AvailabilitySlot, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       bson.M{"$gte": fromDate, "$lte": toDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}
