package providerRepo

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

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	coll := database.Collection("providers")
	repo := &MongoProviderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One provider profile per owning user.
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new provider document.
func (r *MongoProviderRepo) Create(provider *models.Provider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, provider)
	if mongo.IsDuplicateKeyError(err) {
		return errs.Validation("user %s already owns a provider profile", provider.UserID)
	}
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// Update replaces an existing provider document.
func (r *MongoProviderRepo) Update(provider *models.Provider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	provider.UpdatedAt = time.Now()
	filter := bson.M{"id": provider.ID}
	update := bson.M{"$set": provider}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", provider.ID, err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFound("provider", provider.ID)
	}
	return nil
}

// GetByID retrieves a provider by its unique ID.
func (r *MongoProviderRepo) GetByID(id string) (*models.Provider, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByUserID retrieves the provider profile owned by the given user.
func (r *MongoProviderRepo) GetByUserID(userID string) (*models.Provider, error) {
	return r.findOne(bson.M{"userId": userID})
}

// List returns all provider documents.
func (r *MongoProviderRepo) List() ([]models.Provider, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) findOne(filter bson.M) (*models.Provider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var provider models.Provider
	err := r.coll.FindOne(ctx, filter).Decode(&provider)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	return &provider, nil
}
