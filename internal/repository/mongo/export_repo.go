package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"runplan/internal/domain"
	"runplan/internal/repository"
)

const exportCollectionName = "exports"

// mongoExportRepository implements repository.ExportRepository.
type mongoExportRepository struct {
	collection *mongo.Collection
}

// NewMongoExportRepository creates a new export-metadata repository backed by MongoDB.
func NewMongoExportRepository(db *mongo.Database) repository.ExportRepository {
	return &mongoExportRepository{
		collection: db.Collection(exportCollectionName),
	}
}

// Create inserts export metadata. The rendered document itself lives in S3.
func (r *mongoExportRepository) Create(ctx context.Context, export *domain.PlanExport) (primitive.ObjectID, error) {
	if export.PlanID == primitive.NilObjectID ||
		export.OwnerID == primitive.NilObjectID ||
		export.S3ObjectKey == "" {
		return primitive.NilObjectID, errors.New("export requires planId, ownerId, and s3ObjectKey")
	}

	export.ID = primitive.NewObjectID()
	export.ExportedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, export)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByPlanID retrieves the export metadata linked to a plan. One export
// per plan; re-exporting replaces the previous document.
func (r *mongoExportRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) (*domain.PlanExport, error) {
	var export domain.PlanExport
	filter := bson.M{"planId": planID}

	err := r.collection.FindOne(ctx, filter).Decode(&export)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// A plan without an export is a normal state.
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &export, nil
}

// DeleteByPlanID removes the export metadata for a plan, if any.
func (r *mongoExportRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	filter := bson.M{"planId": planID}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}

// EnsureExportIndexes creates necessary indexes for the exports collection.
func EnsureExportIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index().SetUnique(true), // one export per plan
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
