package repository

import (
	"context"

	"health-services-backend/internal/domain/entity"
	domainRepo "health-services-backend/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type doctorCatalogRepository struct {
	collection *mongo.Collection
}

func NewDoctorCatalogRepository(collection *mongo.Collection) domainRepo.DoctorCatalogRepository {
	return &doctorCatalogRepository{collection: collection}
}

func (r *doctorCatalogRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	// Stable sl_no ordering so repeated catalog reads return identical lists.
	opts := options.Find().SetSort(bson.D{{Key: "sl_no", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []entity.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorCatalogRepository) FindRandom(ctx context.Context) (*entity.Doctor, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []entity.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, nil
	}
	return &doctors[0], nil
}
