package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"projecthub/app/models"
)

// Seed inserts a default service center when the database is empty, so a
// fresh deployment has somewhere to create projects. It is a no-op on a
// populated database.
func Seed(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	centers := db.Collection(models.ServiceCenterCollection)
	count, err := centers.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count service centers: %w", err)
	}
	if count > 0 {
		return nil
	}

	statuses := map[string]bool{}
	for _, st := range models.TaskStatuses {
		statuses[string(st.Key)] = true
	}
	types := map[string]bool{}
	for _, tt := range models.TaskTypes {
		types[string(tt.Key)] = true
	}

	center := models.ServiceCenter{
		CenterName:            "Main service center",
		Location:              "HQ",
		Status:                models.ServiceCenterOperational,
		Projects:              []primitive.ObjectID{},
		Users:                 []primitive.ObjectID{},
		TransversalActivities: []map[string]string{},
		PossibleTaskStatuses:  statuses,
		PossibleTaskTypes:     types,
		CreatedAt:             time.Now().UTC(),
	}
	res, err := centers.InsertOne(ctx, center)
	if err != nil {
		return fmt.Errorf("seed service center: %w", err)
	}
	logger.Info("seeded default service center", "id", res.InsertedID.(primitive.ObjectID).Hex())
	return nil
}
