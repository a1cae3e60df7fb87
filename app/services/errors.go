// Package services implements the persistence operations behind the HTTP
// controllers. Every service works on MongoDB collections through the
// official driver; documents are soft deleted by flipping is_deleted.
package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors mapped to HTTP statuses by the controllers. Their wrapped
// forms read as the frontend-facing messages: "Invalid id (x) for object
// Task" and "Task x not found".
var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("Invalid id")
)

// ParseID converts a hex string to an ObjectID, reporting the object kind on
// failure.
func ParseID(kind, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w (%s) for object %s", ErrInvalidID, id, kind)
	}
	return oid, nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s %w", kind, id, ErrNotFound)
}

// replaceByID writes a full document back, the save primitive used after
// in-memory mutation.
func replaceByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, doc any) error {
	if _, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc); err != nil {
		return fmt.Errorf("save %s: %w", coll.Name(), err)
	}
	return nil
}
