package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"projecthub/app/models"
	"projecthub/app/schemas"
)

// ServiceCenterService manages the top level of the delivery hierarchy.
type ServiceCenterService struct {
	db *mongo.Database
}

func NewServiceCenterService(db *mongo.Database) *ServiceCenterService {
	return &ServiceCenterService{db: db}
}

func (s *ServiceCenterService) collection() *mongo.Collection {
	return s.db.Collection(models.ServiceCenterCollection)
}

func (s *ServiceCenterService) Create(ctx context.Context, in schemas.ServiceCenterCreate) (models.ServiceCenter, error) {
	center := models.ServiceCenter{
		CenterName:            in.CenterName,
		Location:              in.Location,
		Status:                models.ServiceCenterStatus(in.Status),
		ContactEmail:          in.ContactEmail,
		ContactPhone:          in.ContactPhone,
		Projects:              []primitive.ObjectID{},
		Users:                 []primitive.ObjectID{},
		TransversalActivities: []map[string]string{},
		PossibleTaskStatuses:  map[string]bool{},
		PossibleTaskTypes:     map[string]bool{},
		CreatedAt:             time.Now().UTC(),
	}
	res, err := s.collection().InsertOne(ctx, center)
	if err != nil {
		return models.ServiceCenter{}, fmt.Errorf("insert service center: %w", err)
	}
	center.ID = res.InsertedID.(primitive.ObjectID)
	return center, nil
}

func (s *ServiceCenterService) GetByID(ctx context.Context, id string, deleted bool) (models.ServiceCenter, error) {
	oid, err := ParseID("Service center", id)
	if err != nil {
		return models.ServiceCenter{}, err
	}
	var center models.ServiceCenter
	err = s.collection().FindOne(ctx, bson.M{"_id": oid, "is_deleted": deleted}).Decode(&center)
	if err == mongo.ErrNoDocuments {
		return models.ServiceCenter{}, notFound("Service center", id)
	}
	if err != nil {
		return models.ServiceCenter{}, fmt.Errorf("find service center: %w", err)
	}
	return center, nil
}

// List returns one page of service centers plus the unpaged total.
func (s *ServiceCenterService) List(ctx context.Context, skip, limit int, status string, deleted bool) ([]models.ServiceCenter, int64, error) {
	filter := bson.M{"is_deleted": deleted}
	if status != "" {
		filter["status"] = status
	}
	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count service centers: %w", err)
	}
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))
	cur, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list service centers: %w", err)
	}
	centers := []models.ServiceCenter{}
	if err := cur.All(ctx, &centers); err != nil {
		return nil, 0, fmt.Errorf("decode service centers: %w", err)
	}
	return centers, total, nil
}

func (s *ServiceCenterService) Update(ctx context.Context, in schemas.ServiceCenterUpdate) (models.ServiceCenter, error) {
	center, err := s.GetByID(ctx, in.ID, false)
	if err != nil {
		return models.ServiceCenter{}, err
	}
	if in.CenterName != nil {
		center.CenterName = *in.CenterName
	}
	if in.Location != nil {
		center.Location = *in.Location
	}
	if in.Status != nil {
		center.Status = models.ServiceCenterStatus(*in.Status)
	}
	if in.ContactEmail != nil {
		center.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		center.ContactPhone = *in.ContactPhone
	}
	if err := replaceByID(ctx, s.collection(), center.ID, center); err != nil {
		return models.ServiceCenter{}, err
	}
	return center, nil
}

// AttachProject records a project id on its parent center.
func (s *ServiceCenterService) AttachProject(ctx context.Context, centerID, projectID primitive.ObjectID) error {
	_, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": centerID},
		bson.M{"$addToSet": bson.M{"projects": projectID}})
	if err != nil {
		return fmt.Errorf("attach project to center: %w", err)
	}
	return nil
}
