package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"projecthub/app/models"
	"projecthub/app/schemas"
)

// UserService manages users and their director and project access grants.
type UserService struct {
	db *mongo.Database
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{db: db}
}

func (s *UserService) collection() *mongo.Collection {
	return s.db.Collection(models.UserCollection)
}

func (s *UserService) directorAccesses() *mongo.Collection {
	return s.db.Collection(models.DirectorAccessCollection)
}

func (s *UserService) projectAccesses() *mongo.Collection {
	return s.db.Collection(models.ProjectAccessCollection)
}

func (s *UserService) Create(ctx context.Context, in schemas.UserCreate) (models.User, error) {
	user := models.User{
		FirstName:          in.FirstName,
		FamilyName:         in.FamilyName,
		Email:              in.Email,
		Type:               models.UserType(in.Type),
		RegistrationNumber: in.RegistrationNumber,
		Trigram:            in.Trigram,
		DirectorAccessList: []primitive.ObjectID{},
		ProjectAccessList:  []primitive.ObjectID{},
		CreatedAt:          time.Now().UTC(),
	}
	res, err := s.collection().InsertOne(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string, deleted bool) (models.User, error) {
	oid, err := ParseID("User", id)
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	err = s.collection().FindOne(ctx, bson.M{"_id": oid, "is_deleted": deleted}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, notFound("User", id)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// GetByIDs resolves a batch of ids; ids that do not match a live user are
// reported in missing rather than failing the call.
func (s *UserService) GetByIDs(ctx context.Context, ids []string, deleted bool) (users []models.User, missing []string, err error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := ParseID("User", id)
		if err != nil {
			return nil, nil, err
		}
		oids = append(oids, oid)
	}
	cur, err := s.collection().Find(ctx, bson.M{"_id": bson.M{"$in": oids}, "is_deleted": deleted})
	if err != nil {
		return nil, nil, fmt.Errorf("find users: %w", err)
	}
	users = []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, nil, fmt.Errorf("decode users: %w", err)
	}
	found := make(map[primitive.ObjectID]bool, len(users))
	for _, u := range users {
		found[u.ID] = true
	}
	for i, oid := range oids {
		if !found[oid] {
			missing = append(missing, ids[i])
		}
	}
	return users, missing, nil
}

// List returns one page of users plus the unpaged total. A non-empty name
// filters by case-insensitive substring on first or family name.
func (s *UserService) List(ctx context.Context, skip, limit int, name string, deleted bool) ([]models.User, int64, error) {
	filter := bson.M{"is_deleted": deleted}
	if name != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"first_name": pattern},
			bson.M{"family_name": pattern},
		}
	}
	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))
	cur, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}
	return users, total, nil
}

// Update applies the non-nil fields and reconciles the access grant lists:
// new grants are created, grants named in the remove lists are soft deleted.
func (s *UserService) Update(ctx context.Context, id string, in schemas.UserUpdate) (models.User, error) {
	user, err := s.GetByID(ctx, id, false)
	if err != nil {
		return models.User{}, err
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.FamilyName != nil {
		user.FamilyName = *in.FamilyName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Type != nil {
		user.Type = models.UserType(*in.Type)
	}
	if in.RegistrationNumber != nil {
		user.RegistrationNumber = *in.RegistrationNumber
	}
	if in.Trigram != nil {
		user.Trigram = *in.Trigram
	}

	for _, grant := range in.DirectorAccesses {
		accessID, err := s.grantDirectorAccess(ctx, user.ID, grant)
		if err != nil {
			return models.User{}, err
		}
		user.DirectorAccessList = append(user.DirectorAccessList, accessID)
	}
	for _, grant := range in.ProjectAccesses {
		accessID, err := s.grantProjectAccess(ctx, user.ID, grant)
		if err != nil {
			return models.User{}, err
		}
		user.ProjectAccessList = append(user.ProjectAccessList, accessID)
	}
	if len(in.RemoveDirectorAccesses) > 0 {
		kept, err := s.revokeAccesses(ctx, s.directorAccesses(), "Director access", user.DirectorAccessList, in.RemoveDirectorAccesses)
		if err != nil {
			return models.User{}, err
		}
		user.DirectorAccessList = kept
	}
	if len(in.RemoveProjectAccesses) > 0 {
		kept, err := s.revokeAccesses(ctx, s.projectAccesses(), "Project access", user.ProjectAccessList, in.RemoveProjectAccesses)
		if err != nil {
			return models.User{}, err
		}
		user.ProjectAccessList = kept
	}

	if err := replaceByID(ctx, s.collection(), user.ID, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Delete soft deletes a user together with their access grants.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.GetByID(ctx, id, false)
	if err != nil {
		return err
	}
	user.IsDeleted = true
	if err := replaceByID(ctx, s.collection(), user.ID, user); err != nil {
		return err
	}
	for _, coll := range []*mongo.Collection{s.directorAccesses(), s.projectAccesses()} {
		_, err := coll.UpdateMany(ctx,
			bson.M{"user_id": user.ID, "is_deleted": false},
			bson.M{"$set": bson.M{"is_deleted": true}})
		if err != nil {
			return fmt.Errorf("delete accesses of user: %w", err)
		}
	}
	return nil
}

func (s *UserService) grantDirectorAccess(ctx context.Context, userID primitive.ObjectID, in schemas.DirectorAccessCreate) (primitive.ObjectID, error) {
	centerID, err := ParseID("Service center", in.ServiceCenterID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	var center models.ServiceCenter
	err = s.db.Collection(models.ServiceCenterCollection).
		FindOne(ctx, bson.M{"_id": centerID, "is_deleted": false}).Decode(&center)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, notFound("Service center", in.ServiceCenterID)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("find service center: %w", err)
	}

	access := models.DirectorAccess{
		UserID:            userID,
		ServiceCenterID:   centerID,
		ServiceCenterName: center.CenterName,
		CreatedAt:         time.Now().UTC(),
	}
	res, err := s.directorAccesses().InsertOne(ctx, access)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert director access: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *UserService) grantProjectAccess(ctx context.Context, userID primitive.ObjectID, in schemas.ProjectAccessCreate) (primitive.ObjectID, error) {
	projectID, err := ParseID("Project", in.ProjectID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	var project models.Project
	err = s.db.Collection(models.ProjectCollection).
		FindOne(ctx, bson.M{"_id": projectID, "is_deleted": false}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, notFound("Project", in.ProjectID)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("find project: %w", err)
	}

	access := models.ProjectAccess{
		UserID:        userID,
		ProjectID:     projectID,
		ProjectName:   project.ProjectName,
		AccessLevel:   models.AccessLevel(in.AccessLevel),
		OccupancyRate: in.OccupancyRate,
		CreatedAt:     time.Now().UTC(),
	}
	if in.ServiceCenterID != "" {
		centerID, err := ParseID("Service center", in.ServiceCenterID)
		if err != nil {
			return primitive.NilObjectID, err
		}
		access.ServiceCenterID = centerID
		var center models.ServiceCenter
		err = s.db.Collection(models.ServiceCenterCollection).
			FindOne(ctx, bson.M{"_id": centerID, "is_deleted": false}).Decode(&center)
		if err == nil {
			access.ServiceCenterName = center.CenterName
		} else if err != mongo.ErrNoDocuments {
			return primitive.NilObjectID, fmt.Errorf("find service center: %w", err)
		}
	} else if project.CenterID != nil {
		access.ServiceCenterID = *project.CenterID
	}

	res, err := s.projectAccesses().InsertOne(ctx, access)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert project access: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// revokeAccesses soft deletes the listed grant ids and returns the user's
// list with those ids filtered out.
func (s *UserService) revokeAccesses(ctx context.Context, coll *mongo.Collection, kind string, current []primitive.ObjectID, remove []string) ([]primitive.ObjectID, error) {
	removeSet := make(map[primitive.ObjectID]bool, len(remove))
	for _, id := range remove {
		oid, err := ParseID(kind, id)
		if err != nil {
			return nil, err
		}
		removeSet[oid] = true
		_, err = coll.UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"is_deleted": true}})
		if err != nil {
			return nil, fmt.Errorf("revoke %s: %w", coll.Name(), err)
		}
	}
	kept := make([]primitive.ObjectID, 0, len(current))
	for _, id := range current {
		if !removeSet[id] {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

// DirectorAccessesByUser returns the live director grants of a user, filling
// in center names that were empty when the grant was stored.
func (s *UserService) DirectorAccessesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.DirectorAccess, error) {
	cur, err := s.directorAccesses().Find(ctx, bson.M{"user_id": userID, "is_deleted": false})
	if err != nil {
		return nil, fmt.Errorf("find director accesses: %w", err)
	}
	grants := []models.DirectorAccess{}
	if err := cur.All(ctx, &grants); err != nil {
		return nil, fmt.Errorf("decode director accesses: %w", err)
	}
	for i, grant := range grants {
		if grant.ServiceCenterName != "" {
			continue
		}
		var center models.ServiceCenter
		err := s.db.Collection(models.ServiceCenterCollection).
			FindOne(ctx, bson.M{"_id": grant.ServiceCenterID}).Decode(&center)
		if err == nil {
			grants[i].ServiceCenterName = center.CenterName
		}
	}
	return grants, nil
}

// ProjectAccessesByUser returns the live project grants of a user, filling in
// project names that were empty when the grant was stored.
func (s *UserService) ProjectAccessesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ProjectAccess, error) {
	return s.findProjectAccesses(ctx, bson.M{"user_id": userID, "is_deleted": false})
}

// ProjectAccessesByProject returns the live grants on one project, used to
// list the members of a project or sprint.
func (s *UserService) ProjectAccessesByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ProjectAccess, error) {
	return s.findProjectAccesses(ctx, bson.M{"project_id": projectID, "is_deleted": false})
}

func (s *UserService) findProjectAccesses(ctx context.Context, filter bson.M) ([]models.ProjectAccess, error) {
	cur, err := s.projectAccesses().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find project accesses: %w", err)
	}
	grants := []models.ProjectAccess{}
	if err := cur.All(ctx, &grants); err != nil {
		return nil, fmt.Errorf("decode project accesses: %w", err)
	}
	for i, grant := range grants {
		if grant.ProjectName != "" {
			continue
		}
		var project models.Project
		err := s.db.Collection(models.ProjectCollection).
			FindOne(ctx, bson.M{"_id": grant.ProjectID}).Decode(&project)
		if err == nil {
			grants[i].ProjectName = project.ProjectName
		}
	}
	return grants, nil
}
