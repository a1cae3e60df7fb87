package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collections holding users and their access grants.
const (
	UserCollection           = "user"
	DirectorAccessCollection = "director_access"
	ProjectAccessCollection  = "project_access"
)

// UserType classifies an account.
type UserType string

const (
	UserTypeNormal  UserType = "NORMAL"
	UserTypeSupport UserType = "SUPPORT"
	UserTypeAdmin   UserType = "ADMIN"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	return t == UserTypeNormal || t == UserTypeSupport || t == UserTypeAdmin
}

// AccessLevel is the role a user holds on one project.
type AccessLevel string

const (
	AccessProjectManager AccessLevel = "PROJECT_MANAGER"
	AccessTeamLeader     AccessLevel = "TEAM_LEADER"
	AccessTeamMember     AccessLevel = "TEAM_MEMBER"
	AccessGuest          AccessLevel = "GUEST"
)

// Valid reports whether l is a known access level.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessProjectManager, AccessTeamLeader, AccessTeamMember, AccessGuest:
		return true
	}
	return false
}

// User is a person known to the system, identified publicly by a three-letter
// trigram.
type User struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FirstName          string               `bson:"first_name" json:"firstName"`
	FamilyName         string               `bson:"family_name" json:"familyName"`
	Email              string               `bson:"email" json:"email"`
	Type               UserType             `bson:"type" json:"type"`
	RegistrationNumber string               `bson:"registration_number" json:"registrationNumber"`
	Trigram            string               `bson:"trigram" json:"trigram"`
	DirectorAccessList []primitive.ObjectID `bson:"director_access_list" json:"directorAccessList"`
	ProjectAccessList  []primitive.ObjectID `bson:"project_access_list" json:"projectAccessList"`
	CreatedAt          time.Time            `bson:"created_at" json:"createdAt"`
	IsDeleted          bool                 `bson:"is_deleted" json:"isDeleted"`
}

// DirectorAccess grants a user director visibility over a service center.
// The center name is denormalized and repopulated on read when empty.
type DirectorAccess struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user_id" json:"userId"`
	ServiceCenterID   primitive.ObjectID `bson:"service_center_id" json:"serviceCenterId"`
	ServiceCenterName string             `bson:"service_center_name" json:"serviceCenterName"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	IsDeleted         bool               `bson:"is_deleted" json:"isDeleted"`
}

// ProjectAccess grants a user a role on one project, with the share of their
// time spent on it.
type ProjectAccess struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user_id" json:"userId"`
	ServiceCenterID   primitive.ObjectID `bson:"service_center_id" json:"serviceCenterId"`
	ServiceCenterName string             `bson:"service_center_name" json:"serviceCenterName"`
	ProjectID         primitive.ObjectID `bson:"project_id" json:"projectId"`
	ProjectName       string             `bson:"project_name" json:"projectName"`
	AccessLevel       AccessLevel        `bson:"access_level" json:"accessLevel"`
	OccupancyRate     float64            `bson:"occupancy_rate" json:"occupancyRate"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	IsDeleted         bool               `bson:"is_deleted" json:"isDeleted"`
}
