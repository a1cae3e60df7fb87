package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceCenterCollection is the MongoDB collection holding service centers.
const ServiceCenterCollection = "service_center"

// ServiceCenterStatus is the operational status of a service center.
type ServiceCenterStatus string

const (
	ServiceCenterOperational ServiceCenterStatus = "Operational"
	ServiceCenterClosed      ServiceCenterStatus = "Closed"
)

// Valid reports whether s is a known service center status.
func (s ServiceCenterStatus) Valid() bool {
	return s == ServiceCenterOperational || s == ServiceCenterClosed
}

// ServiceCenter is the top-level grouping: projects and users belong to a
// center, and its defaults seed new projects.
type ServiceCenter struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CenterName            string               `bson:"centerName" json:"centerName"`
	Location              string               `bson:"location" json:"location"`
	ContactEmail          string               `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone          string               `bson:"contactPhone" json:"contactPhone"`
	Status                ServiceCenterStatus  `bson:"status" json:"status"`
	Projects              []primitive.ObjectID `bson:"projects" json:"projects"`
	Users                 []primitive.ObjectID `bson:"users" json:"users"`
	TransversalActivities []map[string]string  `bson:"transversal_activities" json:"transversalActivities"`
	PossibleTaskStatuses  map[string]bool      `bson:"possible_task_statuses" json:"possibleTaskStatuses"`
	PossibleTaskTypes     map[string]bool      `bson:"possible_task_types" json:"possibleTaskTypes"`
	CreatedAt             time.Time            `bson:"created_at" json:"createdAt"`
	IsDeleted             bool                 `bson:"is_deleted" json:"isDeleted"`
	IsCascadeDeleted      bool                 `bson:"is_cascade_deleted" json:"isCascadeDeleted"`
}
