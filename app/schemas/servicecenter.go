package schemas

import (
	"net/mail"

	"projecthub/app/models"
)

// ServiceCenterCreate is the payload for creating a service center.
type ServiceCenterCreate struct {
	CenterName   string `json:"centerName"`
	Location     string `json:"location"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Status       string `json:"status"`
}

// Validate applies defaults and checks the payload.
func (c *ServiceCenterCreate) Validate() error {
	if c.CenterName == "" {
		return validationErrorf("centerName is required")
	}
	if c.ContactEmail != "" {
		if _, err := mail.ParseAddress(c.ContactEmail); err != nil {
			return validationErrorf("invalid contact email %q", c.ContactEmail)
		}
	}
	if c.Status == "" {
		c.Status = string(models.ServiceCenterOperational)
	}
	if !models.ServiceCenterStatus(c.Status).Valid() {
		return validationErrorf("invalid service center status %q", c.Status)
	}
	return nil
}

// ServiceCenterUpdate is the payload for updating a service center. Nil
// fields are left untouched.
type ServiceCenterUpdate struct {
	ID           string  `json:"id"`
	CenterName   *string `json:"centerName"`
	Location     *string `json:"location"`
	ContactEmail *string `json:"contactEmail"`
	ContactPhone *string `json:"contactPhone"`
	Status       *string `json:"status"`
}

// Validate checks the payload.
func (u *ServiceCenterUpdate) Validate() error {
	if u.ID == "" {
		return validationErrorf("id is required")
	}
	if u.CenterName != nil && *u.CenterName == "" {
		return validationErrorf("centerName must not be empty")
	}
	if u.ContactEmail != nil && *u.ContactEmail != "" {
		if _, err := mail.ParseAddress(*u.ContactEmail); err != nil {
			return validationErrorf("invalid contact email %q", *u.ContactEmail)
		}
	}
	if u.Status != nil && !models.ServiceCenterStatus(*u.Status).Valid() {
		return validationErrorf("invalid service center status %q", *u.Status)
	}
	return nil
}

// ServiceCenterResponse is the full serialized form of a service center.
type ServiceCenterResponse struct {
	ID           string                 `json:"id"`
	CenterName   string                 `json:"centerName"`
	Location     string                 `json:"location"`
	ContactEmail string                 `json:"contactEmail,omitempty"`
	ContactPhone string                 `json:"contactPhone"`
	Status       string                 `json:"status"`
	Projects     []ProjectLightResponse `json:"projects"`
	Users        []UserInfo             `json:"users"`
}

// ServiceCenterLightResponse is the compact id-and-name form.
type ServiceCenterLightResponse struct {
	ID         string `json:"id"`
	CenterName string `json:"centerName"`
}

// ServiceCenterListLightResponse is the paginated light listing.
type ServiceCenterListLightResponse struct {
	ServiceCenters []ServiceCenterLightResponse `json:"serviceCenters"`
	PageInfo
}
