package schemas

import (
	"net/mail"

	"projecthub/app/models"
)

// UserCreate is the payload for creating a user.
type UserCreate struct {
	FirstName          string `json:"firstName"`
	FamilyName         string `json:"familyName"`
	Email              string `json:"email"`
	Type               string `json:"type"`
	RegistrationNumber string `json:"registrationNumber"`
	Trigram            string `json:"trigram"`
}

// Validate applies defaults and checks the payload.
func (c *UserCreate) Validate() error {
	if c.FirstName == "" || len(c.FirstName) > 100 {
		return validationErrorf("firstName must be 1 to 100 characters")
	}
	if c.FamilyName == "" || len(c.FamilyName) > 100 {
		return validationErrorf("familyName must be 1 to 100 characters")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return validationErrorf("invalid email address %q", c.Email)
	}
	if len(c.Trigram) != 3 {
		return validationErrorf("trigram must be exactly 3 characters")
	}
	if len(c.RegistrationNumber) > 50 {
		return validationErrorf("registrationNumber must be at most 50 characters")
	}
	if c.Type == "" {
		c.Type = string(models.UserTypeNormal)
	}
	if !models.UserType(c.Type).Valid() {
		return validationErrorf("invalid user type %q", c.Type)
	}
	return nil
}

// DirectorAccessCreate grants director visibility over a service center.
type DirectorAccessCreate struct {
	ServiceCenterID string `json:"serviceCenterId"`
}

// ProjectAccessCreate grants a role on a project.
type ProjectAccessCreate struct {
	ServiceCenterID string  `json:"serviceCenterId"`
	ProjectID       string  `json:"projectId"`
	AccessLevel     string  `json:"accessLevel"`
	OccupancyRate   float64 `json:"occupancyRate"`
}

// Validate checks the grant.
func (c *ProjectAccessCreate) Validate() error {
	if !models.AccessLevel(c.AccessLevel).Valid() {
		return validationErrorf("invalid access level %q", c.AccessLevel)
	}
	if c.OccupancyRate < 0 || c.OccupancyRate > 100 {
		return validationErrorf("occupancyRate must be between 0 and 100")
	}
	return nil
}

// UserUpdate is the payload for updating a user and managing their access
// grants. Nil fields are left untouched.
type UserUpdate struct {
	FirstName              *string                `json:"firstName"`
	FamilyName             *string                `json:"familyName"`
	Email                  *string                `json:"email"`
	Type                   *string                `json:"type"`
	RegistrationNumber     *string                `json:"registrationNumber"`
	Trigram                *string                `json:"trigram"`
	DirectorAccesses       []DirectorAccessCreate `json:"directorAccesses"`
	RemoveDirectorAccesses []string               `json:"removeDirectorAccesses"`
	ProjectAccesses        []ProjectAccessCreate  `json:"projectAccesses"`
	RemoveProjectAccesses  []string               `json:"removeProjectAccesses"`
}

// Validate checks the payload.
func (u *UserUpdate) Validate() error {
	if u.FirstName != nil && (*u.FirstName == "" || len(*u.FirstName) > 100) {
		return validationErrorf("firstName must be 1 to 100 characters")
	}
	if u.FamilyName != nil && (*u.FamilyName == "" || len(*u.FamilyName) > 100) {
		return validationErrorf("familyName must be 1 to 100 characters")
	}
	if u.Email != nil {
		if _, err := mail.ParseAddress(*u.Email); err != nil {
			return validationErrorf("invalid email address %q", *u.Email)
		}
	}
	if u.Trigram != nil && len(*u.Trigram) != 3 {
		return validationErrorf("trigram must be exactly 3 characters")
	}
	if u.Type != nil && !models.UserType(*u.Type).Valid() {
		return validationErrorf("invalid user type %q", *u.Type)
	}
	for i := range u.ProjectAccesses {
		if err := u.ProjectAccesses[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DirectorAccessResponse is the serialized form of a director access grant.
type DirectorAccessResponse struct {
	ID                string `json:"id"`
	ServiceCenterID   string `json:"serviceCenterId"`
	ServiceCenterName string `json:"serviceCenterName"`
}

// NewDirectorAccessResponse maps a grant model to its response form.
func NewDirectorAccessResponse(da models.DirectorAccess) DirectorAccessResponse {
	return DirectorAccessResponse{
		ID:                da.ID.Hex(),
		ServiceCenterID:   da.ServiceCenterID.Hex(),
		ServiceCenterName: da.ServiceCenterName,
	}
}

// ProjectAccessResponse is the serialized form of a project access grant.
type ProjectAccessResponse struct {
	ID                string  `json:"id"`
	ServiceCenterID   string  `json:"serviceCenterId"`
	ServiceCenterName string  `json:"serviceCenterName"`
	ProjectID         string  `json:"projectId"`
	ProjectName       string  `json:"projectName"`
	AccessLevel       string  `json:"accessLevel"`
	OccupancyRate     float64 `json:"occupancyRate"`
}

// NewProjectAccessResponse maps a grant model to its response form.
func NewProjectAccessResponse(pa models.ProjectAccess) ProjectAccessResponse {
	return ProjectAccessResponse{
		ID:                pa.ID.Hex(),
		ServiceCenterID:   pa.ServiceCenterID.Hex(),
		ServiceCenterName: pa.ServiceCenterName,
		ProjectID:         pa.ProjectID.Hex(),
		ProjectName:       pa.ProjectName,
		AccessLevel:       string(pa.AccessLevel),
		OccupancyRate:     pa.OccupancyRate,
	}
}

// UserResponse is the full serialized form of a user.
type UserResponse struct {
	ID                 string                   `json:"id"`
	FirstName          string                   `json:"firstName"`
	FamilyName         string                   `json:"familyName"`
	Email              string                   `json:"email"`
	Type               string                   `json:"type"`
	RegistrationNumber string                   `json:"registrationNumber"`
	Trigram            string                   `json:"trigram"`
	DirectorAccessList []DirectorAccessResponse `json:"directorAccessList"`
	ProjectAccessList  []ProjectAccessResponse  `json:"projectAccessList"`
}

// UserInfo is the minimal user form embedded in sprint and project responses.
type UserInfo struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	FamilyName string `json:"familyName"`
}

// NewUserInfo maps a user model to its minimal form.
func NewUserInfo(user models.User) UserInfo {
	return UserInfo{
		ID:         user.ID.Hex(),
		FirstName:  user.FirstName,
		FamilyName: user.FamilyName,
	}
}

// UserListResponse is the paginated user listing.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	PageInfo
}
