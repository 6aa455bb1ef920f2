package models

import "time"

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Type        Role            `json:"type" validate:"required,oneof=volunteer ong"`
	Name        string          `json:"name" validate:"required,notblank,min=2,max=120"`
	Email       string          `json:"email" validate:"required,email,max=254"`
	Password    string          `json:"password" validate:"required,min=6,max=72"`
	Phone       string          `json:"phone" validate:"omitempty,max=30"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	CNPJ        string          `json:"cnpj" validate:"omitempty,max=20"`
	Areas       []string        `json:"areas" validate:"omitempty,max=10,dive,required,max=60"`
	Skills      []string        `json:"skills" validate:"omitempty,max=30,dive,required,max=60"`
	Interests   []string        `json:"interests" validate:"omitempty,max=30,dive,required,max=60"`
	Location    LocationRequest `json:"location"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Type     Role   `json:"type" validate:"required,oneof=volunteer ong"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LocationRequest carries an address in create and update bodies
type LocationRequest struct {
	Address string `json:"address" validate:"omitempty,max=200"`
	City    string `json:"city" validate:"omitempty,max=80"`
	State   string `json:"state" validate:"omitempty,max=40"`
}

// ToLocation converts the request to the stored location
func (l LocationRequest) ToLocation() Location {
	return Location{Address: l.Address, City: l.City, State: l.State}
}

// CreateActionRequest is the body of POST /api/actions
type CreateActionRequest struct {
	Title         string          `json:"title" validate:"required,notblank,min=3,max=150"`
	Description   string          `json:"description" validate:"required,notblank,max=5000"`
	Area          string          `json:"area" validate:"required,max=60"`
	Tags          []string        `json:"tags" validate:"omitempty,max=20,dive,required,max=40"`
	Requirements  []string        `json:"requirements" validate:"omitempty,max=20,dive,required,max=200"`
	Location      LocationRequest `json:"location" validate:"required"`
	StartDate     time.Time       `json:"startDate" validate:"required"`
	EndDate       time.Time       `json:"endDate" validate:"required,gtefield=StartDate"`
	MaxVolunteers int             `json:"maxVolunteers" validate:"required,min=1,max=10000"`
	Status        ActionStatus    `json:"status" validate:"omitempty,oneof=draft active"`
}

// UpdateActionRequest is the body of PUT /api/actions/{id}; absent fields are left untouched
type UpdateActionRequest struct {
	Title         *string          `json:"title" validate:"omitempty,notblank,min=3,max=150"`
	Description   *string          `json:"description" validate:"omitempty,notblank,max=5000"`
	Area          *string          `json:"area" validate:"omitempty,max=60"`
	Tags          []string         `json:"tags" validate:"omitempty,max=20,dive,required,max=40"`
	Requirements  []string         `json:"requirements" validate:"omitempty,max=20,dive,required,max=200"`
	Location      *LocationRequest `json:"location"`
	StartDate     *time.Time       `json:"startDate"`
	EndDate       *time.Time       `json:"endDate"`
	MaxVolunteers *int             `json:"maxVolunteers" validate:"omitempty,min=1,max=10000"`
}

// ActionStatusRequest is the body of PUT /api/actions/{id}/status
type ActionStatusRequest struct {
	Status ActionStatus `json:"status" validate:"required,oneof=active in_progress completed cancelled"`
}

// ApplyRequest is the body of POST /api/actions/{id}/apply
type ApplyRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=1000"`
}

// CreateApplicationRequest is the body of POST /api/applications
type CreateApplicationRequest struct {
	Action       string   `json:"action" validate:"required,objectid"`
	Message      string   `json:"message" validate:"omitempty,max=1000"`
	Skills       []string `json:"skills" validate:"omitempty,max=20,dive,required,max=60"`
	Availability string   `json:"availability" validate:"omitempty,max=200"`
}

// ApproveRequest is the body of PUT /api/applications/{id}/approve
type ApproveRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=1000"`
}

// RejectRequest is the body of PUT /api/applications/{id}/reject
type RejectRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"required,notblank,max=500"`
}

// WithdrawRequest is the body of PUT /api/applications/{id}/withdraw
type WithdrawRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// CompleteRequest is the body of PUT /api/applications/{id}/complete
type CompleteRequest struct {
	Feedback string `json:"feedback" validate:"omitempty,max=1000"`
}

// ApplicationStatusRequest is the body of PUT /api/actions/{id}/applications/{applicationId}
type ApplicationStatusRequest struct {
	Status          ApplicationStatus `json:"status" validate:"required,oneof=approved rejected withdrawn"`
	Notes           string            `json:"notes" validate:"omitempty,max=1000"`
	RejectionReason string            `json:"rejectionReason" validate:"required_if=Status rejected,max=500"`
}

// UpdateOngRequest is the body of PUT /api/ongs/me
type UpdateOngRequest struct {
	Name        *string          `json:"name" validate:"omitempty,notblank,min=2,max=120"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Areas       []string         `json:"areas" validate:"omitempty,max=10,dive,required,max=60"`
	Location    *LocationRequest `json:"location"`
	Phone       *string          `json:"phone" validate:"omitempty,max=30"`
	Website     *string          `json:"website" validate:"omitempty,url,max=200"`
	Logo        *string          `json:"logo" validate:"omitempty,url,max=500"`
}

// UpdateVolunteerRequest is the body of PUT /api/volunteers/me
type UpdateVolunteerRequest struct {
	Name         *string          `json:"name" validate:"omitempty,notblank,min=2,max=120"`
	Phone        *string          `json:"phone" validate:"omitempty,max=30"`
	Bio          *string          `json:"bio" validate:"omitempty,max=2000"`
	Skills       []string         `json:"skills" validate:"omitempty,max=30,dive,required,max=60"`
	Interests    []string         `json:"interests" validate:"omitempty,max=30,dive,required,max=60"`
	Availability *string          `json:"availability" validate:"omitempty,max=200"`
	Location     *LocationRequest `json:"location"`
}
