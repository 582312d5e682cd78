package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role enumerates account roles. The zero value is not admin, so an
// account stored without a role is treated as a patient.
type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents an account, keyed by email. Profiles are created
// and updated via upsert on login.
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Education string             `json:"education,omitempty" bson:"education,omitempty"`
	District  string             `json:"district,omitempty" bson:"district,omitempty"`
	Role      Role               `json:"role,omitempty" bson:"role,omitempty"`
}

// UpsertUserRequest carries the profile fields stored on login.
type UpsertUserRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Education string `json:"education"`
	District  string `json:"district"`
}

// UpsertUserResponse pairs the stored profile with a fresh session
// credential.
type UpsertUserResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// AdminCheckResponse reports whether an account has the admin role.
type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}
