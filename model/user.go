package model

// roles
const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

// user statuses
const (
	StatusActive   = "Active"
	StatusPending  = "Pending"
	StatusInactive = "Inactive"
)

// User - a landlord or tenant account
type User struct {
	ID        string `bson:"_id" json:"id"`
	Role      string `bson:"role" json:"role"`
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Status    string `bson:"status" json:"status"`
	PushToken string `bson:"push_token,omitempty" json:"pushToken,omitempty"`
}

