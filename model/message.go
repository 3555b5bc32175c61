package model

// announcement scopes
const (
	ScopeAll      = "all"
	ScopeProperty = "property"
	ScopeTenant   = "tenant"
)

// Message - a chat message or an announcement copy delivered to one user
type Message struct {
	ID             string `bson:"_id" json:"id"`
	From           string `bson:"from" json:"from"`
	To             string `bson:"to" json:"to"`
	Text           string `bson:"text" json:"text"`
	Read           bool   `bson:"read" json:"read"`
	AnnouncementID string `bson:"announcement_id,omitempty" json:"announcementId,omitempty"`
}

// Announcement - landlord broadcast; delivered as Messages
type Announcement struct {
	ID          string `bson:"_id" json:"id"`
	LandlordUID string `bson:"landlord_uid" json:"landlordUid"`
	Scope       string `bson:"scope" json:"scope"`
	PropertyID  string `bson:"property_id,omitempty" json:"propertyId,omitempty"`
	TenantUID   string `bson:"tenant_uid,omitempty" json:"tenantUid,omitempty"`
	Message     string `bson:"message" json:"message"`
}
