package model

// maintenance request statuses
const (
	MaintenanceOpen       = "Open"
	MaintenanceInProgress = "In Progress"
	MaintenanceResolved   = "Resolved"
)

// MaintenanceRequest model. TenantUID is empty for landlord-created requests.
type MaintenanceRequest struct {
	ID          string   `bson:"_id" json:"id"`
	TenantUID   string   `bson:"tenant_uid,omitempty" json:"tenantUid,omitempty"`
	LandlordUID string   `bson:"landlord_uid" json:"landlordUid"`
	PropertyID  string   `bson:"property_id" json:"propertyId"`
	Title       string   `bson:"title" json:"title"`
	Status      string   `bson:"status" json:"status"`
	Expense     *float64 `bson:"expense,omitempty" json:"expense,omitempty"`
}
