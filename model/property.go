package model

// Property - a rental unit owned by a landlord
type Property struct {
	ID          string   `bson:"_id" json:"id"`
	LandlordUID string   `bson:"landlord_uid" json:"landlordUid"`
	Address     string   `bson:"address" json:"address"`
	City        string   `bson:"city" json:"city"`
	State       string   `bson:"state" json:"state"`
	Zip         string   `bson:"zip" json:"zip"`
	TenantUIDs  []string `bson:"tenant_uids" json:"tenantUids"`
}
