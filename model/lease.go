package model

// Lease model
type Lease struct {
	ID                   string  `bson:"_id" json:"id"`
	TenantUID            string  `bson:"tenant_uid" json:"tenantUid"`
	LandlordUID          string  `bson:"landlord_uid,omitempty" json:"landlordUid,omitempty"`
	PropertyID           string  `bson:"property_id" json:"propertyId"`
	Rent                 float64 `bson:"rent" json:"rent"`
	StartDate            string  `bson:"start_date" json:"startDate"`
	EndDate              string  `bson:"end_date" json:"endDate"`
	Deposit              float64 `bson:"deposit" json:"deposit"`
	AgreementURL         string  `bson:"agreement_url,omitempty" json:"agreementUrl,omitempty"`
	HelloSignRequestID   string  `bson:"hellosign_request_id,omitempty" json:"hellosignRequestId,omitempty"`
	HelloSignSignatureID string  `bson:"hellosign_signature_id,omitempty" json:"hellosignSignatureId,omitempty"`
	SignedAgreementKey   string  `bson:"signed_agreement_key,omitempty" json:"-"`
	SignedAgreementURL   string  `bson:"signed_agreement_url,omitempty" json:"signedAgreementUrl,omitempty"`
}

