package model

import "time"

// RentPayment - one rent installment for a tenant
type RentPayment struct {
	ID          string     `bson:"_id" json:"id"`
	TenantUID   string     `bson:"tenant_uid" json:"tenantUid"`
	LandlordUID string     `bson:"landlord_uid" json:"landlordUid"`
	PropertyID  string     `bson:"property_id" json:"propertyId"`
	Amount      float64    `bson:"amount" json:"amount"`
	DueDate     string     `bson:"due_date" json:"dueDate"`
	Paid        bool       `bson:"paid" json:"paid"`
	PaidAt      *time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
}

// RentReminder - written once by the monthly sweep, never updated
type RentReminder struct {
	ID          string    `bson:"_id" json:"id"`
	PaymentID   string    `bson:"payment_id" json:"paymentId"`
	TenantUID   string    `bson:"tenant_uid" json:"tenantUid"`
	LandlordUID string    `bson:"landlord_uid" json:"landlordUid"`
	PropertyID  string    `bson:"property_id" json:"propertyId"`
	Amount      float64   `bson:"amount" json:"amount"`
	DueDate     string    `bson:"due_date" json:"dueDate"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// SweepResult - outcome of one reminder sweep
type SweepResult struct {
	Scanned int `json:"scanned"`
	Matched int `json:"matched"`
	Created int `json:"created"`
}
