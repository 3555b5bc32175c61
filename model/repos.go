package model

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound - the referenced document does not exist
var ErrNotFound = errors.New("document not found")

// UserRepository - point reads on users
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// PropertyRepository - point reads on properties
type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*Property, error)
}

// LeaseRepository - lease reads and e-signature updates
type LeaseRepository interface {
	GetByID(ctx context.Context, id string) (*Lease, error)
	FindBySignatureRequestID(ctx context.Context, requestID string) (*Lease, error)
	SetSignatureIDs(ctx context.Context, leaseID, requestID, signatureID string) error
	SetSignedAgreement(ctx context.Context, leaseID, key, url string) error
}

// RentPaymentRepository - rent payment queries
type RentPaymentRepository interface {
	ListUnpaid(ctx context.Context, batchSize int32) ([]*RentPayment, error)
}

// RentReminderRepository - atomic reminder batches. CreateBatch commits all
// reminders or none and returns how many documents were newly written.
type RentReminderRepository interface {
	CreateBatch(ctx context.Context, reminders []*RentReminder) (int, error)
}

// Repos container to hold handles for stores and providers
type Repos struct {
	Users         UserRepository
	Properties    PropertyRepository
	Leases        LeaseRepository
	RentPayments  RentPaymentRepository
	RentReminders RentReminderRepository
	Cache         ChangeCache
	Storage       FileStorage
	Push          PushSender
	ESign         SignatureProvider
}
