package mongodatabase

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/govindrajkumar/easy-lease-sub000/consts"
	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// LeaseRepo leases collection
type LeaseRepo struct {
	Collection *mongo.Collection
}

// NewLeaseRepo create leases repository
func NewLeaseRepo(db *mongo.Database) model.LeaseRepository {
	repo := &LeaseRepo{Collection: db.Collection(consts.Leases)}
	if err := repo.RegisterIndexes(context.TODO()); err != nil {
		logrus.WithError(err).Warn("unable to register lease indexes")
	}
	return repo
}

// RegisterIndexes indexes the signature request id used by webhook lookups
func (r *LeaseRepo) RegisterIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hellosign_request_id", Value: 1}},
		Options: options.Index().SetSparse(true),
	})
	return err
}

func (r *LeaseRepo) GetByID(ctx context.Context, id string) (*model.Lease, error) {
	lease := &model.Lease{}
	if err := findByID(ctx, r.Collection, id, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

func (r *LeaseRepo) FindBySignatureRequestID(ctx context.Context, requestID string) (*model.Lease, error) {
	lease := &model.Lease{}
	err := r.Collection.FindOne(ctx, bson.M{"hellosign_request_id": requestID}).Decode(lease)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to find lease by signature request")
	}
	return lease, nil
}

func (r *LeaseRepo) SetSignatureIDs(ctx context.Context, leaseID, requestID, signatureID string) error {
	return setFields(ctx, r.Collection, leaseID, bson.M{
		"hellosign_request_id":   requestID,
		"hellosign_signature_id": signatureID,
	})
}

func (r *LeaseRepo) SetSignedAgreement(ctx context.Context, leaseID, key, url string) error {
	return setFields(ctx, r.Collection, leaseID, bson.M{
		"signed_agreement_key": key,
		"signed_agreement_url": url,
	})
}
