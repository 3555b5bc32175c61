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

// RentPaymentRepo rent_payments collection
type RentPaymentRepo struct {
	Collection *mongo.Collection
}

// NewRentPaymentRepo create rent payments repository
func NewRentPaymentRepo(db *mongo.Database) model.RentPaymentRepository {
	return &RentPaymentRepo{Collection: db.Collection(consts.RentPayments)}
}

func (r *RentPaymentRepo) ListUnpaid(ctx context.Context, batchSize int32) ([]*model.RentPayment, error) {
	opts := options.Find()
	if batchSize > 0 {
		opts.SetBatchSize(batchSize)
	}
	cursor, err := r.Collection.Find(ctx, bson.M{"paid": false}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query unpaid rent payments")
	}
	defer cursor.Close(ctx)

	payments := []*model.RentPayment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, errors.Wrap(err, "unable to decode rent payments")
	}
	return payments, nil
}

// RentReminderRepo rent_reminders collection
type RentReminderRepo struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// NewRentReminderRepo create rent reminders repository
func NewRentReminderRepo(client *mongo.Client, db *mongo.Database) model.RentReminderRepository {
	return &RentReminderRepo{Client: client, Collection: db.Collection(consts.RentReminders)}
}

// CreateBatch upserts the reminders inside one transaction. Existing ids are
// left untouched, so only missing reminders are written. created_at is
// assigned by the server.
func (r *RentReminderRepo) CreateBatch(ctx context.Context, reminders []*model.RentReminder) (int, error) {
	if len(reminders) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(reminders))
	for _, rem := range reminders {
		writes = append(writes, reminderUpsert(rem))
	}

	session, err := r.Client.StartSession()
	if err != nil {
		return 0, errors.Wrap(err, "unable to start session")
	}
	defer session.EndSession(ctx)

	created, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.Collection.BulkWrite(sc, writes, options.BulkWrite().SetOrdered(true))
		if err != nil {
			return 0, err
		}
		return int(res.UpsertedCount), nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "rent reminder transaction failed")
	}

	logrus.WithFields(logrus.Fields{
		"staged":  len(reminders),
		"created": created,
	}).Debug("rent reminder batch committed")
	return created.(int), nil
}

// reminderUpsert inserts rem with a server timestamp when its id is missing
// and keeps the stored document otherwise.
func reminderUpsert(rem *model.RentReminder) *mongo.UpdateOneModel {
	doc := bson.D{
		{Key: "_id", Value: literal(rem.ID)},
		{Key: "payment_id", Value: literal(rem.PaymentID)},
		{Key: "tenant_uid", Value: literal(rem.TenantUID)},
		{Key: "landlord_uid", Value: literal(rem.LandlordUID)},
		{Key: "property_id", Value: literal(rem.PropertyID)},
		{Key: "amount", Value: literal(rem.Amount)},
		{Key: "due_date", Value: literal(rem.DueDate)},
		{Key: "created_at", Value: "$$NOW"},
	}
	missing := bson.M{"$eq": bson.A{bson.M{"$type": "$created_at"}, "missing"}}
	return mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": rem.ID}).
		SetUpdate(mongo.Pipeline{
			{{Key: "$replaceWith", Value: bson.M{"$cond": bson.A{missing, doc, "$$ROOT"}}}},
		}).
		SetUpsert(true)
}

func literal(v interface{}) bson.M {
	return bson.M{"$literal": v}
}
