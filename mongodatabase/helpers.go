package mongodatabase

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

func findByID(ctx context.Context, coll *mongo.Collection, id string, v interface{}) error {
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(v)
	if err == mongo.ErrNoDocuments {
		return model.ErrNotFound
	}
	return errors.Wrapf(err, "unable to fetch %s %s", coll.Name(), id)
}

func setFields(ctx context.Context, coll *mongo.Collection, id string, fields bson.M) error {
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return errors.Wrapf(err, "unable to update %s %s", coll.Name(), id)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
