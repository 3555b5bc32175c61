package mongodatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/govindrajkumar/easy-lease-sub000/consts"
	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// UserRepo users collection
type UserRepo struct {
	Collection *mongo.Collection
}

// NewUserRepo create users repository
func NewUserRepo(db *mongo.Database) model.UserRepository {
	return &UserRepo{Collection: db.Collection(consts.Users)}
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	if err := findByID(ctx, r.Collection, id, user); err != nil {
		return nil, err
	}
	return user, nil
}

// PropertyRepo properties collection
type PropertyRepo struct {
	Collection *mongo.Collection
}

// NewPropertyRepo create properties repository
func NewPropertyRepo(db *mongo.Database) model.PropertyRepository {
	return &PropertyRepo{Collection: db.Collection(consts.Properties)}
}

func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	property := &model.Property{}
	if err := findByID(ctx, r.Collection, id, property); err != nil {
		return nil, err
	}
	return property, nil
}
