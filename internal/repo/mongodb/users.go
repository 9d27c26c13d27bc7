package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/giftlinkhq/giftlink/internal/domain/user"
	"github.com/giftlinkhq/giftlink/internal/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailAlreadyUsed = errors.New("email already in use")

type UsersRepo struct {
	col  *mongo.Collection
	prom *observability.Prom
}

func NewUsersRepo(database *mongo.Database, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		col:  database.Collection("users"),
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {

		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// EnsureIndexes creates the unique index on email. The index, not the
// read-before-insert check, is what actually guarantees one record per email.
func (r *UsersRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return err
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		return r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, ErrUserNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, firstName, lastName string) (user.User, error) {
	u := user.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now().UTC(),
	}

	err := r.observe("users.create", func() error {
		res, err := r.col.InsertOne(ctx, u)

		if err != nil {
			return err
		}

		id, ok := res.InsertedID.(bson.ObjectID)

		if !ok {
			return errors.New("unexpected inserted id type")
		}

		u.ID = id

		return nil
	})

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, ErrEmailAlreadyUsed
		}

		return user.User{}, err
	}

	return u, nil
}

// UpdateFirstName sets firstName on the record matching email, stamps
// updatedAt and returns the updated record. Only firstName is ever touched.
func (r *UsersRepo) UpdateFirstName(ctx context.Context, email, firstName string) (user.User, error) {
	var u user.User

	update := bson.M{
		"$set": bson.M{
			"firstName": firstName,
			"updatedAt": time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := r.observe("users.update_first_name", func() error {
		return r.col.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, ErrUserNotFound
		}

		return user.User{}, err
	}

	return u, nil
}
