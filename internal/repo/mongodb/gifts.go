package mongodb

import (
	"context"
	"errors"
	"regexp"

	"github.com/giftlinkhq/giftlink/internal/domain/gift"
	"github.com/giftlinkhq/giftlink/internal/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrGiftNotFound = errors.New("gift not found")

type GiftsRepo struct {
	col  *mongo.Collection
	prom *observability.Prom
}

func NewGiftsRepo(database *mongo.Database, prom *observability.Prom) *GiftsRepo {
	return &GiftsRepo{
		col:  database.Collection("gifts"),
		prom: prom,
	}
}

func (r *GiftsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {

		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *GiftsRepo) List(ctx context.Context) ([]gift.Gift, error) {
	gifts := []gift.Gift{}

	err := r.observe("gifts.list", func() error {
		cur, err := r.col.Find(ctx, bson.M{})

		if err != nil {
			return err
		}

		defer cur.Close(ctx)

		return cur.All(ctx, &gifts)
	})

	if err != nil {
		return nil, err
	}

	return gifts, nil
}

func (r *GiftsRepo) GetByID(ctx context.Context, id string) (gift.Gift, error) {
	var g gift.Gift

	err := r.observe("gifts.get_by_id", func() error {
		return r.col.FindOne(ctx, bson.M{"id": id}).Decode(&g)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return gift.Gift{}, ErrGiftNotFound
		}

		return gift.Gift{}, err
	}

	return g, nil
}

func searchQuery(filter gift.SearchFilter) bson.M {
	query := bson.M{}

	if filter.Name != "" {
		// the name comes straight from a query param; quote it so regex
		// metacharacters match literally instead of breaking the query
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}

	if filter.Category != "" {
		query["category"] = filter.Category
	}

	if filter.Condition != "" {
		query["condition"] = filter.Condition
	}

	if filter.MaxAgeYears > 0 {
		query["age_years"] = bson.M{"$lte": filter.MaxAgeYears}
	}

	return query
}

// Search applies the filter fields that are set: name is a case-insensitive
// substring match, category and condition are exact, MaxAgeYears is an
// upper bound on age_years.
func (r *GiftsRepo) Search(ctx context.Context, filter gift.SearchFilter) ([]gift.Gift, error) {
	query := searchQuery(filter)

	gifts := []gift.Gift{}

	err := r.observe("gifts.search", func() error {
		cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date_added", Value: -1}}))

		if err != nil {
			return err
		}

		defer cur.Close(ctx)

		return cur.All(ctx, &gifts)
	})

	if err != nil {
		return nil, err
	}

	return gifts, nil
}
