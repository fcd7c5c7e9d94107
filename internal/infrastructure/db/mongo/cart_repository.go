package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

const cartsCollection = "carts"

type MongoCartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{coll: db.Collection(cartsCollection)}
}

type mongoCartItem struct {
	ProductCode string `bson:"codigo"`
	Name        string `bson:"nombre"`
	UnitPrice   int64  `bson:"precio"`
	Quantity    int    `bson:"cantidad"`
}

type mongoCart struct {
	RUN       string          `bson:"run"`
	Items     []mongoCartItem `bson:"items"`
	UpdatedAt int64           `bson:"updated_at"`
}

func (r *MongoCartRepository) FindByRUN(ctx context.Context, run string) (*domain.Cart, error) {
	var mc mongoCart
	if err := r.coll.FindOne(ctx, bson.M{"run": run}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	items := make([]domain.CartItem, 0, len(mc.Items))
	for _, it := range mc.Items {
		items = append(items, domain.CartItem{
			ProductCode: it.ProductCode,
			Name:        it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return &domain.Cart{
		RUN:       mc.RUN,
		Items:     items,
		UpdatedAt: unixToTime(mc.UpdatedAt),
	}, nil
}

// Upsert replaces the stored cart for the owner, creating it when absent.
func (r *MongoCartRepository) Upsert(ctx context.Context, cart *domain.Cart) error {
	items := make([]mongoCartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, mongoCartItem{
			ProductCode: it.ProductCode,
			Name:        it.Name,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}

	doc := mongoCart{
		RUN:       cart.RUN,
		Items:     items,
		UpdatedAt: cart.UpdatedAt.Unix(),
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"run": cart.RUN}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}
