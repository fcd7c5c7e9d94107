package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/levelup/levelup-backend/internal/core/domain"
)

const (
	usersCollection = "usuarios"
	emailIndexName  = "uniq_correo"
	runIndexName    = "uniq_run"
)

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	RUN              string `bson:"run"`
	Name             string `bson:"nombre"`
	Surname          string `bson:"apellidos"`
	Email            string `bson:"correo"`
	Role             string `bson:"perfil"`
	BirthDate        *int64 `bson:"fecha_nacimiento,omitempty"`
	Region           string `bson:"region"`
	Commune          string `bson:"comuna"`
	Address          string `bson:"direccion"`
	LifetimeDiscount bool   `bson:"descuento_vitalicio"`
	SystemAccount    bool   `bson:"system_account"`
	PasswordHash     string `bson:"password_hash,omitempty"`
	PasswordSalt     string `bson:"password_salt,omitempty"`
	CreatedAt        int64  `bson:"created_at"`
	UpdatedAt        int64  `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	mu := mongoUser{
		RUN:              u.RUN,
		Name:             u.Name,
		Surname:          u.Surname,
		Email:            u.Email,
		Role:             string(u.Role),
		Region:           u.Region,
		Commune:          u.Commune,
		Address:          u.Address,
		LifetimeDiscount: u.LifetimeDiscount,
		SystemAccount:    u.SystemAccount,
		PasswordHash:     u.PasswordHash,
		PasswordSalt:     u.PasswordSalt,
		CreatedAt:        u.CreatedAt.Unix(),
		UpdatedAt:        u.UpdatedAt.Unix(),
	}
	if u.BirthDate != nil {
		ts := u.BirthDate.Unix()
		mu.BirthDate = &ts
	}
	return mu
}

func (mu *mongoUser) toDomain() *domain.User {
	u := &domain.User{
		RUN:              mu.RUN,
		Name:             mu.Name,
		Surname:          mu.Surname,
		Email:            mu.Email,
		Role:             domain.Role(mu.Role),
		Region:           mu.Region,
		Commune:          mu.Commune,
		Address:          mu.Address,
		LifetimeDiscount: mu.LifetimeDiscount,
		SystemAccount:    mu.SystemAccount,
		PasswordHash:     mu.PasswordHash,
		PasswordSalt:     mu.PasswordSalt,
		CreatedAt:        unixToTime(mu.CreatedAt),
		UpdatedAt:        unixToTime(mu.UpdatedAt),
	}
	if mu.BirthDate != nil {
		bd := time.Unix(*mu.BirthDate, 0).UTC()
		u.BirthDate = &bd
	}
	return u
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.coll.InsertOne(ctx, toMongoUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateUserError(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"correo": email})
}

func (r *MongoUserRepository) FindByRUN(ctx context.Context, run string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"run": run})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"correo": email})
}

func (r *MongoUserRepository) ExistsByRUN(ctx context.Context, run string) (bool, error) {
	return r.exists(ctx, bson.M{"run": run})
}

func (r *MongoUserRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// duplicateUserError maps a unique-index violation to the matching domain
// sentinel by inspecting the index name in the driver error.
func duplicateUserError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, emailIndexName) {
		return domain.ErrEmailTaken
	}
	if strings.Contains(msg, runIndexName) {
		return domain.ErrRUNTaken
	}
	return domain.ErrEmailTaken
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
