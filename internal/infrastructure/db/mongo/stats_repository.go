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
	statsCollection       = "levelup_stats"
	statsRunIndexName     = "uniq_stats_run"
	referralCodeIndexName = "uniq_referral_code"
)

type MongoStatsRepository struct {
	coll *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *MongoStatsRepository {
	return &MongoStatsRepository{coll: db.Collection(statsCollection)}
}

type mongoStats struct {
	RUN          string `bson:"run"`
	ReferralCode string `bson:"referral_code"`
	Points       int64  `bson:"points"`
	Level        int    `bson:"level"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (ms *mongoStats) toDomain() *domain.PlayerStats {
	return &domain.PlayerStats{
		RUN:          ms.RUN,
		ReferralCode: ms.ReferralCode,
		Points:       ms.Points,
		Level:        ms.Level,
		UpdatedAt:    unixToTime(ms.UpdatedAt),
	}
}

func (r *MongoStatsRepository) Create(ctx context.Context, stats *domain.PlayerStats) error {
	doc := mongoStats{
		RUN:          stats.RUN,
		ReferralCode: stats.ReferralCode,
		Points:       stats.Points,
		Level:        stats.Level,
		UpdatedAt:    stats.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), referralCodeIndexName) {
				return domain.ErrReferralCodeTaken
			}
			// Same RUN inserted twice: the existing record wins.
			return nil
		}
		return fmt.Errorf("insert stats: %w", err)
	}
	return nil
}

func (r *MongoStatsRepository) FindByRUN(ctx context.Context, run string) (*domain.PlayerStats, error) {
	return r.findOne(ctx, bson.M{"run": run})
}

func (r *MongoStatsRepository) FindByReferralCode(ctx context.Context, code string) (*domain.PlayerStats, error) {
	return r.findOne(ctx, bson.M{"referral_code": code})
}

func (r *MongoStatsRepository) findOne(ctx context.Context, filter bson.M) (*domain.PlayerStats, error) {
	var ms mongoStats
	if err := r.coll.FindOne(ctx, filter).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrStatsNotFound
		}
		return nil, fmt.Errorf("find stats: %w", err)
	}
	return ms.toDomain(), nil
}

// AddPoints atomically increments points and stores the new level.
func (r *MongoStatsRepository) AddPoints(ctx context.Context, run string, points int64, level int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"run": run}, bson.M{
		"$inc": bson.M{"points": points},
		"$set": bson.M{"level": level, "updated_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStatsNotFound
	}
	return nil
}
