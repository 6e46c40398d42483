package repository

import (
	"context"
	"errors"
	"time"

	"lrlcargo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoBranchRepo struct {
	DB *mongo.Client
}

func NewMongoBranchRepo(db *mongo.Client) *MongoBranchRepo {
	return &MongoBranchRepo{DB: db}
}

func (r *MongoBranchRepo) SaveBranch(ctx context.Context, b *models.Branch) error {
	db := r.DB.Database(mongoDatabase)

	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.ID == 0 {
		id, err := nextSequence(ctx, db, "branch")
		if err != nil {
			return err
		}
		b.ID = id
		_, err = db.Collection("branch").InsertOne(ctx, b)
		return err
	}

	_, err := db.Collection("branch").ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	return err
}

func (r *MongoBranchRepo) GetBranchByID(ctx context.Context, id int64) (*models.Branch, error) {
	var b models.Branch
	err := r.DB.Database(mongoDatabase).Collection("branch").
		FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoBranchRepo) ListBranches(ctx context.Context) ([]*models.Branch, error) {
	cur, err := r.DB.Database(mongoDatabase).Collection("branch").
		Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"branch_name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Branch
	for cur.Next(ctx) {
		var b models.Branch
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
}
