package repository

import (
	"context"
	"errors"
	"time"

	"lrlcargo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoPartyRepo struct {
	DB *mongo.Client
}

func NewMongoPartyRepo(db *mongo.Client) *MongoPartyRepo {
	return &MongoPartyRepo{DB: db}
}

func (r *MongoPartyRepo) UpsertParty(ctx context.Context, p *models.Party) error {
	db := r.DB.Database(mongoDatabase)

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.ID == 0 {
		id, err := nextSequence(ctx, db, "party")
		if err != nil {
			return err
		}
		p.ID = id
		_, err = db.Collection("party").InsertOne(ctx, p)
		return err
	}

	_, err := db.Collection("party").ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	return err
}

func (r *MongoPartyRepo) GetPartyByID(ctx context.Context, id int64) (*models.Party, error) {
	var p models.Party
	err := r.DB.Database(mongoDatabase).Collection("party").
		FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoPartyRepo) SearchPartiesByName(ctx context.Context, name string) ([]*models.Party, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: name, Options: "i"}}
	cur, err := r.DB.Database(mongoDatabase).Collection("party").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Party
	for cur.Next(ctx) {
		var p models.Party
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoPartyRepo) DeleteParty(ctx context.Context, id int64) error {
	_, err := r.DB.Database(mongoDatabase).Collection("party").
		DeleteOne(ctx, bson.M{"_id": id})
	return err
}
