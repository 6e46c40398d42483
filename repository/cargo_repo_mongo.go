package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lrlcargo/invoice"
	"lrlcargo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoDatabase = "lrlcargo"

type MongoCargoRepo struct {
	DB *mongo.Client
}

func NewMongoCargoRepo(db *mongo.Client) *MongoCargoRepo {
	return &MongoCargoRepo{DB: db}
}

// nextSequence hands out int64 ids from a counters collection so Mongo and
// Postgres rows address the same way.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection("counters").FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (r *MongoCargoRepo) CreateCargo(ctx context.Context, cargo *models.Cargo) error {
	db := r.DB.Database(mongoDatabase)

	if cargo.CreatedBy == 0 {
		return errors.New("created_by cannot be empty")
	}
	if cargo.CreatedAt.IsZero() {
		cargo.CreatedAt = time.Now().UTC()
	}
	if cargo.Status == "" {
		cargo.Status = "draft"
	}

	// Upsert nested parties
	upsert := func(p *models.Party, customerType int, idPtr **int64) error {
		if p == nil || *idPtr != nil {
			return nil
		}
		p.CustomerType = customerType
		if p.ID == 0 {
			id, err := nextSequence(ctx, db, "party")
			if err != nil {
				return err
			}
			p.ID = id
		}
		_, err := db.Collection("party").UpdateOne(ctx,
			bson.M{"_id": p.ID},
			bson.M{"$setOnInsert": p},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
		*idPtr = &p.ID
		return nil
	}
	if err := upsert(cargo.SenderParty, models.PartyTypeSender, &cargo.SenderPartyID); err != nil {
		return err
	}
	if err := upsert(cargo.ReceiverParty, models.PartyTypeReceiver, &cargo.ReceiverPartyID); err != nil {
		return err
	}

	if cargo.ID == 0 {
		id, err := nextSequence(ctx, db, "cargo")
		if err != nil {
			return err
		}
		cargo.ID = id

		if cargo.TrackCode == "" {
			cargo.TrackCode = "LRL-" + strings.ToUpper(uuid.NewString()[:8])
		}
		if cargo.BookingNo == "" {
			last, err := r.LastBookingNo(ctx)
			if err != nil {
				return err
			}
			cargo.BookingNo = invoice.NextInvoiceNumber(last)
		}

		_, err = db.Collection("cargo").InsertOne(ctx, cargo)
		return err
	}

	now := time.Now().UTC()
	cargo.UpdatedAt = &now
	_, err := db.Collection("cargo").ReplaceOne(ctx, bson.M{"_id": cargo.ID}, cargo)
	return err
}

func (r *MongoCargoRepo) GetCargo(ctx context.Context, filters map[string]interface{}, single bool) ([]*models.Cargo, error) {
	db := r.DB.Database(mongoDatabase)

	bsonFilter := bson.M{}
	for k, v := range filters {
		if !cargoFilterColumns[k] {
			return nil, fmt.Errorf("unsupported cargo filter: %s", k)
		}
		if k == "id" {
			k = "_id"
		}
		bsonFilter[k] = v
	}

	if single {
		var c models.Cargo
		err := db.Collection("cargo").FindOne(ctx, bsonFilter).Decode(&c)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, nil
			}
			return nil, err
		}
		return []*models.Cargo{r.populateNested(ctx, db, &c)}, nil
	}

	cur, err := db.Collection("cargo").Find(ctx, bsonFilter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Cargo
	for cur.Next(ctx) {
		var c models.Cargo
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, r.populateNested(ctx, db, &c))
	}
	return out, cur.Err()
}

// populateNested loads the denormalized party and branch documents.
func (r *MongoCargoRepo) populateNested(ctx context.Context, db *mongo.Database, c *models.Cargo) *models.Cargo {
	if c.SenderPartyID != nil && *c.SenderPartyID != 0 {
		var p models.Party
		if db.Collection("party").FindOne(ctx, bson.M{"_id": *c.SenderPartyID}).Decode(&p) == nil {
			c.SenderParty = &p
		}
	}
	if c.ReceiverPartyID != nil && *c.ReceiverPartyID != 0 {
		var p models.Party
		if db.Collection("party").FindOne(ctx, bson.M{"_id": *c.ReceiverPartyID}).Decode(&p) == nil {
			c.ReceiverParty = &p
		}
	}
	if c.BranchID != nil && *c.BranchID != 0 {
		var b models.Branch
		if db.Collection("branch").FindOne(ctx, bson.M{"_id": *c.BranchID}).Decode(&b) == nil {
			c.Branch = &b
		}
	}
	return c
}

func (r *MongoCargoRepo) LastBookingNo(ctx context.Context) (string, error) {
	db := r.DB.Database(mongoDatabase)

	var c models.Cargo
	err := db.Collection("cargo").FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.M{"_id": -1})).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return c.BookingNo, nil
}

func (r *MongoCargoRepo) UpdatePDFInfo(ctx context.Context, cargoID int64, path string, createdAt time.Time) error {
	db := r.DB.Database(mongoDatabase)
	_, err := db.Collection("cargo").UpdateOne(ctx,
		bson.M{"_id": cargoID},
		bson.M{"$set": bson.M{"pdf_path": path, "pdf_created_at": createdAt}},
	)
	return err
}

func (r *MongoCargoRepo) DeleteCargo(ctx context.Context, cargoID int64) error {
	db := r.DB.Database(mongoDatabase)
	res, err := db.Collection("cargo").DeleteOne(ctx, bson.M{"_id": cargoID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("cargo not found")
	}
	return nil
}
