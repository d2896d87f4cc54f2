package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

const registrationsCollection = "registrations"

type RegistrationRepository struct {
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{coll: db.Collection(registrationsCollection)}
}

type mongoRegistration struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Token     string             `bson:"token"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mr mongoRegistration) toDomain() *domain.Registration {
	return &domain.Registration{
		ID:        mr.ID.Hex(),
		Email:     mr.Email,
		Name:      mr.Name,
		Token:     mr.Token,
		Status:    domain.InviteStatus(mr.Status),
		CreatedAt: mr.CreatedAt,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRegistration{
		Email:     reg.Email,
		Name:      reg.Name,
		Token:     reg.Token,
		Status:    string(reg.Status),
		CreatedAt: reg.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	created := *reg
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RegistrationRepository) FindByToken(ctx context.Context, token string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRegistration
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *RegistrationRepository) FindSentByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"email": email, "status": string(domain.InviteSent)}

	var mr mongoRegistration
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return mr.toDomain(), nil
}

// Consume flips (token, email, sent) to used in a single conditional write.
// The modified count tells the caller whether the invite was actually valid,
// so a replayed signup cannot consume it twice.
func (r *RegistrationRepository) Consume(ctx context.Context, token, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"token": token, "email": email, "status": string(domain.InviteSent)}
	update := bson.M{"$set": bson.M{"status": string(domain.InviteUsed)}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("consume registration: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *RegistrationRepository) Release(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(domain.InviteSent)}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"token": token}, update)
	if err != nil {
		return fmt.Errorf("release registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInviteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) List(ctx context.Context) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Registration
	for cur.Next(ctx) {
		var mr mongoRegistration
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique token index and the TTL index that expires
// invites three hours after creation.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: uniqueIndex()},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(domain.InviteTTL.Seconds())),
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
