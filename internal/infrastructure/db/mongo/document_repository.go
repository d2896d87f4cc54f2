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
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

const documentsCollection = "documents"

type DocumentRepository struct {
	coll *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{coll: db.Collection(documentsCollection)}
}

type mongoDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	Type      string             `bson:"type"`
	FileURL   string             `bson:"file_url"`
	FileKey   string             `bson:"file_key"`
	FileName  string             `bson:"file_name"`
	Status    string             `bson:"status"`
	Feedback  string             `bson:"feedback"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (md mongoDocument) toDomain() *domain.Document {
	return &domain.Document{
		ID:        md.ID.Hex(),
		OwnerID:   md.OwnerID,
		Type:      domain.DocumentType(md.Type),
		FileURL:   md.FileURL,
		FileKey:   md.FileKey,
		FileName:  md.FileName,
		Status:    domain.DocumentStatus(md.Status),
		Feedback:  md.Feedback,
		CreatedAt: md.CreatedAt,
		UpdatedAt: md.UpdatedAt,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoDocument{
		OwnerID:   d.OwnerID,
		Type:      string(d.Type),
		FileURL:   d.FileURL,
		FileKey:   d.FileKey,
		FileName:  d.FileName,
		Status:    string(d.Status),
		Feedback:  d.Feedback,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDocumentExists
		}
		return nil, fmt.Errorf("insert document: %w", err)
	}

	created := *d
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDocumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return md.toDomain(), nil
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Document
	for cur.Next(ctx) {
		var md mongoDocument
		if err := cur.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, md.toDomain())
	}
	return out, cur.Err()
}

func (r *DocumentRepository) ListByOwnerTypes(ctx context.Context, ownerID string, types []domain.DocumentType) (map[domain.DocumentType]*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	vals := make([]string, len(types))
	for i, t := range types {
		vals[i] = string(t)
	}
	filter := bson.M{"owner_id": ownerID, "type": bson.M{"$in": vals}}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[domain.DocumentType]*domain.Document)
	for cur.Next(ctx) {
		var md mongoDocument
		if err := cur.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		d := md.toDomain()
		out[d.Type] = d
	}
	return out, cur.Err()
}

// ReplaceFile swaps the stored file on a rejected document owned by ownerID,
// resetting it to pending, in one conditional write.
func (r *DocumentRepository) ReplaceFile(ctx context.Context, id, ownerID string, file ports.FileRef) (*domain.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDocumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "owner_id": ownerID, "status": string(domain.DocumentRejected)}
	update := bson.M{"$set": bson.M{
		"file_url":   file.URL,
		"file_key":   file.Key,
		"file_name":  file.Name,
		"status":     string(domain.DocumentPending),
		"feedback":   "",
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var md mongoDocument
	err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&md)
	if err == nil {
		return md.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("replace document file: %w", err)
	}

	// Distinguish "no such document for this owner" from "not rejected".
	n, countErr := r.coll.CountDocuments(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if countErr != nil {
		return nil, fmt.Errorf("replace document file: %w", countErr)
	}
	if n == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return nil, domain.ErrDocumentNotRejected
}

// Review moves a pending (owner, type) document to the given status in one
// conditional write, so concurrent reviewers resolve to a single winner.
func (r *DocumentRepository) Review(ctx context.Context, ownerID string, docType domain.DocumentType, to domain.DocumentStatus, feedback string) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "type": string(docType), "status": string(domain.DocumentPending)}
	update := bson.M{"$set": bson.M{
		"status":     string(to),
		"feedback":   feedback,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var md mongoDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&md)
	if err == nil {
		return md.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("review document: %w", err)
	}

	n, countErr := r.coll.CountDocuments(ctx, bson.M{"owner_id": ownerID, "type": string(docType)})
	if countErr != nil {
		return nil, fmt.Errorf("review document: %w", countErr)
	}
	if n == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return nil, domain.ErrDocumentNotPending
}

// EnsureIndexes creates the unique (owner, type) slot index.
func (r *DocumentRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "type", Value: 1}}, Options: uniqueIndex()},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
