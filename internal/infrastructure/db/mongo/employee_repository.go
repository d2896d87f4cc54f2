package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

const employeesCollection = "employees"

type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(employeesCollection)}
}

// mongoEmployee is the stored shape. The nested structs carry their own bson
// tags in the domain package, so only the top level is mapped here.
type mongoEmployee struct {
	ID                primitive.ObjectID     `bson:"_id,omitempty"`
	UserID            string                 `bson:"user_id"`
	FirstName         string                 `bson:"first_name"`
	LastName          string                 `bson:"last_name"`
	MiddleName        string                 `bson:"middle_name,omitempty"`
	PreferredName     string                 `bson:"preferred_name,omitempty"`
	ProfilePicture    string                 `bson:"profile_picture,omitempty"`
	Address           domain.Address         `bson:"address"`
	PhoneNumber       string                 `bson:"phone_number"`
	WorkPhoneNumber   string                 `bson:"work_phone_number,omitempty"`
	Email             string                 `bson:"email"`
	SSN               string                 `bson:"ssn"`
	DOB               time.Time              `bson:"dob"`
	Gender            string                 `bson:"gender"`
	ResidencyStatus   domain.ResidencyStatus `bson:"residency_status"`
	Reference         *domain.ContactPerson  `bson:"reference,omitempty"`
	EmergencyContacts []domain.ContactPerson `bson:"emergency_contacts"`
	ApplicationStatus string                 `bson:"application_status"`
	HRFeedback        string                 `bson:"hr_feedback"`
	CreatedAt         time.Time              `bson:"created_at"`
	UpdatedAt         time.Time              `bson:"updated_at"`
}

func (me mongoEmployee) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:                me.ID.Hex(),
		UserID:            me.UserID,
		FirstName:         me.FirstName,
		LastName:          me.LastName,
		MiddleName:        me.MiddleName,
		PreferredName:     me.PreferredName,
		ProfilePicture:    me.ProfilePicture,
		Address:           me.Address,
		PhoneNumber:       me.PhoneNumber,
		WorkPhoneNumber:   me.WorkPhoneNumber,
		Email:             me.Email,
		SSN:               me.SSN,
		DOB:               me.DOB,
		Gender:            me.Gender,
		ResidencyStatus:   me.ResidencyStatus,
		Reference:         me.Reference,
		EmergencyContacts: me.EmergencyContacts,
		ApplicationStatus: domain.ApplicationStatus(me.ApplicationStatus),
		HRFeedback:        me.HRFeedback,
		CreatedAt:         me.CreatedAt,
		UpdatedAt:         me.UpdatedAt,
	}
}

func fromDomainEmployee(e *domain.Employee) bson.M {
	return bson.M{
		"user_id":            e.UserID,
		"first_name":         e.FirstName,
		"last_name":          e.LastName,
		"middle_name":        e.MiddleName,
		"preferred_name":     e.PreferredName,
		"profile_picture":    e.ProfilePicture,
		"address":            e.Address,
		"phone_number":       e.PhoneNumber,
		"work_phone_number":  e.WorkPhoneNumber,
		"email":              e.Email,
		"ssn":                e.SSN,
		"dob":                e.DOB,
		"gender":             e.Gender,
		"residency_status":   e.ResidencyStatus,
		"reference":          e.Reference,
		"emergency_contacts": e.EmergencyContacts,
		"application_status": string(e.ApplicationStatus),
		"hr_feedback":        e.HRFeedback,
		"updated_at":         e.UpdatedAt,
	}
}

func (r *EmployeeRepository) FindByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.M) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEmployee
	if err := r.coll.FindOne(ctx, filter).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return me.toDomain(), nil
}

// Upsert creates or replaces the profile keyed by user_id.
func (r *EmployeeRepository) Upsert(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set":         fromDomainEmployee(e),
		"$setOnInsert": bson.M{"created_at": e.CreatedAt},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var me mongoEmployee
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": e.UserID}, update, opts).Decode(&me); err != nil {
		return nil, fmt.Errorf("upsert employee: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EmployeeRepository) UpdateFields(ctx context.Context, userID string, fields map[string]any) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var me mongoEmployee
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, bson.M{"$set": set}, opts).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("update employee fields: %w", err)
	}
	return me.toDomain(), nil
}

// UpdateApplicationStatus moves the application from one status to another in
// a single conditional write. Two concurrent reviewers therefore resolve to
// one winner; the loser is told the application is no longer pending.
func (r *EmployeeRepository) UpdateApplicationStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, feedback string) (*domain.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "application_status": string(from)}
	update := bson.M{"$set": bson.M{
		"application_status": string(to),
		"hr_feedback":        feedback,
		"updated_at":         time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var me mongoEmployee
	err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&me)
	if err == nil {
		return me.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update application status: %w", err)
	}

	// Distinguish a missing profile from one already past the `from` state.
	if _, findErr := r.findOne(ctx, bson.M{"_id": oid}); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrApplicationNotPending
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "last_name", Value: 1}})
}

func (r *EmployeeRepository) ListByStatuses(ctx context.Context, statuses []domain.ApplicationStatus) ([]*domain.Employee, error) {
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}
	filter := bson.M{"application_status": bson.M{"$in": vals}}
	return r.find(ctx, filter, bson.D{{Key: "created_at", Value: -1}})
}

func (r *EmployeeRepository) Search(ctx context.Context, q string) ([]*domain.Employee, error) {
	pattern := regexp.QuoteMeta(q)
	re := primitive.Regex{Pattern: pattern, Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"first_name": re},
		bson.M{"last_name": re},
		bson.M{"preferred_name": re},
	}}
	return r.find(ctx, filter, bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}})
}

func (r *EmployeeRepository) ListSponsored(ctx context.Context) ([]*domain.Employee, error) {
	filter := bson.M{"residency_status.is_citizen_or_permanent_resident": false}
	return r.find(ctx, filter, bson.D{{Key: "last_name", Value: 1}})
}

func (r *EmployeeRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Employee
	for cur.Next(ctx) {
		var me mongoEmployee
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		out = append(out, me.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique 1:1 user link and the fields HR filters on.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "application_status", Value: 1}}},
		{Keys: bson.D{{Key: "residency_status.is_citizen_or_permanent_resident", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
