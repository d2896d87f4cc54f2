package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests. Each stub mirrors
// the filter semantics of the real Mongo repository.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.byID {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubInviteRepo struct {
	byToken   map[string]*domain.Registration
	nextID    int
	createErr error
	deleted   []string
	released  []string
}

func newStubInviteRepo() *stubInviteRepo {
	return &stubInviteRepo{byToken: make(map[string]*domain.Registration)}
}

func (r *stubInviteRepo) Create(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *reg
	clone.ID = fmt.Sprintf("reg_%d", r.nextID)
	r.byToken[clone.Token] = &clone
	out := clone
	return &out, nil
}

func (r *stubInviteRepo) FindByToken(_ context.Context, token string) (*domain.Registration, error) {
	reg, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrInviteNotFound
	}
	clone := *reg
	return &clone, nil
}

func (r *stubInviteRepo) FindSentByEmail(_ context.Context, email string) (*domain.Registration, error) {
	for _, reg := range r.byToken {
		if reg.Email == email && reg.Status == domain.InviteSent {
			clone := *reg
			return &clone, nil
		}
	}
	return nil, domain.ErrInviteNotFound
}

func (r *stubInviteRepo) Consume(_ context.Context, token, email string) (bool, error) {
	reg, ok := r.byToken[token]
	if !ok || reg.Email != email || reg.Status != domain.InviteSent {
		return false, nil
	}
	reg.Status = domain.InviteUsed
	return true, nil
}

func (r *stubInviteRepo) Release(_ context.Context, token string) error {
	r.released = append(r.released, token)
	if reg, ok := r.byToken[token]; ok {
		reg.Status = domain.InviteSent
	}
	return nil
}

func (r *stubInviteRepo) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	for token, reg := range r.byToken {
		if reg.ID == id {
			delete(r.byToken, token)
			return nil
		}
	}
	return nil
}

func (r *stubInviteRepo) List(_ context.Context) ([]*domain.Registration, error) {
	out := make([]*domain.Registration, 0, len(r.byToken))
	for _, reg := range r.byToken {
		clone := *reg
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type stubEmployeeRepo struct {
	byID      map[string]*domain.Employee
	nextID    int
	upsertErr error
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byID: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) add(e *domain.Employee) *domain.Employee {
	if e.ID == "" {
		r.nextID++
		e.ID = fmt.Sprintf("emp_%d", r.nextID)
	}
	clone := *e
	r.byID[e.ID] = &clone
	return e
}

func (r *stubEmployeeRepo) FindByUserID(_ context.Context, userID string) (*domain.Employee, error) {
	for _, e := range r.byID {
		if e.UserID == userID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) Upsert(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	for id, existing := range r.byID {
		if existing.UserID == e.UserID {
			clone := *e
			clone.ID = id
			clone.CreatedAt = existing.CreatedAt
			r.byID[id] = &clone
			out := clone
			return &out, nil
		}
	}
	r.nextID++
	clone := *e
	clone.ID = fmt.Sprintf("emp_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEmployeeRepo) UpdateFields(_ context.Context, userID string, fields map[string]any) (*domain.Employee, error) {
	for _, e := range r.byID {
		if e.UserID == userID {
			applyFields(e, fields)
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

// applyFields supports the dotted paths the personal info service emits.
// Only the paths exercised by tests are implemented.
func applyFields(e *domain.Employee, fields map[string]any) {
	for path, v := range fields {
		s, _ := v.(string)
		switch path {
		case "first_name":
			e.FirstName = s
		case "last_name":
			e.LastName = s
		case "preferred_name":
			e.PreferredName = s
		case "phone_number":
			e.PhoneNumber = s
		case "work_phone_number":
			e.WorkPhoneNumber = s
		case "address.building":
			e.Address.Building = s
		case "address.street":
			e.Address.Street = s
		case "address.city":
			e.Address.City = s
		case "address.state":
			e.Address.State = s
		case "address.zip":
			e.Address.Zip = s
		case "residency_status.work_authorization.type":
			e.ResidencyStatus.WorkAuthorization.Type = s
		case "emergency_contacts":
			if contacts, ok := v.([]domain.ContactPerson); ok {
				e.EmergencyContacts = contacts
			}
		case "reference":
			if ref, ok := v.(*domain.ContactPerson); ok {
				e.Reference = ref
			}
		}
	}
}

func (r *stubEmployeeRepo) UpdateApplicationStatus(_ context.Context, id string, from, to domain.ApplicationStatus, feedback string) (*domain.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	if e.ApplicationStatus != from {
		return nil, domain.ErrApplicationNotPending
	}
	e.ApplicationStatus = to
	e.HRFeedback = feedback
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) List(_ context.Context) ([]*domain.Employee, error) {
	out := r.all()
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (r *stubEmployeeRepo) ListByStatuses(_ context.Context, statuses []domain.ApplicationStatus) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for _, e := range r.all() {
		for _, st := range statuses {
			if e.ApplicationStatus == st {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) Search(_ context.Context, q string) ([]*domain.Employee, error) {
	q = strings.ToLower(q)
	var out []*domain.Employee
	for _, e := range r.all() {
		if strings.Contains(strings.ToLower(e.FirstName), q) ||
			strings.Contains(strings.ToLower(e.LastName), q) ||
			strings.Contains(strings.ToLower(e.PreferredName), q) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) ListSponsored(_ context.Context) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for _, e := range r.all() {
		if e.OnSponsoredVisa() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (r *stubEmployeeRepo) all() []*domain.Employee {
	out := make([]*domain.Employee, 0, len(r.byID))
	for _, e := range r.byID {
		clone := *e
		out = append(out, &clone)
	}
	return out
}

type stubDocumentRepo struct {
	byID      map[string]*domain.Document
	nextID    int
	createErr error
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{byID: make(map[string]*domain.Document)}
}

func (r *stubDocumentRepo) add(d *domain.Document) *domain.Document {
	if d.ID == "" {
		r.nextID++
		d.ID = fmt.Sprintf("doc_%d", r.nextID)
	}
	clone := *d
	r.byID[d.ID] = &clone
	return d
}

func (r *stubDocumentRepo) Create(_ context.Context, d *domain.Document) (*domain.Document, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.OwnerID == d.OwnerID && existing.Type == d.Type {
			return nil, domain.ErrDocumentExists
		}
	}
	r.nextID++
	clone := *d
	clone.ID = fmt.Sprintf("doc_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubDocumentRepo) FindByID(_ context.Context, id string) (*domain.Document, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDocumentRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Document, error) {
	var out []*domain.Document
	for _, d := range r.byID {
		if d.OwnerID == ownerID {
			clone := *d
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubDocumentRepo) ListByOwnerTypes(_ context.Context, ownerID string, types []domain.DocumentType) (map[domain.DocumentType]*domain.Document, error) {
	out := make(map[domain.DocumentType]*domain.Document)
	for _, d := range r.byID {
		if d.OwnerID != ownerID {
			continue
		}
		for _, t := range types {
			if d.Type == t {
				clone := *d
				out[t] = &clone
			}
		}
	}
	return out, nil
}

func (r *stubDocumentRepo) ReplaceFile(_ context.Context, id, ownerID string, file ports.FileRef) (*domain.Document, error) {
	d, ok := r.byID[id]
	if !ok || d.OwnerID != ownerID {
		return nil, domain.ErrDocumentNotFound
	}
	if d.Status != domain.DocumentRejected {
		return nil, domain.ErrDocumentNotRejected
	}
	d.FileURL = file.URL
	d.FileKey = file.Key
	d.FileName = file.Name
	d.Status = domain.DocumentPending
	d.Feedback = ""
	clone := *d
	return &clone, nil
}

func (r *stubDocumentRepo) Review(_ context.Context, ownerID string, docType domain.DocumentType, to domain.DocumentStatus, feedback string) (*domain.Document, error) {
	for _, d := range r.byID {
		if d.OwnerID != ownerID || d.Type != docType {
			continue
		}
		if d.Status != domain.DocumentPending {
			return nil, domain.ErrDocumentNotPending
		}
		d.Status = to
		d.Feedback = feedback
		clone := *d
		return &clone, nil
	}
	return nil, domain.ErrDocumentNotFound
}

// ---------------------------------------------------------------------------
// Stub adapters
// ---------------------------------------------------------------------------

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type stubMailer struct {
	sent    []sentMail
	sendErr error
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type stubFileStore struct {
	saved    []ports.FileRef
	removed  []string
	saveErr  error
	nextFile int
}

func (s *stubFileStore) Save(_ context.Context, file ports.FileUpload) (ports.FileRef, error) {
	if s.saveErr != nil {
		return ports.FileRef{}, s.saveErr
	}
	if file.Content != nil {
		_, _ = io.Copy(io.Discard, file.Content)
	}
	s.nextFile++
	ref := ports.FileRef{
		URL:  fmt.Sprintf("/uploads/file_%d", s.nextFile),
		Key:  fmt.Sprintf("file_%d", s.nextFile),
		Name: file.Name,
	}
	s.saved = append(s.saved, ref)
	return ref, nil
}

func (s *stubFileStore) Remove(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	return nil
}

func (s *stubFileStore) Path(key string) string {
	return "/tmp/uploads/" + key
}

type stubThrottle struct {
	allow    bool
	err      error
	askedFor []string
}

func (t *stubThrottle) Allow(_ context.Context, ownerID string) (bool, error) {
	t.askedFor = append(t.askedFor, ownerID)
	return t.allow, t.err
}
