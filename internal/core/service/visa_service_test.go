package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

func newVisaFixture() (*VisaService, *stubEmployeeRepo, *stubDocumentRepo, *stubMailer, *stubThrottle) {
	employees := newStubEmployeeRepo()
	documents := newStubDocumentRepo()
	mailer := &stubMailer{}
	throttle := &stubThrottle{allow: true}
	svc := NewVisaService(employees, documents, mailer, throttle, zerolog.Nop())
	return svc, employees, documents, mailer, throttle
}

func sponsoredEmployee(employees *stubEmployeeRepo, userID, lastName string) *domain.Employee {
	end := time.Now().UTC().Add(90 * 24 * time.Hour)
	return employees.add(&domain.Employee{
		UserID:    userID,
		FirstName: "Visa",
		LastName:  lastName,
		Email:     userID + "@example.com",
		ResidencyStatus: domain.ResidencyStatus{
			IsCitizenOrPermanentResident: false,
			StatusType:                   "F1(CPT/OPT)",
			WorkAuthorization: domain.WorkAuthorization{
				Type:    "F1(CPT/OPT)",
				EndDate: &end,
			},
		},
		ApplicationStatus: domain.ApplicationApproved,
	})
}

func TestInProgress_ComputesNextStep(t *testing.T) {
	svc, employees, documents, _, _ := newVisaFixture()
	sponsoredEmployee(employees, "u1", "Alpha")
	documents.add(&domain.Document{OwnerID: "u1", Type: domain.DocOPTReceipt, Status: domain.DocumentPending})

	items, err := svc.InProgress(context.Background())
	if err != nil {
		t.Fatalf("in progress: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].NextStep != "Review OPT Receipt" {
		t.Fatalf("next step = %q", items[0].NextStep)
	}
	if items[0].CurrentDoc == nil || items[0].CurrentDoc.Type != domain.DocOPTReceipt {
		t.Fatalf("current doc = %+v", items[0].CurrentDoc)
	}
	if items[0].DaysRemaining == nil || *items[0].DaysRemaining <= 0 {
		t.Fatalf("days remaining = %v", items[0].DaysRemaining)
	}
}

func TestInProgress_ExcludesFullyApproved(t *testing.T) {
	svc, employees, documents, _, _ := newVisaFixture()
	sponsoredEmployee(employees, "u1", "Alpha")
	for _, step := range domain.VisaSteps {
		documents.add(&domain.Document{OwnerID: "u1", Type: step, Status: domain.DocumentApproved})
	}

	items, err := svc.InProgress(context.Background())
	if err != nil {
		t.Fatalf("in progress: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("fully approved employee must be excluded, got %d items", len(items))
	}
}

func TestInProgress_ExcludesCitizens(t *testing.T) {
	svc, employees, _, _, _ := newVisaFixture()
	employees.add(&domain.Employee{
		UserID:   "u1",
		LastName: "Citizen",
		ResidencyStatus: domain.ResidencyStatus{
			IsCitizenOrPermanentResident: true,
		},
	})

	items, err := svc.InProgress(context.Background())
	if err != nil {
		t.Fatalf("in progress: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("citizens are not on the visa track, got %d items", len(items))
	}
}

func TestAll_MapsEveryStep(t *testing.T) {
	svc, employees, documents, _, _ := newVisaFixture()
	sponsoredEmployee(employees, "u1", "Alpha")
	documents.add(&domain.Document{OwnerID: "u1", Type: domain.DocOPTReceipt, Status: domain.DocumentApproved})
	documents.add(&domain.Document{OwnerID: "u1", Type: domain.DocOPTEAD, Status: domain.DocumentRejected, Feedback: "blurry"})

	items, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	docs := items[0].Documents
	if docs[domain.DocOPTReceipt].Status != "approved" {
		t.Fatalf("receipt = %+v", docs[domain.DocOPTReceipt])
	}
	if docs[domain.DocOPTEAD].Status != "rejected" || docs[domain.DocOPTEAD].Feedback != "blurry" {
		t.Fatalf("ead = %+v", docs[domain.DocOPTEAD])
	}
	if docs[domain.DocI983].Status != "not_uploaded" {
		t.Fatalf("i983 = %+v", docs[domain.DocI983])
	}
	if docs[domain.DocI20].Status != "not_uploaded" {
		t.Fatalf("i20 = %+v", docs[domain.DocI20])
	}
}

func TestVisaApprove_RequiresPendingDocument(t *testing.T) {
	svc, _, documents, _, _ := newVisaFixture()
	documents.add(&domain.Document{OwnerID: "u1", Type: domain.DocOPTReceipt, Status: domain.DocumentApproved})

	_, err := svc.Approve(context.Background(), "u1", domain.DocOPTReceipt)
	if !errors.Is(err, domain.ErrDocumentNotPending) {
		t.Fatalf("expected ErrDocumentNotPending, got %v", err)
	}

	_, err = svc.Approve(context.Background(), "u1", domain.DocOPTEAD)
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestVisaApprove_Pending(t *testing.T) {
	svc, _, documents, _, _ := newVisaFixture()
	documents.add(&domain.Document{OwnerID: "u1", Type: domain.DocOPTReceipt, Status: domain.DocumentPending})

	doc, err := svc.Approve(context.Background(), "u1", domain.DocOPTReceipt)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if doc.Status != domain.DocumentApproved {
		t.Fatalf("expected approved, got %q", doc.Status)
	}
}

func TestVisaReject_RequiresFeedback(t *testing.T) {
	svc, _, documents, _, _ := newVisaFixture()
	documents.add(&domain.Document{OwnerID: "u1", Type: domain.DocOPTReceipt, Status: domain.DocumentPending})

	_, err := svc.Reject(context.Background(), "u1", domain.DocOPTReceipt, " ")
	if !errors.Is(err, domain.ErrFeedbackRequired) {
		t.Fatalf("expected ErrFeedbackRequired, got %v", err)
	}

	doc, err := svc.Reject(context.Background(), "u1", domain.DocOPTReceipt, "document is expired")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if doc.Status != domain.DocumentRejected || doc.Feedback != "document is expired" {
		t.Fatalf("got %q / %q", doc.Status, doc.Feedback)
	}
}

func TestSendReminder_EmailsEmployee(t *testing.T) {
	svc, employees, _, mailer, throttle := newVisaFixture()
	sponsoredEmployee(employees, "u1", "Alpha")

	email, err := svc.SendReminder(context.Background(), "u1")
	if err != nil {
		t.Fatalf("send reminder: %v", err)
	}
	if email != "u1@example.com" {
		t.Fatalf("recipient = %q", email)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	if len(throttle.askedFor) != 1 || throttle.askedFor[0] != "u1" {
		t.Fatalf("throttle keyed by owner, got %v", throttle.askedFor)
	}
}

func TestSendReminder_Throttled(t *testing.T) {
	svc, employees, _, mailer, throttle := newVisaFixture()
	sponsoredEmployee(employees, "u1", "Alpha")
	throttle.allow = false

	_, err := svc.SendReminder(context.Background(), "u1")
	if !errors.Is(err, domain.ErrReminderThrottled) {
		t.Fatalf("expected ErrReminderThrottled, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("throttled reminder must not send, got %d", len(mailer.sent))
	}
}

func TestSendReminder_ThrottleOutageSendsAnyway(t *testing.T) {
	svc, employees, _, mailer, throttle := newVisaFixture()
	sponsoredEmployee(employees, "u1", "Alpha")
	throttle.err = errors.New("redis down")

	if _, err := svc.SendReminder(context.Background(), "u1"); err != nil {
		t.Fatalf("send reminder: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected send despite throttle outage, got %d", len(mailer.sent))
	}
}

func TestSendReminder_UnknownEmployee(t *testing.T) {
	svc, _, _, _, _ := newVisaFixture()

	_, err := svc.SendReminder(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
