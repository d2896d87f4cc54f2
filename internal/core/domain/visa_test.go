package domain

import (
	"testing"
	"time"
)

func docWith(t DocumentType, status DocumentStatus) *Document {
	return &Document{OwnerID: "u1", Type: t, Status: status}
}

func TestNextVisaStep(t *testing.T) {
	cases := []struct {
		name     string
		docs     map[DocumentType]*Document
		wantStep string
		wantDoc  bool
	}{
		{
			name:     "nothing uploaded yet",
			docs:     map[DocumentType]*Document{},
			wantStep: "Waiting for OPT Receipt upload",
		},
		{
			name: "first step pending",
			docs: map[DocumentType]*Document{
				DocOPTReceipt: docWith(DocOPTReceipt, DocumentPending),
			},
			wantStep: "Review OPT Receipt",
			wantDoc:  true,
		},
		{
			name: "first step rejected",
			docs: map[DocumentType]*Document{
				DocOPTReceipt: docWith(DocOPTReceipt, DocumentRejected),
			},
			wantStep: "Re-upload OPT Receipt",
			wantDoc:  true,
		},
		{
			name: "first approved, second missing",
			docs: map[DocumentType]*Document{
				DocOPTReceipt: docWith(DocOPTReceipt, DocumentApproved),
			},
			wantStep: "Waiting for OPT EAD upload",
		},
		{
			name: "later step blocks even with earlier approvals",
			docs: map[DocumentType]*Document{
				DocOPTReceipt: docWith(DocOPTReceipt, DocumentApproved),
				DocOPTEAD:     docWith(DocOPTEAD, DocumentApproved),
				DocI983:       docWith(DocI983, DocumentPending),
				DocI20:        docWith(DocI20, DocumentPending),
			},
			wantStep: "Review I-983",
			wantDoc:  true,
		},
		{
			name: "all approved",
			docs: map[DocumentType]*Document{
				DocOPTReceipt: docWith(DocOPTReceipt, DocumentApproved),
				DocOPTEAD:     docWith(DocOPTEAD, DocumentApproved),
				DocI983:       docWith(DocI983, DocumentApproved),
				DocI20:        docWith(DocI20, DocumentApproved),
			},
			wantStep: VisaAllApproved,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextVisaStep(tc.docs)
			if got.NextStep != tc.wantStep {
				t.Fatalf("next step = %q, want %q", got.NextStep, tc.wantStep)
			}
			if tc.wantDoc && got.Current == nil {
				t.Fatal("expected a current document")
			}
			if !tc.wantDoc && got.Current != nil {
				t.Fatalf("unexpected current document: %+v", got.Current)
			}
		})
	}
}

func TestParseApplicationStatus(t *testing.T) {
	cases := map[string]ApplicationStatus{
		"Pending":     ApplicationPending,
		"PENDING":     ApplicationPending,
		"Not Started": ApplicationNotStarted,
		"NOT_STARTED": ApplicationNotStarted,
		"approved":    ApplicationApproved,
		"Rejected":    ApplicationRejected,
	}
	for raw, want := range cases {
		if got := ParseApplicationStatus(raw); got != want {
			t.Fatalf("ParseApplicationStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestCanSubmit(t *testing.T) {
	cases := map[ApplicationStatus]bool{
		ApplicationNotStarted: true,
		ApplicationRejected:   true,
		ApplicationPending:    false,
		ApplicationApproved:   false,
	}
	for status, want := range cases {
		if got := status.CanSubmit(); got != want {
			t.Fatalf("%s.CanSubmit() = %v, want %v", status, got, want)
		}
	}
}

func TestVisaDaysRemaining(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	end := now.Add(36 * time.Hour)
	e := &Employee{ResidencyStatus: ResidencyStatus{
		WorkAuthorization: WorkAuthorization{EndDate: &end},
	}}
	if d := e.VisaDaysRemaining(now); d == nil || *d != 2 {
		t.Fatalf("expected 2 days (rounded up), got %v", d)
	}

	noEnd := &Employee{}
	if d := noEnd.VisaDaysRemaining(now); d != nil {
		t.Fatalf("expected nil without an end date, got %v", d)
	}
}

func TestValidDocumentType(t *testing.T) {
	if !ValidDocumentType(DocOPTReceipt) {
		t.Fatal("OPT Receipt must be valid")
	}
	if ValidDocumentType("Passport") {
		t.Fatal("unknown types must be rejected")
	}
}
