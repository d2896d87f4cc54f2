package domain

import (
	"strings"
	"time"
)

// DocumentStatus is the review state of an uploaded document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// ParseDocumentStatus normalizes legacy spellings ("Pending", "REJECTED") to
// the canonical lowercase form.
func ParseDocumentStatus(s string) DocumentStatus {
	return DocumentStatus(strings.ToLower(strings.TrimSpace(s)))
}

// DocumentType identifies one slot in the per-employee document set. The OPT
// pipeline types are ordered; the remaining types stand alone.
type DocumentType string

const (
	DocOPTReceipt        DocumentType = "OPT Receipt"
	DocOPTEAD            DocumentType = "OPT EAD"
	DocI983              DocumentType = "I-983"
	DocI20               DocumentType = "I-20"
	DocDriverLicense     DocumentType = "Driver License"
	DocWorkAuthorization DocumentType = "Work Authorization"
)

// DocumentTypes lists every accepted document type.
var DocumentTypes = []DocumentType{
	DocOPTReceipt,
	DocOPTEAD,
	DocI983,
	DocI20,
	DocDriverLicense,
	DocWorkAuthorization,
}

// ValidDocumentType reports whether t is an accepted document type.
func ValidDocumentType(t DocumentType) bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// Document is one uploaded file per (owner, type) slot. The pair is unique:
// first uploads create the record, everything after goes through reupload.
type Document struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	OwnerID   string         `json:"owner_id" bson:"owner_id"`
	Type      DocumentType   `json:"type" bson:"type"`
	FileURL   string         `json:"file_url" bson:"file_url"`
	FileKey   string         `json:"file_key" bson:"file_key"`
	FileName  string         `json:"file_name" bson:"file_name"`
	Status    DocumentStatus `json:"status" bson:"status"`
	Feedback  string         `json:"feedback" bson:"feedback"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// CanReupload reports whether the employee may replace the file. Only rejected
// documents are re-uploadable; approved is terminal for the slot.
func (d *Document) CanReupload() bool {
	return d.Status == DocumentRejected
}
