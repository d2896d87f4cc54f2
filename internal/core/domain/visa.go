package domain

import "fmt"

// VisaSteps is the ordered OPT document pipeline. Each step must be approved
// before the next one counts.
var VisaSteps = []DocumentType{DocOPTReceipt, DocOPTEAD, DocI983, DocI20}

// VisaAllApproved is the terminal progress sentinel. Employees at this point
// are excluded from the in-progress review queue.
const VisaAllApproved = "All documents approved"

// VisaProgress is the derived position of an employee in the visa pipeline.
// It is recomputed on every request and never persisted.
type VisaProgress struct {
	NextStep string
	// Current is the document the NextStep message refers to; nil while
	// waiting for an upload.
	Current *Document
}

// NextVisaStep folds left-to-right over the ordered step list and stops at the
// first step that is not yet approved:
//
//	absent   → "Waiting for <step> upload"
//	pending  → "Review <step>"
//	rejected → "Re-upload <step>"
//
// With all four steps approved it returns VisaAllApproved.
func NextVisaStep(docs map[DocumentType]*Document) VisaProgress {
	for _, step := range VisaSteps {
		doc := docs[step]
		if doc == nil {
			return VisaProgress{NextStep: fmt.Sprintf("Waiting for %s upload", step)}
		}
		switch doc.Status {
		case DocumentPending:
			return VisaProgress{NextStep: fmt.Sprintf("Review %s", step), Current: doc}
		case DocumentRejected:
			return VisaProgress{NextStep: fmt.Sprintf("Re-upload %s", step), Current: doc}
		}
		// approved: continue to the next step
	}
	return VisaProgress{NextStep: VisaAllApproved}
}
