package domain

import "fmt"

// DocumentKind tags the kind of business document a journal entry originated from.
type DocumentKind string

const (
	KindInvoice     DocumentKind = "INVOICE"
	KindPayment     DocumentKind = "PAYMENT"
	KindBankAccount DocumentKind = "BANK_ACCOUNT"
)

// DocumentRef is a typed reference to the business document that caused a posting.
// One ledger, many document kinds; the kind plus id identifies exactly one document.
type DocumentRef struct {
	Kind DocumentKind `json:"kind"`
	ID   string       `json:"id"`
}

func (r DocumentRef) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.ID)
}

// PostingIntent is the transition a caller of the posting engine intends.
// The engine validates the entry-count parity for the document against this intent
// before writing anything.
type PostingIntent string

const (
	PostForward PostingIntent = "FORWARD"
	PostReverse PostingIntent = "REVERSE"
)

// PostingStatus is the explicit posting state carried on invoices and payments.
// The entry-count parity in the ledger remains the mechanism; this field is kept in
// step with it so a divergence can be detected instead of silently compounding.
type PostingStatus string

const (
	Unposted PostingStatus = "UNPOSTED"
	Posted   PostingStatus = "POSTED"
)
