package receipt

import "context"

// ReceiptService defines business logic for fuel receipt operations
type ReceiptService interface {
	// SubmitReceipt validates, stores the image and creates a pending receipt
	SubmitReceipt(ctx context.Context, req SubmitReceiptRequest) (ReceiptResponse, error)

	// GetReceipt retrieves a single receipt, enforcing the access rules
	GetReceipt(ctx context.Context, id string) (ReceiptResponse, error)

	// ListReceipts retrieves receipts; employees see their own, backoffice all
	ListReceipts(ctx context.Context, filter ReceiptFilter) ([]ReceiptResponse, error)

	// UpdateReceipt edits detail fields while the receipt is pending and
	// inside the 24-hour window
	UpdateReceipt(ctx context.Context, req UpdateReceiptRequest) (ReceiptResponse, error)

	// TransitionReceipt approves or rejects a pending receipt (backoffice)
	TransitionReceipt(ctx context.Context, req TransitionReceiptRequest) (ReceiptResponse, error)
}
