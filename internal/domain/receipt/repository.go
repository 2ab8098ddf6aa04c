package receipt

import "context"

// ReceiptRepository defines data access methods for fuel receipts.
type ReceiptRepository interface {
	// Create inserts a new receipt in pending status
	Create(ctx context.Context, r FuelReceipt) (FuelReceipt, error)

	// GetByID retrieves a receipt by ID
	GetByID(ctx context.Context, id string) (FuelReceipt, error)

	// List retrieves receipts matching the filter, newest first
	List(ctx context.Context, filter ReceiptFilter) ([]FuelReceipt, error)

	// UpdateDetails rewrites the mutable detail fields of a pending receipt.
	// Status, image key and receipt date are never touched here.
	UpdateDetails(ctx context.Context, r FuelReceipt) error

	// TransitionStatus applies an approval transition as a compare-and-swap:
	// the row is updated only while its status is still `from`. Returns
	// ErrAlreadyProcessed when the swap finds another status, so concurrent
	// approvals cannot both win.
	TransitionStatus(ctx context.Context, id string, from, to Status, approverID string, reason string) error
}
