package constant

// Purchase order lifecycle statuses
const (
	PurchaseOrderStatusDraft     = "draft"
	PurchaseOrderStatusSubmitted = "submitted"
	PurchaseOrderStatusReceived  = "received"
	PurchaseOrderStatusCancelled = "cancelled"
)
