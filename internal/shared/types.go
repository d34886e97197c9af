package shared

// Task types processed by cmd/worker.
const (
	TypeGenerateOrderPdf      = "order:generate_pdf"
	TypeSendOrderConfirmation = "order:send_confirmation"
	TypeProcessImage          = "image:process"
	TypeExpireCarts           = "cart:expire"
)

// Queue names and their worker priorities.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

var QueuePriorities = map[string]int{
	QueueCritical: 6,
	QueueDefault:  3,
	QueueLow:      1,
}

type OrderTaskPayload struct {
	OrderID int64 `json:"orderId"`
}

type ImageTaskPayload struct {
	ImageID int64 `json:"imageId"`
}

type ExpireCartsPayload struct{}

// Context keys set by the auth middleware.
const (
	ContextUserID    = "userID"
	ContextRoles     = "roles"
	ContextRequestID = "request_id"
)

// ArticleCacheKeyPrefix prefixes cached articles. The entries embed the
// supplier name and VAT percent, so writes to either drop them.
const ArticleCacheKeyPrefix = "article:"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
