package shared

// Asynq task type names.
const (
	TypeSendNotification  = "notify:send"
	TypeCleanupStaleCarts = "cart:cleanup_stale"
	TypeDailySalesSummary = "order:daily_summary"
)

// Queue names with their worker priorities.
const (
	QueueNotifications = "notifications"
	QueueMaintenance   = "maintenance"
)
