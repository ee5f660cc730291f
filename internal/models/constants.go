package models

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	ProductionPending    = "pending"
	ProductionInProgress = "in_progress"
	ProductionCompleted  = "completed"
)

const (
	// DefaultMonthlyHoursLimit assigned to newly created member profiles
	DefaultMonthlyHoursLimit = 10

	// DefaultDailyHoursLimit hours a member may book within one day
	DefaultDailyHoursLimit = 4

	// DefaultMessagesLimit page size for message listings
	DefaultMessagesLimit = 10

	// DefaultRecentProductions shown on the admin dashboard
	DefaultRecentProductions = 5

	// WorkerQueueSize buffered export task queue size
	WorkerQueueSize = 256
)
