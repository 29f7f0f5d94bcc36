package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Opportunity() OpportunityRepository
	Profile() ProfileRepository
	ChatLog() ChatLogRepository

	Close() error
}
