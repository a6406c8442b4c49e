package repositories

import (
	"github.com/unihire/unihire/internal/kvstore"
)

// Repositories bundles all entity repositories over a single key-value store.
type Repositories struct {
	UserRepository             *UserRepository
	StudentProfileRepository   *StudentProfileRepository
	RecruiterProfileRepository *RecruiterProfileRepository
	JobOfferRepository         *JobOfferRepository
	NotificationRepository     *NotificationRepository
}

// NewRepositories creates all repositories backed by the given store.
func NewRepositories(store kvstore.Store) *Repositories {
	return &Repositories{
		UserRepository:             NewUserRepository(store),
		StudentProfileRepository:   NewStudentProfileRepository(store),
		RecruiterProfileRepository: NewRecruiterProfileRepository(store),
		JobOfferRepository:         NewJobOfferRepository(store),
		NotificationRepository:     NewNotificationRepository(store),
	}
}
