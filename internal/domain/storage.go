package domain

//go:generate mockgen -destination mocks/mock_storage.go -package mocks github.com/oseiserwaa/kitchen/internal/domain Storage

// Storage is the persistence port. Services only ever see the repositories
// it hands out, never a concrete backend.
type Storage interface {
	Content() ContentRepository
	Menu() MenuItemRepository
	Categories() CategoryRepository
	Reservations() ReservationRepository
	Messages() MessageRepository
	Users() UserRepository
	Images() ImageRepository
	Visitors() VisitorRepository
	Close() error
}
