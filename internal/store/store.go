package store

import (
	"errors"
	"sync"

	"meeting-scheduler-api/internal/model"
)

var (
	ErrNotFound     = errors.New("meeting not found")
	ErrSlotConflict = errors.New("time slot already taken")
)

// Store keeps meetings and users in memory. All methods are safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	meetings []model.Meeting
	users    map[string]model.User
	nextID   int
}

func New(users []model.User) *Store {
	s := &Store{
		users:  make(map[string]model.User, len(users)),
		nextID: 1,
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// SeedUsers is the fixed user directory the service starts with.
func SeedUsers() []model.User {
	return []model.User{
		{ID: "1", Name: "John Doe", AvailableSlots: []string{"9:00 AM", "2:00 PM"}},
		{ID: "2", Name: "Jane Smith", AvailableSlots: []string{"10:00 AM", "3:00 PM"}},
	}
}
