package store

import (
	"meeting-scheduler-api/internal/model"
)

func (s *Store) GetUser(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, false
	}
	u.AvailableSlots = append([]string(nil), u.AvailableSlots...)
	return u, true
}
