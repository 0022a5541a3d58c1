package store

import (
	"encoding/json"

	"meeting-scheduler-api/internal/model"
)

func (s *Store) ListMeetings() []model.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Meeting, len(s.meetings))
	copy(out, s.meetings)
	return out
}

func (s *Store) MeetingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meetings)
}

// AddMeeting appends m without a conflict check and returns it with its
// assigned id.
func (s *Store) AddMeeting(m model.Meeting) model.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(m)
}

func (s *Store) FindMeetingIndex(id int) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(id)
}

// ReplaceMeeting overwrites every field of the meeting at idx except its id.
// idx must come from FindMeetingIndex with no removal in between.
func (s *Store) ReplaceMeeting(idx int, m model.Meeting) model.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(idx, m)
}

func (s *Store) RemoveMeeting(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(idx)
}

// CreateMeeting adds m unless another meeting already holds the same date
// and time.
func (s *Store) CreateMeeting(m model.Meeting) (model.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slotTaken(m.Date, m.Time, 0) {
		return model.Meeting{}, ErrSlotConflict
	}
	return s.add(m), nil
}

// UpdateMeeting replaces the meeting with the given id. The new date and
// time must not collide with any other meeting.
func (s *Store) UpdateMeeting(id int, m model.Meeting) (model.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.find(id)
	if !ok {
		return model.Meeting{}, ErrNotFound
	}
	// exclude self so a meeting can keep its own slot
	if s.slotTaken(m.Date, m.Time, id) {
		return model.Meeting{}, ErrSlotConflict
	}
	return s.replace(idx, m), nil
}

func (s *Store) DeleteMeeting(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.find(id)
	if !ok {
		return ErrNotFound
	}
	s.remove(idx)
	return nil
}

// callers hold s.mu

func (s *Store) add(m model.Meeting) model.Meeting {
	m.ID = s.nextID
	s.nextID++
	s.meetings = append(s.meetings, m)
	return m
}

func (s *Store) find(id int) (int, bool) {
	for i := range s.meetings {
		if s.meetings[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) replace(idx int, m model.Meeting) model.Meeting {
	m.ID = s.meetings[idx].ID
	s.meetings[idx] = m
	return m
}

func (s *Store) remove(idx int) {
	s.meetings = append(s.meetings[:idx], s.meetings[idx+1:]...)
}

// slotTaken reports whether another meeting holds exactly this date and
// time. A meeting without a date or time holds no slot.
func (s *Store) slotTaken(date, tm any, excludeID int) bool {
	if unset(date) || unset(tm) {
		return false
	}
	for _, m := range s.meetings {
		if m.ID != excludeID && sameValue(m.Date, date) && sameValue(m.Time, tm) {
			return true
		}
	}
	return false
}

func unset(v any) bool {
	return v == nil || v == ""
}

// sameValue is strict equality over decoded JSON scalars. Lists and
// objects never match, and no string normalization is done.
func sameValue(a, b any) bool {
	switch a := a.(type) {
	case string:
		b, ok := b.(string)
		return ok && a == b
	case bool:
		b, ok := b.(bool)
		return ok && a == b
	case float64:
		return numberEqual(a, b)
	case json.Number:
		f, err := a.Float64()
		return err == nil && numberEqual(f, b)
	}
	return false
}

func numberEqual(a float64, b any) bool {
	switch b := b.(type) {
	case float64:
		return a == b
	case json.Number:
		f, err := b.Float64()
		return err == nil && a == f
	}
	return false
}
