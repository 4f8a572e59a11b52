package instructor

import (
	"context"
	"sort"
	"strings"
	"sync"

	"coursehub/internal/catalog/models"
	"coursehub/pkg/platform/sentinel"
)

// InMemoryStore keeps instructors in a map. Used by tests and local runs
// without a database.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*models.Instructor
	byEmail map[string]string
}

// NewMemory creates an empty in-memory instructor store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[string]*models.Instructor),
		byEmail: make(map[string]string),
	}
}

func (s *InMemoryStore) Save(ctx context.Context, instructor *models.Instructor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.byEmail[instructor.Email]; ok && existingID != instructor.ID {
		return sentinel.ErrDuplicate
	}
	clone := *instructor
	s.byID[instructor.ID] = &clone
	s.byEmail[instructor.Email] = instructor.ID
	return nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, id string) (*models.Instructor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instructor, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *instructor
	return &clone, nil
}

func (s *InMemoryStore) FindByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *s.byID[id]
	return &clone, nil
}

func (s *InMemoryStore) List(ctx context.Context) ([]*models.Instructor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instructors := make([]*models.Instructor, 0, len(s.byID))
	for _, instructor := range s.byID {
		clone := *instructor
		instructors = append(instructors, &clone)
	}
	sort.Slice(instructors, func(i, j int) bool { return instructors[i].ID < instructors[j].ID })
	return instructors, nil
}

func (s *InMemoryStore) SearchByName(ctx context.Context, name string) ([]*models.Instructor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(name)
	var matches []*models.Instructor
	for _, instructor := range s.byID {
		if strings.Contains(strings.ToLower(instructor.Name), needle) {
			clone := *instructor
			matches = append(matches, &clone)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (s *InMemoryStore) Update(ctx context.Context, instructor *models.Instructor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[instructor.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if existing.Email != instructor.Email {
		if otherID, taken := s.byEmail[instructor.Email]; taken && otherID != instructor.ID {
			return sentinel.ErrDuplicate
		}
		delete(s.byEmail, existing.Email)
		s.byEmail[instructor.Email] = instructor.ID
	}
	clone := *instructor
	s.byID[instructor.ID] = &clone
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	instructor, ok := s.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byEmail, instructor.Email)
	delete(s.byID, id)
	return nil
}
