package course

import (
	"context"
	"sort"
	"strings"
	"sync"

	"coursehub/internal/catalog/models"
	"coursehub/pkg/platform/sentinel"
)

// InMemoryStore keeps courses in a map. Used by tests and local runs without
// a database.
type InMemoryStore struct {
	mu   sync.RWMutex
	byID map[string]*models.Course
}

// NewMemory creates an empty in-memory course store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{byID: make(map[string]*models.Course)}
}

func (s *InMemoryStore) Save(ctx context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *course
	s.byID[course.ID] = &clone
	return nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *course
	return &clone, nil
}

func (s *InMemoryStore) FindByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	var courses []*models.Course
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if course, ok := s.byID[id]; ok {
			clone := *course
			courses = append(courses, &clone)
		}
	}
	return courses, nil
}

func (s *InMemoryStore) List(ctx context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]*models.Course, 0, len(s.byID))
	for _, course := range s.byID {
		clone := *course
		courses = append(courses, &clone)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (s *InMemoryStore) ListByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var courses []*models.Course
	for _, course := range s.byID {
		if course.InstructorID == instructorID {
			clone := *course
			courses = append(courses, &clone)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (s *InMemoryStore) SearchByTitle(ctx context.Context, title string) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(title)
	var courses []*models.Course
	for _, course := range s.byID {
		if strings.Contains(strings.ToLower(course.Title), needle) {
			clone := *course
			courses = append(courses, &clone)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (s *InMemoryStore) Update(ctx context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[course.ID]; !ok {
		return sentinel.ErrNotFound
	}
	clone := *course
	s.byID[course.ID] = &clone
	return nil
}

func (s *InMemoryStore) IncrementViews(ctx context.Context, id string) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	course.Views++
	clone := *course
	return &clone, nil
}
