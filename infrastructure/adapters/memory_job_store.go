package adapters

import (
	"sort"
	"sync"

	"github.com/JonattanS/RewindDay/application/ports/outbound"
	"github.com/JonattanS/RewindDay/domain"
)

// memoryJobStore keeps job state for the lifetime of the process. One mutex
// guards the map; reads hand out copies so callers never observe a job mid
// mutation. Updates to a terminal job are dropped, which makes completed and
// failed states immutable by construction.
type memoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

func NewMemoryJobStore() outbound.JobStorePort {
	return &memoryJobStore{
		jobs: make(map[string]*domain.Job),
	}
}

func (s *memoryJobStore) Create(job domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := job
	s.jobs[job.ID] = &stored
	return nil
}

func (s *memoryJobStore) Get(id string) (domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return *job, nil
}

func (s *memoryJobStore) List() []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]domain.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs
}

func (s *memoryJobStore) Update(id string, mutate func(job *domain.Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	if job.Status.IsTerminal() {
		return nil
	}
	mutate(job)
	return nil
}

func (s *memoryJobStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(s.jobs, id)
	return nil
}
