package outbound

import "github.com/JonattanS/RewindDay/domain"

// JobStorePort is the process-wide job registry. Implementations must apply
// every mutation to a single job atomically with respect to concurrent reads,
// and must refuse updates to jobs that already reached a terminal status.
type JobStorePort interface {
	Create(job domain.Job) error
	Get(id string) (domain.Job, error)
	List() []domain.Job
	Update(id string, mutate func(job *domain.Job)) error
	Delete(id string) error
}
