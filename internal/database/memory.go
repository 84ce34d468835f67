package database

import (
	"context"
	"maps"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/jobportal/internal/apperrors"
	"github.com/justsurfingit/jobportal/internal/models"
)

// MemoryJobStore keeps jobs in process. It backs STORE_DRIVER=memory and the tests.
type MemoryJobStore struct {
	mu              sync.RWMutex
	jobs            map[uuid.UUID]models.Job
	order           []uuid.UUID
	AtomicIncrement bool
}

func NewMemoryJobStore(atomicIncrement bool) *MemoryJobStore {
	return &MemoryJobStore{
		jobs:            make(map[uuid.UUID]models.Job),
		AtomicIncrement: atomicIncrement,
	}
}

func (s *MemoryJobStore) List(_ context.Context, hrEmail string) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := []models.Job{}
	for _, id := range s.order {
		job := s.jobs[id]
		if hrEmail != "" && job.HREmail != hrEmail {
			continue
		}
		jobs = append(jobs, cloneJob(job))
	}
	return jobs, nil
}

func (s *MemoryJobStore) Get(_ context.Context, id uuid.UUID) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, apperrors.NotFound("job not found")
	}
	c := cloneJob(job)
	return &c, nil
}

func (s *MemoryJobStore) Create(_ context.Context, job *models.Job) error {
	if err := job.BeforeCreate(nil); err != nil {
		return err
	}
	job.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.ID]; !exists {
		s.order = append(s.order, job.ID)
	}
	s.jobs[job.ID] = cloneJob(*job)
	return nil
}

// IncrementApplicationCount mirrors JobStore: the default path reads and writes
// under separate locks so concurrent increments can be lost.
func (s *MemoryJobStore) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	if s.AtomicIncrement {
		s.mu.Lock()
		defer s.mu.Unlock()
		job, ok := s.jobs[id]
		if !ok {
			return apperrors.NotFound("job not found")
		}
		next := job.Count() + 1
		job.ApplicationCount = &next
		s.jobs[id] = job
		return nil
	}

	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	next := job.Count() + 1
	runtime.Gosched()

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.jobs[id]
	if !ok {
		return apperrors.NotFound("job not found")
	}
	stored.ApplicationCount = &next
	s.jobs[id] = stored
	return nil
}

func (s *MemoryJobStore) Ping(context.Context) error {
	return nil
}

func cloneJob(j models.Job) models.Job {
	if j.ApplicationCount != nil {
		n := *j.ApplicationCount
		j.ApplicationCount = &n
	}
	if j.SalaryRange != nil {
		sr := *j.SalaryRange
		j.SalaryRange = &sr
	}
	j.Extra = maps.Clone(j.Extra)
	j.Requirements = append([]string(nil), j.Requirements...)
	j.Responsibilities = append([]string(nil), j.Responsibilities...)
	return j
}

// MemoryApplicationStore keeps applications in process.
type MemoryApplicationStore struct {
	mu    sync.RWMutex
	apps  map[uuid.UUID]models.Application
	order []uuid.UUID
}

func NewMemoryApplicationStore() *MemoryApplicationStore {
	return &MemoryApplicationStore{apps: make(map[uuid.UUID]models.Application)}
}

func (s *MemoryApplicationStore) Create(_ context.Context, app *models.Application) error {
	if err := app.BeforeCreate(nil); err != nil {
		return err
	}
	app.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[app.ID]; !exists {
		s.order = append(s.order, app.ID)
	}
	stored := *app
	stored.Extra = maps.Clone(app.Extra)
	s.apps[app.ID] = stored
	return nil
}

func (s *MemoryApplicationStore) ListByEmail(_ context.Context, email string) ([]models.Application, error) {
	return s.filter(func(a models.Application) bool { return a.ApplicationEmail == email }), nil
}

func (s *MemoryApplicationStore) ListByJob(_ context.Context, jobID uuid.UUID) ([]models.Application, error) {
	return s.filter(func(a models.Application) bool { return a.JobID == jobID }), nil
}

func (s *MemoryApplicationStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	res := models.UpdateResult{MatchedCount: 1}
	if app.Status != status {
		app.Status = status
		s.apps[id] = app
		res.ModifiedCount = 1
	}
	return res, nil
}

func (s *MemoryApplicationStore) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[id]; !ok {
		return 0, nil
	}
	delete(s.apps, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (s *MemoryApplicationStore) filter(keep func(models.Application) bool) []models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := []models.Application{}
	for _, id := range s.order {
		if app := s.apps[id]; keep(app) {
			apps = append(apps, app)
		}
	}
	return apps
}
