package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `json:"-"`

	HREmail             string       `gorm:"index" json:"hr_email"`
	HRName              string       `json:"hr_name,omitempty"`
	Title               string       `json:"title,omitempty"`
	Category            string       `json:"category,omitempty"`
	JobType             string       `json:"jobType,omitempty"`
	Location            string       `json:"location,omitempty"`
	Company             string       `json:"company,omitempty"`
	CompanyLogo         string       `json:"company_logo,omitempty"`
	Description         string       `gorm:"type:text" json:"description,omitempty"`
	ApplicationDeadline string       `json:"applicationDeadline,omitempty"`
	SalaryRange         *SalaryRange `gorm:"serializer:json" json:"salaryRange,omitempty"`
	Requirements        []string     `gorm:"serializer:json" json:"requirements,omitempty"`
	Responsibilities    []string     `gorm:"serializer:json" json:"responsibilities,omitempty"`
	Status              string       `json:"status,omitempty"`

	// Denormalized; nil until the first application arrives.
	ApplicationCount *int `json:"applicationCount,omitempty"`

	// Extra keeps body keys with no column of their own.
	Extra map[string]any `gorm:"serializer:json" json:"-"`
}

// MarshalJSON writes the job with its Extra keys alongside the known fields.
func (j Job) MarshalJSON() ([]byte, error) {
	type fields Job
	b, err := json.Marshal(fields(j))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, j.Extra)
}

// Count returns ApplicationCount treating absent as zero.
func (j *Job) Count() int {
	if j.ApplicationCount == nil {
		return 0
	}
	return *j.ApplicationCount
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `json:"-"`

	// No foreign key: the referenced job may not exist.
	JobID            uuid.UUID `gorm:"type:uuid;index" json:"job_id"`
	ApplicationEmail string    `gorm:"index" json:"application_email"`
	LinkedIn         string    `json:"linkedIn,omitempty"`
	Github           string    `json:"github,omitempty"`
	Resume           string    `json:"resume,omitempty"`
	Status           string    `json:"status,omitempty"`

	// Copied from the parent job at read time, never persisted.
	Company  string `gorm:"-" json:"company,omitempty"`
	JobType  string `gorm:"-" json:"jobType,omitempty"`
	Category string `gorm:"-" json:"category,omitempty"`
	Location string `gorm:"-" json:"location,omitempty"`

	Extra map[string]any `gorm:"serializer:json" json:"-"`
}

func (a Application) MarshalJSON() ([]byte, error) {
	type fields Application
	b, err := json.Marshal(fields(a))
	if err != nil {
		return nil, err
	}
	return mergeExtra(b, a.Extra)
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Enrich copies the parent job's display fields onto the application.
func (a *Application) Enrich(job *Job) {
	a.Company = job.Company
	a.JobType = job.JobType
	a.Category = job.Category
	a.Location = job.Location
}

// UpdateResult carries the matched/modified counters returned to clients.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}
