package dtos

import (
	"encoding/json"

	"github.com/justsurfingit/jobportal/internal/models"
)

// JobCreationRequest is stored as given; no field is required.
type JobCreationRequest struct {
	HREmail             string              `json:"hr_email"`
	HRName              string              `json:"hr_name"`
	Title               string              `json:"title"`
	Category            string              `json:"category"`
	JobType             string              `json:"jobType"`
	Location            string              `json:"location"`
	Company             string              `json:"company"`
	CompanyLogo         string              `json:"company_logo"`
	Description         string              `json:"description"`
	ApplicationDeadline string              `json:"applicationDeadline"`
	SalaryRange         *models.SalaryRange `json:"salaryRange"`
	Requirements        []string            `json:"requirements"`
	Responsibilities    []string            `json:"responsibilities"`
	Status              string              `json:"status"`

	// Extra collects keys that have no Job field.
	Extra map[string]any `json:"-"`
}

func (r *JobCreationRequest) UnmarshalJSON(data []byte) error {
	type fields JobCreationRequest
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := models.JobExtra(data)
	if err != nil {
		return err
	}
	*r = JobCreationRequest(f)
	r.Extra = extra
	return nil
}

func (r *JobCreationRequest) ToModel() *models.Job {
	return &models.Job{
		HREmail:             r.HREmail,
		HRName:              r.HRName,
		Title:               r.Title,
		Category:            r.Category,
		JobType:             r.JobType,
		Location:            r.Location,
		Company:             r.Company,
		CompanyLogo:         r.CompanyLogo,
		Description:         r.Description,
		ApplicationDeadline: r.ApplicationDeadline,
		SalaryRange:         r.SalaryRange,
		Requirements:        r.Requirements,
		Responsibilities:    r.Responsibilities,
		Status:              r.Status,
		Extra:               r.Extra,
	}
}

// InsertResult reports the identifier generated for a new record.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}
