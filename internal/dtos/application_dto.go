package dtos

import (
	"encoding/json"

	"github.com/justsurfingit/jobportal/internal/models"
)

// ApplicationCreationRequest carries a candidate's submission. JobID is not
// checked against existing jobs.
type ApplicationCreationRequest struct {
	JobID            string `json:"job_id"`
	ApplicationEmail string `json:"application_email"`
	LinkedIn         string `json:"linkedIn"`
	Github           string `json:"github"`
	Resume           string `json:"resume"`
	Status           string `json:"status"`

	Extra map[string]any `json:"-"`
}

func (r *ApplicationCreationRequest) UnmarshalJSON(data []byte) error {
	type fields ApplicationCreationRequest
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := models.ApplicationExtra(data)
	if err != nil {
		return err
	}
	*r = ApplicationCreationRequest(f)
	r.Extra = extra
	return nil
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
