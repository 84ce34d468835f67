package dtos

// IdentityPayload is the free-form body of POST /jwt; it must carry an email.
type IdentityPayload map[string]any

type SuccessResponse struct {
	Success bool `json:"success"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
