package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// enrollRequest binds the non-file multipart fields of POST /api/face/enroll.
// The image part is read separately from the multipart form.
type enrollRequest struct {
	ExternalID  string `form:"external_id"  validate:"required"`
	DisplayName string `form:"display_name"`
	Contact     string `form:"contact"`
	Role        string `form:"role"         validate:"omitempty,oneof=member admin operator"`
}

// enrollResponse is the business outcome of an enrollment call. Rejections
// (no face, multiple faces) come back with success=false and an error_code,
// on a 200 status: they are policy outcomes, not failures.
type enrollResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PhotoURL  string `json:"photo_url,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// verifiedUser is the subject view included on granted decisions.
type verifiedUser struct {
	ExternalID  string `json:"external_id"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
}

// verifyResponse is the access decision for a verification call. Denials are
// success=false on a 200 status; only infrastructure failures produce 5xx.
type verifyResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    *verifiedUser `json:"user,omitempty"`
}

// accessAttemptResponse is one audit record in the listing.
type accessAttemptResponse struct {
	SubjectRef string    `json:"subject_ref,omitempty"`
	Outcome    string    `json:"outcome"`
	Reason     string    `json:"reason"`
	Confidence float64   `json:"confidence"`
	DeviceRef  string    `json:"device_ref"`
	CreatedAt  time.Time `json:"created_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listAttemptsResponse struct {
	Data       []accessAttemptResponse `json:"data"`
	Pagination paginationResponse      `json:"pagination"`
}
