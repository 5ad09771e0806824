package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// CompareResponse represents the response for an identification search
type CompareResponse struct {
	Found bool    `json:"found" example:"true"`
	ID    string  `json:"id,omitempty" example:"FACE-3F2A09B1C4"`
	Type  string  `json:"type" example:"face"`
	Score float64 `json:"score,omitempty" example:"0.32"`
}

// RegisterResponse represents the response for a successful enrollment
type RegisterResponse struct {
	ID        string `json:"id" example:"FACE-3F2A09B1C4"`
	Type      string `json:"type" example:"face"`
	CreatedAt string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// BiometricResponse represents one enrolled record
type BiometricResponse struct {
	ID        string `json:"id" example:"PALM-0D77E1A2F9"`
	Type      string `json:"type" example:"palm"`
	CreatedAt string `json:"created_at" example:"2024-01-01T00:00:00Z"`
	UpdatedAt string `json:"updated_at" example:"2024-01-01T00:00:00Z"`
}

// ListResponse represents a page of enrolled records
type ListResponse struct {
	Data []BiometricResponse `json:"data"`
	Meta ListMeta            `json:"meta"`
}

// ListMeta carries pagination metadata
type ListMeta struct {
	Total  int `json:"total" example:"120"`
	Limit  int `json:"limit" example:"50"`
	Offset int `json:"offset" example:"0"`
}

// LivenessResponse represents the response for a liveness check
type LivenessResponse struct {
	IsLive     bool     `json:"is_live" example:"true"`
	Confidence float64  `json:"confidence" example:"0.95"`
	Reasons    []string `json:"reasons,omitempty" example:"[]"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// DuplicateErrorResponse represents the enrollment guard rejection
type DuplicateErrorResponse struct {
	Code       string  `json:"code" example:"BIOMETRIC_ALREADY_REGISTERED"`
	Message    string  `json:"message" example:"This biometric is already registered"`
	ExistingID string  `json:"existing_id" example:"FACE-3F2A09B1C4"`
	Score      float64 `json:"score" example:"0.12"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "BioID Biometric Identification API",
		Version:     "v1.0.0",
		Description: "Biometric identification service: enrolls face and palm vein samples and identifies people against the enrolled set",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/biometrics/compare - Identify
		endpoint.New(
			endpoint.POST,
			"/biometrics/compare",
			endpoint.WithTags("Biometrics"),
			endpoint.WithSummary("Identify a biometric sample"),
			endpoint.WithDescription("Scans the enrolled records of the given type and returns the best match above the type's threshold, or found=false"),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CompareResponse{}, "200", "Identification completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "FACE_IN_PALM_IMAGE", Message: "A face was detected in the palm image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// POST /v1/biometrics - Register
		endpoint.New(
			endpoint.POST,
			"/biometrics",
			endpoint.WithTags("Biometrics"),
			endpoint.WithSummary("Enroll a new biometric sample"),
			endpoint.WithDescription("Extracts features from the image and enrolls them. Rejects samples that already match an enrolled record of the same type."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RegisterResponse{}, "201", "Biometric enrolled successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(DuplicateErrorResponse{}, "409", "Biometric already registered"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "MULTIPLE_FACES", Message: "Multiple faces detected"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "LIVENESS_FAILED", Message: "Liveness check failed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/biometrics - List
		endpoint.New(
			endpoint.GET,
			"/biometrics",
			endpoint.WithTags("Biometrics"),
			endpoint.WithSummary("List enrolled biometrics"),
			endpoint.WithDescription("Returns a page of enrolled records, newest first, optionally filtered by type"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("type", parameter.Query, parameter.WithDescription("Optional type filter (face / palm)")),
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Page size (1-200, default 50)")),
				parameter.IntParam("offset", parameter.Query, parameter.WithDescription("Page offset (default 0)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListResponse{}, "200", "Records listed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/biometrics/:id - Get
		endpoint.New(
			endpoint.GET,
			"/biometrics/{id}",
			endpoint.WithTags("Biometrics"),
			endpoint.WithSummary("Get an enrolled biometric"),
			endpoint.WithDescription("Retrieves one record by its id"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Record id (FACE-... / PALM-...)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(BiometricResponse{}, "200", "Record retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "BIOMETRIC_NOT_FOUND", Message: "Biometric record not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// DELETE /v1/biometrics/:id - Delete
		endpoint.New(
			endpoint.DELETE,
			"/biometrics/{id}",
			endpoint.WithTags("Biometrics"),
			endpoint.WithSummary("Delete an enrolled biometric"),
			endpoint.WithDescription("Deletes the record and its stored image (LGPD compliance)"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Record id (FACE-... / PALM-...)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Record deleted successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "BIOMETRIC_NOT_FOUND", Message: "Biometric record not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// POST /v1/biometrics/liveness - Check Liveness
		endpoint.New(
			endpoint.POST,
			"/biometrics/liveness",
			endpoint.WithTags("Biometrics"),
			endpoint.WithSummary("Check if a face image shows a live person"),
			endpoint.WithDescription("Performs passive liveness detection on the provided face image"),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(LivenessResponse{}, "200", "Liveness check completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Invalid image file"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
