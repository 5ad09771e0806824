package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
)

const (
	maxImageSize = 16 * 1024 * 1024 // 16MB
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

// BiometricService interface for the service
type BiometricService interface {
	Identify(ctx context.Context, image []byte, typ domain.BiometricType, clientIP string) (*domain.MatchResult, error)
	Register(ctx context.Context, image []byte, typ domain.BiometricType, contentType string) (*domain.Biometric, error)
	Get(ctx context.Context, id string) (*domain.Biometric, error)
	List(ctx context.Context, typ *domain.BiometricType, limit, offset int) ([]domain.Biometric, int, error)
	Delete(ctx context.Context, id string) error
	CheckLiveness(ctx context.Context, image []byte, threshold float64) (*domain.LivenessResult, error)
}

// BiometricHandler handles biometric-related requests
type BiometricHandler struct {
	service           BiometricService
	livenessThreshold float64
	logger            *slog.Logger
}

// NewBiometricHandler creates a new BiometricHandler instance
func NewBiometricHandler(service BiometricService, livenessThreshold float64, logger *slog.Logger) *BiometricHandler {
	return &BiometricHandler{
		service:           service,
		livenessThreshold: livenessThreshold,
		logger:            logger,
	}
}

// CompareResponse response for the compare (identify) endpoint
type CompareResponse struct {
	Found bool    `json:"found"`
	ID    string  `json:"id,omitempty"`
	Type  string  `json:"type"`
	Score float64 `json:"score,omitempty"`
}

// RegisterResponse response for the register endpoint
type RegisterResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// BiometricResponse is one record in list/get responses
type BiometricResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListResponse response for the list endpoint
type ListResponse struct {
	Data []BiometricResponse `json:"data"`
	Meta ListMeta            `json:"meta"`
}

type ListMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// LivenessResponse response for the liveness check endpoint
type LivenessResponse struct {
	IsLive     bool     `json:"is_live"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons,omitempty"`
}

// Compare POST /v1/biometrics/compare - identify the submitted sample
// against the enrolled set
func (h *BiometricHandler) Compare(c *fiber.Ctx) error {
	typ, err := extractType(c)
	if err != nil {
		return err
	}

	imageBytes, _, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("identify biometric: %w", err)
	}

	result, err := h.service.Identify(c.Context(), imageBytes, typ, c.IP())
	if err != nil {
		return err
	}

	return c.JSON(CompareResponse{
		Found: result.Found,
		ID:    result.ID,
		Type:  result.Type.String(),
		Score: result.Score,
	})
}

// Register POST /v1/biometrics - enroll a new biometric sample
func (h *BiometricHandler) Register(c *fiber.Ctx) error {
	typ, err := extractType(c)
	if err != nil {
		return err
	}

	imageBytes, contentType, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("register biometric: %w", err)
	}

	biometric, err := h.service.Register(c.Context(), imageBytes, typ, contentType)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{
		ID:        biometric.ID,
		Type:      biometric.Type.String(),
		CreatedAt: formatTimestamp(biometric.CreatedAt),
	})
}

// Get GET /v1/biometrics/:id - fetch one record
func (h *BiometricHandler) Get(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return domain.ErrValidationFailed.WithError(fmt.Errorf("id is required"))
	}

	biometric, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(BiometricResponse{
		ID:        biometric.ID,
		Type:      biometric.Type.String(),
		CreatedAt: formatTimestamp(biometric.CreatedAt),
		UpdatedAt: formatTimestamp(biometric.UpdatedAt),
	})
}

// List GET /v1/biometrics - list records, newest first, optionally
// filtered by type
func (h *BiometricHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	var typ *domain.BiometricType
	if v := c.Query("type"); v != "" {
		parsed, err := domain.ParseBiometricType(v)
		if err != nil {
			return err
		}
		typ = &parsed
	}

	biometrics, total, err := h.service.List(c.Context(), typ, limit, offset)
	if err != nil {
		return err
	}

	data := make([]BiometricResponse, 0, len(biometrics))
	for _, b := range biometrics {
		data = append(data, BiometricResponse{
			ID:        b.ID,
			Type:      b.Type.String(),
			CreatedAt: formatTimestamp(b.CreatedAt),
			UpdatedAt: formatTimestamp(b.UpdatedAt),
		})
	}

	return c.JSON(ListResponse{
		Data: data,
		Meta: ListMeta{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	})
}

// Delete DELETE /v1/biometrics/:id - remove a record (LGPD)
func (h *BiometricHandler) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return domain.ErrValidationFailed.WithError(fmt.Errorf("id is required"))
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CheckLiveness POST /v1/biometrics/liveness - check if the face image
// shows a live person
func (h *BiometricHandler) CheckLiveness(c *fiber.Ctx) error {
	imageBytes, _, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("check liveness: %w", err)
	}

	result, err := h.service.CheckLiveness(c.Context(), imageBytes, h.livenessThreshold)
	if err != nil {
		return err
	}

	return c.JSON(LivenessResponse{
		IsLive:     result.IsLive,
		Confidence: result.Confidence,
		Reasons:    result.Reasons,
	})
}

// formatTimestamp renders a timestamp as RFC 3339 in UTC
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// extractType parses the biometric type from the form
func extractType(c *fiber.Ctx) (domain.BiometricType, error) {
	return domain.ParseBiometricType(c.FormValue("type"))
}

// extractAndValidateImage extracts and validates the image from the form
func extractAndValidateImage(c *fiber.Ctx) ([]byte, string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, "", domain.ErrValidationFailed.WithError(err)
	}

	if file.Size > maxImageSize {
		return nil, "", domain.ErrInvalidImage
	}

	if file.Size == 0 {
		return nil, "", domain.ErrInvalidImage
	}

	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, "", domain.ErrInvalidImage
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, "", domain.ErrInvalidImage.WithError(err)
	}

	return imageBytes, contentType, nil
}
