package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartdoor/biometric-api/internal/core/domain"
	"github.com/smartdoor/biometric-api/internal/core/ports"
)

const defaultDeviceRef = "terminal_01"

// FaceHandler handles HTTP requests for enrollment and verification.
type FaceHandler struct {
	enrollment   ports.EnrollmentService
	verification ports.VerificationService
}

func NewFaceHandler(enrollment ports.EnrollmentService, verification ports.VerificationService) *FaceHandler {
	return &FaceHandler{enrollment: enrollment, verification: verification}
}

// Enroll handles POST /api/face/enroll.
//
// @Summary      Enroll a face for an external identifier
// @Tags         face
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        external_id   formData  string  true   "Stable business key (e.g. employee code)"
// @Param        display_name  formData  string  false  "Display name"
// @Param        contact       formData  string  false  "Contact address"
// @Param        image         formData  file    true   "Face capture"
// @Success      200  {object}  enrollResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/face/enroll [post]
func (h *FaceHandler) Enroll(c echo.Context) error {
	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := readImagePart(c)
	if err != nil {
		return err
	}

	result, err := h.enrollment.Enroll(c.Request().Context(), ports.EnrollInput{
		ExternalID:  req.ExternalID,
		DisplayName: req.DisplayName,
		Contact:     req.Contact,
		Role:        req.Role,
		Image:       image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrExternalIDRequired) || errors.Is(err, domain.ErrImageDecode) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	if result.Rejected {
		return c.JSON(http.StatusOK, enrollResponse{
			Success:   false,
			Message:   rejectMessage(result.RejectCode),
			ErrorCode: result.RejectCode,
		})
	}

	return c.JSON(http.StatusOK, enrollResponse{
		Success:  true,
		Message:  "Face registered successfully and photo saved.",
		PhotoURL: result.PhotoURL,
	})
}

// Verify handles POST /api/face/verify.
//
// @Summary      Verify a live capture against the enrolled registry
// @Tags         face
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file    true   "Live capture"
// @Param        X-Device-Ref  header  string  false  "Originating device"
// @Success      200  {object}  verifyResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/face/verify [post]
func (h *FaceHandler) Verify(c echo.Context) error {
	image, err := readImagePart(c)
	if err != nil {
		return err
	}

	deviceRef := c.Request().Header.Get("X-Device-Ref")
	if deviceRef == "" {
		deviceRef = c.FormValue("device_ref")
	}
	if deviceRef == "" {
		deviceRef = defaultDeviceRef
	}

	result, err := h.verification.Verify(c.Request().Context(), ports.VerifyInput{
		Image:     image,
		DeviceRef: deviceRef,
	})
	if err != nil {
		return err
	}

	if !result.Granted {
		return c.JSON(http.StatusOK, verifyResponse{
			Success: false,
			Message: denialMessage(result.Reason),
		})
	}

	return c.JSON(http.StatusOK, verifyResponse{
		Success: true,
		Message: "Access Granted",
		User: &verifiedUser{
			ExternalID:  result.Identity.ExternalID,
			DisplayName: result.Identity.DisplayName,
			Role:        result.Identity.Role,
		},
	})
}

// readImagePart extracts the uploaded image bytes from the multipart form.
func readImagePart(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// The original clients send the part as "file"; accept both.
		fh, err = c.FormFile("file")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	return readMultipartFile(fh)
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not open uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	return data, nil
}

func rejectMessage(code string) string {
	switch code {
	case ports.RejectNoFace:
		return "No face detected."
	case ports.RejectMultipleFaces:
		return "Multiple faces detected."
	default:
		return "Enrollment rejected."
	}
}

func denialMessage(reason domain.Reason) string {
	switch reason {
	case domain.ReasonNoFace:
		return "No face detected."
	case domain.ReasonNoRegistry:
		return "No registered users found in system."
	default:
		return "Access Denied: Face not recognized."
	}
}
