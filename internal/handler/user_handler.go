package handler

import (
	"net/http"

	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/logger"
	"mindspark/internal/middleware"
	"mindspark/internal/service"
	"mindspark/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const avatarFormField = "avatar"

type UserHandler struct {
	profileService service.ProfileService
	validator      *validation.Validator
	maxAvatarBytes int64
}

func NewUserHandler(profileService service.ProfileService, maxAvatarBytes int64) *UserHandler {
	return &UserHandler{
		profileService: profileService,
		validator:      validation.NewValidator(),
		maxAvatarBytes: maxAvatarBytes,
	}
}

// GetMyProfile retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Description Account fields plus quiz statistics. A missing profile is created on first read.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.GetMyProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateMyProfile godoc
// @Summary Update My Profile
// @Description Only fields present in the body are changed. Changing the password requires current_password.
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse "Wrong current password"
// @Failure 409 {object} middleware.ErrorResponse "Email taken"
// @Router /users/me [put]
func (h *UserHandler) UpdateMyProfile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(err)
	}
	if errs := h.validator.ValidateUpdateProfileRequest(&req); len(errs) > 0 {
		return errs
	}

	profile, err := h.profileService.UpdateMyProfile(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UploadAvatar godoc
// @Summary Upload avatar
// @Description Multipart upload in the "avatar" field. PNG, JPEG, GIF or WebP.
// @Tags users
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.AvatarResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "Object storage not configured"
// @Router /users/me/avatar [put]
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(avatarFormField)
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError(avatarFormField)}
	}
	if fh.Size == 0 {
		return domain.ValidationErrors{domain.NewMissingFieldError(avatarFormField)}
	}
	if h.maxAvatarBytes > 0 && fh.Size > h.maxAvatarBytes {
		return domain.ValidationErrors{domain.NewOutOfRangeError(avatarFormField, fh.Size, 1, int(h.maxAvatarBytes))}
	}

	file, err := fh.Open()
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}
	defer file.Close()

	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType == "" || contentType == fiber.MIMEOctetStream {
		sniff := make([]byte, 512)
		n, _ := file.Read(sniff)
		contentType = http.DetectContentType(sniff[:n])
		if _, err := file.Seek(0, 0); err != nil {
			return domain.NewInternalError("failed to read uploaded file", err)
		}
	}

	resp, err := h.profileService.UploadAvatar(c.UserContext(), userID, contentType, file)
	if err != nil {
		return err
	}
	logger.Get().Info("Avatar uploaded", zap.String("userID", userID), zap.Int64("bytes", fh.Size))
	return c.JSON(resp)
}
