package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"waitlist-service/internal/apierrors"
	"waitlist-service/internal/observability"
	"waitlist-service/internal/waitlist/processor"
	"waitlist-service/internal/waitlist/queue"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// SignupRequest represents the HTTP request for joining the waitlist
type SignupRequest struct {
	Role         string        `json:"role" binding:"required"`
	FullName     string        `json:"full_name" binding:"max=200"`
	Email        string        `json:"email" binding:"required,email,max=320"`
	Phone        *string       `json:"phone,omitempty" binding:"omitempty,max=40"`
	Answers      queue.Answers `json:"answers"`
	ReferralCode *string       `json:"referral_code,omitempty" binding:"omitempty,max=64"`
	Consent      bool          `json:"consent"`
	CaptchaToken string        `json:"captcha_token,omitempty"`
}

// HandleSignup handles POST /api/waitlist/signup
//
// The body is either JSON or multipart/form-data with the JSON in a
// "payload" field and an optional "certificate" file.
func (h *Handler) HandleSignup(c *gin.Context) {
	ctx := c.Request.Context()

	var req SignupRequest
	var certificate *processor.Certificate

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes+multipartOverhead)

		if err := c.Request.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				apierrors.RespondWithError(c, processor.ErrInvalidCertificate)
				return
			}
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "malformed multipart body"))
			return
		}

		payload := c.PostForm("payload")
		if payload == "" {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "payload field is required"))
			return
		}
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "payload must be valid JSON"))
			return
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			apierrors.RespondWithValidationError(c, err)
			return
		}

		fileHeader, err := c.FormFile("certificate")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			apierrors.RespondWithError(c, processor.ErrInvalidCertificate)
			return
		default:
			file, err := fileHeader.Open()
			if err != nil {
				h.logger.Error(ctx, "failed to open uploaded certificate", err)
				apierrors.RespondWithError(c, processor.ErrInvalidCertificate)
				return
			}
			defer file.Close()

			certificate, err = readCertificate(file, fileHeader)
			if err != nil {
				h.logger.Error(ctx, "failed to sniff certificate content type", err)
				apierrors.RespondWithError(c, processor.ErrInvalidCertificate)
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	if !h.verifyCaptcha(c, req.CaptchaToken) {
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "role", Value: req.Role})

	response, err := h.processor.Signup(ctx, processor.SignupRequest{
		Role:         req.Role,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Answers:      req.Answers,
		ReferralCode: req.ReferralCode,
		Consent:      req.Consent,
		Certificate:  certificate,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// readCertificate detects the content type from the file's leading bytes
// rather than trusting the client-supplied part header.
func readCertificate(file multipart.File, header *multipart.FileHeader) (*processor.Certificate, error) {
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &processor.Certificate{
		Filename:    header.Filename,
		ContentType: mtype.String(),
		Size:        header.Size,
		Body:        file,
	}, nil
}

// HandleGetStatus handles GET /api/waitlist/status?code=CODE or ?id=UUID
func (h *Handler) HandleGetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	status, err := h.processor.GetStatus(ctx, processor.StatusLookup{
		Code: c.Query("code"),
		ID:   c.Query("id"),
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// RequestCodeRequest represents the HTTP request for a verification code
type RequestCodeRequest struct {
	Email        string `json:"email" binding:"required,email,max=320"`
	CaptchaToken string `json:"captcha_token,omitempty"`
}

// HandleRequestCode handles POST /api/waitlist/otp/request
func (h *Handler) HandleRequestCode(c *gin.Context) {
	ctx := c.Request.Context()

	var req RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	if !h.verifyCaptcha(c, req.CaptchaToken) {
		return
	}

	if err := h.processor.RequestCode(ctx, req.Email); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "If this email is on the waitlist, a verification code is on its way"})
}

// VerifyCodeRequest represents the HTTP request to check a verification code
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email,max=320"`
	Code  string `json:"code" binding:"required,max=16"`
	Role  string `json:"role,omitempty"`
}

// HandleVerifyCode handles POST /api/waitlist/otp/verify
func (h *Handler) HandleVerifyCode(c *gin.Context) {
	ctx := c.Request.Context()

	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	status, err := h.processor.VerifyCode(ctx, processor.VerifyCodeRequest{
		Email: req.Email,
		Code:  req.Code,
		Role:  req.Role,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
