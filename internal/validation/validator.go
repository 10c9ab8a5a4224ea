package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/util"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores bytes beyond 72
	MaxNameLength     = 100
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates a quiz generation request. An empty
// language is accepted and means English.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if n := utf8.RuneCountInString(topic); n > domain.MaxTopicLength {
		errors = append(errors, domain.NewOutOfRangeError("topic", n, 1, domain.MaxTopicLength))
	}

	if strings.TrimSpace(req.Difficulty) == "" {
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	} else if _, err := domain.ParseDifficulty(req.Difficulty); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}

	if req.Count < domain.MinQuestionCount || req.Count > domain.MaxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("count", req.Count, domain.MinQuestionCount, domain.MaxQuestionCount))
	}

	if _, err := domain.ParseLanguage(req.Language); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("language", req.Language))
	}

	return errors
}

// ValidateSubmitQuizRequest validates a submission. A null selected_option
// marks the question as unanswered. Any integer option is accepted; options
// that match no answer are graded incorrect.
func (v *Validator) ValidateSubmitQuizRequest(req *dto.SubmitQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Answers == nil {
		errors = append(errors, domain.NewMissingFieldError("answers"))
		return errors
	}
	for _, a := range req.Answers {
		if strings.TrimSpace(a.QuestionID) == "" {
			errors = append(errors, domain.NewMissingFieldError("answers.question_id"))
		}
	}

	return errors
}

func (v *Validator) ValidateRegisterRequest(req *dto.RegisterRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Username) == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	} else if !usernamePattern.MatchString(req.Username) {
		errors = append(errors, domain.NewInvalidFormatError("username", req.Username))
	}

	errors = append(errors, validateEmail(req.Email)...)
	errors = append(errors, validatePassword("password", req.Password)...)

	if utf8.RuneCountInString(req.Name) > MaxNameLength {
		errors = append(errors, domain.NewOutOfRangeError("name", utf8.RuneCountInString(req.Name), 0, MaxNameLength))
	}

	return errors
}

func (v *Validator) ValidateLoginRequest(req *dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Username) == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	}
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

func (v *Validator) ValidateRefreshTokenRequest(req *dto.RefreshTokenRequest) domain.ValidationErrors {
	if strings.TrimSpace(req.RefreshToken) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("refresh_token")}
	}
	return nil
}

// ValidateUpdateProfileRequest validates only the fields that are present.
func (v *Validator) ValidateUpdateProfileRequest(req *dto.UpdateProfileRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Name != nil && utf8.RuneCountInString(*req.Name) > MaxNameLength {
		errors = append(errors, domain.NewOutOfRangeError("name", utf8.RuneCountInString(*req.Name), 0, MaxNameLength))
	}
	if req.Email != nil {
		errors = append(errors, validateEmail(*req.Email)...)
	}
	if req.Password != nil {
		errors = append(errors, validatePassword("password", *req.Password)...)
		if req.CurrentPassword == "" {
			errors = append(errors, domain.NewMissingFieldError("current_password"))
		}
	}

	return errors
}

func (v *Validator) ValidatePagination(p *dto.Pagination) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if p.Limit < 0 || p.Limit > dto.MaxPageLimit {
		errors = append(errors, domain.NewOutOfRangeError("limit", p.Limit, 1, dto.MaxPageLimit))
	}
	if p.Offset < 0 {
		errors = append(errors, domain.NewInvalidFormatError("offset", p.Offset))
	}
	if p.Page < 0 {
		errors = append(errors, domain.NewInvalidFormatError("page", p.Page))
	}

	return errors
}

// ValidateID checks that an identifier path parameter is a ULID.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if !util.IsValidULID(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, id)}
	}
	return nil
}

func validateEmail(email string) domain.ValidationErrors {
	if strings.TrimSpace(email) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("email")}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.ValidationErrors{domain.NewInvalidFormatError("email", email)}
	}
	return nil
}

func validatePassword(field, password string) domain.ValidationErrors {
	if password == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError(field, len(password), MinPasswordLength, MaxPasswordLength)}
	}
	return nil
}
