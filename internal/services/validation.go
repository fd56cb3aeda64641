package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/wastewise/backend/internal/models"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ErrorMap holds one human readable message per failing field, keyed by the
// field's json name. A missing key means the field is fine.
type ErrorMap map[string]string

var (
	emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	nonDigits  = regexp.MustCompile(`\D`)
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// fieldMessages maps json field name and failing tag to the message shown
// under the input.
var fieldMessages = map[string]map[string]string{
	"name": {
		"notblank": "Name is required",
	},
	"email": {
		"required":   "Email is required",
		"emailshape": "Invalid email format",
	},
	"phone": {
		"required":    "Phone number is required",
		"phonedigits": "Invalid phone number",
	},
	"ward": {
		"required": "Please select a ward",
		"ward":     "Please select a ward",
	},
	"houseNumber": {
		"notblank": "House number is required",
	},
	"address": {
		"notblank": "Address is required",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"confirmPassword": {
		"required": "Please confirm password",
		"eqfield":  "Passwords do not match",
	},
	"emergencyContact": {
		"phonedigits": "Invalid emergency contact number",
	},
	"userType": {
		"oneof": "Please select a valid user type",
	},
	"status": {
		"oneof": "Please select a valid status",
	},
}

// markupOnlyMessages are reported for required free-text fields that pass the
// blank check but hold nothing once markup is stripped.
var markupOnlyMessages = map[models.TextField]string{
	models.FieldName:        "Name contains no text",
	models.FieldHouseNumber: "House number contains no text",
	models.FieldAddress:     "Address contains no text",
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		return IsPhoneNumber(fl.Field().String())
	})
	_ = v.RegisterValidation("ward", func(fl validator.FieldLevel) bool {
		return models.IsWard(fl.Field().String())
	})

	return &ValidationHelper{validator: v}
}

// IsPhoneNumber reports whether s carries between 10 and 15 digits once
// every non-digit character is dropped.
func IsPhoneNumber(s string) bool {
	n := len(nonDigits.ReplaceAllString(s, ""))
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// ValidateDraft checks every rule of the add-user form and returns the
// resulting error map. An empty map means the draft can be submitted.
func (vh *ValidationHelper) ValidateDraft(d models.DraftUser) ErrorMap {
	errs := ErrorMap{}

	err := vh.validator.Struct(&d)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "Invalid form data"
		return errs
	}

	for _, fe := range verrs {
		errs[fe.Field()] = fieldMessage(fe)
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	if byTag, ok := fieldMessages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	if fe.Tag() == "required" {
		return "This field is required"
	}
	return "Invalid value"
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	var details map[string]string
	if validationErr != nil {
		var verrs validator.ValidationErrors
		if errors.As(validationErr, &verrs) {
			details = make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fieldMessage(fe)
			}
		}
	}
	SendErrorDetails(w, message, statusCode, details)
}

// SendErrorDetails sends a JSON error response with an already built
// field-to-message map.
func SendErrorDetails(w http.ResponseWriter, message string, statusCode int, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	if len(details) > 0 {
		errorResp.Details = details
	}

	json.NewEncoder(w).Encode(errorResp)
}
