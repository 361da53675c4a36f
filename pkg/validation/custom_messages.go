package validation

// CustomMessage returns field-specific validation messages, keyed by
// validator tag. Returns nil when the field has no overrides.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"Email": {
			"required": "email is required",
			"email":    "email must be a valid email address",
		},
		"Password": {
			"required": "password is required",
			"min":      "password must be at least 6 characters",
		},
		"FirstName": {
			"required": "first name is required",
		},
		"LastName": {
			"required": "last name is required",
		},
		"UserType": {
			"required": "account type is required",
			"oneof":    "account type must be parent or provider",
		},
		"Token": {
			"required": "token is required",
		},
		"RefreshToken": {
			"required": "refresh token is required",
		},
		"CurrentPassword": {
			"required": "current password is required",
		},
		"NewPassword": {
			"required": "new password is required",
			"min":      "new password must be at least 6 characters",
		},
		"DaycareID": {
			"required": "daycare id is required",
		},
		"ChildName": {
			"required": "child name is required",
		},
		"ChildAge": {
			"required": "child age is required",
			"gte":      "child age must be at least 1",
			"lte":      "child age must be at most 18",
		},
	}
	return customValidationMessages[field]
}
