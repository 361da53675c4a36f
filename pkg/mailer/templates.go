package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

// Template names.
const (
	TemplateVerification  = "verification"
	TemplatePasswordReset = "password_reset"
	TemplateWelcome       = "welcome"
)

const verificationTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Welcome to {{ .AppName }}, {{ .FirstName | title }}!</h2>
	<p>Please confirm your email address to activate your account.</p>
	<p>
		<a href="{{ .Link }}" style="background: #2e7d32; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">
			Verify Email
		</a>
	</p>
	<p>This link expires in {{ .ExpiryHours }} hours.</p>
	<p>If you did not create an account, you can ignore this email.</p>
</body>
</html>
`

const passwordResetTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Password Reset</h2>
	<p>Hi {{ .FirstName | title }},</p>
	<p>We received a request to reset the password for your {{ .AppName }} account.</p>
	<p>
		<a href="{{ .Link }}" style="background: #1565c0; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">
			Reset Password
		</a>
	</p>
	<p>This link expires in {{ .ExpiryHours }} hour{{ if gt .ExpiryHours 1 }}s{{ end }}.</p>
	<p>If you did not request a reset, no action is needed.</p>
</body>
</html>
`

const welcomeTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Your email is verified, {{ .FirstName | title }}!</h2>
	<p>Your {{ .AppName }} account is ready. You can now search listings,
	save favorites and contact daycares directly.</p>
	<p>
		<a href="{{ .Link }}" style="background: #2e7d32; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">
			Start Searching
		</a>
	</p>
</body>
</html>
`

// TemplateData carries the values substituted into email templates.
type TemplateData struct {
	AppName     string
	FirstName   string
	Link        string
	ExpiryHours int
}

var templates = template.Must(
	template.New("emails").Funcs(sprig.HtmlFuncMap()).Parse(
		fmt.Sprintf(`{{ define %q }}%s{{ end }}{{ define %q }}%s{{ end }}{{ define %q }}%s{{ end }}`,
			TemplateVerification, verificationTemplate,
			TemplatePasswordReset, passwordResetTemplate,
			TemplateWelcome, welcomeTemplate,
		),
	),
)

// Render executes the named template with the given data.
func Render(name string, data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
