package notification

import (
	"embed"
	"html/template"
	"strings"

	"github.com/aitoolbox/gatekeeper/internal/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var templateFiles = map[Type]string{
	TypeRegistrationReceived: "registration_received.html",
	TypeAdminNewRequest:      "admin_new_request.html",
	TypeApproved:             "approved.html",
	TypeRejected:             "rejected.html",
}

var subjects = map[Type]string{
	TypeRegistrationReceived: "AI Toolbox: registration received",
	TypeAdminNewRequest:      "AI Toolbox: new registration request",
	TypeApproved:             "AI Toolbox: your account has been approved",
	TypeRejected:             "AI Toolbox: your registration was not approved",
}

// Render produces the subject and HTML body for a message.
func Render(msg Message) (subject, html string, err error) {
	file, ok := templateFiles[msg.Type]
	if !ok {
		return "", "", ErrUnknownType
	}

	var body strings.Builder
	if err := emailTemplates.ExecuteTemplate(&body, file, msg); err != nil {
		return "", "", errors.Wrap(err, "failed to render notification template")
	}

	return subjects[msg.Type], body.String(), nil
}
