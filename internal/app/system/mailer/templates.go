// internal/app/system/mailer/templates.go
package mailer

import (
	"html/template"
	"strings"
)

var (
	inviteTmpl = template.Must(template.New("invite").Parse(`
<p>Hi{{if .Name}} {{.Name}}{{end}},</p>
<p>You have been invited to join the <strong>{{.WorkspaceName}}</strong> workspace on TaskHub as a {{.Role}}.</p>
<p><a href="{{.AcceptURL}}">Accept the invitation</a></p>
<p>This invitation expires in 7 days.</p>
`))

	verifyTmpl = template.Must(template.New("verify").Parse(`
<p>Hi {{.Name}},</p>
<p>Welcome to TaskHub. Please confirm your email address.</p>
<p><a href="{{.VerifyURL}}">Verify email</a></p>
<p>This link expires in 1 hour. If you did not create an account, ignore this message.</p>
`))

	resetTmpl = template.Must(template.New("reset").Parse(`
<p>Hi {{.Name}},</p>
<p>We received a request to reset your TaskHub password.</p>
<p><a href="{{.ResetURL}}">Reset password</a></p>
<p>This link expires in 15 minutes. If you did not request a reset, ignore this message.</p>
`))
)

func render(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return ""
	}
	return b.String()
}

// SendWorkspaceInvite emails an invitation link.
func (m *Mailer) SendWorkspaceInvite(to, name, workspaceName, role, acceptURL string) bool {
	body := render(inviteTmpl, map[string]string{
		"Name":          name,
		"WorkspaceName": workspaceName,
		"Role":          role,
		"AcceptURL":     acceptURL,
	})
	return m.Send(to, "You've been invited to "+workspaceName+" on TaskHub", body)
}

// SendEmailVerification emails an address-confirmation link.
func (m *Mailer) SendEmailVerification(to, name, verifyURL string) bool {
	body := render(verifyTmpl, map[string]string{
		"Name":      name,
		"VerifyURL": verifyURL,
	})
	return m.Send(to, "Verify your TaskHub email", body)
}

// SendPasswordReset emails a password-reset link.
func (m *Mailer) SendPasswordReset(to, name, resetURL string) bool {
	body := render(resetTmpl, map[string]string{
		"Name":     name,
		"ResetURL": resetURL,
	})
	return m.Send(to, "Reset your TaskHub password", body)
}
