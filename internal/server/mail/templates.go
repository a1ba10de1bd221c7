package mail

import (
	"bytes"
	"html/template"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <p>{{if .Login}}Welcome, {{.Login}}!{{else}}Welcome!{{end}}</p>
  <p>Thank you for registering with Forward Trading.</p>
  <p>To finish your registration, click the button:</p>
  <a href="{{.Link}}" style="display: inline-block; padding: 12px 24px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px;">Confirm email</a>
  <p>Or copy the link into your browser:<br><small>{{.Link}}</small></p>
  <div style="color: #666; font-size: 12px; margin-top: 30px;">
    <p><strong>Note:</strong></p>
    <ul>
      <li>The link is valid for 24 hours</li>
      <li>If you did not register, just ignore this message</li>
    </ul>
    <p>Regards,<br>The Forward Trading team</p>
  </div>
</body>
</html>
`))

var passwordResetTmpl = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <p>Hello!</p>
  <p>A password reset was requested for this address.</p>
  <p>To reset your password, click the button:</p>
  <a href="{{.Link}}" style="display: inline-block; padding: 12px 24px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px;">Reset password</a>
  <p>Or copy the link into your browser:<br><small>{{.Link}}</small></p>
  <div style="color: #666; font-size: 12px; margin-top: 30px;">
    <p><strong>Note:</strong></p>
    <ul>
      <li>The link is valid for 1 hour</li>
      <li>If you did not request a reset, just ignore this message</li>
    </ul>
    <p>Regards,<br>The Forward Trading team</p>
  </div>
</body>
</html>
`))

func renderVerification(login, link string) (string, error) {
	var buf bytes.Buffer
	err := verificationTmpl.Execute(&buf, struct {
		Login string
		Link  string
	}{login, link})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderPasswordReset(link string) (string, error) {
	var buf bytes.Buffer
	err := passwordResetTmpl.Execute(&buf, struct{ Link string }{link})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
