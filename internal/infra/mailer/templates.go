package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var (
	verificationTmpl = template.Must(template.New("verify").Parse(`<!doctype html>
<html><body style="font-family:sans-serif;line-height:1.5">
<h2>Welcome, {{.Name}}</h2>
<p>Confirm your email address to activate your gallery.</p>
<p><a href="{{.Link}}" style="display:inline-block;padding:10px 18px;background:#111;color:#fff;text-decoration:none">Verify email</a></p>
<p>This link expires in {{.Hours}} hours. Accounts that stay unverified are removed.</p>
</body></html>`))

	resetTmpl = template.Must(template.New("reset").Parse(`<!doctype html>
<html><body style="font-family:sans-serif;line-height:1.5">
<h2>Password reset</h2>
<p>Hi {{.Name}}, someone asked to reset the password of your account.</p>
<p><a href="{{.Link}}" style="display:inline-block;padding:10px 18px;background:#111;color:#fff;text-decoration:none">Choose a new password</a></p>
<p>The link expires in {{.Hours}} hour(s). If it wasn't you, ignore this email.</p>
</body></html>`))
)

type linkData struct {
	Name  string
	Link  string
	Hours int
}

func render(t *template.Template, d linkData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func VerificationEmail(to, name, link string, hours int) (Message, error) {
	html, err := render(verificationTmpl, linkData{Name: name, Link: link, Hours: hours})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "Verify your email",
		HTML:    html,
		Text:    fmt.Sprintf("Hi %s,\n\nVerify your email address:\n\n%s\n\nThe link expires in %d hours.", name, link, hours),
	}, nil
}

func PasswordResetEmail(to, name, link string, hours int) (Message, error) {
	html, err := render(resetTmpl, linkData{Name: name, Link: link, Hours: hours})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: "Reset your password",
		HTML:    html,
		Text:    fmt.Sprintf("Hi %s,\n\nReset your password here:\n\n%s\n\nThe link expires in %d hour(s).", name, link, hours),
	}, nil
}
