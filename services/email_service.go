package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go.uber.org/zap"

	"adcraft/utils"
)

var magicLinkTemplate = template.Must(template.New("magic_link").Parse(`
<html>
  <body style="font-family: sans-serif;">
    {{if .Signup}}
    <h2>Welcome to AdCraft</h2>
    <p>Click the link below to finish creating your account. It expires in {{.TTLMinutes}} minutes.</p>
    {{else}}
    <h2>Sign in to AdCraft</h2>
    <p>Click the link below to sign in. It expires in {{.TTLMinutes}} minutes.</p>
    {{end}}
    <p><a href="{{.Link}}">{{.Link}}</a></p>
    <p>If you did not request this email you can ignore it.</p>
  </body>
</html>
`))

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewEmailService(cfg EmailConfig) *EmailService {
	return &EmailService{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// SendMagicLink mails a login link. signup switches to the welcome copy.
func (s *EmailService) SendMagicLink(to, link string, ttlMinutes int, signup bool) error {
	subject := "Sign in to AdCraft"
	if signup {
		subject = "Welcome to AdCraft"
	}

	var body bytes.Buffer
	err := magicLinkTemplate.Execute(&body, map[string]interface{}{
		"Link":       link,
		"TTLMinutes": ttlMinutes,
		"Signup":     signup,
	})
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	utils.Logger().Info("magic link email sent", zap.String("to", to))
	return nil
}
