package mail

import (
	"bytes"
	"context"
	"embed"
	"html/template"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/notify"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/infra/config"
	gomail "github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templatesFS embed.FS

type templateParams struct {
	Host     string
	Username string
	Token    string
}

// Mailer delivers templated mail over SMTP. All sends are best-effort from
// the caller's point of view: the services dispatch them off the request path.
type Mailer struct {
	client    *gomail.Client
	from      string
	templates *template.Template
}

func New(cfg *config.Config) (*Mailer, error) {
	tpls, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, customErrors.WrapInternal(err, "parse mail templates")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSSL(),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUsername),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "smtp client")
	}

	return &Mailer{client: client, from: cfg.MailFrom, templates: tpls}, nil
}

var _ notify.Mailer = (*Mailer)(nil)

func (m *Mailer) SendVerification(ctx context.Context, to, username, host, token string) error {
	return m.send(ctx, to, "Confirm your email for Contacts App", "verify_email.html",
		templateParams{Host: host, Username: username, Token: token})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, username, host, token string) error {
	return m.send(ctx, to, "Reset password Contacts App", "reset_password.html",
		templateParams{Host: host, Username: username, Token: token})
}

func (m *Mailer) send(ctx context.Context, to, subject, tpl string, params templateParams) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, tpl, params); err != nil {
		return customErrors.WrapInternal(err, "render "+tpl)
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return customErrors.WrapInternal(err, "mail from")
	}
	if err := msg.To(to); err != nil {
		return customErrors.WrapInternal(err, "mail to")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return customErrors.WrapUnavailable(err, "send mail")
	}
	return nil
}
