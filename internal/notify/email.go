package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"

	"github.com/wneessen/go-mail"

	"cestas/internal/models"
)

var preCheckInTemplate = template.Must(template.New("precheckin").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: Arial, sans-serif;">
	<h2>Novo pré-check-in recebido</h2>
	<p><strong>CPF do hóspede principal:</strong> {{.LeadGuestCPF}}</p>
	<p><strong>Hóspedes:</strong> {{len .Guests}}</p>
	<p><strong>Recebido em:</strong> {{.ReceivedAt}}</p>
	{{range $key, $value := .Extra}}<p><strong>{{$key}}:</strong> {{$value}}</p>
	{{end}}
</body>
</html>`))

type preCheckInView struct {
	LeadGuestCPF string
	Guests       []interface{}
	ReceivedAt   string
	Extra        map[string]interface{}
}

// Mailer sends back-office notifications over SMTP.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	to       string
}

func NewMailer(host string, port int, user, password, from, to string) *Mailer {
	return &Mailer{host: host, port: port, user: user, password: password, from: from, to: to}
}

func (m *Mailer) NotifyPreCheckIn(ctx context.Context, preCheckIn models.PreCheckIn) error {
	msg, err := m.preCheckInMessage(preCheckIn)
	if err != nil {
		return err
	}
	return m.send(ctx, msg)
}

func (m *Mailer) preCheckInMessage(preCheckIn models.PreCheckIn) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.from, err)
	}
	if err := msg.To(m.to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", m.to, err)
	}
	msg.Subject(fmt.Sprintf("Pré-check-in recebido - CPF %s", preCheckIn.LeadGuestCPF))

	view := preCheckInView{
		LeadGuestCPF: preCheckIn.LeadGuestCPF,
		Guests:       preCheckIn.Guests,
		ReceivedAt:   preCheckIn.CreatedAt.Local().Format("02/01/2006 15:04"),
		Extra:        preCheckIn.Extra,
	}
	if err := msg.SetBodyHTMLTemplate(preCheckInTemplate, view); err != nil {
		return nil, fmt.Errorf("could not render pre-check-in e-mail: %w", err)
	}
	return msg, nil
}

func (m *Mailer) send(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{ServerName: m.host}),
	}
	if m.user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.user),
			mail.WithPassword(m.password),
		)
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("could not create SMTP client (host=%s port=%d): %w", m.host, m.port, err)
	}

	log.Printf("[NOTIFY] sending mail via %s:%d", m.host, m.port)
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("could not send mail (host=%s port=%d): %w", m.host, m.port, err)
	}
	return nil
}
