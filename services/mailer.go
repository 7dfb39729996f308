package services

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"ipss-cms/models"
)

type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, password, from string) Mailer {
	if from == "" {
		from = user
	}
	return &smtpMailer{dialer: gomail.NewDialer(host, port, user, password), from: from}
}

func (m *smtpMailer) Send(to []string, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// Notifier sends staff e-mails in the background. A nil mailer or empty
// recipient disables it.
type Notifier struct {
	mailer Mailer
	to     string
	log    *zap.Logger
	// async is false in tests so sends complete before assertions.
	async bool
}

func NewNotifier(mailer Mailer, to string, log *zap.Logger) *Notifier {
	return &Notifier{mailer: mailer, to: to, log: log, async: true}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.mailer != nil && n.to != ""
}

func (n *Notifier) send(subject, body string) {
	if !n.enabled() {
		return
	}
	deliver := func() {
		if err := n.mailer.Send([]string{n.to}, subject, body); err != nil {
			n.log.Warn("notification e-mail failed", zap.String("subject", subject), zap.Error(err))
		}
	}
	if n.async {
		go deliver()
		return
	}
	deliver()
}

func (n *Notifier) ContactMessage(msg *models.ContactMessage) {
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Nome:</strong> %s</p>", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(msg.Email))
	if msg.Phone != nil {
		fmt.Fprintf(&b, "<p><strong>Telefone:</strong> %s</p>", html.EscapeString(*msg.Phone))
	}
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
	n.send("Nova mensagem de contacto: "+msg.Subject, b.String())
}

func (n *Notifier) Inscription(ins *models.Inscription, person *models.Person) {
	body := fmt.Sprintf("<p>Nova inscrição <strong>%s</strong> (%s) para %s.</p>",
		html.EscapeString(ins.Reference), html.EscapeString(string(ins.Kind)), html.EscapeString(person.Name))
	n.send("Nova inscrição "+string(ins.Kind)+" "+ins.Reference, body)
}
