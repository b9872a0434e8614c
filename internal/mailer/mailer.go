package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/nvegesna/planmyday/internal/planner"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("smtp is not configured")

// Mailer sends finished plans as plain-text email over SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// New builds a mailer. Leaving host or credentials empty produces an
// unconfigured mailer whose sends fail with ErrNotConfigured.
func New(host string, port int, username, password, from string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

// Configured reports whether the mailer holds usable credentials.
func (m *Mailer) Configured() bool {
	return m.host != "" && m.username != "" && m.password != ""
}

// SendPlan emails the finished plan to the recipient.
func (m *Mailer) SendPlan(recipient, name string, result *planner.Result) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	subject := fmt.Sprintf("Your Day Plan for %s", result.Date)
	msg := buildMessage(m.from, recipient, subject, PlanBody(name, result))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{recipient}, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// PlanBody renders the plain-text email body for a finished plan.
func PlanBody(name string, result *planner.Result) string {
	return fmt.Sprintf(
		"Hi %s,\n\nHere is your custom day plan for %s:\n\n%s\n\n---\nWeather:\n%s\n",
		name, result.Date, result.Plan, result.Weather,
	)
}

// RecipientName pulls the user's name out of the persona JSON the profile
// agent produced, falling back to a friendly placeholder when the persona
// is not valid JSON or carries no name.
func RecipientName(personaJSON string) string {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(personaJSON), &parsed); err != nil {
		return "there"
	}
	if name, ok := parsed["name"].(string); ok && name != "" {
		return name
	}
	return "there"
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
