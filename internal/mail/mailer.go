// Package mail delivers transactional email through SendGrid.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridMailer sends invitation emails through the SendGrid API.
type SendgridMailer struct {
	client     *sendgrid.Client
	fromEmail  string
	senderName string
}

func NewSendgridMailer(apiKey, fromEmail, senderName string) *SendgridMailer {
	return &SendgridMailer{
		client:     sendgrid.NewSendClient(apiKey),
		fromEmail:  fromEmail,
		senderName: senderName,
	}
}

func (m *SendgridMailer) SendInvitation(ctx context.Context, toEmail, foodtruckName, link string) error {
	html, err := renderInvitation(invitationData{FoodtruckName: foodtruckName, Link: link})
	if err != nil {
		return err
	}

	from := sgmail.NewEmail(m.senderName, m.fromEmail)
	to := sgmail.NewEmail("", toEmail)
	subject := fmt.Sprintf("You have been invited to work at %s", foodtruckName)
	plain := fmt.Sprintf("You have been invited to work at %s. Accept or decline here: %s", foodtruckName, link)
	msg := sgmail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("send invitation email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send invitation email: sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

type invitationData struct {
	FoodtruckName string
	Link          string
}

func renderInvitation(data invitationData) (string, error) {
	var buf bytes.Buffer
	if err := invitationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render invitation email: %w", err)
	}
	return buf.String(), nil
}

var invitationTemplate = template.Must(template.New("invitation").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Work invitation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 30px; background-color: #e67e22; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="container">
        <p>You have been invited to join the crew of <strong>{{.FoodtruckName}}</strong>.</p>
        <div style="text-align: center;">
            <a href="{{.Link}}" class="button">View invitation</a>
        </div>
        <p>Or copy this link into your browser:</p>
        <p style="word-break: break-all; background-color: #e9e9e9; padding: 10px; border-radius: 3px;">{{.Link}}</p>
        <p>If you were not expecting this, you can safely ignore this email.</p>
    </div>
</body>
</html>
`))

// LogMailer is used when no SendGrid key is configured. It prints the
// invitation link instead of delivering it, which is enough for local
// development.
type LogMailer struct {
	Logger *log.Logger
}

func (m *LogMailer) SendInvitation(ctx context.Context, toEmail, foodtruckName, link string) error {
	m.Logger.Printf("invitation for %s to join %s: %s", toEmail, foodtruckName, link)
	return nil
}
