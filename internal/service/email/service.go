package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"griya-properti/internal/config"
)

type Service interface {
	SendNotificationEmail(ctx context.Context, toEmail, recipientName, title, message string) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Griya Properti <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, recipientName, title, message string) error {
	data := struct {
		Title   string
		Name    string
		Message string
		Link    string
	}{
		Title:   title,
		Name:    recipientName,
		Message: message,
		Link:    fmt.Sprintf("https://%s/notifikasi", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("%s - Griya Properti", title), "notification.html", data)
}
