package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.renderTemplate("password_reset", passwordResetTemplate, map[string]string{
		"Email":    toEmail,
		"ResetURL": resetURL,
		"AppName":  "SahajBooks",
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	message := s.buildHTMLEmail(toEmail, "Reset Your Password - SahajBooks", htmlContent)
	return s.sendEmail(toEmail, message)
}

// InvoiceEmailData carries the fields rendered into the invoice email.
type InvoiceEmailData struct {
	CustomerName  string
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	TotalAmount   string
	CompanyName   string
}

// SendInvoiceEmail notifies a customer that an invoice was issued to them.
func (s *EmailService) SendInvoiceEmail(toEmail string, data InvoiceEmailData) error {
	htmlContent, err := s.renderTemplate("invoice", invoiceTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Invoice %s from %s", data.InvoiceNumber, data.CompanyName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)
	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return []byte(headers + htmlBody)
}

func (s *EmailService) renderTemplate(name, body string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(body)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// passwordResetTemplate is the HTML template for password reset emails
const passwordResetTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Reset Your Password</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
            <td style="background: #1a936f; padding: 32px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px;">{{.AppName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 36px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 22px;">Reset Your Password</h2>
                <p style="color: #4a5568; font-size: 15px; line-height: 1.6;">
                    We received a request to reset the password for the account associated with <strong>{{.Email}}</strong>.
                </p>
                <p style="color: #4a5568; font-size: 15px; line-height: 1.6;">
                    Click the button below to reset your password. This link will expire in <strong>1 hour</strong>.
                </p>
                <table role="presentation" style="margin: 24px auto;">
                    <tr>
                        <td style="background: #1a936f; border-radius: 8px;">
                            <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 32px; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600;">Reset Password</a>
                        </td>
                    </tr>
                </table>
                <p style="color: #718096; font-size: 13px; line-height: 1.6;">
                    If you didn't request this password reset, you can safely ignore this email.
                </p>
                <p style="color: #1a936f; font-size: 13px; word-break: break-all;">
                    <a href="{{.ResetURL}}" style="color: #1a936f;">{{.ResetURL}}</a>
                </p>
            </td>
        </tr>
    </table>
</body>
</html>
`

// invoiceTemplate is the HTML template for invoice notification emails
const invoiceTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Invoice {{.InvoiceNumber}}</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
            <td style="background: #1a936f; padding: 32px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px;">{{.CompanyName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 36px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 22px;">Invoice {{.InvoiceNumber}}</h2>
                <p style="color: #4a5568; font-size: 15px; line-height: 1.6;">Dear {{.CustomerName}},</p>
                <p style="color: #4a5568; font-size: 15px; line-height: 1.6;">
                    Invoice <strong>{{.InvoiceNumber}}</strong> dated {{.InvoiceDate}} has been issued to you
                    for <strong>&#8377;{{.TotalAmount}}</strong>{{if .DueDate}}, payable by <strong>{{.DueDate}}</strong>{{end}}.
                </p>
                <p style="color: #718096; font-size: 13px; line-height: 1.6;">
                    Please reach out to {{.CompanyName}} for any questions about this invoice.
                </p>
            </td>
        </tr>
    </table>
</body>
</html>
`
