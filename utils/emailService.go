package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// SendEmail delivers one HTML email through Sendgrid. Without an API
// key configured the message is logged and dropped, which keeps local
// development working.
func SendEmail(to, subject, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.SendgridKey == "" {
		log.Printf("[MAILER] (dry run) To: %s Subject: %s", to, subject)
		return nil
	}

	from := mail.NewEmail(cfg.AppName, cfg.EmailSender)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[MAILER] Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[MAILER] Sendgrid rejected email to %s: %d %s", to, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1D3557; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1D3557; line-height: 1.6; }
			.content h2 { color: #1D3557; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #E63946; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 %s. All rights reserved.<br>
				Stay safe on the road.
			</div>
		</div>
	</body>
	</html>
	`, config.AppConfig.AppName, title, bodyContent, config.AppConfig.AppName)
}

// --- Triggers ---

// SendWelcomeEmail greets a freshly registered user.
func SendWelcomeEmail(email string) {
	body := fmt.Sprintf(`
		<p>Your account <strong>%s</strong> is ready.</p>
		<p>Your assigned courses will appear on your dashboard once an
		administrator grants you access.</p>
		<a class="btn" href="%s">Open your dashboard</a>`,
		email, config.AppConfig.AppBaseURL)
	go SendEmail(email, "Welcome aboard", getEmailTemplate("Welcome!", body))
}

// SendCourseAssignedEmail tells a user a course was added to their
// dashboard.
func SendCourseAssignedEmail(email, courseTitle string) {
	body := fmt.Sprintf(`
		<p>You now have access to the course:</p>
		<p><strong>%s</strong></p>
		<a class="btn" href="%s">Start learning</a>`,
		courseTitle, config.AppConfig.AppBaseURL)
	go SendEmail(email, "New course access", getEmailTemplate("A course was assigned to you", body))
}

// SendCourseCompletedEmail congratulates a user on a first-time 100%%
// quiz result.
func SendCourseCompletedEmail(email, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Congratulations! You passed the final quiz of
		<strong>%s</strong> with a full score.</p>
		<p>Your certificate is ready to download from your dashboard.</p>`,
		courseTitle)
	go SendEmail(email, "Course completed", getEmailTemplate("Well done!", body))
}
