package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCompletionReport(toEmail, participant string, report CompletionReport) error
}

// CompletionReport summarizes one finished exercise for the participant.
type CompletionReport struct {
	PhaseDurations []PhaseDuration
	CommentsTotal  int
	ResolvedTotal  int
}

type PhaseDuration struct {
	Phase   string
	Elapsed string
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendCompletionReport(toEmail, participant string, report CompletionReport) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your PM Studio exercise report")

	rows := ""
	for _, pd := range report.PhaseDurations {
		rows += fmt.Sprintf("<tr><td style=\"padding:4px 12px;\">%s</td><td style=\"padding:4px 12px;\">%s</td></tr>", pd.Phase, pd.Elapsed)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Well done, %s!</h2>
			<p>You completed the exercise. Here is how your time was spent:</p>
			<table style="border-collapse: collapse;">%s</table>
			<p>Review activity: %d comments received, %d resolved.</p>
		</div>
	`, participant, rows, report.CommentsTotal, report.ResolvedTotal)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send report to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Completion report sent to %s\n", toEmail)
	return nil
}
