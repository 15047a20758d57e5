package utils

import (
	"fmt"
	"html"
	"net/smtp"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// RoomInfo is a room's number and type as shown in emails.
type RoomInfo struct {
	Number string
	Type   string
}

// ConfirmationEmail carries everything the booking confirmation mail shows.
type ConfirmationEmail struct {
	Recipient     string
	GuestName     string
	ReferenceCode string
	HotelName     string
	Room          RoomInfo
	CheckIn       string
	CheckOut      string
	Nights        int
	GuestsCount   int
	TotalPrice    string
}

type smtpSettings struct {
	host, port, user, pass, fromName string
}

func loadSMTPSettings() (smtpSettings, bool) {
	s := smtpSettings{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USERNAME"),
		pass:     os.Getenv("SMTP_PASSWORD"),
		fromName: EnvOrDefault("SMTP_FROM_NAME", "Hotel Reservations"),
	}
	return s, s.host != "" && s.port != "" && s.user != "" && s.pass != ""
}

// SendBookingConfirmationEmail mails the guest a plain text and HTML
// confirmation. Without SMTP settings the mail is only logged.
func SendBookingConfirmationEmail(msg ConfirmationEmail) error {
	smtpCfg, ok := loadSMTPSettings()
	if !ok {
		logrus.WithFields(logrus.Fields{
			"to":        MaskEmail(msg.Recipient),
			"reference": msg.ReferenceCode,
			"room":      roomText(msg.Room),
		}).Info("[MOCK EMAIL] booking confirmation")
		return nil
	}

	guestName := safeHeader(msg.GuestName)
	ref := safeHeader(msg.ReferenceCode)
	hotel := safeHeader(msg.HotelName)

	from := fmt.Sprintf("%s <%s>", smtpCfg.fromName, smtpCfg.user)
	auth := smtp.PlainAuth("", smtpCfg.user, smtpCfg.pass, smtpCfg.host)
	addr := fmt.Sprintf("%s:%s", smtpCfg.host, smtpCfg.port)

	subject := fmt.Sprintf("Booking Confirmation %s - %s", ref, hotel)
	boundary := "----=_BOOKING_CONFIRMATION_BOUNDARY"

	plainBody := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your stay at %s is confirmed.\n\n"+
			"Booking Reference: %s\n"+
			"Room: %s\n"+
			"Check-In: %s\n"+
			"Check-Out: %s\n"+
			"Nights: %d\n"+
			"Guests: %d\n"+
			"Total: %s\n\n"+
			"Best regards,\n%s",
		guestName, hotel, ref, roomText(msg.Room),
		msg.CheckIn, msg.CheckOut, msg.Nights, msg.GuestsCount, msg.TotalPrice,
		smtpCfg.fromName,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Booking Confirmation</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:700px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.label { font-weight:700; width:160px; display:inline-block; vertical-align:top; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Booking Confirmation</h2>
    <p>Dear %s,</p>
    <p>Your stay at <strong>%s</strong> is confirmed.</p>
    <p><span class="label">Booking Reference:</span> %s</p>
    <p><span class="label">Room:</span> %s</p>
    <p><span class="label">Check-In:</span> %s</p>
    <p><span class="label">Check-Out:</span> %s</p>
    <p><span class="label">Nights:</span> %d</p>
    <p><span class="label">Guests:</span> %d</p>
    <p><span class="label">Total:</span> %s</p>
    <p>Best regards,<br>%s</p>
  </div>
</div>
</body>
</html>`,
		html.EscapeString(guestName), html.EscapeString(hotel), html.EscapeString(ref), html.EscapeString(roomText(msg.Room)),
		html.EscapeString(msg.CheckIn), html.EscapeString(msg.CheckOut), msg.Nights, msg.GuestsCount,
		html.EscapeString(msg.TotalPrice), html.EscapeString(smtpCfg.fromName),
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", msg.Recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpCfg.user, []string{msg.Recipient}, []byte(sb.String())); err != nil {
		return fmt.Errorf("failed to send confirmation to %s: %w", MaskEmail(msg.Recipient), err)
	}

	logrus.WithField("to", MaskEmail(msg.Recipient)).Info("confirmation email sent")
	return nil
}

func safeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func roomText(r RoomInfo) string {
	num := strings.TrimSpace(r.Number)
	typ := strings.TrimSpace(r.Type)
	if typ == "" {
		return num
	}
	return fmt.Sprintf("%s (%s)", num, typ)
}

// MaskEmail hides most of an address for logs.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}
	local := parts[0]
	domain := parts[1]

	maskedLocal := local
	if len(local) > 2 {
		maskedLocal = local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:]
	} else if len(local) == 2 {
		maskedLocal = local[:1] + "*"
	}

	domainParts := strings.Split(domain, ".")
	if len(domainParts) >= 2 && len(domainParts[0]) > 1 {
		domainParts[0] = domainParts[0][:1] + strings.Repeat("*", len(domainParts[0])-1)
	}

	return maskedLocal + "@" + strings.Join(domainParts, ".")
}
