package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendVerificationCode(email, code string) error
	SendWelcomeEmail(email, fullName string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendVerificationCode(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Добро пожаловать на TB Expert - подтвердите регистрацию")

	body := fmt.Sprintf(`
Приветствуем вас на портале TB Expert!

Для подтверждения регистрации используйте код:
%s

Рады, что вы с нами. Впереди много полезного, практичного и интересного!

С уважением,
Команда TB Expert
https://tbexpert.kz
`, code)

	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

func (s *emailService) SendWelcomeEmail(email, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Регистрация на TB Expert подтверждена")

	body := fmt.Sprintf(`
		<h2>%s, добро пожаловать на TB Expert!</h2>
		<p>Ваша регистрация подтверждена, аккаунт активен.</p>
		<p>С уважением,<br>Команда TB Expert</p>
	`, fullName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
