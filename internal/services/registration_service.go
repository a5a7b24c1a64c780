package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"tbexpert/internal/models"
	"tbexpert/internal/repositories"
)

var (
	// ErrAlreadyRegistered — активный аккаунт с таким email уже есть.
	ErrAlreadyRegistered = errors.New("вы уже зарегистрированы, войдите в систему")
	// ErrInvalidOrExpired — код не совпал, просрочен или подтверждать нечего.
	ErrInvalidOrExpired = errors.New("неверный или просроченный код")
	// ErrDeliveryFailed — письмо с кодом отправить не удалось,
	// состояние регистрации при этом не меняется.
	ErrDeliveryFailed   = errors.New("ошибка при отправке письма")
	ErrPasswordMismatch = errors.New("пароли не совпадают")
)

// RegistrationService — регистрация с подтверждением email четырёхзначным
// кодом. Между шагами email ожидающего подтверждения пользователя живёт
// в серверной сессии.
type RegistrationService struct {
	users    repositories.UserRepository
	codes    repositories.EmailVerificationRepository
	sessions repositories.SessionRepository
	mailer   EmailService
	auth     AuthService
	codeTTL  time.Duration
}

func NewRegistrationService(
	users repositories.UserRepository,
	codes repositories.EmailVerificationRepository,
	sessions repositories.SessionRepository,
	mailer EmailService,
	auth AuthService,
	codeTTL time.Duration,
) *RegistrationService {
	return &RegistrationService{
		users:    users,
		codes:    codes,
		sessions: sessions,
		mailer:   mailer,
		auth:     auth,
		codeTTL:  codeTTL,
	}
}

// четырёхзначный код, 1000..9999. Только пакетный rand: обработчики gin
// зовут Register и Resend из разных горутин.
func (s *RegistrationService) generateCode() string {
	return fmt.Sprintf("%d", 1000+rand.Intn(9000))
}

// Register — первый шаг. Письмо уходит до любых записей в БД: если доставка
// не удалась, ни пользователя, ни кода, ни pending email не появляется.
// Обратное окно остаётся: при сбое записи после успешной отправки код в
// письме не подходит ни к чему, лечится повторной регистрацией (новый код
// заменит старый). Неактивный пользователь с тем же email переиспользуется,
// активный — ошибка.
func (s *RegistrationService) Register(sessionToken string, req *models.RegisterRequest) error {
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("register lookup: %w", err)
	}
	if user != nil && user.IsActive {
		return ErrAlreadyRegistered
	}

	if user == nil {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return err
		}
		user = &models.User{
			FullName:     strings.TrimSpace(req.FullName),
			Position:     strings.TrimSpace(req.Position),
			Phone:        strings.TrimSpace(req.Phone),
			Email:        email,
			PasswordHash: hash,
			IsActive:     false,
		}
	}

	code := s.generateCode()
	if err := s.mailer.SendVerificationCode(email, code); err != nil {
		log.Printf("[register][send] email=%q err=%v", email, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if user.ID == 0 {
		if err := s.users.Create(user); err != nil {
			return fmt.Errorf("register create user: %w", err)
		}
	}
	if _, err := s.codes.Replace(email, code, time.Now()); err != nil {
		return err
	}
	if err := s.sessions.SetPendingEmail(sessionToken, email); err != nil {
		return err
	}

	log.Printf("[register] код отправлен email=%q userID=%d", email, user.ID)
	return nil
}

// Confirm — второй шаг. Сверяет код с последней живой записью, активирует
// пользователя и привязывает его к сессии. Pending email снимается только
// при успехе, неверный код оставляет шаг открытым для повтора.
func (s *RegistrationService) Confirm(sessionToken, code string) (*models.User, error) {
	email, err := s.sessions.PendingEmail(sessionToken)
	if err != nil {
		return nil, err
	}
	if email == "" {
		return nil, ErrInvalidOrExpired
	}

	v, err := s.codes.GetLiveByEmail(email)
	if err != nil {
		return nil, err
	}
	if v == nil || v.Code != code || v.Expired(time.Now(), s.codeTTL) {
		log.Printf("[register][confirm] отклонено email=%q", email)
		return nil, ErrInvalidOrExpired
	}

	if err := s.codes.MarkVerified(v.ID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("confirm lookup: %w", err)
	}
	if err := s.users.Activate(user.ID); err != nil {
		return nil, fmt.Errorf("confirm activate: %w", err)
	}
	user.IsActive = true

	if err := s.sessions.BindUser(sessionToken, user.ID); err != nil {
		return nil, err
	}
	if err := s.sessions.ClearPendingEmail(sessionToken); err != nil {
		return nil, err
	}

	if err := s.mailer.SendWelcomeEmail(user.Email, user.FullName); err != nil {
		// аккаунт уже активирован, сбой письма не откатывает подтверждение
		log.Printf("[register][confirm] welcome email не отправлен email=%q err=%v", user.Email, err)
	}

	log.Printf("[register][confirm] активирован userID=%d email=%q", user.ID, user.Email)
	return user, nil
}

// Resend — повторная отправка кода для незавершённой регистрации.
// Старый код при этом перестаёт действовать.
func (s *RegistrationService) Resend(sessionToken string) error {
	email, err := s.sessions.PendingEmail(sessionToken)
	if err != nil {
		return err
	}
	if email == "" {
		return ErrInvalidOrExpired
	}

	code := s.generateCode()
	if err := s.mailer.SendVerificationCode(email, code); err != nil {
		log.Printf("[register][resend] email=%q err=%v", email, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	if _, err := s.codes.Replace(email, code, time.Now()); err != nil {
		return err
	}
	log.Printf("[register][resend] код отправлен повторно email=%q", email)
	return nil
}

// Abort — отказ от незавершённой регистрации: снимает pending email,
// неактивный аккаунт и коды остаются и переиспользуются при новой попытке.
func (s *RegistrationService) Abort(sessionToken string) error {
	return s.sessions.ClearPendingEmail(sessionToken)
}
