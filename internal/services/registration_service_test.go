package services

import (
	"database/sql"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tbexpert/internal/models"
)

// ===== фейковые зависимости =====

type fakeUsers struct {
	byEmail   map[string]*models.User
	nextID    int
	activated []int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUsers) Create(u *models.User) error {
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsers) GetByID(id int) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUsers) GetByEmail(email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) Update(u *models.User) error { return nil }

func (f *fakeUsers) Activate(id int) error {
	f.activated = append(f.activated, id)
	for _, u := range f.byEmail {
		if u.ID == id {
			u.IsActive = true
		}
	}
	return nil
}

func (f *fakeUsers) UpdateRefresh(userID int, token string, expiresAt time.Time) error { return nil }
func (f *fakeUsers) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeUsers) ClearRefresh(userID int) error { return nil }
func (f *fakeUsers) GetByRefreshToken(token string) (*models.User, error) {
	return nil, sql.ErrNoRows
}

type fakeCodes struct {
	live     map[string]*models.EmailVerification
	nextID   int64
	replaces int
}

func newFakeCodes() *fakeCodes {
	return &fakeCodes{live: map[string]*models.EmailVerification{}, nextID: 1}
}

func (f *fakeCodes) Replace(email, code string, createdAt time.Time) (int64, error) {
	id := f.nextID
	f.nextID++
	f.replaces++
	f.live[email] = &models.EmailVerification{ID: id, Email: email, Code: code, CreatedAt: createdAt}
	return id, nil
}

func (f *fakeCodes) GetLiveByEmail(email string) (*models.EmailVerification, error) {
	v, ok := f.live[email]
	if !ok || v.Verified {
		return nil, nil
	}
	return v, nil
}

func (f *fakeCodes) MarkVerified(id int64) error {
	for _, v := range f.live {
		if v.ID == id {
			v.Verified = true
		}
	}
	return nil
}

type fakeSessions struct {
	pending map[string]string
	users   map[string]int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{pending: map[string]string{}, users: map[string]int{}}
}

func (f *fakeSessions) PendingEmail(token string) (string, error) { return f.pending[token], nil }
func (f *fakeSessions) SetPendingEmail(token, email string) error {
	f.pending[token] = email
	return nil
}
func (f *fakeSessions) ClearPendingEmail(token string) error {
	delete(f.pending, token)
	return nil
}
func (f *fakeSessions) BindUser(token string, userID int) error {
	f.users[token] = userID
	return nil
}

type fakeMailer struct {
	sentCodes []string
	sentTo    []string
	failNext  bool
}

func (f *fakeMailer) SendVerificationCode(email, code string) error {
	if f.failNext {
		f.failNext = false
		return errors.New("smtp: connection refused")
	}
	f.sentTo = append(f.sentTo, email)
	f.sentCodes = append(f.sentCodes, code)
	return nil
}

func (f *fakeMailer) SendWelcomeEmail(email, fullName string) error { return nil }

func (f *fakeMailer) lastCode() string { return f.sentCodes[len(f.sentCodes)-1] }

type fakeAuth struct{}

func (fakeAuth) HashPassword(password string) (string, error) { return "hashed:" + password, nil }
func (fakeAuth) CheckPassword(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newTestRegistration(t *testing.T) (*RegistrationService, *fakeUsers, *fakeCodes, *fakeSessions, *fakeMailer) {
	t.Helper()
	users := newFakeUsers()
	codes := newFakeCodes()
	sessions := newFakeSessions()
	mailer := &fakeMailer{}
	svc := NewRegistrationService(users, codes, sessions, mailer, fakeAuth{}, 10*time.Minute)
	return svc, users, codes, sessions, mailer
}

func registerReq() *models.RegisterRequest {
	return &models.RegisterRequest{
		FullName:        "Иванов Иван",
		Position:        "Специалист по ОТ",
		Phone:           "+77001234567",
		Email:           "ivanov@example.kz",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

// ===== тесты =====

func TestRegister_HappyPath(t *testing.T) {
	svc, users, codes, sessions, mailer := newTestRegistration(t)

	require.NoError(t, svc.Register("sess-1", registerReq()))

	u, err := users.GetByEmail("ivanov@example.kz")
	require.NoError(t, err)
	require.False(t, u.IsActive)
	require.Equal(t, "hashed:secret123", u.PasswordHash)

	require.Equal(t, "ivanov@example.kz", sessions.pending["sess-1"])
	require.Len(t, mailer.sentCodes, 1)
	require.Len(t, mailer.lastCode(), 4)

	user, err := svc.Confirm("sess-1", mailer.lastCode())
	require.NoError(t, err)
	require.True(t, user.IsActive)
	require.Equal(t, user.ID, sessions.users["sess-1"])
	require.Empty(t, sessions.pending["sess-1"])

	// код одноразовый
	_, err = svc.Confirm("sess-1", mailer.lastCode())
	require.ErrorIs(t, err, ErrInvalidOrExpired)
	_ = codes
}

// генерация кода должна переживать параллельные Register/Resend
// из обработчиков gin (ловится go test -race)
func TestGenerateCode_ConcurrentCallers(t *testing.T) {
	svc, _, _, _, _ := newTestRegistration(t)

	const goroutines, perGoroutine = 8, 50
	out := make(chan string, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				out <- svc.generateCode()
			}
		}()
	}
	wg.Wait()
	close(out)

	for code := range out {
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 1000)
		require.LessOrEqual(t, n, 9999)
	}
}

func TestRegister_ActiveUserRejected(t *testing.T) {
	svc, users, codes, _, mailer := newTestRegistration(t)

	active := &models.User{Email: "ivanov@example.kz", IsActive: true}
	require.NoError(t, users.Create(active))

	err := svc.Register("sess-1", registerReq())
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.Empty(t, mailer.sentCodes)
	require.Zero(t, codes.replaces)
}

func TestRegister_InactiveUserReused(t *testing.T) {
	svc, users, _, _, mailer := newTestRegistration(t)

	require.NoError(t, svc.Register("sess-1", registerReq()))
	first, err := users.GetByEmail("ivanov@example.kz")
	require.NoError(t, err)

	// повторная попытка не плодит второго пользователя
	require.NoError(t, svc.Register("sess-2", registerReq()))
	second, err := users.GetByEmail("ivanov@example.kz")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, mailer.sentCodes, 2)
}

func TestRegister_DeliveryFailureLeavesNothing(t *testing.T) {
	svc, users, codes, sessions, mailer := newTestRegistration(t)
	mailer.failNext = true

	err := svc.Register("sess-1", registerReq())
	require.ErrorIs(t, err, ErrDeliveryFailed)
	require.Contains(t, err.Error(), "connection refused")

	_, err = users.GetByEmail("ivanov@example.kz")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.Zero(t, codes.replaces)
	require.Empty(t, sessions.pending)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, _, _, _, _ := newTestRegistration(t)
	req := registerReq()
	req.ConfirmPassword = "other"
	require.ErrorIs(t, svc.Register("sess-1", req), ErrPasswordMismatch)
}

func TestConfirm_WrongCodeKeepsPending(t *testing.T) {
	svc, users, _, sessions, mailer := newTestRegistration(t)
	require.NoError(t, svc.Register("sess-1", registerReq()))

	wrong := "0000"
	if mailer.lastCode() == wrong {
		wrong = "0001"
	}
	_, err := svc.Confirm("sess-1", wrong)
	require.ErrorIs(t, err, ErrInvalidOrExpired)

	// шаг подтверждения остаётся открытым, аккаунт неактивен
	require.Equal(t, "ivanov@example.kz", sessions.pending["sess-1"])
	u, err := users.GetByEmail("ivanov@example.kz")
	require.NoError(t, err)
	require.False(t, u.IsActive)

	// верный код после неудачной попытки всё ещё работает
	_, err = svc.Confirm("sess-1", mailer.lastCode())
	require.NoError(t, err)
}

func TestConfirm_ExpiredCode(t *testing.T) {
	svc, _, codes, _, mailer := newTestRegistration(t)
	require.NoError(t, svc.Register("sess-1", registerReq()))

	codes.live["ivanov@example.kz"].CreatedAt = time.Now().Add(-11 * time.Minute)

	_, err := svc.Confirm("sess-1", mailer.lastCode())
	require.ErrorIs(t, err, ErrInvalidOrExpired)
}

func TestConfirm_NoPendingEmail(t *testing.T) {
	svc, _, _, _, _ := newTestRegistration(t)
	_, err := svc.Confirm("sess-unknown", "1234")
	require.ErrorIs(t, err, ErrInvalidOrExpired)
}

func TestResend_ReplacesCode(t *testing.T) {
	svc, _, codes, _, mailer := newTestRegistration(t)
	require.NoError(t, svc.Register("sess-1", registerReq()))
	old := mailer.lastCode()

	require.NoError(t, svc.Resend("sess-1"))
	require.Equal(t, 2, codes.replaces)

	// действует только последний код
	if old != mailer.lastCode() {
		_, err := svc.Confirm("sess-1", old)
		require.ErrorIs(t, err, ErrInvalidOrExpired)
	}
	_, err := svc.Confirm("sess-1", mailer.lastCode())
	require.NoError(t, err)
}

func TestAbort_ClearsPendingOnly(t *testing.T) {
	svc, users, _, sessions, _ := newTestRegistration(t)
	require.NoError(t, svc.Register("sess-1", registerReq()))

	require.NoError(t, svc.Abort("sess-1"))
	require.Empty(t, sessions.pending)

	// неактивный аккаунт остаётся и переиспользуется
	u, err := users.GetByEmail("ivanov@example.kz")
	require.NoError(t, err)
	require.False(t, u.IsActive)
	require.NoError(t, svc.Register("sess-2", registerReq()))
}
