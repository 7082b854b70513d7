package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/ElCannibal-666/Uptask-Backend/config"
	"github.com/ElCannibal-666/Uptask-Backend/middleware"
	"github.com/ElCannibal-666/Uptask-Backend/store"
	"github.com/ElCannibal-666/Uptask-Backend/utils"
)

type sentMail struct {
	email string
	name  string
	code  string
}

// fakeMailer records dispatched mail instead of talking to a transport.
type fakeMailer struct {
	mu            sync.Mutex
	confirmations []sentMail
	resets        []sentMail
}

func (m *fakeMailer) SendConfirmationEmail(email, name, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, sentMail{email, name, code})
}

func (m *fakeMailer) SendPasswordResetEmail(email, name, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, sentMail{email, name, code})
}

func (m *fakeMailer) confirmationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.confirmations)
}

func (m *fakeMailer) lastConfirmationCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.confirmations)
	return m.confirmations[len(m.confirmations)-1].code
}

func (m *fakeMailer) lastResetCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.resets)
	return m.resets[len(m.resets)-1].code
}

// newTestApp wires the controller against an in-memory database and the
// recording mailer, with the same routes the server registers.
func newTestApp(t *testing.T) (*fiber.App, *AuthController, *fakeMailer) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := config.OpenDB(dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	mail := &fakeMailer{}
	ctl := &AuthController{
		Store:    store.New(db),
		Mail:     mail,
		Sessions: utils.NewSessionIssuer([]byte("test-secret"), time.Hour),
	}

	app := fiber.New()
	auth := app.Group("/api/auth")
	auth.Post("/create-account", ctl.CreateAccount)
	auth.Post("/confirm-account", ctl.ConfirmAccount)
	auth.Post("/login", ctl.Login)
	auth.Post("/request-code", ctl.RequestConfirmationCode)
	auth.Post("/forgot-password", ctl.ForgotPassword)
	auth.Post("/validate-token", ctl.ValidateToken)
	auth.Post("/update-password/:token", ctl.UpdatePasswordWithToken)

	authed := auth.Group("", middleware.AuthRequired(ctl.Sessions, ctl.Store))
	authed.Get("/user", ctl.User)
	authed.Put("/profile", ctl.UpdateProfile)
	authed.Post("/update-password", ctl.UpdateCurrentUserPassword)
	authed.Post("/check-password", ctl.CheckPassword)

	return app, ctl, mail
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any, bearer string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func createAccount(t *testing.T, app *fiber.App, name, email, password string) {
	t.Helper()

	resp, body := doRequest(t, app, http.MethodPost, "/api/auth/create-account", fiber.Map{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
}

// signupConfirmed registers a user, confirms it with the mailed code and
// returns a valid session token for it.
func signupConfirmed(t *testing.T, app *fiber.App, mail *fakeMailer, name, email, password string) string {
	t.Helper()

	createAccount(t, app, name, email, password)

	resp, body := doRequest(t, app, http.MethodPost, "/api/auth/confirm-account", fiber.Map{
		"token": mail.lastConfirmationCode(t),
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = doRequest(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	return body
}
