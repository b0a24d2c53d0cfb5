package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"keeper/config"
	"keeper/internal/delivery/api/middleware"
	"keeper/internal/delivery/api/router"
	"keeper/internal/delivery/api/router/handler"
	"keeper/internal/domain/entity"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/service"
	"keeper/internal/errors"
	mockSvc "keeper/internal/mocks/service"
	mockUC "keeper/internal/mocks/usecase"
	"keeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testFrontendURL = "http://app.example.com"

type serverFixtures struct {
	echo         *echo.Echo
	userUC       *mockUC.MockUserUsecase
	oauthUC      *mockUC.MockOAuthUsecase
	noteUC       *mockUC.MockNoteUsecase
	tokenService *mockSvc.MockTokenService
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1KB"
	cfg.HTTP.AllowOrigins = []string{testFrontendURL}
	cfg.OAuth = &config.OAuthConfig{FrontendURL: testFrontendURL}

	return cfg
}

func createTestServer(t *testing.T) serverFixtures {
	f := serverFixtures{
		userUC:       mockUC.NewMockUserUsecase(t),
		oauthUC:      mockUC.NewMockOAuthUsecase(t),
		noteUC:       mockUC.NewMockNoteUsecase(t),
		tokenService: mockSvc.NewMockTokenService(t),
	}
	logger := slog.New(slog.DiscardHandler)
	cfg := newTestConfig()

	f.echo = newEcho(cfg, logger, router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{UserUC: f.userUC, Logger: logger}),
		OAuthHandler:   handler.NewOAuthHandler(handler.OAuthHandlerParams{OAuthUC: f.oauthUC, Config: cfg, Logger: logger}),
		NoteHandler:    handler.NewNoteHandler(handler.NoteHandlerParams{NoteUC: f.noteUC, Logger: logger}),
		AuthMiddleware: middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{TokenService: f.tokenService, Logger: logger}),
	})

	return f
}

func (f serverFixtures) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

func (f serverFixtures) authenticate(token string, userID int64) {
	f.tokenService.On("Verify", token).Return(&service.Claims{UserID: userID, Email: "u@example.com"}, nil)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

func TestHealth(t *testing.T) {
	f := createTestServer(t)

	rec := f.do(http.MethodGet, "/api/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Server is running"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestUnknownRoute(t *testing.T) {
	f := createTestServer(t)

	rec := f.do(http.MethodGet, "/api/nope", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Route not found","code":"NOT_FOUND"}`, rec.Body.String())
}

func TestRegister(t *testing.T) {
	f := createTestServer(t)

	f.userUC.On("Register", mock.Anything, usecase.RegisterInput{
		Email: "alice@example.com", Username: "alice", Password: "secret1",
	}).Return(&usecase.AuthOutput{
		User:  &entity.User{ID: 1, Email: "alice@example.com", Username: "alice", PasswordHash: new(string)},
		Token: "tok",
	}, nil)

	rec := f.do(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com","username":"alice","password":"secret1"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"message":"User registered successfully",
		"user":{"id":1,"email":"alice@example.com","username":"alice"},
		"token":"tok"
	}`, rec.Body.String())
}

func TestRegister_MissingFields(t *testing.T) {
	f := createTestServer(t)

	rec := f.do(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email, username, and password are required", decode[map[string]string](t, rec)["message"])
}

func TestRegister_MalformedJSON(t *testing.T) {
	f := createTestServer(t)

	rec := f.do(http.MethodPost, "/api/auth/register", `{"email":`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode[map[string]string](t, rec)["code"])
}

func TestRegister_BodyTooLarge(t *testing.T) {
	f := createTestServer(t)

	rec := f.do(http.MethodPost, "/api/auth/register", `{"email":"`+strings.Repeat("a", 2048)+`"}`, "")

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRegister_Conflict(t *testing.T) {
	f := createTestServer(t)

	f.userUC.On("Register", mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrUserAlreadyExists.WrapMessage("taken"), "failed to execute user registration transaction"))

	rec := f.do(http.MethodPost, "/api/auth/register", `{"email":"a@example.com","username":"a","password":"secret1"}`, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists", decode[map[string]string](t, rec)["message"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := createTestServer(t)

	f.userUC.On("Login", mock.Anything, usecase.LoginInput{Email: "a@example.com", Password: "bad"}).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed"))

	rec := f.do(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"bad"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode[map[string]string](t, rec)["message"])
}

func TestMe(t *testing.T) {
	f := createTestServer(t)
	f.authenticate("tok", 3)

	f.userUC.On("Me", mock.Anything, int64(3)).Return(&entity.User{ID: 3, Email: "c@example.com", Username: "c"}, nil)

	rec := f.do(http.MethodGet, "/api/auth/me", "", "tok")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":{"id":3,"email":"c@example.com","username":"c"}}`, rec.Body.String())
}

func TestProtectedRoutes_TokenErrors(t *testing.T) {
	f := createTestServer(t)
	f.tokenService.On("Verify", "garbage").Return(nil, errors.New("token is malformed"))

	rec := f.do(http.MethodGet, "/api/notes", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token required", decode[map[string]string](t, rec)["message"])

	rec = f.do(http.MethodGet, "/api/auth/me", "", "garbage")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode[map[string]string](t, rec)["message"])
}

func TestNotes_CRUD(t *testing.T) {
	f := createTestServer(t)
	f.authenticate("tok", 1)

	f.noteUC.On("List", mock.Anything, int64(1)).Return([]*entity.Note{}, nil)
	rec := f.do(http.MethodGet, "/api/notes", "", "tok")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notes":[]}`, rec.Body.String())

	f.noteUC.On("Create", mock.Anything, int64(1), usecase.NoteInput{Title: "T", Content: "C"}).
		Return(&entity.Note{ID: 5, UserID: 1, Title: "T", Content: "C"}, nil)
	rec = f.do(http.MethodPost, "/api/notes", `{"title":"T","content":"C"}`, "tok")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Note created successfully","note":{"id":5,"title":"T","content":"C"}}`, rec.Body.String())

	f.noteUC.On("Update", mock.Anything, int64(5), int64(1), usecase.NoteInput{Title: "T2", Content: "C2"}).
		Return(&entity.Note{ID: 5, UserID: 1, Title: "T2", Content: "C2"}, nil)
	rec = f.do(http.MethodPut, "/api/notes/5", `{"title":"T2","content":"C2"}`, "tok")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "T2", decode[map[string]any](t, rec)["note"].(map[string]any)["title"])

	f.noteUC.On("Delete", mock.Anything, int64(5), int64(1)).Return(nil)
	rec = f.do(http.MethodDelete, "/api/notes/5", "", "tok")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Note deleted successfully"}`, rec.Body.String())
}

func TestNotes_Errors(t *testing.T) {
	f := createTestServer(t)
	f.authenticate("tok", 2)

	rec := f.do(http.MethodPost, "/api/notes", `{"title":"T"}`, "tok")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title and content are required", decode[map[string]string](t, rec)["message"])

	rec = f.do(http.MethodDelete, "/api/notes/abc", "", "tok")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_NOTE_ID", decode[map[string]string](t, rec)["code"])

	f.noteUC.On("Delete", mock.Anything, int64(9), int64(2)).Return(domainerrors.ErrNoteForbidden.WrapMessage("owner mismatch"))
	rec = f.do(http.MethodDelete, "/api/notes/9", "", "tok")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", decode[map[string]string](t, rec)["message"])

	f.noteUC.On("Update", mock.Anything, int64(10), int64(2), mock.Anything).Return(nil, domainerrors.ErrNoteNotFound.WrapMessage("gone"))
	rec = f.do(http.MethodPut, "/api/notes/10", `{"title":"T","content":"C"}`, "tok")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note not found", decode[map[string]string](t, rec)["message"])

	f.noteUC.On("List", mock.Anything, int64(2)).Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("conn refused"), "list"))
	rec = f.do(http.MethodGet, "/api/notes", "", "tok")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "conn refused")
}

func TestOAuth_Begin(t *testing.T) {
	f := createTestServer(t)

	f.oauthUC.On("Begin", mock.Anything, entity.ProviderGitHub).Return("https://github.example/authorize?state=s", nil)
	f.oauthUC.On("Begin", mock.Anything, entity.ProviderType("myspace")).
		Return("", domainerrors.ErrOAuthProviderNotFound.WrapMessage("provider myspace not configured"))

	rec := f.do(http.MethodGet, "/api/oauth/github", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://github.example/authorize?state=s", rec.Header().Get(echo.HeaderLocation))

	rec = f.do(http.MethodGet, "/api/oauth/myspace", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOAuth_Callback(t *testing.T) {
	f := createTestServer(t)

	f.oauthUC.On("Complete", mock.Anything, usecase.OAuthCallbackInput{
		Provider: entity.ProviderGoogle, Code: "c0de", State: "st",
	}).Return(&usecase.AuthOutput{User: &entity.User{ID: 12, Username: "jane doe"}, Token: "tok"}, nil)

	rec := f.do(http.MethodGet, "/api/oauth/google/callback?code=c0de&state=st", "", "")

	require.Equal(t, http.StatusFound, rec.Code)
	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, testFrontendURL+"/auth-success", location.Scheme+"://"+location.Host+location.Path)
	assert.Equal(t, "tok", location.Query().Get("token"))
	assert.Equal(t, "12", location.Query().Get("userId"))
	assert.Equal(t, "jane doe", location.Query().Get("username"))
}

func TestOAuth_CallbackFailureRedirects(t *testing.T) {
	f := createTestServer(t)

	f.oauthUC.On("Complete", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrOAuthStateInvalid.WrapMessage("bad state"))

	rec := f.do(http.MethodGet, "/api/oauth/google/callback?code=c&state=forged", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, testFrontendURL+"/login?error=oauth_failed", rec.Header().Get(echo.HeaderLocation))

	rec = f.do(http.MethodGet, "/api/oauth/google/callback?error=access_denied", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, testFrontendURL+"/login?error=oauth_failed", rec.Header().Get(echo.HeaderLocation))
	f.oauthUC.AssertNumberOfCalls(t, "Complete", 1)
}

func TestCORS_Preflight(t *testing.T) {
	f := createTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set(echo.HeaderOrigin, testFrontendURL)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testFrontendURL, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}
