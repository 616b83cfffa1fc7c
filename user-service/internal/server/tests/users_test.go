package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azaliaz/luxefurnish/user-service/internal/config"
	"github.com/azaliaz/luxefurnish/user-service/internal/domain/models"
	"github.com/azaliaz/luxefurnish/user-service/internal/server"
	"github.com/azaliaz/luxefurnish/user-service/internal/server/mocks"
	storerrros "github.com/azaliaz/luxefurnish/user-service/internal/storage/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
	Error   string `json:"error"`
	User    struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

func testConfig() config.Config {
	return config.Config{
		Addr:      ":8080",
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
}

func setup(t *testing.T, cfg config.Config) (*mocks.MockStorage, *gin.Engine) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockStorage := mocks.NewMockStorage(ctrl)
	return mockStorage, server.New(cfg, mockStorage).Router()
}

func do(router *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) authBody {
	t.Helper()
	var body authBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSignUp_Success(t *testing.T) {
	mockStorage, router := setup(t, testConfig())

	mockStorage.EXPECT().
		SaveUser(models.User{Username: "jane", Email: "jane@example.com", Pass: "password123"}).
		Return(models.User{UID: "user-uuid-1", Username: "jane", Email: "jane@example.com", Role: "user"}, nil).
		Times(1)

	w := do(router, http.MethodPost, "/api/signup", `{"username":"jane","email":"Jane@Example.com","password":"password123"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "User registered successfully", body.Message)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "user", body.Role)
	assert.Equal(t, "jane", body.User.Username)
	assert.Equal(t, "jane@example.com", body.User.Email)
}

func TestSignUp_BadRequest(t *testing.T) {
	_, router := setup(t, testConfig())

	w := do(router, http.MethodPost, "/api/signup", `invalid json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username, email and password are required", decode(t, w).Error)
}

func TestSignUp_ValidationError(t *testing.T) {
	_, router := setup(t, testConfig())

	w := do(router, http.MethodPost, "/api/signup", `{"username":"jane","email":"not-an-email","password":"123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg := decode(t, w).Error
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "password must be at least 6 characters")
}

func TestSignUp_ValidationMessageUsesJSONNames(t *testing.T) {
	_, router := setup(t, testConfig())

	w := do(router, http.MethodPost, "/api/signup",
		`{"username":"`+strings.Repeat("j", 65)+`","email":"jane@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "username must be at most 64 characters", decode(t, w).Error)
}

func TestSignUp_UserAlreadyExists(t *testing.T) {
	mockStorage, router := setup(t, testConfig())
	mockStorage.EXPECT().SaveUser(gomock.Any()).Return(models.User{}, storerrros.ErrUserExists)

	w := do(router, http.MethodPost, "/api/signup", `{"username":"jane","email":"exists@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", decode(t, w).Error)
}

func TestSignUp_StorageFailure(t *testing.T) {
	mockStorage, router := setup(t, testConfig())
	mockStorage.EXPECT().SaveUser(gomock.Any()).Return(models.User{}, errors.New("db down"))

	w := do(router, http.MethodPost, "/api/signup", `{"username":"jane","email":"jane@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decode(t, w).Error)
}

func TestSignIn_Success(t *testing.T) {
	mockStorage, router := setup(t, testConfig())
	mockStorage.EXPECT().ValidUser("test@example.com", "password123").Return(models.User{
		UID:      "user-uuid-1",
		Username: "tester",
		Email:    "test@example.com",
		Role:     "user",
	}, nil)

	w := do(router, http.MethodPost, "/api/signin", `{"email":"test@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "tester", body.User.Username)
	assert.Equal(t, "user", body.Role)
}

func TestSignIn_Admin(t *testing.T) {
	mockStorage, router := setup(t, testConfig())
	mockStorage.EXPECT().ValidUser("admin@gmail.com", "admin123").Return(models.User{
		UID:      "admin-uuid",
		Username: "Admin",
		Email:    "admin@gmail.com",
		Role:     "admin",
	}, nil)

	w := do(router, http.MethodPost, "/api/signin", `{"email":"admin@gmail.com","password":"admin123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "admin", body.Role)
	assert.Equal(t, "Admin", body.User.Username)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	for name, storeErr := range map[string]error{
		"wrong password": storerrros.ErrInvalidPassword,
		"unknown email":  storerrros.ErrUserNoExist,
	} {
		t.Run(name, func(t *testing.T) {
			mockStorage, router := setup(t, testConfig())
			mockStorage.EXPECT().ValidUser(gomock.Any(), gomock.Any()).Return(models.User{}, storeErr)

			w := do(router, http.MethodPost, "/api/signin", `{"email":"bad@x.com","password":"wrong"}`)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Invalid email or password", decode(t, w).Error)
		})
	}
}

func TestSignIn_MissingFields(t *testing.T) {
	_, router := setup(t, testConfig())

	w := do(router, http.MethodPost, "/api/signin", `{"email":"bad@x.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", decode(t, w).Error)
}

func TestSignIn_InternalError(t *testing.T) {
	mockStorage, router := setup(t, testConfig())
	mockStorage.EXPECT().ValidUser(gomock.Any(), gomock.Any()).Return(models.User{}, errors.New("db error"))

	w := do(router, http.MethodPost, "/api/signin", `{"email":"a@x.com","password":"secret1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSignIn_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.SigninRPS = 1
	_, router := setup(t, cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(router, http.MethodPost, "/api/signin", `{}`).Code)
	}

	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestMe_Success(t *testing.T) {
	mockStorage, router := setup(t, testConfig())
	user := models.User{UID: "user-uuid-1", Username: "tester", Email: "test@example.com", Role: "user"}
	mockStorage.EXPECT().ValidUser(gomock.Any(), gomock.Any()).Return(user, nil)
	mockStorage.EXPECT().GetUser("user-uuid-1").Return(user, nil)

	token := decode(t, do(router, http.MethodPost, "/api/signin", `{"email":"test@example.com","password":"password123"}`)).Token
	w := do(router, http.MethodGet, "/api/me", "", "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test@example.com")
}

func TestMe_Unauthorized(t *testing.T) {
	_, router := setup(t, testConfig())

	tests := map[string]string{
		"no header":    "",
		"wrong format": "Token abc",
		"bad token":    "Bearer not.a.jwt",
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			w := do(router, http.MethodGet, "/api/me", "", "Authorization", header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestMe_UserNotFound(t *testing.T) {
	mockStorage, router := setup(t, testConfig())
	user := models.User{UID: "gone", Username: "x", Email: "x@example.com", Role: "user"}
	mockStorage.EXPECT().ValidUser(gomock.Any(), gomock.Any()).Return(user, nil)
	mockStorage.EXPECT().GetUser("gone").Return(models.User{}, storerrros.ErrUserNotFound)

	token := decode(t, do(router, http.MethodPost, "/api/signin", `{"email":"x@example.com","password":"password123"}`)).Token
	w := do(router, http.MethodGet, "/api/me", "", "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), storerrros.ErrUserNotFound.Error())
}

func TestTestRouteAndNotFound(t *testing.T) {
	_, router := setup(t, testConfig())

	w := do(router, http.MethodGet, "/api/test", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "API is working!")

	w = do(router, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "API route not found", decode(t, w).Error)
}

func TestMetrics(t *testing.T) {
	_, router := setup(t, testConfig())
	do(router, http.MethodPost, "/api/signin", `{}`)

	w := do(router, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `luxefurnish_auth_attempts_total{op="signin",result="invalid"}`)
}
