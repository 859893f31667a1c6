package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postalclerk/clerk-server/internal/api"
	"github.com/postalclerk/clerk-server/internal/auth"
	"github.com/postalclerk/clerk-server/internal/metrics"
	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/postalclerk/clerk-server/internal/service"
	"github.com/postalclerk/clerk-server/internal/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	TestJWTSecret     = "test-secret-key"
	TestClerkEmail    = "testclerk@example.com"
	TestClerkPassword = "testpassword"
	TestClerkName     = "Test Clerk"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router       *gin.Engine
	Repository   *MemoryRepository
	Service      service.Service
	Tokens       *auth.TokenManager
	TestClerkID  int64
	TestClerkJWT string
}

// SetupTestContext builds the full HTTP stack on top of an in-memory
// repository and seeds one clerk with a valid token.
func SetupTestContext(t *testing.T) *TestContext {
	return SetupTestContextWith(t, api.HandlerOptions{})
}

// SetupTestContextWith is SetupTestContext with custom handler options
func SetupTestContextWith(t *testing.T, opts api.HandlerOptions) *TestContext {
	t.Helper()

	repo := NewMemoryRepository()
	tokens := auth.NewTokenManager(TestJWTSecret, 24*time.Hour)
	svc := service.NewDefaultService(repo, tokens)
	logger := utils.NewNopLogger()

	handler := api.NewHandler(svc, tokens, logger, opts)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(logger), metrics.Middleware())
	handler.SetupRoutes(router)

	clerkID, token := createTestClerk(t, repo, tokens)

	return &TestContext{
		Router:       router,
		Repository:   repo,
		Service:      svc,
		Tokens:       tokens,
		TestClerkID:  clerkID,
		TestClerkJWT: token,
	}
}

func createTestClerk(t *testing.T, repo *MemoryRepository, tokens *auth.TokenManager) (int64, string) {
	t.Helper()

	// MinCost keeps the suite fast; Login only compares hashes
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestClerkPassword), bcrypt.MinCost)
	require.NoError(t, err)

	clerk := &models.Clerk{
		EmployeeID:  "E000",
		Name:        TestClerkName,
		Email:       TestClerkEmail,
		Password:    string(hashedPassword),
		Address:     "1 Post Office Lane",
		PhoneNumber: "0400000000",
	}
	require.NoError(t, repo.CreateClerk(context.Background(), clerk), "Failed to create test clerk")

	token, err := tokens.Issue(clerk.ID)
	require.NoError(t, err, "Failed to generate JWT token")

	return clerk.ID, token
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}

// DecodeJSON unmarshals a recorded response body into v
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "response body: %s", w.Body.String())
}

// ExpiredToken returns a correctly signed token for clerkID that has already expired
func ExpiredToken(clerkID int64) (string, error) {
	return auth.NewTokenManager(TestJWTSecret, -time.Hour).Issue(clerkID)
}
