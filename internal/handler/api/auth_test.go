//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/handler/api"
	resdto "hostel-backoffice/internal/handler/dto/response"
	"hostel-backoffice/internal/pkg/config"
	"hostel-backoffice/internal/pkg/cookie"
	"hostel-backoffice/internal/pkg/ptr"
	"hostel-backoffice/internal/testutil"
	"hostel-backoffice/internal/testutil/httptest"
	commandsmock "hostel-backoffice/internal/testutil/mock/commands"
	queriesmock "hostel-backoffice/internal/testutil/mock/queries"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockUsers    *queriesmock.MockUserQueries
	actorID      uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockUsers = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.actorID = uuid.New()

	h := api.NewAuthHandler(s.mockCommands, s.mockUsers, config.NewTestConfig())
	s.router.POST("/auth/register", h.Register)
	s.router.POST("/auth/login", h.Login)
	s.router.POST("/auth/logout", h.Logout)
	s.router.GET("/auth/me", fakeAuth(s.actorID), h.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestRegister() {
	reqBody := map[string]any{
		"username":   "cliente1",
		"email":      "cliente1@example.com",
		"password":   "password123",
		"first_name": "Juan",
		"last_name":  "Perez",
		"phone":      "+34 600 000 000",
	}

	s.Run("success: maps every field and returns the id", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Register(gomock.Any(), commands.RegisterInput{
			Username:  "cliente1",
			Email:     "cliente1@example.com",
			Password:  "password123",
			FirstName: "Juan",
			LastName:  "Perez",
			Phone:     ptr.To("+34 600 000 000"),
		}).Return(id, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", reqBody, "")

		var body resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(id, body.ID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "password shorter than 8", mutate: testutil.Field("password", "short")},
			{name: "malformed email", mutate: testutil.Field("email", "not-an-email")},
			{name: "missing username", mutate: testutil.Field("username", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", testutil.DtoMap(s.T(), reqBody, tc.mutate), "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 409 when the email or username is taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(uuid.Nil, shared.ErrAlreadyExists).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Already exists")
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	reqBody := map[string]any{"email": "admin@example.com", "password": "password123"}

	s.Run("success: returns the token and sets the session cookie", func() {
		userID := uuid.New()
		s.mockCommands.EXPECT().Login(gomock.Any(), commands.LoginInput{Email: "admin@example.com", Password: "password123"}).
			Return(&commands.LoginResult{UserID: userID, Role: user.RoleAdministrator, Token: "signed.jwt", ExpiresIn: time.Hour}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", reqBody, "")

		var body resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("signed.jwt", body.AccessToken)
		s.Equal("Bearer", body.TokenType)
		s.Equal(int64(3600), body.ExpiresIn)
		s.Equal("administrator", body.Role)

		c := httptest.ExtractCookie(rec, cookie.SessionCookieName)
		s.Require().NotNil(c)
		s.Equal("signed.jwt", c.Value)
		s.True(c.HttpOnly)
	})

	s.Run("error: 401 on bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
		s.Nil(httptest.ExtractCookie(rec, cookie.SessionCookieName))
	})
}

func (s *AuthHandlerTestSuite) TestLogoutClearsCookie() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")

	s.Equal(http.StatusNoContent, rec.Code)
	c := httptest.ExtractCookie(rec, cookie.SessionCookieName)
	s.Require().NotNil(c)
	s.Empty(c.Value)
	s.LessOrEqual(c.MaxAge, 0)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success: returns the caller's profile", func() {
		s.mockUsers.EXPECT().GetCurrentUser(gomock.Any(), s.actorID).
			Return(&queries.UserView{ID: s.actorID, Username: "cliente1", Role: "client"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "client-token")

		var body queries.UserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cliente1", body.Username)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
