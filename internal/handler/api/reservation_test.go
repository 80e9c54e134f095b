//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/handler/api"
	resdto "hostel-backoffice/internal/handler/dto/response"
	"hostel-backoffice/internal/pkg/errs"
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

// fakeAuth stands in for AuthMiddleware: the bearer value picks the role.
func fakeAuth(actorID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.GetHeader("Authorization") {
		case "":
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		case "Bearer admin-token":
			c.Set("actor", shared.Actor{UserID: actorID, Role: user.RoleAdministrator})
		default:
			c.Set("actor", shared.Actor{UserID: actorID, Role: user.RoleClient})
		}
		c.Next()
	}
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	actorID      uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.actorID = uuid.New()
	h := api.NewReservationHandler(s.mockCommands, s.mockQueries)

	auth := fakeAuth(s.actorID)
	s.router.POST("/reservations", auth, h.Create)
	s.router.GET("/reservations", auth, h.List)
	s.router.GET("/reservations/:id", auth, h.Get)
	s.router.PUT("/reservations/:id", auth, h.Update)
	s.router.PATCH("/reservations/:id/status", auth, h.ChangeStatus)
	s.router.DELETE("/reservations/:id", auth, h.Delete)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) view(id uuid.UUID) *queries.ReservationView {
	return &queries.ReservationView{
		ID:         id,
		UserID:     s.actorID,
		Username:   "cliente1",
		RoomID:     uuid.New(),
		RoomNumber: "101",
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-04",
		Nights:     3,
		Status:     "pending",
	}
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"
	roomID := uuid.New()
	reqBody := map[string]any{
		"room_id":    roomID.String(),
		"start_date": "2025-03-01",
		"end_date":   "2025-03-04",
	}

	s.Run("success: returns 201 with the created reservation", func() {
		id := uuid.New()
		expectedIn := commands.CreateReservationInput{
			RoomID:    roomID,
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		}
		s.mockCommands.EXPECT().Create(gomock.Any(), shared.Actor{UserID: s.actorID, Role: user.RoleClient}, expectedIn).
			Return(id, nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any(), id).Return(s.view(id), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "client-token")

		var body queries.ReservationView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(id, body.ID)
		s.Equal(3, body.Nights)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/reservations/" + id.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseReservation{
			{name: "missing field: room_id", mutate: testutil.Field("room_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: start_date", mutate: testutil.Field("start_date", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: end_date", mutate: testutil.Field("end_date", nil), expectCode: http.StatusBadRequest},
			{name: "start_date not a calendar day", mutate: testutil.Field("start_date", "2025-03-01T10:00:00Z"), expectCode: http.StatusBadRequest},
			{name: "end_date impossible day", mutate: testutil.Field("end_date", "2025-02-30"), expectCode: http.StatusBadRequest},
			{name: "room_id not a uuid", mutate: testutil.Field("room_id", "101"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "client-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 409 Conflict names the room and the conflicting reservation", func() {
		conflicting := uuid.New()
		overlap := &reservation.OverlapError{RoomNumber: "101", ConflictingID: conflicting}
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.Wrap(overlap, "create reservation")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "client-token")

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "overlaps")
		s.Equal("101", body.Detail["room_number"])
		s.Equal(conflicting.String(), body.Detail["conflicting_reservation_id"])
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "end before start",
				commandsError:  errs.Invalid(reservation.ErrInvalidRange),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid request",
			},
			{
				name:           "client books for another user",
				commandsError:  shared.ErrForbidden,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Forbidden",
			},
			{
				name:           "room does not exist",
				commandsError:  shared.NotFound(shared.ErrRoomNotFound),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Room not found",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "client-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestList() {
	s.Run("success: passes filters and reports the total", func() {
		roomID := uuid.New()
		items := []queries.ReservationView{*s.view(uuid.New())}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ shared.Actor, f queries.ReservationListFilter) (*queries.ListResult[queries.ReservationView], error) {
				s.Require().NotNil(f.RoomID)
				s.Equal(roomID, *f.RoomID)
				s.Require().NotNil(f.Status)
				s.Equal(reservation.Status("confirmed"), *f.Status)
				s.Equal(5, f.Page.Limit)
				return &queries.ListResult[queries.ReservationView]{Items: items, Total: 7}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reservations?room_id="+roomID.String()+"&status=confirmed&limit=5", nil, "admin-token")

		var body resdto.ListResponse[queries.ReservationView]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Require().NotNil(body.Total)
		s.Equal(int64(7), *body.Total)
	})

	s.Run("error: 400 on unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?status=archived", nil, "admin-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "client-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 when hidden or missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any(), id).
			Return(nil, shared.NotFound(shared.ErrReservationNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "client-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestUpdate / TestChangeStatus / TestDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdate() {
	id := uuid.New()
	url := "/reservations/" + id.String()

	s.Run("success: returns the reloaded reservation", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), id, gomock.Any()).Return(nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any(), id).Return(s.view(id), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"start_date": "2025-03-01", "end_date": "2025-03-04"}, "client-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 when the new dates collide", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), id, gomock.Any()).
			Return(&reservation.OverlapError{RoomNumber: "102"}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"start_date": "2025-03-01", "end_date": "2025-03-04"}, "client-token")
		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
		s.Equal("102", body.Detail["room_number"])
		s.NotContains(body.Detail, "conflicting_reservation_id")
	})
}

func (s *ReservationHandlerTestSuite) TestChangeStatus() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/status"

	s.Run("error: 400 on unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "done"}, "client-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 403 when a client confirms", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), gomock.Any(), id, "confirmed").
			Return(shared.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "confirmed"}, "client-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

func (s *ReservationHandlerTestSuite) TestDelete() {
	s.Run("success: 204 No Content", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil, "admin-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})
}
