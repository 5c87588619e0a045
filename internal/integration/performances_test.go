package integration_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PerformanceTestSuite struct {
	BaseSuite
}

func TestPerformanceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	suite.Run(t, new(PerformanceTestSuite))
}

func (s *PerformanceTestSuite) SetupTest() {
	db := s.app.App.DB()
	executeSQLFile(s.T(), db, "testdata/catalog_down.sql")
	executeSQLFile(s.T(), db, "testdata/catalog_up.sql")
}

// Availability is computed from live ticket counts at read time. Booking
// seats must be reflected by the very next read without any cache refresh.
func (s *PerformanceTestSuite) TestAvailabilityReflectsBookings() {
	t := s.T()
	cookies := s.app.authenticatedUserCookies(t)

	scenarios := []Scenario{
		{
			Name:           "full availability before any booking",
			Method:         "GET",
			URL:            "/performances/1",
			Cookies:        cookies,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"id": 1,
				"playId": 1,
				"playTitle": "Hamlet",
				"theaterHall": {"id": 1, "name": "Main Stage", "rows": 10, "seatsInRow": 20, "capacity": 200},
				"showTime": "2095-06-01T19:30:00Z",
				"ticketsAvailable": 200,
				"takenSeats": {}
			}`,
		},
		{
			Name:           "availability drops and taken seats group by row after a booking",
			Method:         "GET",
			URL:            "/performances/1",
			Cookies:        cookies,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"id": 1,
				"playId": 1,
				"playTitle": "Hamlet",
				"theaterHall": {"id": 1, "name": "Main Stage", "rows": 10, "seatsInRow": 20, "capacity": 200},
				"showTime": "2095-06-01T19:30:00Z",
				"ticketsAvailable": 197,
				"takenSeats": {"1": [1, 2], "2": [1]}
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				body := `{"tickets": [
					{"performanceId": 1, "row": 1, "seat": 1},
					{"performanceId": 1, "row": 1, "seat": 2},
					{"performanceId": 1, "row": 2, "seat": 1}
				]}`

				req, err := prepareRequest("POST", "/reservations", strings.NewReader(body), cookies)
				require.NoError(t, err)

				rec := httptest.NewRecorder()
				app.App.Routes().ServeHTTP(rec, req)
				require.Equal(t, http.StatusCreated, rec.Code)
			},
		},
		{
			Name:             "unknown performance returns 404",
			Method:           "GET",
			URL:              "/performances/999",
			Cookies:          cookies,
			ExpectedStatus:   http.StatusNotFound,
			ExpectedResponse: `{"message": "The requested resource not found"}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(t, s.app)
	}
}

func (s *PerformanceTestSuite) TestListPerformances() {
	t := s.T()
	cookies := s.app.authenticatedUserCookies(t)

	scenarios := []Scenario{
		{
			Name:           "lists every performance with live availability",
			Method:         "GET",
			URL:            "/performances",
			Cookies:        cookies,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"performances": [
					{"id": 2, "playTitle": "Hamlet", "theaterHall": "Main Stage", "theaterHallCapacity": 200, "ticketsAvailable": 200, "showTime": "2095-06-02T19:30:00Z"},
					{"id": 1, "playTitle": "Hamlet", "theaterHall": "Main Stage", "theaterHallCapacity": 200, "ticketsAvailable": 200, "showTime": "2095-06-01T19:30:00Z"},
					{"id": 3, "playTitle": "Twelfth Night", "theaterHall": "Studio", "theaterHallCapacity": 40, "ticketsAvailable": 40, "showTime": "2095-06-01T15:00:00Z"}
				],
				"metadata": {
					"currentPage": 1,
					"firstPage": 1,
					"lastPage": 1,
					"pageSize": 20,
					"totalRecords": 3
				}
			}`,
		},
		{
			Name:           "filters by show date",
			Method:         "GET",
			URL:            "/performances?date=2095-06-02",
			Cookies:        cookies,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"performances": [
					{"id": 2, "playTitle": "Hamlet", "theaterHall": "Main Stage", "theaterHallCapacity": 200, "ticketsAvailable": 200, "showTime": "2095-06-02T19:30:00Z"}
				],
				"metadata": {
					"currentPage": 1,
					"firstPage": 1,
					"lastPage": 1,
					"pageSize": 20,
					"totalRecords": 1
				}
			}`,
		},
		{
			Name:           "filters by play",
			Method:         "GET",
			URL:            "/performances?playId=2",
			Cookies:        cookies,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"performances": [
					{"id": 3, "playTitle": "Twelfth Night", "theaterHall": "Studio", "theaterHallCapacity": 40, "ticketsAvailable": 40, "showTime": "2095-06-01T15:00:00Z"}
				],
				"metadata": {
					"currentPage": 1,
					"firstPage": 1,
					"lastPage": 1,
					"pageSize": 20,
					"totalRecords": 1
				}
			}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(t, s.app)
	}
}
