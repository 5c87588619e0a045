package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReservationTestSuite struct {
	BaseSuite
}

func TestReservationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	suite.Run(t, new(ReservationTestSuite))
}

func (s *ReservationTestSuite) SetupTest() {
	db := s.app.App.DB()
	executeSQLFile(s.T(), db, "testdata/catalog_down.sql")
	executeSQLFile(s.T(), db, "testdata/catalog_up.sql")
}

func (s *ReservationTestSuite) countTickets(performanceId int) int {
	var count int

	err := s.app.App.DB().QueryRow(context.Background(),
		"SELECT count(*) FROM tickets WHERE performance_id = $1", performanceId).Scan(&count)
	s.Require().NoError(err)

	return count
}

func (s *ReservationTestSuite) TestCreateReservation() {
	cookies := s.app.authenticatedUserCookies(s.T())

	scenarios := []Scenario{
		{
			Name:             "returns 401 if user is not authenticated",
			Method:           "POST",
			URL:              "/reservations",
			Body:             strings.NewReader(`{"tickets": [{"performanceId": 1, "row": 1, "seat": 1}]}`),
			ExpectedStatus:   http.StatusUnauthorized,
			ExpectedResponse: `{"message": "You must be authenticated to access this resource"}`,
		},
		{
			Name:           "returns 422 for an empty ticket list",
			Method:         "POST",
			URL:            "/reservations",
			Body:           strings.NewReader(`{"tickets": []}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusUnprocessableEntity,
			ExpectedResponse: `{
				"message": "One or more fields have invalid values",
				"validationErrors": [
					{"field": "Tickets", "issue": "must be at least 1"}
				]
			}`,
		},
		{
			Name:           "reports both offending fields of an out of range seat",
			Method:         "POST",
			URL:            "/reservations",
			Body:           strings.NewReader(`{"tickets": [{"performanceId": 1, "row": 0, "seat": 25}]}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusUnprocessableEntity,
			ExpectedResponse: `{
				"message": "One or more fields have invalid values",
				"validationErrors": [
					{"field": "tickets[0].row", "issue": "must be in range [1, 10]"},
					{"field": "tickets[0].seat", "issue": "must be in range [1, 20]"}
				]
			}`,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				require.Equal(t, 0, s.countTickets(1), "invalid batch must not create tickets")
			},
		},
		{
			Name:           "returns 404 for an unknown performance",
			Method:         "POST",
			URL:            "/reservations",
			Body:           strings.NewReader(`{"tickets": [{"performanceId": 99, "row": 1, "seat": 1}]}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusNotFound,
		},
		{
			Name:           "books a valid batch atomically",
			Method:         "POST",
			URL:            "/reservations",
			Body:           strings.NewReader(`{"tickets": [{"performanceId": 1, "row": 1, "seat": 1}, {"performanceId": 1, "row": 1, "seat": 2}]}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusCreated,
			ExpectedResponse: `{
				"id": 1,
				"tickets": [
					{"id": 1, "performanceId": 1, "reservationId": 1, "row": 1, "seat": 1},
					{"id": 2, "performanceId": 1, "reservationId": 1, "row": 1, "seat": 2}
				]
			}`,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				require.Equal(t, 2, s.countTickets(1))
			},
		},
		{
			Name:           "rolls back the whole batch on a seat conflict",
			Method:         "POST",
			URL:            "/reservations",
			Body:           strings.NewReader(`{"tickets": [{"performanceId": 1, "row": 5, "seat": 5}, {"performanceId": 1, "row": 1, "seat": 1}]}`),
			Cookies:        cookies,
			ExpectedStatus: http.StatusConflict,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				// seat (1, 1) is taken by a previous booking
				req, err := prepareRequest("POST", "/reservations",
					strings.NewReader(`{"tickets": [{"performanceId": 1, "row": 1, "seat": 1}]}`), cookies)
				require.NoError(t, err)

				rec := httptest.NewRecorder()
				app.App.Routes().ServeHTTP(rec, req)
				require.Equal(t, http.StatusCreated, rec.Code)
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				// only the ticket from the setup booking exists; the free
				// seat of the failed batch was rolled back with it
				require.Equal(t, 1, s.countTickets(1))
			},
		},
	}

	for _, scenario := range scenarios {
		executeSQLFile(s.T(), s.app.App.DB(), "testdata/reservations_down.sql")
		scenario.Run(s.T(), s.app)
	}
}

// Two users race for the same seat. The unique constraint on
// (performance_id, seat_row, seat_number) decides the winner; exactly one
// request succeeds and exactly one ticket exists afterwards.
func (s *ReservationTestSuite) TestConcurrentBookingOfSameSeat() {
	t := s.T()

	firstUser := s.app.registerAndLogin(t, "Nora", "nora@example.com", TestUserPassword)
	secondUser := s.app.registerAndLogin(t, "Priya", "priya@example.com", TestUserPassword)

	executeSQLFile(t, s.app.App.DB(), "testdata/reservations_down.sql")

	body := `{"tickets": [{"performanceId": 1, "row": 3, "seat": 7}]}`

	statuses := make([]int, 2)
	var wg sync.WaitGroup

	for i, cookies := range [][]*http.Cookie{firstUser, secondUser} {
		wg.Add(1)

		go func(i int, cookies []*http.Cookie) {
			defer wg.Done()

			req, err := prepareRequest("POST", "/reservations", strings.NewReader(body), cookies)
			if err != nil {
				return
			}

			rec := httptest.NewRecorder()
			s.app.App.Routes().ServeHTTP(rec, req)
			statuses[i] = rec.Code
		}(i, cookies)
	}

	wg.Wait()

	created, conflicted := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}

	s.Equal(1, created, "exactly one booking should win, got statuses %v", statuses)
	s.Equal(1, conflicted, "exactly one booking should lose, got statuses %v", statuses)
	s.Equal(1, s.countTickets(1))
}

func (s *ReservationTestSuite) TestAddSingleTicket() {
	t := s.T()
	cookies := s.app.authenticatedUserCookies(t)

	executeSQLFile(t, s.app.App.DB(), "testdata/reservations_down.sql")

	// first ticket creates the reservation
	req, err := prepareRequest("POST", "/tickets",
		strings.NewReader(`{"performanceId": 1, "row": 2, "seat": 3}`), cookies)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	compareResponse(t, rec.Body, `{"id": 1, "performanceId": 1, "reservationId": 1, "row": 2, "seat": 3}`)

	// second ticket lands on the same reservation
	req, err = prepareRequest("POST", "/tickets",
		strings.NewReader(`{"performanceId": 1, "row": 2, "seat": 4}`), cookies)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	compareResponse(t, rec.Body, `{"id": 2, "performanceId": 1, "reservationId": 1, "row": 2, "seat": 4}`)

	// booking the same seat again conflicts
	req, err = prepareRequest("POST", "/tickets",
		strings.NewReader(`{"performanceId": 1, "row": 2, "seat": 3}`), cookies)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func (s *ReservationTestSuite) TestGetReservationOwnership() {
	t := s.T()

	owner := s.app.registerAndLogin(t, "Owner", "owner@example.com", TestUserPassword)
	stranger := s.app.registerAndLogin(t, "Stranger", "stranger@example.com", TestUserPassword)

	executeSQLFile(t, s.app.App.DB(), "testdata/reservations_down.sql")

	req, err := prepareRequest("POST", "/reservations",
		strings.NewReader(`{"tickets": [{"performanceId": 1, "row": 1, "seat": 1}]}`), owner)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	scenarios := []Scenario{
		{
			Name:           "owner reads their reservation",
			Method:         "GET",
			URL:            "/reservations/1",
			Cookies:        owner,
			ExpectedStatus: http.StatusOK,
			ExpectedResponse: `{
				"id": 1,
				"tickets": [
					{"id": 1, "performanceId": 1, "reservationId": 1, "row": 1, "seat": 1}
				]
			}`,
		},
		{
			Name:             "another user gets 403",
			Method:           "GET",
			URL:              "/reservations/1",
			Cookies:          stranger,
			ExpectedStatus:   http.StatusForbidden,
			ExpectedResponse: `{"message": "You do not have permission to access this resource"}`,
		},
		{
			Name:             "unknown reservation returns 404",
			Method:           "GET",
			URL:              fmt.Sprintf("/reservations/%d", 999),
			Cookies:          owner,
			ExpectedStatus:   http.StatusNotFound,
			ExpectedResponse: `{"message": "The requested resource not found"}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(t, s.app)
	}
}
