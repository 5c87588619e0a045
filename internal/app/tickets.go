package app

import (
	"net/http"

	"github.com/curtainup/theater-reservation-system/api"
	"github.com/curtainup/theater-reservation-system/internal/domain"
)

// CreateTicket books a single seat. It goes through the reservation
// manager like the batch path, so validation and seat uniqueness behave
// identically; the ticket lands on the user's existing reservation when
// one exists.
func (app *Application) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req api.TicketRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	reservation, ticket, err := app.reservationManager.AddTicket(r.Context(), userId, domain.TicketRequest{
		PerformanceID: req.PerformanceId,
		Row:           req.Row,
		Seat:          req.Seat,
	})
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	app.sendReservationConfirmation(userId, &domain.Reservation{
		BookingRef: reservation.BookingRef,
		Tickets:    []domain.Ticket{*ticket},
	})

	app.writeJSON(w, http.StatusCreated, toTicketResponse(*ticket), nil)
}

func (app *Application) GetTickets(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	pagination := domain.Pagination{
		Page:     readInt(qs, "page", 1),
		PageSize: readInt(qs, "pageSize", 20),
	}

	if pagination.Page < 1 || pagination.PageSize < 1 || pagination.PageSize > 100 {
		app.validationErrorsResponse(w, r, []api.ValidationError{
			{Field: "page", Issue: "page must be positive and pageSize must be in range [1, 100]"},
		})
		return
	}

	userId := app.contextGetUserId(r)

	tickets, metadata, err := app.ticketRepo.GetAllByUserId(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TicketListResponse{
		Tickets:  make([]api.TicketWithPerformance, len(tickets)),
		Metadata: toMetadataResponse(metadata),
	}

	for i, ticket := range tickets {
		resp.Tickets[i] = api.TicketWithPerformance{
			Id:            ticket.ID,
			ReservationId: ticket.ReservationID,
			Row:           ticket.Row,
			Seat:          ticket.Seat,
			Performance:   toPerformanceSummaryResponse(ticket.Performance),
		}
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
