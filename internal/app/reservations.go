package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/curtainup/theater-reservation-system/api"
	"github.com/curtainup/theater-reservation-system/internal/domain"
)

// CreateReservation books a batch of seats atomically. Validation failures
// and seat conflicts never leave partial reservations behind; the response
// status tells the client whether to fix the payload (422), pick another
// seat (409), or retry later (500).
func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req api.CreateReservationRequest

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

	requests := make([]domain.TicketRequest, len(req.Tickets))
	for i, ticket := range req.Tickets {
		requests[i] = domain.TicketRequest{
			PerformanceID: ticket.PerformanceId,
			Row:           ticket.Row,
			Seat:          ticket.Seat,
		}
	}

	reservation, err := app.reservationManager.CreateReservation(r.Context(), userId, requests)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	app.sendReservationConfirmation(userId, reservation)

	app.writeJSON(w, http.StatusCreated, toReservationResponse(reservation), nil)
}

func (app *Application) GetReservations(w http.ResponseWriter, r *http.Request) {
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

	reservations, metadata, err := app.reservationRepo.GetAllByUserId(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ReservationListResponse{
		Reservations: make([]api.ReservationResponse, len(reservations)),
		Metadata:     toMetadataResponse(metadata),
	}

	for i := range reservations {
		resp.Reservations[i] = toReservationResponse(&reservations[i])
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

func (app *Application) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "reservationId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	reservation, err := app.reservationRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if reservation.UserID != app.contextGetUserId(r) {
		app.forbiddenResponse(w, r)
		return
	}

	app.writeJSON(w, http.StatusOK, toReservationResponse(reservation), nil)
}

// reservationErrorResponse maps booking failures from the reservation
// manager onto HTTP statuses. Shared by the batch and single-ticket paths.
func (app *Application) reservationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs domain.ValidationErrors

	switch {
	case errors.As(err, &validationErrs):
		app.seatValidationResponse(w, r, validationErrs)
	case errors.Is(err, domain.ErrEmptyReservation):
		app.validationErrorsResponse(w, r, []api.ValidationError{
			{Field: "tickets", Issue: "must contain at least one ticket"},
		})
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrSeatAlreadyTaken):
		app.conflictResponse(w, r, domain.ErrSeatAlreadyTaken)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// sendReservationConfirmation emails the booking summary in the background.
// The reservation is already committed; a mail failure is logged, never
// surfaced to the client.
func (app *Application) sendReservationConfirmation(userId int, reservation *domain.Reservation) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				app.logger.Error("confirmation email panicked", "error", fmt.Sprintf("%s", err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := app.userRepo.GetById(ctx, userId)
		if err != nil {
			app.logger.Error("failed to load user for confirmation email", "error", err)
			return
		}

		details := make(map[int]*domain.PerformanceDetail)
		tickets := make([]map[string]any, len(reservation.Tickets))

		for i, ticket := range reservation.Tickets {
			detail, ok := details[ticket.PerformanceID]
			if !ok {
				detail, err = app.performanceRepo.GetDetailById(ctx, ticket.PerformanceID)
				if err != nil {
					app.logger.Error("failed to load performance for confirmation email", "error", err)
					return
				}

				details[ticket.PerformanceID] = detail
			}

			tickets[i] = map[string]any{
				"PlayTitle": detail.PlayTitle,
				"ShowTime":  detail.ShowTime,
				"Row":       ticket.Row,
				"Seat":      ticket.Seat,
			}
		}

		data := map[string]any{
			"bookingRef": reservation.BookingRef,
			"firstName":  user.FirstName,
			"tickets":    tickets,
		}

		err = app.mailer.Send(user.Email, "reservation_confirmation.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send confirmation email", "error", err)
		}
	}()
}

func toReservationResponse(reservation *domain.Reservation) api.ReservationResponse {
	resp := api.ReservationResponse{
		Id:         reservation.ID,
		BookingRef: reservation.BookingRef,
		CreatedAt:  reservation.CreatedAt,
		Tickets:    make([]api.TicketResponse, len(reservation.Tickets)),
	}

	for i, ticket := range reservation.Tickets {
		resp.Tickets[i] = toTicketResponse(ticket)
	}

	return resp
}

func toTicketResponse(ticket domain.Ticket) api.TicketResponse {
	return api.TicketResponse{
		Id:            ticket.ID,
		PerformanceId: ticket.PerformanceID,
		ReservationId: ticket.ReservationID,
		Row:           ticket.Row,
		Seat:          ticket.Seat,
	}
}
