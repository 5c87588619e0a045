package app

import (
	"net/http"

	"github.com/curtainup/theater-reservation-system/api"
	"github.com/curtainup/theater-reservation-system/internal/domain"
)

func (app *Application) GetTheaterHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := app.hallRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TheaterHallListResponse{TheaterHalls: make([]api.TheaterHallResponse, len(halls))}
	for i, hall := range halls {
		resp.TheaterHalls[i] = toTheaterHallResponse(hall)
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

// CreateTheaterHall registers a hall layout. Halls are immutable once
// created: performances and sold tickets reference the layout, so changing
// Rows or SeatsInRow after the fact would invalidate existing seats.
func (app *Application) CreateTheaterHall(w http.ResponseWriter, r *http.Request) {
	var req api.CreateTheaterHallRequest

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

	hall := &domain.TheaterHall{
		Name:       req.Name,
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
	}

	err = app.hallRepo.Create(r.Context(), hall)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, toTheaterHallResponse(*hall), nil)
}

func toTheaterHallResponse(hall domain.TheaterHall) api.TheaterHallResponse {
	return api.TheaterHallResponse{
		Id:         hall.ID,
		Name:       hall.Name,
		Rows:       hall.Rows,
		SeatsInRow: hall.SeatsInRow,
		Capacity:   hall.Capacity(),
	}
}
