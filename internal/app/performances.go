package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/curtainup/theater-reservation-system/api"
	"github.com/curtainup/theater-reservation-system/internal/domain"
)

func (app *Application) GetPerformances(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := domain.PerformanceFilters{
		PlayID: readInt(qs, "playId", 0),
		Pagination: domain.Pagination{
			Page:     readInt(qs, "page", 1),
			PageSize: readInt(qs, "pageSize", 20),
		},
	}

	if dateStr := qs.Get("date"); dateStr != "" {
		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			app.validationErrorsResponse(w, r, []api.ValidationError{
				{Field: "date", Issue: "must be a valid date in YYYY-MM-DD format"},
			})
			return
		}

		filters.Date = &date
	}

	if filters.Page < 1 || filters.PageSize < 1 || filters.PageSize > 100 {
		app.validationErrorsResponse(w, r, []api.ValidationError{
			{Field: "page", Issue: "page must be positive and pageSize must be in range [1, 100]"},
		})
		return
	}

	performances, metadata, err := app.performanceRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PerformanceListResponse{
		Performances: make([]api.PerformanceSummary, len(performances)),
		Metadata:     toMetadataResponse(metadata),
	}

	for i, summary := range performances {
		resp.Performances[i] = toPerformanceSummaryResponse(summary)
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

func (app *Application) GetPerformance(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "performanceId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	detail, err := app.performanceRepo.GetDetailById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.PerformanceDetailResponse{
		Id:               detail.ID,
		PlayId:           detail.PlayID,
		PlayTitle:        detail.PlayTitle,
		TheaterHall:      toTheaterHallResponse(detail.Hall),
		ShowTime:         detail.ShowTime,
		TicketsAvailable: detail.TicketsAvailable(),
		TakenSeats:       domain.GroupTakenSeats(detail.TakenSeats),
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

func (app *Application) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePerformanceRequest

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

	hall, err := app.hallRepo.GetById(r.Context(), req.TheaterHallId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.validationErrorsResponse(w, r, []api.ValidationError{
				{Field: "theaterHallId", Issue: "theater hall does not exist"},
			})
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	performance := &domain.Performance{
		PlayID:   req.PlayId,
		Hall:     *hall,
		ShowTime: req.ShowTime,
	}

	err = app.performanceRepo.Create(r.Context(), performance)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, map[string]int{"id": performance.ID}, nil)
}

func (app *Application) UpdatePerformance(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "performanceId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var req api.CreatePerformanceRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	performance := &domain.Performance{
		ID:       id,
		PlayID:   req.PlayId,
		Hall:     domain.TheaterHall{ID: req.TheaterHallId},
		ShowTime: req.ShowTime,
	}

	err = app.performanceRepo.Update(r.Context(), performance)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toPerformanceSummaryResponse(summary domain.PerformanceSummary) api.PerformanceSummary {
	return api.PerformanceSummary{
		Id:                  summary.ID,
		PlayTitle:           summary.PlayTitle,
		TheaterHall:         summary.HallName,
		TheaterHallCapacity: summary.HallCapacity,
		TicketsAvailable:    summary.TicketsAvailable(),
		ShowTime:            summary.ShowTime,
	}
}
