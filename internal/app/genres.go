package app

import (
	"errors"
	"net/http"

	"github.com/curtainup/theater-reservation-system/api"
	"github.com/curtainup/theater-reservation-system/internal/domain"
)

func (app *Application) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := app.genreRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.GenreListResponse{Genres: make([]api.GenreResponse, len(genres))}
	for i, genre := range genres {
		resp.Genres[i] = toGenreResponse(genre)
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

func (app *Application) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req api.CreateGenreRequest

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

	genre := &domain.Genre{Name: req.Name}

	err = app.genreRepo.Create(r.Context(), genre)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, toGenreResponse(*genre), nil)
}

func (app *Application) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "genreId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var req api.CreateGenreRequest

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

	genre := &domain.Genre{ID: id, Name: req.Name}

	err = app.genreRepo.Update(r.Context(), genre)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.writeJSON(w, http.StatusOK, toGenreResponse(*genre), nil)
}

func toGenreResponse(genre domain.Genre) api.GenreResponse {
	return api.GenreResponse{
		Id:   genre.ID,
		Name: genre.Name,
	}
}
