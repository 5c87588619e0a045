package app

import (
	"errors"
	"net/http"

	"github.com/curtainup/theater-reservation-system/api"
	"github.com/curtainup/theater-reservation-system/internal/domain"
)

func (app *Application) GetPlays(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := domain.PlayFilters{
		Title: qs.Get("title"),
		Genre: qs.Get("genre"),
		Actor: qs.Get("actor"),
		Pagination: domain.Pagination{
			Page:     readInt(qs, "page", 1),
			PageSize: readInt(qs, "pageSize", 20),
		},
	}

	if filters.Page < 1 || filters.PageSize < 1 || filters.PageSize > 100 {
		app.validationErrorsResponse(w, r, []api.ValidationError{
			{Field: "page", Issue: "page must be positive and pageSize must be in range [1, 100]"},
		})
		return
	}

	plays, metadata, err := app.playRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PlayListResponse{
		Plays:    make([]api.PlaySummary, len(plays)),
		Metadata: toMetadataResponse(metadata),
	}

	for i, play := range plays {
		summary := api.PlaySummary{
			Id:          play.ID,
			Title:       play.Title,
			Description: play.Description,
			Genres:      make([]string, len(play.Genres)),
			Actors:      make([]string, len(play.Actors)),
		}
		for j, genre := range play.Genres {
			summary.Genres[j] = genre.Name
		}
		for j, actor := range play.Actors {
			summary.Actors[j] = actor.FullName()
		}

		resp.Plays[i] = summary
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

func (app *Application) GetPlay(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "playId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	play, err := app.playRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.writeJSON(w, http.StatusOK, toPlayDetailResponse(play), nil)
}

func (app *Application) CreatePlay(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePlayRequest

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

	play := playFromRequest(req)

	err = app.playRepo.Create(r.Context(), play)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, toPlayDetailResponse(play), nil)
}

func (app *Application) UpdatePlay(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "playId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var req api.CreatePlayRequest

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

	play := playFromRequest(req)
	play.ID = id

	err = app.playRepo.Update(r.Context(), play)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.writeJSON(w, http.StatusOK, toPlayDetailResponse(play), nil)
}

func playFromRequest(req api.CreatePlayRequest) *domain.Play {
	play := &domain.Play{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Genres:      make([]domain.Genre, len(req.GenreIds)),
		Actors:      make([]domain.Actor, len(req.ActorIds)),
	}

	for i, id := range req.GenreIds {
		play.Genres[i] = domain.Genre{ID: id}
	}
	for i, id := range req.ActorIds {
		play.Actors[i] = domain.Actor{ID: id}
	}

	return play
}

func toPlayDetailResponse(play *domain.Play) api.PlayDetailResponse {
	resp := api.PlayDetailResponse{
		Id:          play.ID,
		Title:       play.Title,
		Description: play.Description,
		Duration:    play.Duration,
		Genres:      make([]api.GenreResponse, len(play.Genres)),
		Actors:      make([]api.ActorResponse, len(play.Actors)),
	}

	for i, genre := range play.Genres {
		resp.Genres[i] = toGenreResponse(genre)
	}
	for i, actor := range play.Actors {
		resp.Actors[i] = toActorResponse(actor)
	}

	return resp
}

func toMetadataResponse(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
