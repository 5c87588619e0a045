package app

import (
	"errors"
	"net/http"

	"github.com/curtainup/theater-reservation-system/api"
	"github.com/curtainup/theater-reservation-system/internal/domain"
)

func (app *Application) GetActors(w http.ResponseWriter, r *http.Request) {
	actors, err := app.actorRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ActorListResponse{Actors: make([]api.ActorResponse, len(actors))}
	for i, actor := range actors {
		resp.Actors[i] = toActorResponse(actor)
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}

func (app *Application) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req api.CreateActorRequest

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

	actor := &domain.Actor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	err = app.actorRepo.Create(r.Context(), actor)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, toActorResponse(*actor), nil)
}

func (app *Application) UpdateActor(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "actorId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var req api.CreateActorRequest

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

	actor := &domain.Actor{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	err = app.actorRepo.Update(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.writeJSON(w, http.StatusOK, toActorResponse(*actor), nil)
}

func toActorResponse(actor domain.Actor) api.ActorResponse {
	return api.ActorResponse{
		Id:        actor.ID,
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
		FullName:  actor.FullName(),
	}
}
