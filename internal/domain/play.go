package domain

import "context"

type Genre struct {
	ID   int
	Name string
}

type Actor struct {
	ID        int
	FirstName string
	LastName  string
}

func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

type Play struct {
	ID          int
	Title       string
	Description string
	Duration    int
	Genres      []Genre
	Actors      []Actor
}

// PlayFilters narrows play listings. All fields are optional and combine
// with AND; Title matches a substring of the title, Genre and Actor match
// substrings of the linked genre name and actor names.
type PlayFilters struct {
	Title string
	Genre string
	Actor string
	Pagination
}

type GenreRepository interface {
	Create(ctx context.Context, genre *Genre) error
	Update(ctx context.Context, genre *Genre) error
	GetAll(ctx context.Context) ([]Genre, error)
}

type ActorRepository interface {
	Create(ctx context.Context, actor *Actor) error
	Update(ctx context.Context, actor *Actor) error
	GetAll(ctx context.Context) ([]Actor, error)
}

type PlayRepository interface {
	Create(ctx context.Context, play *Play) error
	Update(ctx context.Context, play *Play) error
	GetById(ctx context.Context, id int) (*Play, error)
	GetAll(ctx context.Context, filters PlayFilters) ([]Play, *Metadata, error)
}
