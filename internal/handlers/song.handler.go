package handlers

import (
	"strconv"
	"strings"

	"songvault/internal/app"
	songController "songvault/internal/controllers/songs"
	"songvault/internal/handlers/middleware"
	"songvault/internal/repositories"
	"songvault/internal/types"

	"github.com/gofiber/fiber/v2"
)

type SongHandler struct {
	Handler
	controller songController.SongControllerInterface
}

func NewSongHandler(app app.App, router fiber.Router) *SongHandler {
	return &SongHandler{
		controller: app.Controllers.Song,
		Handler:    newHandler(app, router, "song_handler"),
	}
}

func (h *SongHandler) Register() {
	songs := h.router.Group("/songs")

	songs.Get("", h.listSongs)
	songs.Get("/favorites", h.middleware.RequireAuth(), h.listFavorites)
	songs.Get("/:id<int>", h.getSong)
	songs.Post("/:id<int>/favorite", h.middleware.RequireAuth(), h.toggleFavorite)

	h.router.Get("/search", h.search)
}

func (h *SongHandler) listSongs(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listSongs")

	songs, err := h.controller.ListSongs(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Songs(songs))
}

func (h *SongHandler) getSong(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getSong")

	songID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	song, err := h.controller.GetSong(c.UserContext(), songID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Song(song))
}

func (h *SongHandler) listFavorites(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listFavorites")

	songs, err := h.controller.ListFavorites(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Songs(songs))
}

func (h *SongHandler) toggleFavorite(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("toggleFavorite")

	songID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	isFavorite, err := h.controller.ToggleFavorite(c.UserContext(), middleware.GetUser(c), songID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(types.FavoriteResponse{IsFavorite: isFavorite})
}

func (h *SongHandler) search(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("search")

	filter := repositories.SongFilter{Query: c.Query("query")}

	if raw := strings.TrimSpace(c.Query("genre")); raw != "" {
		genreID, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "genre must be an integer")
		}
		filter.GenreID = &genreID
	}

	songs, err := h.controller.Search(c.UserContext(), filter)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Songs(songs))
}
