package handlers

import (
	"songvault/internal/app"
	catalogController "songvault/internal/controllers/catalog"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Handler
	controller catalogController.CatalogControllerInterface
}

func NewCatalogHandler(app app.App, router fiber.Router) *CatalogHandler {
	return &CatalogHandler{
		controller: app.Controllers.Catalog,
		Handler:    newHandler(app, router, "catalog_handler"),
	}
}

func (h *CatalogHandler) Register() {
	genres := h.router.Group("/genres")
	genres.Get("", h.listGenres)
	genres.Get("/:id<int>", h.getGenre)

	artists := h.router.Group("/artists")
	artists.Get("", h.listArtists)
	artists.Get("/:id<int>", h.getArtist)
	artists.Get("/:id<int>/songs", h.listArtistSongs)
}

func (h *CatalogHandler) listGenres(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listGenres")

	genres, err := h.controller.ListGenres(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Genres(genres))
}

func (h *CatalogHandler) getGenre(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getGenre")

	genreID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	genre, err := h.controller.GetGenre(c.UserContext(), genreID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Genre(genre))
}

func (h *CatalogHandler) listArtists(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listArtists")

	artists, err := h.controller.ListArtists(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Artists(artists))
}

func (h *CatalogHandler) getArtist(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getArtist")

	artistID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	artist, err := h.controller.GetArtist(c.UserContext(), artistID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Artist(artist))
}

func (h *CatalogHandler) listArtistSongs(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listArtistSongs")

	artistID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	songs, err := h.controller.ListArtistSongs(c.UserContext(), artistID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Songs(songs))
}
