package handlers

import (
	"songvault/internal/app"
	adminController "songvault/internal/controllers/admin"
	"songvault/internal/handlers/middleware"
	"songvault/internal/types"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	return &AdminHandler{
		controller: app.Controllers.Admin,
		Handler:    newHandler(app, router, "admin_handler"),
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAuth(), h.middleware.RequireStaff())

	songs := admin.Group("/songs")
	songs.Get("", h.listSongs)
	songs.Post("", h.createSong)
	songs.Get("/:id<int>", h.getSong)
	songs.Put("/:id<int>", h.updateSong(false))
	songs.Patch("/:id<int>", h.updateSong(true))
	songs.Delete("/:id<int>", h.deleteSong)

	artists := admin.Group("/artists")
	artists.Get("", h.listArtists)
	artists.Post("", h.createArtist)
	artists.Get("/:id<int>", h.getArtist)
	artists.Put("/:id<int>", h.updateArtist(false))
	artists.Patch("/:id<int>", h.updateArtist(true))
	artists.Delete("/:id<int>", h.deleteArtist)

	genres := admin.Group("/genres")
	genres.Get("", h.listGenres)
	genres.Post("", h.createGenre)
	genres.Get("/:id<int>", h.getGenre)
	genres.Put("/:id<int>", h.updateGenre(false))
	genres.Patch("/:id<int>", h.updateGenre(true))
	genres.Delete("/:id<int>", h.deleteGenre)
}

func (h *AdminHandler) listSongs(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listSongs")

	songs, err := h.controller.ListSongs(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Songs(songs))
}

func (h *AdminHandler) getSong(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getSong")

	songID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	song, err := h.controller.GetSong(c.UserContext(), middleware.GetUser(c), songID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Song(song))
}

func (h *AdminHandler) createSong(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createSong")

	request, uploads, err := parseSongWrite(c)
	if err != nil {
		return respondError(c, log, err)
	}

	song, err := h.controller.CreateSong(c.UserContext(), middleware.GetUser(c), request, uploads)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.renderer.Song(song))
}

func (h *AdminHandler) updateSong(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := h.log.TraceFromContext(c.UserContext()).Function("updateSong")

		songID, err := paramID(c, "id")
		if err != nil {
			return notFound(c)
		}

		request, uploads, err := parseSongWrite(c)
		if err != nil {
			return respondError(c, log, err)
		}

		song, err := h.controller.UpdateSong(c.UserContext(), middleware.GetUser(c), songID, request, uploads, partial)
		if err != nil {
			return respondError(c, log, err)
		}

		return c.JSON(h.renderer.Song(song))
	}
}

func (h *AdminHandler) deleteSong(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteSong")

	songID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	if err := h.controller.DeleteSong(c.UserContext(), middleware.GetUser(c), songID); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) listArtists(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listArtists")

	artists, err := h.controller.ListArtists(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Artists(artists))
}

func (h *AdminHandler) getArtist(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getArtist")

	artistID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	artist, err := h.controller.GetArtist(c.UserContext(), middleware.GetUser(c), artistID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Artist(artist))
}

func (h *AdminHandler) createArtist(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createArtist")

	request, image, err := parseArtistWrite(c)
	if err != nil {
		return respondError(c, log, err)
	}

	artist, err := h.controller.CreateArtist(c.UserContext(), middleware.GetUser(c), request, image)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.renderer.Artist(artist))
}

func (h *AdminHandler) updateArtist(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := h.log.TraceFromContext(c.UserContext()).Function("updateArtist")

		artistID, err := paramID(c, "id")
		if err != nil {
			return notFound(c)
		}

		request, image, err := parseArtistWrite(c)
		if err != nil {
			return respondError(c, log, err)
		}

		artist, err := h.controller.UpdateArtist(c.UserContext(), middleware.GetUser(c), artistID, request, image, partial)
		if err != nil {
			return respondError(c, log, err)
		}

		return c.JSON(h.renderer.Artist(artist))
	}
}

func (h *AdminHandler) deleteArtist(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteArtist")

	artistID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	if err := h.controller.DeleteArtist(c.UserContext(), middleware.GetUser(c), artistID); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) listGenres(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listGenres")

	genres, err := h.controller.ListGenres(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Genres(genres))
}

func (h *AdminHandler) getGenre(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getGenre")

	genreID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	genre, err := h.controller.GetGenre(c.UserContext(), middleware.GetUser(c), genreID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Genre(genre))
}

func (h *AdminHandler) createGenre(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createGenre")

	var request types.GenreWriteRequest
	if err := decodeJSON(c, &request); err != nil {
		return respondError(c, log, err)
	}

	genre, err := h.controller.CreateGenre(c.UserContext(), middleware.GetUser(c), request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.renderer.Genre(genre))
}

func (h *AdminHandler) updateGenre(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := h.log.TraceFromContext(c.UserContext()).Function("updateGenre")

		genreID, err := paramID(c, "id")
		if err != nil {
			return notFound(c)
		}

		var request types.GenreWriteRequest
		if err := decodeJSON(c, &request); err != nil {
			return respondError(c, log, err)
		}

		genre, err := h.controller.UpdateGenre(c.UserContext(), middleware.GetUser(c), genreID, request, partial)
		if err != nil {
			return respondError(c, log, err)
		}

		return c.JSON(h.renderer.Genre(genre))
	}
}

func (h *AdminHandler) deleteGenre(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteGenre")

	genreID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	if err := h.controller.DeleteGenre(c.UserContext(), middleware.GetUser(c), genreID); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
