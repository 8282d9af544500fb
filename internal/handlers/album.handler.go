package handlers

import (
	"songvault/internal/app"
	albumController "songvault/internal/controllers/albums"
	"songvault/internal/handlers/middleware"
	"songvault/internal/types"

	"github.com/gofiber/fiber/v2"
)

type AlbumHandler struct {
	Handler
	controller albumController.AlbumControllerInterface
}

func NewAlbumHandler(app app.App, router fiber.Router) *AlbumHandler {
	return &AlbumHandler{
		controller: app.Controllers.Album,
		Handler:    newHandler(app, router, "album_handler"),
	}
}

func (h *AlbumHandler) Register() {
	albums := h.router.Group("/albums", h.middleware.RequireAuth())

	albums.Get("", h.listAlbums)
	albums.Post("", h.createAlbum)
	albums.Get("/:id<int>", h.getAlbum)
	albums.Put("/:id<int>", h.updateAlbum(false))
	albums.Patch("/:id<int>", h.updateAlbum(true))
	albums.Delete("/:id<int>", h.deleteAlbum)
	albums.Post("/:id<int>/songs/:songId<int>/add", h.addSong)
	albums.Delete("/:id<int>/songs/:songId<int>/remove", h.removeSong)
}

func (h *AlbumHandler) listAlbums(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listAlbums")

	albums, err := h.controller.ListAlbums(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Albums(albums))
}

func (h *AlbumHandler) createAlbum(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createAlbum")

	var request types.AlbumWriteRequest
	if err := decodeJSON(c, &request); err != nil {
		return respondError(c, log, err)
	}

	album, err := h.controller.CreateAlbum(c.UserContext(), middleware.GetUser(c), request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.renderer.Album(album))
}

func (h *AlbumHandler) getAlbum(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getAlbum")

	albumID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	album, err := h.controller.GetAlbum(c.UserContext(), middleware.GetUser(c), albumID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(h.renderer.Album(album))
}

func (h *AlbumHandler) updateAlbum(partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := h.log.TraceFromContext(c.UserContext()).Function("updateAlbum")

		albumID, err := paramID(c, "id")
		if err != nil {
			return notFound(c)
		}

		var request types.AlbumWriteRequest
		if err := decodeJSON(c, &request); err != nil {
			return respondError(c, log, err)
		}

		album, err := h.controller.UpdateAlbum(c.UserContext(), middleware.GetUser(c), albumID, request, partial)
		if err != nil {
			return respondError(c, log, err)
		}

		return c.JSON(h.renderer.Album(album))
	}
}

func (h *AlbumHandler) deleteAlbum(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteAlbum")

	albumID, err := paramID(c, "id")
	if err != nil {
		return notFound(c)
	}

	if err := h.controller.DeleteAlbum(c.UserContext(), middleware.GetUser(c), albumID); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AlbumHandler) addSong(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("addSong")

	albumID, songID, ok := membershipIDs(c)
	if !ok {
		return notFound(c)
	}

	message, err := h.controller.AddSong(c.UserContext(), middleware.GetUser(c), albumID, songID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(types.MessageResponse{Message: message})
}

func (h *AlbumHandler) removeSong(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("removeSong")

	albumID, songID, ok := membershipIDs(c)
	if !ok {
		return notFound(c)
	}

	message, err := h.controller.RemoveSong(c.UserContext(), middleware.GetUser(c), albumID, songID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(types.MessageResponse{Message: message})
}

func membershipIDs(c *fiber.Ctx) (int, int, bool) {
	albumID, err := paramID(c, "id")
	if err != nil {
		return 0, 0, false
	}
	songID, err := paramID(c, "songId")
	if err != nil {
		return 0, 0, false
	}
	return albumID, songID, true
}
