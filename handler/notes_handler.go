package handler

import (
	"errors"
	"io"
	"strings"

	"noteful/dto"
	"noteful/errs"
	"noteful/middleware"
	"noteful/usecase"
	"noteful/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type NotesHandler struct {
	notesService *usecase.NotesService
}

func NewNotesHandler(notesService *usecase.NotesService) *NotesHandler {
	utils.InitValidator()
	return &NotesHandler{notesService: notesService}
}

// RegisterRoutes mounts the notes endpoints on rg (normally /api).
func (h *NotesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	{
		notes.GET("", h.ListNotes)
		notes.GET("/:id", h.GetNote)
		notes.POST("", h.CreateNote)
		notes.PUT("/:id", h.UpdateNote)
		notes.DELETE("/:id", h.DeleteNote)
	}
}

// bindNoteRequest maps a missing or blank title to the documented message.
// An empty body has no title either. Only undecodable JSON gets
// "Invalid request body".
func bindNoteRequest(c *gin.Context) (*dto.NoteRequest, error) {
	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) || errors.Is(err, io.EOF) {
			return nil, errs.Wrap(errs.InvalidArgument, dto.MissingTitleMessage, err)
		}
		return nil, errs.Wrap(errs.InvalidArgument, "Invalid request body", err)
	}
	return &req, nil
}

func (h *NotesHandler) fail(c *gin.Context, err error) {
	middleware.TrackError(string(errs.CodeOf(err)))
	utils.Error(c, err)
}

func (h *NotesHandler) ListNotes(c *gin.Context) {
	searchTerm := c.Query("searchTerm")

	notes, err := h.notesService.ListNotes(c.Request.Context(), searchTerm)
	if err != nil {
		h.fail(c, err)
		return
	}

	if strings.TrimSpace(searchTerm) != "" {
		middleware.TrackNoteOperation("search")
	} else {
		middleware.TrackNoteOperation("list")
	}
	utils.Success(c, dto.ToNoteResponses(notes))
}

func (h *NotesHandler) GetNote(c *gin.Context) {
	note, err := h.notesService.GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	middleware.TrackNoteOperation("get")
	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NotesHandler) CreateNote(c *gin.Context) {
	req, err := bindNoteRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	note, err := h.notesService.CreateNote(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	middleware.TrackNoteOperation("create")
	location := strings.TrimSuffix(c.Request.URL.Path, "/") + "/" + note.ID.Hex()
	utils.Created(c, location, dto.ToNoteResponse(note))
}

func (h *NotesHandler) UpdateNote(c *gin.Context) {
	req, err := bindNoteRequest(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	note, err := h.notesService.UpdateNote(c.Request.Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	middleware.TrackNoteOperation("update")
	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NotesHandler) DeleteNote(c *gin.Context) {
	if err := h.notesService.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	middleware.TrackNoteOperation("delete")
	utils.NoContent(c)
}
