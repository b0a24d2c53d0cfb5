package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"keeper/internal/delivery/api/middleware"
	"keeper/internal/delivery/api/response"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/errors"
	"keeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// NoteHandlerParams holds dependencies for NoteHandler, injected by Fx.
type NoteHandlerParams struct {
	fx.In

	NoteUC usecase.NoteUsecase
	Logger *slog.Logger
}

// NoteHandler serves CRUD over the caller's notes.
type NoteHandler struct {
	noteUC usecase.NoteUsecase
	logger *slog.Logger
}

// NewNoteHandler is the constructor for NoteHandler.
func NewNoteHandler(params NoteHandlerParams) *NoteHandler {
	return &NoteHandler{
		noteUC: params.NoteUC,
		logger: params.Logger,
	}
}

// NoteRequest represents the request body for creating or updating a note.
type NoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// List handles GET /api/notes.
func (h *NoteHandler) List(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrTokenRequired
	}

	notes, err := h.noteUC.List(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NotesResponse{Notes: response.FromNotes(notes)})
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrTokenRequired
	}

	input, err := bindNote(c)
	if err != nil {
		return err
	}

	note, err := h.noteUC.Create(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.NoteResponse{
		Message: "Note created successfully",
		Note:    response.FromNote(note),
	})
}

// Update handles PUT /api/notes/:id.
func (h *NoteHandler) Update(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrTokenRequired
	}

	noteID, err := parseNoteID(c)
	if err != nil {
		return err
	}

	input, err := bindNote(c)
	if err != nil {
		return err
	}

	note, err := h.noteUC.Update(c.Request().Context(), noteID, userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.NoteResponse{
		Message: "Note updated successfully",
		Note:    response.FromNote(note),
	})
}

// Delete handles DELETE /api/notes/:id.
func (h *NoteHandler) Delete(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrTokenRequired
	}

	noteID, err := parseNoteID(c)
	if err != nil {
		return err
	}

	if err := h.noteUC.Delete(c.Request().Context(), noteID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Note deleted successfully")
}

func bindNote(c echo.Context) (usecase.NoteInput, error) {
	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return usecase.NoteInput{}, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return usecase.NoteInput{}, domainerrors.ErrNoteFieldsRequired.WrapMessage(err.Error())
	}

	return usecase.NoteInput{Title: req.Title, Content: req.Content}, nil
}

func parseNoteID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrInvalidNoteID.WrapMessage("note id " + strconv.Quote(c.Param("id")))
	}

	return id, nil
}
