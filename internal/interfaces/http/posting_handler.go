package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/omplast/stores-api/internal/application/dto"
	"github.com/omplast/stores-api/internal/application/posting"
	"github.com/omplast/stores-api/internal/domain"
	"github.com/omplast/stores-api/internal/domain/entity"
	domposting "github.com/omplast/stores-api/internal/domain/posting"
)

// DocumentPoster is the engine surface the handler needs; narrowed for
// testability.
type DocumentPoster interface {
	PostDocument(ctx context.Context, documentType, documentID, postedBy string) (*posting.Result, error)
}

// PostingHandler handles the "post this document to stock" command.
type PostingHandler struct {
	engine DocumentPoster
}

// NewPostingHandler builds the handler.
func NewPostingHandler(engine DocumentPoster) *PostingHandler {
	return &PostingHandler{engine: engine}
}

// PostDocument handles POST /stock/post/:docType/:docID.
// Body: {"posted_by": "..."}. Falls back to the token user when the entry
// screen sends no actor.
func (h *PostingHandler) PostDocument(c *fiber.Ctx) error {
	docType := c.Params("docType")
	docID := c.Params("docID")
	if !entity.ValidDocumentType(docType) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_INPUT", "unknown document type "+docType))
	}

	var in dto.PostDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_BODY", "malformed request body"))
	}
	if in.PostedBy == "" {
		in.PostedBy = GetUserID(c)
	}
	if err := dto.Validate(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_INPUT", "posted_by is required"))
	}

	result, err := h.engine.PostDocument(c.Context(), docType, docID, in.PostedBy)
	if err != nil {
		return writePostingError(c, err)
	}

	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return c.JSON(dto.PostDocumentResponse{
		Success:        true,
		EntriesCreated: result.EntriesCreated,
		Warnings:       warnings,
	})
}

// writePostingError maps the posting error taxonomy to HTTP responses.
func writePostingError(c *fiber.Ctx, err error) error {
	var insufficient *domposting.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Success: false,
			Error: dto.ErrorBody{
				Code:    "INSUFFICIENT_STOCK",
				Details: insufficient.Details,
			},
		})
	}
	var validation *domposting.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewErrorResponse("VALIDATION", validation.Message))
	}
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewErrorResponse("DOCUMENT_NOT_FOUND", "document not found"))
	case errors.Is(err, domain.ErrAlreadyPosted):
		return c.Status(fiber.StatusConflict).JSON(dto.NewErrorResponse("ALREADY_POSTED", "document already posted"))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("INVALID_INPUT", err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.NewErrorResponse("INTERNAL", "posting failed, verify document state before retrying"))
}
