package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jvillada/almacen-api/internal/application/dto"
	"github.com/jvillada/almacen-api/internal/application/workflow"
	"github.com/jvillada/almacen-api/internal/domain/entity"
)

// DocumentHandler maneja las peticiones HTTP de un tipo de documento
// (receipt, delivery o transfer). Se registra una instancia por tipo; los
// tres comparten listado, creación de borrador, transición y nota PDF.
type DocumentHandler struct {
	kind      string
	uc        *workflow.UseCase
	printouts *workflow.PrintoutUseCase
}

// NewDocumentHandler construye el handler para un tipo de documento.
func NewDocumentHandler(kind string, uc *workflow.UseCase, printouts *workflow.PrintoutUseCase) *DocumentHandler {
	return &DocumentHandler{kind: kind, uc: uc, printouts: printouts}
}

// List godoc
// @Summary      Listar documentos del tipo (o uno, con ?id=)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        id      query  string  false  "Un documento puntual"
// @Success      200  {object}  dto.DocumentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind} [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		out, err := h.uc.Get(h.kind, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(h.kind, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(&dto.DocumentListResponse{Message: "ok", Documents: out})
}

// Create godoc
// @Summary      Crear borrador del documento
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind} [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var (
		out *dto.DocumentResponse
		err error
	)
	switch h.kind {
	case entity.DocReceipt:
		var in dto.CreateReceiptRequest
		if parseErr := c.BodyParser(&in); parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		out, err = h.uc.CreateReceipt(in)
	case entity.DocDelivery:
		var in dto.CreateDeliveryRequest
		if parseErr := c.BodyParser(&in); parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		out, err = h.uc.CreateDelivery(in)
	case entity.DocTransfer:
		var in dto.CreateTransferRequest
		if parseErr := c.BodyParser(&in); parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		out, err = h.uc.CreateTransfer(in)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transition godoc
// @Summary      Transicionar el documento (estado terminal muta el stock)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransitionRequest  true  "document_id, status, items"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind} [patch]
func (h *DocumentHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.DocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "document_id es requerido"})
	}
	out, err := h.uc.Transition(c.Context(), h.kind, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Nota imprimible del documento en PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   query  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/{kind}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.printouts.Generate(c.Context(), h.kind, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+h.kind+`.pdf"`)
	return c.Send(out)
}
