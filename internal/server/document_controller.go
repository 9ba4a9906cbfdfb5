package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dshills/scribe/internal/event"
	"github.com/dshills/scribe/internal/sanitize"
	"github.com/dshills/scribe/internal/store"
)

// SaveDocumentRequest is the body of POST and PUT.
type SaveDocumentRequest struct {
	Content *string `json:"content" validate:"required"`
}

// DocumentResponse is a document as returned to clients.
type DocumentResponse struct {
	Id        string    `json:"id"`
	Content   string    `json:"content"`
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(d store.Document) DocumentResponse {
	return DocumentResponse{
		Id:        d.ID,
		Content:   d.Content,
		Revision:  d.Revision,
		UpdatedAt: d.UpdatedAt,
	}
}

type documentController struct {
	store  store.Store
	bus    *event.Bus
	logger *zap.Logger
}

func newDocumentController(st store.Store, bus *event.Bus, logger *zap.Logger) *documentController {
	return &documentController{store: st, bus: bus, logger: logger}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	docs, err := c.store.List(ctx.UserContext())
	if err != nil {
		return err
	}
	res := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = toResponse(d)
	}
	return ctx.JSON(SuccessResponse("Success list documents", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	doc, err := c.store.Load(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(SuccessResponse("Success show document", toResponse(doc)))
}

func (c *documentController) Create(ctx *fiber.Ctx) error {
	return c.save(ctx, store.NewID(), fiber.StatusCreated)
}

func (c *documentController) Update(ctx *fiber.Ctx) error {
	return c.save(ctx, ctx.Params("id"), fiber.StatusOK)
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	if err := c.store.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(SuccessResponse[any]("Success delete document", nil))
}

func (c *documentController) save(ctx *fiber.Ctx, id string, status int) error {
	var req SaveDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := ValidateRequest(req); err != nil {
		return err
	}

	content := sanitize.Prepare(*req.Content)
	if err := c.store.Save(ctx.UserContext(), id, content); err != nil {
		c.publish(ctx, event.TopicDocumentSaveFail, event.DocumentSaved{DocumentID: id, Content: content, Err: err})
		return err
	}
	c.publish(ctx, event.TopicDocumentSaved, event.DocumentSaved{DocumentID: id, Content: content})

	doc, err := c.store.Load(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	res := SuccessResponse("Success save document", toResponse(doc))
	res.Code = status
	return ctx.Status(status).JSON(res)
}

func (c *documentController) publish(ctx *fiber.Ctx, topic event.Topic, payload event.DocumentSaved) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(ctx.UserContext(), topic, payload); err != nil {
		c.logger.Warn("event handler failed", zap.String("topic", string(topic)), zap.Error(err))
	}
}
