package controller

import (
	"ai-knowledgebase-be/internal/apperror"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/pkg/serverutils"
	"ai-knowledgebase-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Action(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService service.IAgentService
	chatService  service.IChatService
}

func NewAgentController(agentService service.IAgentService, chatService service.IChatService) IAgentController {
	return &agentController{
		agentService: agentService,
		chatService:  chatService,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent/v1")
	h.Post("", c.Action)
}

// Action dispatches on the request's action discriminator.
func (c *agentController) Action(ctx *fiber.Ctx) error {
	var req dto.AgentActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	switch req.Action {
	case "process_document":
		return c.processDocument(ctx, &req)
	case "query":
		return c.query(ctx, &req)
	case "structure":
		return c.structure(ctx, &req)
	default:
		return apperror.Validation("Invalid action")
	}
}

func (c *agentController) processDocument(ctx *fiber.Ctx, req *dto.AgentActionRequest) error {
	if req.SessionId == "" {
		return apperror.Validation("session_id is required")
	}
	if req.DocumentName == "" || req.Content == "" {
		return apperror.Validation("document_name and content are required")
	}

	res, err := c.agentService.ProcessDocument(ctx.Context(), req.SessionId, req.DocumentName, req.Content, req.Model)
	if err != nil {
		return err
	}

	payload := dto.ProcessDocumentResponse{
		DocumentName: req.DocumentName,
		Ingested:     true,
		TextLength:   len(req.Content),
	}
	if res.Warning != "" {
		return ctx.JSON(serverutils.SuccessResponseWithWarning("Document processed", payload, res.Warning))
	}
	return ctx.JSON(serverutils.SuccessResponse("Document processed", payload))
}

func (c *agentController) query(ctx *fiber.Ctx, req *dto.AgentActionRequest) error {
	if req.SessionId == "" {
		return apperror.Validation("session_id is required")
	}
	if req.Question == "" {
		return apperror.Validation("question is required")
	}

	sessionId, err := uuid.Parse(req.SessionId)
	if err != nil {
		return apperror.Validation("Invalid session id")
	}

	res, warning, err := c.chatService.Ask(ctx.Context(), sessionId, req.Question, req.Model)
	if err != nil {
		return err
	}

	if warning != "" {
		return ctx.JSON(serverutils.SuccessResponseWithWarning("Query answered", res, warning))
	}
	return ctx.JSON(serverutils.SuccessResponse("Query answered", res))
}

func (c *agentController) structure(ctx *fiber.Ctx, req *dto.AgentActionRequest) error {
	if req.RawAnswer == "" {
		return apperror.Validation("No raw response provided")
	}

	structured := c.chatService.Structure(ctx.Context(), req.RawAnswer, req.Question)
	return ctx.JSON(serverutils.SuccessResponse("Response structured", structured))
}
