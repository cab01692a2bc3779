package controller

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/pkg/serverutils"
	"ai-knowledgebase-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgentService struct {
	processed int
}

func (s *stubAgentService) ProcessDocument(ctx context.Context, sessionId, documentName, content, model string) (*service.IngestResult, error) {
	s.processed++
	return &service.IngestResult{}, nil
}

func (s *stubAgentService) Query(ctx context.Context, sessionId, question, model string) (*service.QueryResult, error) {
	return &service.QueryResult{Answer: "ok"}, nil
}

func (s *stubAgentService) RemoveDocument(sessionId, documentName string) {}
func (s *stubAgentService) RemoveDocumentEverywhere(documentName string)  {}
func (s *stubAgentService) ClearSession(sessionId string)                 {}
func (s *stubAgentService) DocumentCount(sessionId string) int            { return 0 }

type stubChatService struct {
	asked      int
	structured int
}

func (s *stubChatService) Ask(ctx context.Context, sessionId uuid.UUID, question, model string) (*dto.QueryResponse, string, error) {
	s.asked++
	return &dto.QueryResponse{Answer: "answered", Sources: []dto.SourceResponse{}}, "", nil
}

func (s *stubChatService) Structure(ctx context.Context, rawAnswer, question string) *entity.StructuredResponse {
	s.structured++
	return &entity.StructuredResponse{Answer: "<p>ok</p>", Confidence: 0.8}
}

func newAgentTestApp(agentSvc service.IAgentService, chatSvc service.IChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewAgentController(agentSvc, chatSvc).RegisterRoutes(api)
	return app
}

func postAction(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/agent/v1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAgentController_StructureNeedsNoSession(t *testing.T) {
	chatSvc := &stubChatService{}
	app := newAgentTestApp(&stubAgentService{}, chatSvc)

	resp := postAction(t, app, `{"action":"structure","raw_answer":"plain text"}`)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, chatSvc.structured)
}

func TestAgentController_SessionRequiredForSessionActions(t *testing.T) {
	agentSvc := &stubAgentService{}
	chatSvc := &stubChatService{}
	app := newAgentTestApp(agentSvc, chatSvc)

	resp := postAction(t, app, `{"action":"process_document","document_name":"a.txt","content":"text"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, agentSvc.processed)

	resp = postAction(t, app, `{"action":"query","question":"hi"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, chatSvc.asked)

	resp = postAction(t, app, fmt.Sprintf(`{"action":"query","question":"hi","session_id":"%s"}`, uuid.New()))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, chatSvc.asked)
}

func TestAgentController_MalformedSessionRejected(t *testing.T) {
	app := newAgentTestApp(&stubAgentService{}, &stubChatService{})

	resp := postAction(t, app, `{"action":"query","question":"hi","session_id":"not-a-uuid"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
