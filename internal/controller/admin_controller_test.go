package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-rag-assistant/internal/entity"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/internal/service"
)

// fakeKnowledgeService returns canned results per operation.
type fakeKnowledgeService struct {
	items    []*entity.KnowledgeItem
	addItem  *entity.KnowledgeItem
	addErr   error
	seeded   int
	resetErr error

	addedContent string
}

func (f *fakeKnowledgeService) Setup(ctx context.Context) error { return nil }

func (f *fakeKnowledgeService) SeedIfEmpty(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeKnowledgeService) Add(ctx context.Context, content string) (*entity.KnowledgeItem, error) {
	f.addedContent = content
	return f.addItem, f.addErr
}

func (f *fakeKnowledgeService) Reset(ctx context.Context) (int, error) {
	return f.seeded, f.resetErr
}

func (f *fakeKnowledgeService) List(ctx context.Context) ([]*entity.KnowledgeItem, error) {
	return f.items, nil
}

func newAdminTestApp(svc service.IKnowledgeService) *fiber.App {
	app := fiber.New()
	ctrl := NewAdminController(svc, logger.NewNopLogger())
	// Auth is exercised separately; here it just passes through.
	ctrl.RegisterRoutes(app, func(ctx *fiber.Ctx) error { return ctx.Next() })
	return app
}

func adminRequest(t *testing.T, app *fiber.App, method, path string, body []byte) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestListKnowledge(t *testing.T) {
	svc := &fakeKnowledgeService{items: []*entity.KnowledgeItem{
		{Id: 1, Content: "工作時間", Embedding: []float32{1, 0}, CreatedAt: time.Now()},
		{Id: 2, Content: "沒有向量"},
	}}
	app := newAdminTestApp(svc)

	status, body := adminRequest(t, app, "GET", "/admin/v1/knowledge", nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["count"])
	items := data["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "工作時間", first["content"])
	assert.Equal(t, true, first["has_embedding"])
	second := items[1].(map[string]interface{})
	assert.Equal(t, false, second["has_embedding"])
}

func TestIngestKnowledge(t *testing.T) {
	svc := &fakeKnowledgeService{addItem: &entity.KnowledgeItem{
		Id: 5, Content: "新知識", Embedding: []float32{1},
	}}
	app := newAdminTestApp(svc)

	status, body := adminRequest(t, app, "POST", "/admin/v1/knowledge", []byte(`{"content": "新知識"}`))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "新知識", svc.addedContent)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["id"])
}

func TestIngestKnowledgeRejectsMissingContent(t *testing.T) {
	svc := &fakeKnowledgeService{}
	app := newAdminTestApp(svc)

	status, _ := adminRequest(t, app, "POST", "/admin/v1/knowledge", []byte(`{}`))

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Empty(t, svc.addedContent)
}

func TestIngestKnowledgeEmbedderUnavailable(t *testing.T) {
	svc := &fakeKnowledgeService{addErr: service.ErrEmbedderUnavailable}
	app := newAdminTestApp(svc)

	status, body := adminRequest(t, app, "POST", "/admin/v1/knowledge", []byte(`{"content": "新知識"}`))

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, false, body["success"])
}

func TestRebuildKnowledge(t *testing.T) {
	svc := &fakeKnowledgeService{seeded: 5}
	app := newAdminTestApp(svc)

	status, body := adminRequest(t, app, "GET", "/admin/v1/knowledge/rebuild", nil)

	assert.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "rebuilt", data["status"])
	assert.Equal(t, float64(5), data["seeded"])
}

func TestRebuildKnowledgeDisabled(t *testing.T) {
	svc := &fakeKnowledgeService{resetErr: service.ErrResetDisabled}
	app := newAdminTestApp(svc)

	status, body := adminRequest(t, app, "GET", "/admin/v1/knowledge/rebuild", nil)

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, false, body["success"])
}
