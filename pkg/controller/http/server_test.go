package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/pathlight-lab/pathlight/pkg/controller/http"
	"github.com/pathlight-lab/pathlight/pkg/domain/interfaces"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/repository/memory"
	"github.com/pathlight-lab/pathlight/pkg/usecase"
)

func newTestServer(t *testing.T, opts ...usecase.Option) *httpctrl.Server {
	t.Helper()

	uc := usecase.New(memory.New(), opts...)
	server, err := httpctrl.New(uc)
	gt.NoError(t, err).Required()
	return server
}

func postJSON(t *testing.T, server *httpctrl.Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	gt.NoError(t, err).Required()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal(`{"status":"ok"}`)
}

func TestChatEndpoint(t *testing.T) {
	t.Run("returns envelope with new session ID", func(t *testing.T) {
		server := newTestServer(t)

		rec := postJSON(t, server, "/api/chat", map[string]string{
			"message": "hello there",
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			SessionID string         `json:"sessionId"`
			Content   string         `json:"content"`
			Source    string         `json:"source"`
			Actions   []model.Action `json:"actions"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()

		gt.String(t, resp.SessionID).NotEqual("")
		gt.String(t, resp.Content).NotEqual("")
		gt.Value(t, resp.Source).Equal("enriched-local")
		gt.Number(t, len(resp.Actions)).GreaterOrEqual(1)
	})

	t.Run("session ID is reused across turns", func(t *testing.T) {
		server := newTestServer(t)

		first := postJSON(t, server, "/api/chat", map[string]string{"message": "hello"})
		var firstResp struct {
			SessionID string `json:"sessionId"`
		}
		gt.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp)).Required()

		second := postJSON(t, server, "/api/chat", map[string]string{
			"sessionId": firstResp.SessionID,
			"message":   "tell me about scholarships",
		})
		var secondResp struct {
			SessionID string `json:"sessionId"`
		}
		gt.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp)).Required()

		gt.Value(t, secondResp.SessionID).Equal(firstResp.SessionID)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		server := newTestServer(t)

		rec := postJSON(t, server, "/api/chat", map[string]string{"message": "   "})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("{broken")))
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("concurrent turn on same session conflicts", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		gen := &blockingGeneration{release: release, started: started}

		server := newTestServer(t, usecase.WithGenerationClient(gen))

		first := postJSON(t, server, "/api/chat", map[string]string{"message": "hello"})
		var firstResp struct {
			SessionID string `json:"sessionId"`
		}
		gt.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp)).Required()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			postJSON(t, server, "/api/chat", map[string]string{
				"sessionId": firstResp.SessionID,
				"message":   "slow turn",
			})
		}()

		<-started
		rec := postJSON(t, server, "/api/chat", map[string]string{
			"sessionId": firstResp.SessionID,
			"message":   "second turn while busy",
		})
		gt.Value(t, rec.Code).Equal(http.StatusConflict)

		close(release)
		wg.Wait()
	})
}

// blockingGeneration blocks inside Generate until released, except for the
// very first call which returns immediately to establish a session.
type blockingGeneration struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (g *blockingGeneration) Generate(ctx context.Context, req *interfaces.GenerationRequest) (*interfaces.GenerationResponse, error) {
	g.mu.Lock()
	g.calls++
	call := g.calls
	g.mu.Unlock()

	if call > 1 {
		close(g.started)
		<-g.release
	}
	return &interfaces.GenerationResponse{
		Success:        true,
		Response:       "remote answer",
		ConversationID: "conv-1",
	}, nil
}

func TestResetEndpoint(t *testing.T) {
	t.Run("resets an existing session", func(t *testing.T) {
		server := newTestServer(t)

		chat := postJSON(t, server, "/api/chat", map[string]string{"message": "hello"})
		var chatResp struct {
			SessionID string `json:"sessionId"`
		}
		gt.NoError(t, json.Unmarshal(chat.Body.Bytes(), &chatResp)).Required()

		rec := postJSON(t, server, "/api/chat/reset", map[string]string{
			"sessionId": chatResp.SessionID,
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("unknown session is 404", func(t *testing.T) {
		server := newTestServer(t)

		rec := postJSON(t, server, "/api/chat/reset", map[string]string{
			"sessionId": "does-not-exist",
		})
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}
