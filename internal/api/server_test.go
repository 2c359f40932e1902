package api

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eve-pricebot/internal/config"
	"eve-pricebot/internal/discord"
	"eve-pricebot/internal/engine"
)

type MockComparer struct {
	mock.Mock
}

func (m *MockComparer) Compare(ctx context.Context, systemName, itemName string) (*engine.ComparisonReport, error) {
	args := m.Called(ctx, systemName, itemName)
	rep, _ := args.Get(0).(*engine.ComparisonReport)
	return rep, args.Error(1)
}

type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) EditOriginal(ctx context.Context, token string, msg discord.WebhookMessage) error {
	args := m.Called(ctx, token, msg)
	return args.Error(0)
}

type testServer struct {
	srv       *Server
	handler   http.Handler
	priv      ed25519.PrivateKey
	comparer  *MockComparer
	responder *MockResponder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	v, err := discord.NewVerifier(hex.EncodeToString(pub))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Server.CommandTimeout = 5 * time.Second
	cmp, resp := new(MockComparer), new(MockResponder)
	srv := NewServer(cfg, cmp, resp, v)
	return &testServer{srv: srv, handler: srv.Handler(), priv: priv, comparer: cmp, responder: resp}
}

func (ts *testServer) post(path, body string, sign bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	timestamp := "1700000000"
	if sign {
		sig := ed25519.Sign(ts.priv, []byte(timestamp+body))
		req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	}
	req.Header.Set("X-Signature-Timestamp", timestamp)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/", "/api/interactions"} {
		rec := httptest.NewRecorder()
		ts.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	}
}

func TestInteraction_RejectsBadSignature(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.post("/api/interactions", `{"type":1}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid request signature", rec.Body.String())
}

func TestInteraction_Ping(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.post("/", `{"type":1}`, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"type":1}`, rec.Body.String())
	ts.comparer.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything, mock.Anything)
}

func TestInteraction_UnknownType(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.post("/api/interactions", `{"type":3}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.post("/api/interactions", `{"type":2,"token":"t","data":{"name":"other"}}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const priceInteraction = `{"type":2,"token":"tok","data":{"name":"price","options":[` +
	`{"name":"system","type":3,"value":"Rens"},{"name":"item","type":3,"value":"Tritanium"}]}}`

func TestInteraction_PriceDeliversEmbed(t *testing.T) {
	ts := newTestServer(t)
	rep := &engine.ComparisonReport{
		Item:   engine.Identifier{ID: 34, Name: "Tritanium"},
		System: engine.Identifier{ID: 30002510, Name: "Rens"},
		Region: engine.Identifier{ID: 10000030, Name: "Heimatar"},
		Hub:    engine.Identifier{ID: engine.HubSystemID, Name: engine.HubName},
		Local: engine.PriceSummary{
			SystemSell: decimal.NewNullDecimal(decimal.NewFromInt(120)),
		},
	}
	ts.comparer.On("Compare", mock.Anything, "Rens", "Tritanium").Return(rep, nil)
	ts.responder.On("EditOriginal", mock.Anything, "tok", mock.MatchedBy(func(m discord.WebhookMessage) bool {
		return m.Content == "" && len(m.Embeds) == 1 && m.Embeds[0].Title == "Tritanium"
	})).Return(nil)

	rec := ts.post("/api/interactions", priceInteraction, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"type":5}`, rec.Body.String())

	ts.srv.Wait()
	ts.comparer.AssertExpectations(t)
	ts.responder.AssertExpectations(t)
}

func TestInteraction_PriceNotFoundDeliversMessage(t *testing.T) {
	ts := newTestServer(t)
	ts.comparer.On("Compare", mock.Anything, "Rens", "Tritanium").
		Return(nil, &engine.NotFoundError{Kind: "Item", Name: "Tritanium"})
	ts.responder.On("EditOriginal", mock.Anything, "tok",
		discord.WebhookMessage{Content: "Item not found: **Tritanium**"}).Return(nil)

	rec := ts.post("/api/interactions", priceInteraction, true)
	assert.JSONEq(t, `{"type":5}`, rec.Body.String())

	ts.srv.Wait()
	ts.responder.AssertExpectations(t)
}

func TestInteraction_PriceRemoteErrorHidesDetails(t *testing.T) {
	ts := newTestServer(t)
	ts.comparer.On("Compare", mock.Anything, "Rens", "Tritanium").
		Return(nil, &engine.RemoteError{Op: "system lookup", Err: context.DeadlineExceeded})
	ts.responder.On("EditOriginal", mock.Anything, "tok",
		discord.WebhookMessage{Content: "ESI error: remote service error"}).Return(nil)

	ts.post("/api/interactions", priceInteraction, true)

	ts.srv.Wait()
	ts.responder.AssertExpectations(t)
}
