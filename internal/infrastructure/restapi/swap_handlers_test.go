package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap_desk/internal/domain/entity"
	"swap_desk/internal/infrastructure/wallet"
)

var testJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// stubController drives handlers with canned answers.
type stubController struct {
	intent     entity.SwapIntent
	selectErr  error
	presetErr  error
	connectErr error
	aggErr     error
	aggRoute   entity.RouteResult

	selectedRole entity.Role
	selectedName string
	aggAmount    string
	inverted     bool
}

func (s *stubController) Snapshot() entity.SwapIntent { return s.intent }

func (s *stubController) SelectToken(role entity.Role, name string) error {
	s.selectedRole, s.selectedName = role, name
	return s.selectErr
}

func (s *stubController) InvertDirection() { s.inverted = true }

func (s *stubController) SetAmountPreset(entity.AmountPreset) error { return s.presetErr }

func (s *stubController) FilterTokens(term string) []entity.Token {
	if term == "us" {
		return []entity.Token{{Name: "USDC"}, {Name: "USDT"}}
	}
	return []entity.Token{{Name: "ETH"}, {Name: "USDC"}, {Name: "USDT"}, {Name: "LINK"}}
}

func (s *stubController) ConnectWallet(context.Context) (string, error) {
	if s.connectErr != nil {
		return "", s.connectErr
	}
	return "0x1111111111111111111111111111111111111111", nil
}

func (s *stubController) ExecuteAggregation(_ context.Context, amount string) (entity.RouteResult, error) {
	s.aggAmount = amount
	return s.aggRoute, s.aggErr
}

type apiResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string, header map[string]string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, testJSON.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w, resp
}

func newTestRouter(ctrl *stubController, apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(NewSwapHandler(ctrl), nil, apiKey)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubController{}, "")

	w, resp := doRequest(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", resp.Data["status"])
}

func TestStatusEndpoint(t *testing.T) {
	ctrl := &stubController{intent: entity.SwapIntent{
		WalletAddress: "0x1",
		InRoute:       true,
		Route:         entity.EmptyRoute(),
	}}
	router := newTestRouter(ctrl, "")

	w, resp := doRequest(t, router, http.MethodGet, "/api/status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp.Data["walletConnected"])
	assert.Equal(t, true, resp.Data["inRoute"])
	assert.Equal(t, "empty", resp.Data["routeState"])
}

func TestTokensEndpoint_SearchFilter(t *testing.T) {
	router := newTestRouter(&stubController{}, "")

	_, resp := doRequest(t, router, http.MethodGet, "/api/tokens?search=us", "", nil)
	tokens := resp.Data["tokens"].([]interface{})
	require.Len(t, tokens, 2)

	_, resp = doRequest(t, router, http.MethodGet, "/api/tokens", "", nil)
	assert.Len(t, resp.Data["tokens"], 4)
}

func TestSelectTokenEndpoint(t *testing.T) {
	ctrl := &stubController{}
	router := newTestRouter(ctrl, "")

	w, resp := doRequest(t, router, http.MethodPost, "/api/swap/select", `{"role":"source","name":"USDC"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, entity.RoleSource, ctrl.selectedRole)
	assert.Equal(t, "USDC", ctrl.selectedName)
}

func TestSelectTokenEndpoint_MissingFields(t *testing.T) {
	router := newTestRouter(&stubController{}, "")

	w, resp := doRequest(t, router, http.MethodPost, "/api/swap/select", `{"role":"source"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestSelectTokenEndpoint_ControllerError(t *testing.T) {
	ctrl := &stubController{selectErr: errors.New("unknown token")}
	router := newTestRouter(ctrl, "")

	w, _ := doRequest(t, router, http.MethodPost, "/api/swap/select", `{"role":"source","name":"DOGE"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvertEndpoint(t *testing.T) {
	ctrl := &stubController{}
	router := newTestRouter(ctrl, "")

	w, _ := doRequest(t, router, http.MethodPost, "/api/swap/invert", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ctrl.inverted)
}

func TestPresetEndpoint_Invalid(t *testing.T) {
	ctrl := &stubController{presetErr: errors.New("invalid preset")}
	router := newTestRouter(ctrl, "")

	w, _ := doRequest(t, router, http.MethodPost, "/api/swap/preset", `{"preset":33}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectWalletEndpoint_NoWallet(t *testing.T) {
	ctrl := &stubController{connectErr: wallet.ErrNoWalletFound}
	router := newTestRouter(ctrl, "")

	w, resp := doRequest(t, router, http.MethodPost, "/api/wallet/connect", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "No wallet found")
}

func TestConnectWalletEndpoint_Success(t *testing.T) {
	router := newTestRouter(&stubController{}, "")

	w, resp := doRequest(t, router, http.MethodPost, "/api/wallet/connect", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", resp.Data["address"])
}

func TestAggregateEndpoint(t *testing.T) {
	ctrl := &stubController{aggRoute: entity.LegsRoute([]entity.RouteLeg{{Address: "0xaaa", Amount: "10"}})}
	router := newTestRouter(ctrl, "")

	w, resp := doRequest(t, router, http.MethodPost, "/api/aggregate", `{"amount":"1.5"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "1.5", ctrl.aggAmount)

	route := resp.Data["route"].(map[string]interface{})
	assert.Equal(t, "legs", route["kind"])
}

func TestAggregateEndpoint_NoBody(t *testing.T) {
	ctrl := &stubController{aggRoute: entity.EmptyRoute()}
	router := newTestRouter(ctrl, "")

	w, _ := doRequest(t, router, http.MethodPost, "/api/aggregate", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", ctrl.aggAmount)
}

func TestAggregateEndpoint_BackendFailure(t *testing.T) {
	ctrl := &stubController{aggErr: errors.New("backend down")}
	router := newTestRouter(ctrl, "")

	w, _ := doRequest(t, router, http.MethodPost, "/api/aggregate", `{"amount":"1"}`, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAPIKeyAuth(t *testing.T) {
	router := newTestRouter(&stubController{}, "secret")

	w, resp := doRequest(t, router, http.MethodGet, "/api/tokens", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid API key", resp.Error)

	w, resp = doRequest(t, router, http.MethodGet, "/api/tokens", "", map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	// Health stays open without a key.
	w, _ = doRequest(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
