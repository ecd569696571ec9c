package billing_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	modbilling "github.com/Muhammed2101812/Designer-tools-sub003/modules/billing"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/billing"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/email"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/notification"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/plan"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/quota"
	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/ratelimit"
	"github.com/Muhammed2101812/Designer-tools-sub003/svc/subscription"
)

const (
	testWebhookSecret = "whsec_test"
	testSweepSecret   = "sweep_test"
)

type moduleFixture struct {
	module *modbilling.Module
	server *httptest.Server
	store  *subscription.MemoryStore
}

func newModuleFixture(t *testing.T, opts ...modbilling.ModuleOption) *moduleFixture {
	t.Helper()

	catalog := plan.DefaultCatalog()
	store := subscription.NewMemoryStore()
	subs := subscription.NewService(store, catalog)

	ledger := quota.NewLedger(quota.NewMemoryStore(), catalog)

	sched := notification.NewScheduler(
		notification.NewMemorySuppressionStore(),
		email.NewDevSender(nil),
		func(context.Context, string) (notification.Recipient, error) {
			return notification.Recipient{Email: "user@example.com"}, nil
		},
	)
	sweeper := notification.NewSweeper(sched, ledger, subs.PlanFor, catalog, nil)

	module := modbilling.New(modbilling.Config{
		WebhookSecret:   testWebhookSecret,
		SignatureMaxAge: 5 * time.Minute,
		SweepSecret:     testSweepSecret,
	}, subs, ledger, sched, sweeper, opts...)

	server := httptest.NewServer(module.Handler())
	t.Cleanup(server.Close)

	return &moduleFixture{module: module, server: server, store: store}
}

func signedWebhookRequest(t *testing.T, url string, payload []byte) *http.Request {
	t.Helper()

	sig, err := billing.Sign(testWebhookSecret, payload, time.Now())
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url+"/webhooks/billing", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set(billing.SignatureHeader, sig)
	return req
}

func checkoutPayload(eventID, subID, userID string) []byte {
	return fmt.Appendf(nil, `{
		"id": %q,
		"type": "checkout.completed",
		"occurred_at": "2026-08-29T10:00:00Z",
		"data": {
			"subscription_id": %q,
			"user_id": %q,
			"customer_id": "ctm_1",
			"plan": "premium",
			"status": "active",
			"current_period_start": "2026-08-29T00:00:00Z",
			"current_period_end": "2026-09-29T00:00:00Z"
		}
	}`, eventID, subID, userID)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestWebhook_AppliedThenDuplicate(t *testing.T) {
	t.Parallel()

	fx := newModuleFixture(t)
	payload := checkoutPayload("evt_1", "sub_1", "user_1")

	resp, err := http.DefaultClient.Do(signedWebhookRequest(t, fx.server.URL, payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "applied", decodeBody(t, resp)["outcome"])

	// Redelivery of the same event id acknowledges without reapplying.
	resp, err = http.DefaultClient.Do(signedWebhookRequest(t, fx.server.URL, payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "duplicate", decodeBody(t, resp)["outcome"])

	profile, err := fx.store.GetProfile(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, plan.Premium, profile.Plan)
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	t.Parallel()

	fx := newModuleFixture(t)
	payload := checkoutPayload("evt_1", "sub_1", "user_1")

	req, err := http.NewRequest(http.MethodPost, fx.server.URL+"/webhooks/billing", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set(billing.SignatureHeader, "t=1,v1=deadbeef")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhook_RejectsMissingSignature(t *testing.T) {
	t.Parallel()

	fx := newModuleFixture(t)

	resp, err := http.Post(fx.server.URL+"/webhooks/billing", "application/json", bytes.NewReader(checkoutPayload("evt_1", "sub_1", "user_1")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhook_UnknownPlanIsTerminal(t *testing.T) {
	t.Parallel()

	fx := newModuleFixture(t)
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.completed",
		"data": {"subscription_id": "sub_1", "user_id": "user_1", "plan": "platinum"}
	}`)

	resp, err := http.DefaultClient.Do(signedWebhookRequest(t, fx.server.URL, payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuotaConsume_FreeUserRunsOut(t *testing.T) {
	t.Parallel()

	fx := newModuleFixture(t)
	consume := func() map[string]any {
		req, err := http.NewRequest(http.MethodPost, fx.server.URL+"/quota/consume", nil)
		require.NoError(t, err)
		req.Header.Set(modbilling.UserIDHeader, "free_user")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decodeBody(t, resp)
	}

	var body map[string]any
	for range 10 {
		body = consume()
		assert.Equal(t, true, body["allowed"])
	}
	assert.Equal(t, float64(0), body["remaining"])

	body = consume()
	assert.Equal(t, false, body["allowed"])
	assert.Contains(t, body, "upgradeHint")
}

func TestQuotaEndpoints_RequireUser(t *testing.T) {
	t.Parallel()

	fx := newModuleFixture(t)

	resp, err := http.Post(fx.server.URL+"/quota/consume", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(fx.server.URL + "/quota")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestQuotaUsage_ReportsCounter(t *testing.T) {
	t.Parallel()

	fx := newModuleFixture(t)

	req, err := http.NewRequest(http.MethodGet, fx.server.URL+"/quota", nil)
	require.NoError(t, err)
	req.Header.Set(modbilling.UserIDHeader, "user_1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "free", body["plan"])
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, float64(0), body["used"])
}

func TestCheckout_RateLimited(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(ratelimit.NewMemoryStore(), ratelimit.Config{
		Limit:  2,
		Window: time.Minute,
	})
	require.NoError(t, err)

	fx := newModuleFixture(t, modbilling.WithRateLimiter(limiter))

	post := func() *http.Response {
		req, err := http.NewRequest(http.MethodPost, fx.server.URL+"/billing/portal", nil)
		require.NoError(t, err)
		req.Header.Set(modbilling.UserIDHeader, "user_1")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	for range 2 {
		resp := post()
		resp.Body.Close()
		assert.NotEqual(t, http.StatusTooManyRequests, resp.StatusCode)
	}

	resp := post()
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestSweep_Authorization(t *testing.T) {
	t.Parallel()

	fx := newModuleFixture(t)

	resp, err := http.Post(fx.server.URL+"/internal/quota-sweep", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, fx.server.URL+"/internal/quota-sweep", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req.Header.Set("Authorization", "Bearer "+testSweepSecret)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body, "usersChecked")
	assert.Contains(t, body, "warningsSent")
}
