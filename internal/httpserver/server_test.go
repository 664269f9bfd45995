package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"storefront-edge/internal/bucket"
	"storefront-edge/internal/cache"
	"storefront-edge/internal/delivery"
	"storefront-edge/internal/events"
	"storefront-edge/internal/generation"
	"storefront-edge/internal/intercept"
	"storefront-edge/internal/interfaces/mock"
	"storefront-edge/internal/models"
	"storefront-edge/internal/notify"
	"storefront-edge/internal/policy"
	"storefront-edge/internal/scheduler"
)

// newTestServer wires a full server against mock network collaborators.
func newTestServer(t *testing.T) (*Server, *mock.MockFetcher, *mock.MockQuoteClient, *generation.Manager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := zap.NewNop()

	store := bucket.NewMemoryStore(8, time.Hour, logger)
	t.Cleanup(func() { _ = store.Close() })

	fetcher := mock.NewMockFetcher(ctrl)
	keys := cache.NewKeyBuilder()
	manager := generation.NewManager("biryani-club-v2", nil, store, fetcher, keys, logger)
	interceptor := intercept.NewInterceptor(store, manager, keys, fetcher,
		policy.NewTable(logger), "storefront.local", logger)

	quotes := mock.NewMockQuoteClient(ctrl)
	quotes.EXPECT().DeliveryZones(gomock.Any()).Return([]models.DeliveryZone{
		{Range: "0-5 km", Charge: 2, Description: "Inner city"},
	}, nil)
	widget := delivery.NewWidget(context.Background(), quotes, logger)

	dispatcher := events.NewDispatcher(logger)
	notifier := notify.NewService(notify.NewLogDisplayer(logger), notify.NewLogClientOpener(logger), logger)
	events.RegisterHandlers(dispatcher, manager, notifier, scheduler.NewRegistrar(logger), logger)

	return NewServer(interceptor, dispatcher, widget, logger), fetcher, quotes, manager
}

func upstreamResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func TestServer_Health(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.createRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestServer_DeliveryQuote(t *testing.T) {
	srv, _, quotes, _ := newTestServer(t)

	quotes.EXPECT().CalculateDelivery(gomock.Any(), "221B Baker Street").
		Return(&models.DeliveryQuote{Success: true, DistanceKm: 7, DeliveryCharge: 3.5}, nil)

	rec := httptest.NewRecorder()
	srv.createRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/widget/delivery-quote",
		strings.NewReader(`{"address":"221B Baker Street"}`)))

	require.Equal(t, http.StatusOK, rec.Code)

	var view delivery.QuoteView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, delivery.ViewSuccess, view.State)
	assert.Equal(t, "7 km", view.DistanceText)
	assert.Equal(t, "$3.5", view.ChargeText)
	assert.Equal(t, "45-60 minutes", view.EstimatedTime)
}

func TestServer_DeliveryQuote_EmptyAddress(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.createRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/widget/delivery-quote",
		strings.NewReader(`{"address":""}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a delivery address")
}

func TestServer_DeliveryZones(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.createRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widget/delivery-zones", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var list models.DeliveryZoneList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.DeliveryZones, 1)
	assert.Equal(t, "0-5 km", list.DeliveryZones[0].Range)
}

func TestServer_EventEndpoint_InstallAndActivate(t *testing.T) {
	srv, _, _, manager := newTestServer(t)
	router := srv.createRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/internal/events",
		strings.NewReader(`{"kind":"install"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/internal/events",
		strings.NewReader(`{"kind":"activate"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, manager.Active())
}

func TestServer_EventEndpoint_UnknownKind(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.createRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/internal/events",
		strings.NewReader(`{"kind":"reboot"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_InterceptProxiesUpstream(t *testing.T) {
	srv, fetcher, _, _ := newTestServer(t)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *http.Request) (*http.Response, error) {
			return upstreamResponse(req, http.StatusOK, "<html>menu</html>"), nil
		})

	rec := httptest.NewRecorder()
	srv.createRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/menu", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>menu</html>", rec.Body.String())
}

func TestServer_RequestLoggerSetsRequestID(t *testing.T) {
	srv, _, _, _ := newTestServer(t)
	handler := requestLogger(zap.NewNop())(srv.createRouter())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
