package intercept

import (
	"context"
	"errors"
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
	"storefront-edge/internal/interfaces/mock"
	"storefront-edge/internal/models"
	"storefront-edge/internal/policy"
)

const testOrigin = "storefront.local"

type testHarness struct {
	interceptor *Interceptor
	store       *bucket.MemoryStore
	fetcher     *mock.MockFetcher
	gen         *mock.MockGenerationProvider
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := bucket.NewMemoryStore(8, time.Hour, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })

	fetcher := mock.NewMockFetcher(ctrl)
	gen := mock.NewMockGenerationProvider(ctrl)

	interceptor := NewInterceptor(store, gen, cache.NewKeyBuilder(), fetcher,
		policy.NewTable(zap.NewNop()), testOrigin, zap.NewNop())

	return &testHarness{interceptor: interceptor, store: store, fetcher: fetcher, gen: gen}
}

func response(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func documentRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Accept", "text/html")
	return req
}

func TestInterceptor_InactiveGenerationPassesThrough(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "http://storefront.local/menu", nil)

	h.gen.EXPECT().Active().Return(false)
	h.fetcher.EXPECT().Fetch(gomock.Any(), req).Return(response(req, http.StatusOK, "fresh"), nil)

	entry, err := h.interceptor.Serve(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), entry.Body)

	// Nothing was written while inactive.
	names, err := h.store.Buckets()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestInterceptor_UncachedGetStoredOnce(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "http://storefront.local/static/css/style.css", nil)

	h.gen.EXPECT().Active().Return(true).Times(2)
	h.gen.EXPECT().Current().Return("biryani-club-v2").Times(2)
	h.fetcher.EXPECT().Fetch(gomock.Any(), req).Return(response(req, http.StatusOK, "body{}"), nil)

	// First pass: miss, fetch, store.
	entry, err := h.interceptor.Serve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []byte("body{}"), entry.Body)

	_, found := h.store.Get("biryani-club-v2", "GET /static/css/style.css")
	assert.True(t, found)

	// Second pass: cache hit, no network call (fetcher EXPECT above is Times(1)).
	entry, err = h.interceptor.Serve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []byte("body{}"), entry.Body)
}

func TestInterceptor_CachedDocumentStillFetchesNetwork(t *testing.T) {
	h := newHarness(t)

	req := documentRequest("http://storefront.local/menu")
	h.store.Set("biryani-club-v2", "GET /menu", &models.CacheEntry{
		Method: http.MethodGet, URL: "/menu", Status: http.StatusOK, Body: []byte("stale"),
		Header: http.Header{},
	})

	h.gen.EXPECT().Active().Return(true)
	h.gen.EXPECT().Current().Return("biryani-club-v2")
	h.fetcher.EXPECT().Fetch(gomock.Any(), req).Return(response(req, http.StatusOK, "fresh"), nil)

	entry, err := h.interceptor.Serve(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), entry.Body)

	// The cache was refreshed with the network copy.
	updated, found := h.store.Get("biryani-club-v2", "GET /menu")
	require.True(t, found)
	assert.Equal(t, []byte("fresh"), updated.Body)
}

func TestInterceptor_CachedDocumentFallsBackWhenOffline(t *testing.T) {
	h := newHarness(t)

	req := documentRequest("http://storefront.local/menu")
	h.store.Set("biryani-club-v2", "GET /menu", &models.CacheEntry{
		Method: http.MethodGet, URL: "/menu", Status: http.StatusOK, Body: []byte("stale"),
		Header: http.Header{},
	})

	h.gen.EXPECT().Active().Return(true)
	h.gen.EXPECT().Current().Return("biryani-club-v2")
	h.fetcher.EXPECT().Fetch(gomock.Any(), req).Return(nil, errors.New("offline"))

	entry, err := h.interceptor.Serve(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []byte("stale"), entry.Body)
}

func TestInterceptor_CachedAssetServedWithoutNetwork(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "http://storefront.local/static/css/style.css", nil)
	req.Header.Set("Accept", "text/css")
	h.store.Set("biryani-club-v2", "GET /static/css/style.css", &models.CacheEntry{
		Method: http.MethodGet, URL: "/static/css/style.css", Status: http.StatusOK,
		Body: []byte("body{}"), Header: http.Header{},
	})

	h.gen.EXPECT().Active().Return(true)
	h.gen.EXPECT().Current().Return("biryani-club-v2")
	// No fetcher expectation: the network must not be touched.

	entry, err := h.interceptor.Serve(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []byte("body{}"), entry.Body)
}

func TestInterceptor_NonGetNeverWritten(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "http://storefront.local/calculate-delivery",
		strings.NewReader(`{"address":"221B Baker Street"}`))

	h.gen.EXPECT().Active().Return(true)
	h.gen.EXPECT().Current().Return("biryani-club-v2")
	h.fetcher.EXPECT().Fetch(gomock.Any(), req).
		Return(response(req, http.StatusOK, `{"success":true}`), nil)

	entry, err := h.interceptor.Serve(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, entry.Status)

	_, found := h.store.Get("biryani-club-v2", "POST /calculate-delivery")
	assert.False(t, found)
}

func TestInterceptor_CrossOriginResponseNotCached(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "https://cdn.jsdelivr.net/npm/bootstrap.min.css", nil)

	h.gen.EXPECT().Active().Return(true)
	h.gen.EXPECT().Current().Return("biryani-club-v2")
	h.fetcher.EXPECT().Fetch(gomock.Any(), req).Return(response(req, http.StatusOK, "css"), nil)

	entry, err := h.interceptor.Serve(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, entry.Status)

	_, found := h.store.Get("biryani-club-v2", "GET /npm/bootstrap.min.css")
	assert.False(t, found)
}

func TestInterceptor_NetworkErrorWithEmptyCachePropagates(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "http://storefront.local/menu", nil)

	h.gen.EXPECT().Active().Return(true)
	h.gen.EXPECT().Current().Return("biryani-club-v2")
	h.fetcher.EXPECT().Fetch(gomock.Any(), req).Return(nil, errors.New("offline"))

	entry, err := h.interceptor.Serve(context.Background(), req)

	assert.Error(t, err)
	assert.Nil(t, entry)
}

func TestInterceptor_RouteTableOverridesDefaultPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := bucket.NewMemoryStore(8, time.Hour, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })

	fetcher := mock.NewMockFetcher(ctrl)
	gen := mock.NewMockGenerationProvider(ctrl)
	strategy := mock.NewMockStrategy(ctrl)
	strategy.EXPECT().Name().Return(models.StrategyNetworkFirst).AnyTimes()

	table := policy.NewTable(zap.NewNop())
	require.NoError(t, table.Add(`^/api/`, strategy))

	interceptor := NewInterceptor(store, gen, cache.NewKeyBuilder(), fetcher, table,
		testOrigin, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	want := &models.CacheEntry{Status: http.StatusOK, Body: []byte(`[]`)}

	gen.EXPECT().Active().Return(true)
	strategy.EXPECT().Serve(gomock.Any(), req).Return(want, nil)

	entry, err := interceptor.Serve(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, want, entry)
}
