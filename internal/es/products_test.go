package es

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/models"
)

type recorded struct {
	method string
	path   string
	body   string
}

func newTestIndex(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*ProductIndex, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return &ProductIndex{Client: client, Index: "products"}, &reqs
}

func TestIndexProduct(t *testing.T) {
	idx, reqs := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	p := &models.Product{Name: "Apples", Price: decimal.RequireFromString("99.5"), IsActive: true, InStock: true}
	p.ID = uuid.New()
	require.NoError(t, idx.IndexProduct(context.Background(), p))

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	require.Equal(t, http.MethodPut, got.method)
	require.Equal(t, "/products/_doc/"+p.ID.String(), got.path)

	var doc productDoc
	require.NoError(t, json.Unmarshal([]byte(got.body), &doc))
	require.Equal(t, "Apples", doc.Name)
	require.InDelta(t, 99.5, doc.Price, 0.0001)
}

func TestDeleteProductIgnoresMissing(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})
	require.NoError(t, idx.DeleteProduct(context.Background(), uuid.New()))
}

func TestSearchProducts(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	idx, reqs := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":7},"hits":[{"_id":"` + a.String() + `"},{"_id":"junk"},{"_id":"` + b.String() + `"}]}}`))
	})

	total, ids, err := idx.SearchProducts(context.Background(), "apple", 20, 10)
	require.NoError(t, err)
	require.EqualValues(t, 7, total)
	require.Equal(t, []uuid.UUID{a, b}, ids)

	got := (*reqs)[0]
	require.Equal(t, "/products/_search", got.path)
	require.True(t, strings.Contains(got.body, `"fuzziness":"AUTO"`))
	require.True(t, strings.Contains(got.body, `"from":20`))
}

func TestSearchProductsError(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})
	_, _, err := idx.SearchProducts(context.Background(), "apple", 0, 10)
	require.Error(t, err)
}
