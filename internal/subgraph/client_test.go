package subgraph

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBlockAtOrAfter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotQuery = string(body)
		w.Write([]byte(`{"data":{"blocks":[{"number":"19538000","timestamp":"1711690370"}]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	block, err := client.BlockAtOrAfter(context.Background(), 1711690366)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if block != 19538000 {
		t.Fatalf("block = %d, want 19538000", block)
	}
	if !strings.Contains(gotQuery, "timestamp_gte: 1711690366") {
		t.Fatalf("query missing timestamp bound: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "first: 1") {
		t.Fatalf("query missing first: 1: %s", gotQuery)
	}
}

func TestBlockAtOrAfterEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"blocks":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.BlockAtOrAfter(context.Background(), 99999999999)
	if !errors.Is(err, ErrNoBlock) {
		t.Fatalf("err = %v, want ErrNoBlock", err)
	}
}

func TestBlockAtOrAfterGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"indexing error"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.BlockAtOrAfter(context.Background(), 1711690366); err == nil {
		t.Fatalf("expected error for errors list")
	}
}

func TestBlockAtOrAfterBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.BlockAtOrAfter(context.Background(), 1711690366); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestPoolAtBlock(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotQuery = string(body)
		w.Write([]byte(`{"data":{"gammaPool":{
			"id":"0xd63c125b169bc5655f9fdefb47c7d33e622416c7",
			"lpInvariant":"12000000000000",
			"lpBorrowedInvariant":"500000000000",
			"lastPrice":"1020304",
			"totalSupply":"10000000000000",
			"token0":{"decimals":"18"},
			"token1":{"decimals":"6"}
		}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	snapshot, err := client.PoolAtBlock(context.Background(), "0xd63c125b169bc5655f9fdefb47c7d33e622416c7", 19538000)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if snapshot.LPInvariant != "12000000000000" {
		t.Fatalf("lpInvariant = %q", snapshot.LPInvariant)
	}
	if snapshot.LPBorrowedInvariant != "500000000000" {
		t.Fatalf("lpBorrowedInvariant = %q", snapshot.LPBorrowedInvariant)
	}
	if snapshot.LastPrice != "1020304" || snapshot.TotalSupply != "10000000000000" {
		t.Fatalf("snapshot mismatch: %+v", snapshot)
	}
	if snapshot.Token0Decimals != 18 || snapshot.Token1Decimals != 6 {
		t.Fatalf("token decimals = %d/%d, want 18/6", snapshot.Token0Decimals, snapshot.Token1Decimals)
	}
	if !strings.Contains(gotQuery, `block: {number: 19538000}`) {
		t.Fatalf("query missing block constraint: %s", gotQuery)
	}
}

func TestPoolAtBlockAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"gammaPool":null}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.PoolAtBlock(context.Background(), "0xmissing", 1)
	if !errors.Is(err, ErrNoPool) {
		t.Fatalf("err = %v, want ErrNoPool", err)
	}
}
