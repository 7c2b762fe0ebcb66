package resolver

import (
	"context"
	"errors"
	"testing"

	"TickerDesk/internal/model"
	"TickerDesk/internal/quote"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestResolve_NormalizesReply(t *testing.T) {
	c := &stubCompleter{reply: "  aapl\n"}
	r := New(c, &quote.MockSource{})

	symbol, err := r.Resolve(context.Background(), "apple stock")
	if err != nil {
		t.Fatal(err)
	}
	if symbol != "AAPL" {
		t.Errorf("expected AAPL, got %q", symbol)
	}
}

func TestResolve_TakesFirstToken(t *testing.T) {
	c := &stubCompleter{reply: "AAPL (Apple Inc.)"}
	r := New(c, &quote.MockSource{})

	symbol, err := r.Resolve(context.Background(), "apple")
	if err != nil {
		t.Fatal(err)
	}
	if symbol != "AAPL" {
		t.Errorf("expected AAPL, got %q", symbol)
	}
}

func TestResolve_EmptyQuerySkipsCompleter(t *testing.T) {
	c := &stubCompleter{reply: "AAPL"}
	r := New(c, &quote.MockSource{})

	symbol, err := r.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatal(err)
	}
	if symbol != "" {
		t.Errorf("expected empty symbol, got %q", symbol)
	}
	if c.calls != 0 {
		t.Errorf("completer must not be called for empty query, got %d calls", c.calls)
	}
}

func TestResolve_CompleterFault(t *testing.T) {
	c := &stubCompleter{err: errors.New("llm down")}
	r := New(c, &quote.MockSource{})

	if _, err := r.Resolve(context.Background(), "apple"); err == nil {
		t.Fatal("expected error when completer fails")
	}
}

func TestSearch_PassesThroughMatches(t *testing.T) {
	src := &quote.MockSource{Matches: []model.SymbolMatch{
		{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ"},
		{Symbol: "APC.F", Name: "Apple Inc.", Exchange: "FRA"},
	}}
	r := New(&stubCompleter{}, src)

	matches, err := r.Search(context.Background(), "apple")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
}

func TestSearch_ZeroMatchesIsSuccess(t *testing.T) {
	r := New(&stubCompleter{}, &quote.MockSource{})

	matches, err := r.Search(context.Background(), "unknown co")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestSearch_ProviderFaultIsAnError(t *testing.T) {
	r := New(&stubCompleter{}, &quote.MockSource{SearchErr: errors.New("down")})

	if _, err := r.Search(context.Background(), "apple"); err == nil {
		t.Fatal("provider failure must be distinguishable from zero matches")
	}
}
