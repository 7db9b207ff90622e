package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtabs/internal/shared"
	"golang.org/x/oauth2"
)

type fakeExchanger struct {
	token *oauth2.Token
	err   error
	codes []string
}

func (f *fakeExchanger) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	f.codes = append(f.codes, code)
	return f.token, f.err
}

func testLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: log.DebugLevel})
}

func TestBasicRouter(t *testing.T) {
	t.Run("Method Filtering", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pong"))
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Errorf("expected pong, got %d %q", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("unexpected order %v", order)
		}
	})

	t.Run("Handler Routes Are Wrapped", func(t *testing.T) {
		var wrapped int
		router := NewBasicRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				wrapped++
				next.ServeHTTP(w, r)
			})
		})
		router.Handler(NewOAuthHandler(&fakeExchanger{}, "state"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=wrong", nil))
		if wrapped != 1 {
			t.Errorf("expected middleware to run once, ran %d times", wrapped)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected state mismatch to be rejected, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 for unknown path, got %d", rec.Code)
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("RequestLogger", func(t *testing.T) {
		var buf bytes.Buffer
		h := RequestLogger(testLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=secret", nil))

		out := buf.String()
		if !strings.Contains(out, "/callback") || !strings.Contains(out, "418") {
			t.Errorf("expected path and status in log, got %q", out)
		}
		if strings.Contains(out, "secret") {
			t.Errorf("expected query string to be omitted, got %q", out)
		}
		if rec.Code != http.StatusTeapot {
			t.Errorf("expected status to pass through, got %d", rec.Code)
		}
	})

	t.Run("Recoverer", func(t *testing.T) {
		var buf bytes.Buffer
		h := Recoverer(testLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
		if !strings.Contains(buf.String(), "boom") {
			t.Errorf("expected panic to be logged, got %q", buf.String())
		}
	})
}

func TestOAuthHandler(t *testing.T) {
	t.Run("Routes", func(t *testing.T) {
		h := NewOAuthHandler(&fakeExchanger{}, "state")
		if routes := h.Routes(); len(routes) != 1 || routes[0] != "/callback" {
			t.Errorf("unexpected routes %v", routes)
		}
	})

	t.Run("Successful Exchange", func(t *testing.T) {
		ex := &fakeExchanger{token: &oauth2.Token{AccessToken: "access"}}
		h := NewOAuthHandler(ex, "state-1")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-1&code=abc", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if len(ex.codes) != 1 || ex.codes[0] != "abc" {
			t.Errorf("expected code abc to be exchanged, got %v", ex.codes)
		}

		result := <-h.Result()
		if result.Error() != nil || result.Token.AccessToken != "access" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("Invalid State", func(t *testing.T) {
		ex := &fakeExchanger{}
		h := NewOAuthHandler(ex, "expected")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=other&code=abc", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if len(ex.codes) != 0 {
			t.Error("expected no exchange on state mismatch")
		}
		if result := <-h.Result(); result.Error() == nil {
			t.Error("expected error result")
		}
	})

	t.Run("Provider Error", func(t *testing.T) {
		h := NewOAuthHandler(&fakeExchanger{}, "s")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=s&error=access_denied", nil))

		result := <-h.Result()
		if result.Error() == nil || !strings.Contains(result.Error().Error(), "access_denied") {
			t.Errorf("expected access_denied error, got %v", result.Error())
		}
	})

	t.Run("Exchange Failure", func(t *testing.T) {
		h := NewOAuthHandler(&fakeExchanger{err: errors.New("bad code")}, "s")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=s&code=x", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
		if result := <-h.Result(); result.Error() == nil {
			t.Error("expected error result")
		}
	})

	t.Run("Only Once", func(t *testing.T) {
		h := NewOAuthHandler(&fakeExchanger{token: &oauth2.Token{AccessToken: "a"}}, "s")

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?state=s&code=x", nil))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=s&code=y", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected second callback to be rejected, got %d", rec.Code)
		}
	})

	t.Run("Exchanges Against Token Endpoint", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			if r.Form.Get("code") != "auth-code" {
				t.Errorf("expected auth-code, got %q", r.Form.Get("code"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600,"id_token":"google-id"}`))
		}))
		defer tokenServer.Close()

		cfg := &oauth2.Config{
			ClientID:     "client",
			ClientSecret: "secret",
			Endpoint:     oauth2.Endpoint{TokenURL: tokenServer.URL, AuthStyle: oauth2.AuthStyleInParams},
		}
		h := NewOAuthHandler(cfg, "s")
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?state=s&code=auth-code", nil))

		result := <-h.Result()
		if result.Error() != nil {
			t.Fatalf("expected no error, got %v", result.Error())
		}
		if id, _ := result.Token.Extra("id_token").(string); id != "google-id" {
			t.Errorf("expected id_token google-id, got %q", id)
		}
	})
}

func TestCallbackServer(t *testing.T) {
	logger := testLogger(io.Discard)

	t.Run("Delivers Token", func(t *testing.T) {
		h := NewOAuthHandler(&fakeExchanger{token: &oauth2.Token{AccessToken: "a"}}, "s")
		srv := NewCallbackServer("127.0.0.1:0", h, logger)
		if err := srv.Start(); err != nil {
			t.Fatalf("failed to start: %v", err)
		}

		go func() {
			resp, err := http.Get(fmt.Sprintf("http://%s/callback?state=s&code=c", srv.Addr()))
			if err == nil {
				resp.Body.Close()
			}
		}()

		token, err := srv.Wait(context.Background(), 5*time.Second)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token.AccessToken != "a" {
			t.Errorf("unexpected token %+v", token)
		}
	})

	t.Run("Times Out", func(t *testing.T) {
		h := NewOAuthHandler(&fakeExchanger{}, "s")
		srv := NewCallbackServer("127.0.0.1:0", h, logger)
		if err := srv.Start(); err != nil {
			t.Fatalf("failed to start: %v", err)
		}

		_, err := srv.Wait(context.Background(), 10*time.Millisecond)
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})

	t.Run("Callback Error", func(t *testing.T) {
		h := NewOAuthHandler(&fakeExchanger{}, "s")
		srv := NewCallbackServer("127.0.0.1:0", h, logger)
		if err := srv.Start(); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		h.Send(OAuthResult{err: errors.New("denied")})

		_, err := srv.Wait(context.Background(), time.Second)
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("Address In Use", func(t *testing.T) {
		first := NewCallbackServer("127.0.0.1:0", NewOAuthHandler(&fakeExchanger{}, "s"), logger)
		if err := first.Start(); err != nil {
			t.Fatalf("failed to start: %v", err)
		}
		defer first.shutdown()

		second := NewCallbackServer(first.Addr(), NewOAuthHandler(&fakeExchanger{}, "s"), logger)
		if err := second.Start(); err == nil {
			t.Error("expected listen error")
		}
	})
}
