package registry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"actdex/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func testConfig() config.Config {
	return config.Config{
		RegistryBaseURL:      "https://example.test/Details",
		RegistryRateLimitRPS: 1000,
		RegistryTimeoutMs:    5000,
		RegistryMinBodyBytes: 20,
	}
}

func htmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

const goodBody = `<html><p class="ActHead5">1  Short title</p><p class="subsection">cited as the Test Act.</p></html>`

func TestFetchDocumentRetriesTransientStatus(t *testing.T) {
	attempt := 0
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path != "/Details/C100" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			attempt++
			if attempt == 1 {
				return htmlResponse(http.StatusServiceUnavailable, "busy"), nil
			}
			return htmlResponse(http.StatusOK, goodBody), nil
		}),
	}

	markup, err := client.FetchDocument(context.Background(), "C100")
	if err != nil {
		t.Fatal(err)
	}
	if attempt != 2 || markup != goodBody {
		t.Fatalf("attempt=%d", attempt)
	}
}

func TestFetchDocumentTerminalStatus(t *testing.T) {
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusNotFound, "missing"), nil
		}),
	}

	_, err := client.FetchDocument(context.Background(), "C100")
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("err=%v", err)
	}
}

func TestFetchDocumentBodyTooSmall(t *testing.T) {
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusOK, "<html></html>"), nil
		}),
	}

	_, err := client.FetchDocument(context.Background(), "C100")
	if !errors.Is(err, ErrBodyTooSmall) {
		t.Fatalf("err=%v", err)
	}
}

func TestFetchDocumentShellPage(t *testing.T) {
	shell := `<html><body><div id="app-shell">loading, please wait...</div></body></html>`
	client := NewClient(testConfig())
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusOK, shell), nil
		}),
	}

	_, err := client.FetchDocument(context.Background(), "C100")
	if !errors.Is(err, ErrShellPage) {
		t.Fatalf("err=%v", err)
	}
}

func TestShellSignatureRequiresMissingHeadings(t *testing.T) {
	// a real document can mention app-shell in scripts; the heading classes
	// make it a document, not a shell
	real := `<div id="app-shell"></div><p class="ActHead5">1  Short title</p>`
	if isShellPage(real) {
		t.Fatal("document with headings flagged as shell")
	}
	if !isShellPage(`<div id="app-shell"></div>`) {
		t.Fatal("shell not detected")
	}
}
