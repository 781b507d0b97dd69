package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/user/reportsnap/pkg/adapters/logger"
	"github.com/user/reportsnap/pkg/ports"
)

func TestClientConvertContent(t *testing.T) {
	var gotReq ConversionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/convert" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"success":true,"image_path":"/srv/output/images/remote.png"}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, logger.NewNoop())
	path, err := c.Convert(context.Background(), ConversionRequest{HTMLContent: "<html></html>"})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if path != "/srv/output/images/remote.png" {
		t.Errorf("unexpected path: %s", path)
	}
	if gotReq.HTMLContent != "<html></html>" {
		t.Errorf("content not forwarded: %s", gotReq.HTMLContent)
	}
}

func TestClientConvertAbsolutizesPaths(t *testing.T) {
	var gotReq ConversionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"success":true,"image_path":"out.png"}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, logger.NewNoop())
	if _, err := c.Convert(context.Background(), ConversionRequest{
		HTMLFilePath: "relative/page.html",
		PNGFilePath:  "relative/out.png",
	}); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.HasPrefix(gotReq.HTMLFilePath, "/") {
		t.Errorf("html path should be absolute: %s", gotReq.HTMLFilePath)
	}
	if !strings.HasPrefix(gotReq.PNGFilePath, "/") {
		t.Errorf("png path should be absolute: %s", gotReq.PNGFilePath)
	}
}

func TestClientConvertRemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success":false,"error":"all rendering backends failed"}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, logger.NewNoop())
	_, err := c.Convert(context.Background(), ConversionRequest{HTMLContent: "<html></html>"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "all rendering backends failed") {
		t.Errorf("remote error should be surfaced: %v", err)
	}
}

func TestClientConvertRequiresSource(t *testing.T) {
	c := NewClient("http://localhost:0", logger.NewNoop())
	if _, err := c.Convert(context.Background(), ConversionRequest{}); err == nil {
		t.Fatal("expected error for empty request")
	}
}

func TestClientHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, logger.NewNoop())
	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}
}

func TestClientAsRenderer(t *testing.T) {
	var gotReq ConversionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"success":true,"image_path":"/tmp/out.png"}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, logger.NewNoop())
	err := c.Render(context.Background(), "/tmp/page.html", "/tmp/out.png", ports.ShotOptions{
		ViewportWidth:  1200,
		ViewportHeight: 800,
		ScaleFactor:    1.5,
		TimeoutMs:      60000,
		FullPage:       true,
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if gotReq.Options == nil || gotReq.Options.Width != 1200 {
		t.Errorf("options not forwarded: %+v", gotReq.Options)
	}
	if c.Name() != "remote-service" {
		t.Errorf("unexpected name: %s", c.Name())
	}
}
