package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCallSuccessEnvelope(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"result":{"data":{"json":{"name":"codex-a"}}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")
	raw, err := client.Call(context.Background(), OpInspectService, ServiceRef{ProjectName: "main", ServiceName: "codex-a"})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	if gotPath != "/api/trpc/services.app.inspectService" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if _, ok := gotBody["json"]; !ok {
		t.Errorf("request body missing json wrapper: %v", gotBody)
	}

	var data struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if data.Name != "codex-a" {
		t.Errorf("unexpected result data: %s", raw)
	}
}

func TestCallErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"nested json message", `{"error":{"json":{"message":"Service not found"}}}`, "Service not found"},
		{"flat message", `{"error":{"message":"bad input"}}`, "bad input"},
		{"opaque error object", `{"error":{"code":-32600}}`, `{"code":-32600}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(c.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "tok")
			_, err := client.Call(context.Background(), OpDeployService, nil)
			if err == nil {
				t.Fatal("expected error")
			}

			var rpcErr *RPCError
			if !errors.As(err, &rpcErr) {
				t.Fatalf("expected *RPCError, got %T: %v", err, err)
			}
			if rpcErr.Message != c.message {
				t.Errorf("message = %q, want %q", rpcErr.Message, c.message)
			}
		})
	}
}

func TestCallMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	_, err := client.Call(context.Background(), OpListProjects, nil)
	if err == nil {
		t.Fatal("expected error for non-JSON body")
	}

	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		t.Fatalf("malformed body must not be classified as an RPC error: %v", err)
	}
	if !strings.Contains(err.Error(), "malformed response") {
		t.Errorf("error should mention malformed response, got: %v", err)
	}
}

func TestProjectServiceNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"data":{"json":{"name":"main","services":[{"name":"codex-a"},{"name":"codex-b"}]}}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	names, err := ProjectServiceNames(context.Background(), client, "main")
	if err != nil {
		t.Fatalf("ProjectServiceNames failed: %v", err)
	}
	if len(names) != 2 || names[0] != "codex-a" || names[1] != "codex-b" {
		t.Errorf("unexpected names: %v", names)
	}
}
