package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"dlist/api"
	"dlist/logger"
	"dlist/server"

	"github.com/emicklei/go-restful/v3"
)

func setupTestAPI(t *testing.T) *restful.Container {
	t.Helper()
	container := restful.NewContainer()
	api.RegisterRoutes(container, api.NewHandler(server.NewStore(), logger.Discard()))
	return container
}

func do(t *testing.T, container *restful.Container, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", restful.MIME_JSON)
	req.Header.Set("Accept", restful.MIME_JSON)

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(t)

	recorder := do(t, container, http.MethodGet, "/api/v1/health", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_Commands(t *testing.T) {
	container := setupTestAPI(t)

	steps := []struct {
		body       string
		wantStatus int
		wantOutput string
	}{
		{body: `{"action":"CreateList"}`, wantStatus: http.StatusOK, wantOutput: "[]"},
		{body: `{"action":"AddAll","index":0,"values":[1,2,3]}`, wantStatus: http.StatusOK, wantOutput: "[1, 2, 3]"},
		{body: `{"action":"AddAlternative","value":9}`, wantStatus: http.StatusOK, wantOutput: "[1, 9, 2, 3, 9]"},
		{body: `{"action":"ShowReverse"}`, wantStatus: http.StatusOK, wantOutput: "[9, 3, 2, 9, 1]"},
		{body: `{"action":"Remove","index":5}`, wantStatus: http.StatusBadRequest},
		{body: `{"action":"AddAll","index":9,"values":[1]}`, wantStatus: http.StatusBadRequest},
		{body: `{"action":"CreateList"}`, wantStatus: http.StatusConflict},
		{body: `{"action":"Sort"}`, wantStatus: http.StatusBadRequest},
		{body: `{"action":"Equals"}`, wantStatus: http.StatusBadRequest},
		{body: `{"action":`, wantStatus: http.StatusBadRequest},
	}

	for _, step := range steps {
		recorder := do(t, container, http.MethodPost, "/api/v1/lists/numbers/commands", step.body)
		if recorder.Code != step.wantStatus {
			t.Fatalf("%s: status %d, want %d (%s)", step.body, recorder.Code, step.wantStatus, recorder.Body)
		}
		if step.wantStatus != http.StatusOK {
			continue
		}

		var result server.Result
		if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if result.Output != step.wantOutput {
			t.Errorf("%s: output %q, want %q", step.body, result.Output, step.wantOutput)
		}
		if result.List != "numbers" {
			t.Errorf("%s: list %q, want path name", step.body, result.List)
		}
	}

	recorder := do(t, container, http.MethodGet, "/api/v1/lists/numbers", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("view status %d", recorder.Code)
	}
	var view server.View
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !slices.Equal(view.Values, []int{1, 9, 2, 3, 9}) || view.Size != 5 {
		t.Errorf("view: %+v", view)
	}

	recorder = do(t, container, http.MethodGet, "/api/v1/lists", "")
	var names api.NamesResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &names); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !slices.Equal(names.Lists, []string{"numbers"}) {
		t.Errorf("names: %v", names.Lists)
	}
}

func TestAPI_UnknownList(t *testing.T) {
	container := setupTestAPI(t)

	if recorder := do(t, container, http.MethodGet, "/api/v1/lists/missing", ""); recorder.Code != http.StatusNotFound {
		t.Errorf("view: status %d, want 404", recorder.Code)
	}
	if recorder := do(t, container, http.MethodPost, "/api/v1/lists/missing/commands", `{"action":"Append","value":1}`); recorder.Code != http.StatusNotFound {
		t.Errorf("apply: status %d, want 404", recorder.Code)
	}
}

func TestAPI_OpenAPIDocument(t *testing.T) {
	container := setupTestAPI(t)

	recorder := do(t, container, http.MethodGet, "/apidocs.json", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", recorder.Code)
	}
	if !bytes.Contains(recorder.Body.Bytes(), []byte("/api/v1/lists/{name}/commands")) {
		t.Errorf("document does not describe the commands route")
	}
}
