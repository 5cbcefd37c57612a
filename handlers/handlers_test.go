package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rxbridge/generics-api/catalog"
	"github.com/rxbridge/generics-api/data"
	"github.com/rxbridge/generics-api/validation"
)

func fptr(v float64) *float64 { return &v }

// newTestRouter wires the handler onto a chi router the way the server does.
func newTestRouter(container *data.Container) chi.Router {
	h := New(container, validation.NewInputValidator())

	r := chi.NewRouter()
	r.Post("/catalogs/{catalog}/rows", h.UploadCatalog)
	r.Get("/catalogs/{catalog}/search", h.SearchCatalog)
	r.Get("/salt/{query}", h.SearchBySalt)
	r.Get("/health", h.HealthCheck)
	return r
}

func uploadFile(t *testing.T, router chi.Router, catalogName, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "pricelist.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/catalogs/"+catalogName+"/rows", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestUploadCatalog(t *testing.T) {
	router := newTestRouter(data.NewContainer())

	csv := "PRODUCT NAME,CONTENTS,PTR\nCROCIN TAB,PARACETAMOL 500MG,30\nDOLO 650,PARACETAMOL 650MG,55.50\n"
	rr := uploadFile(t, router, "branded", csv)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Catalog string `json:"catalog"`
		Created int    `json:"created"`
		Updated int    `json:"updated"`
		Total   int    `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Catalog != "branded" || resp.Created != 2 || resp.Updated != 0 || resp.Total != 2 {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestUploadCatalogReupload(t *testing.T) {
	router := newTestRouter(data.NewContainer())
	csv := "PRODUCT NAME,CONTENTS,PTR\nCROCIN TAB,PARACETAMOL 500MG,30\n"

	uploadFile(t, router, "branded", csv)
	rr := uploadFile(t, router, "branded", csv)

	var resp struct {
		Created int `json:"created"`
		Updated int `json:"updated"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Created != 0 || resp.Updated != 1 {
		t.Errorf("Re-upload should update, got %+v", resp)
	}
}

func TestUploadCatalogErrors(t *testing.T) {
	router := newTestRouter(data.NewContainer())

	t.Run("Unknown catalog", func(t *testing.T) {
		rr := uploadFile(t, router, "wholesale", "PRODUCT NAME\nX\n")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rr.Code)
		}
	})

	t.Run("Missing file part", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/catalogs/branded/rows", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rr.Code)
		}
	})

	t.Run("No header row", func(t *testing.T) {
		rr := uploadFile(t, router, "branded", "NAME,PRICE\nX,1\n")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rr.Code)
		}
	})
}

func TestSearchCatalogEndToEnd(t *testing.T) {
	router := newTestRouter(data.NewContainer())

	branded := "PRODUCT NAME,CONTENTS,PTR\nCROCIN TAB,PARACETAMOL 500MG,30\n"
	generic := "PRODUCT NAME,CONTENTS,PTR\nPARACETAMOL 500,PARACETAMOL 500MG,10\n"

	if rr := uploadFile(t, router, "branded", branded); rr.Code != http.StatusOK {
		t.Fatalf("Branded upload failed: %d", rr.Code)
	}
	if rr := uploadFile(t, router, "generic", generic); rr.Code != http.StatusOK {
		t.Fatalf("Generic upload failed: %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/catalogs/branded/search?name=crocin", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Match struct {
			Name string  `json:"name"`
			Salt string  `json:"salt"`
			Type string  `json:"type"`
			Ptr  float64 `json:"ptr"`
		} `json:"match"`
		MatchedBy    string `json:"matched_by"`
		Alternatives []struct {
			Name    string  `json:"name"`
			Ptr     float64 `json:"ptr"`
			Savings *string `json:"savings"`
		} `json:"alternatives"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}

	if resp.Match.Name != "CROCIN TAB" {
		t.Errorf("Expected CROCIN TAB, got %q", resp.Match.Name)
	}
	if resp.Match.Salt != "PARACETAMOL" {
		t.Errorf("Expected salt PARACETAMOL, got %q", resp.Match.Salt)
	}
	if resp.Match.Type != string(catalog.FormTablet) {
		t.Errorf("Expected TABLET type, got %q", resp.Match.Type)
	}
	if resp.MatchedBy != "contains" {
		t.Errorf("Expected contains tier, got %q", resp.MatchedBy)
	}

	if len(resp.Alternatives) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(resp.Alternatives))
	}
	alt := resp.Alternatives[0]
	if alt.Name != "PARACETAMOL 500" || alt.Ptr != 10 {
		t.Errorf("Unexpected alternative: %+v", alt)
	}
	if alt.Savings == nil || *alt.Savings != "66.67%" {
		t.Errorf("Expected savings 66.67%%, got %v", alt.Savings)
	}
}

func TestSearchCatalogMissingName(t *testing.T) {
	router := newTestRouter(data.NewContainer())

	req := httptest.NewRequest(http.MethodGet, "/catalogs/branded/search", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "missing required parameter: name" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

func TestSearchCatalogNoMatch(t *testing.T) {
	container := data.NewContainer()
	container.Branded().Upsert(catalog.Record{Name: "CROCIN", Salt: "PARACETAMOL"})
	router := newTestRouter(container)

	req := httptest.NewRequest(http.MethodGet, "/catalogs/branded/search?name=zzzzzz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rr.Code)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "no match found, check the spelling" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

func TestSearchCatalogRejectsDangerousInput(t *testing.T) {
	router := newTestRouter(data.NewContainer())

	req := httptest.NewRequest(http.MethodGet, "/catalogs/branded/search?name=%3Cscript%3E", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for dangerous input, got %d", rr.Code)
	}
}

func TestSearchBySalt(t *testing.T) {
	container := data.NewContainer()
	container.Branded().Upsert(catalog.Record{Name: "CROCIN", Salt: "PARACETAMOL", Ptr: fptr(30)})
	container.Branded().Upsert(catalog.Record{Name: "DOLO", Salt: "PARACETAMOL", Ptr: fptr(25)})
	container.Generic().Upsert(catalog.Record{Name: "PARA GEN", Salt: "PARACETAMOL", Ptr: fptr(10)})
	router := newTestRouter(container)

	req := httptest.NewRequest(http.MethodGet, "/salt/paracetamol", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Branded []struct {
			Name string `json:"name"`
		} `json:"branded"`
		Generic []struct {
			Name string `json:"name"`
		} `json:"generic"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if len(resp.Branded) != 2 || len(resp.Generic) != 1 {
		t.Fatalf("Expected 2 branded and 1 generic, got %d and %d",
			len(resp.Branded), len(resp.Generic))
	}
	// Cheapest branded record first
	if resp.Branded[0].Name != "DOLO" {
		t.Errorf("Expected DOLO first, got %q", resp.Branded[0].Name)
	}
}

func TestSearchBySaltNotFound(t *testing.T) {
	router := newTestRouter(data.NewContainer())

	req := httptest.NewRequest(http.MethodGet, "/salt/unobtainium", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	container := data.NewContainer()
	container.Branded().Upsert(catalog.Record{Name: "CROCIN"})
	router := newTestRouter(container)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Status       string                 `json:"status"`
		LastIngested string                 `json:"last_ingested"`
		Data         map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if resp.Status != "healthy" {
		t.Errorf("Expected healthy, got %q", resp.Status)
	}
	if resp.LastIngested != "never" {
		t.Errorf("Expected last_ingested never, got %q", resp.LastIngested)
	}
	if resp.Data["branded"].(float64) != 1 {
		t.Errorf("Expected 1 branded record, got %v", resp.Data["branded"])
	}
}

func TestHealthCheckEmptyCatalogs(t *testing.T) {
	router := newTestRouter(data.NewContainer())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "degraded" {
		t.Errorf("Expected degraded on empty catalogs, got %q", resp.Status)
	}
}
