package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"heritage_routes/internal/geo"
	"heritage_routes/internal/middleware"
	"heritage_routes/internal/models"
	"heritage_routes/internal/repository/memory"
	"heritage_routes/internal/services"
)

// Start point in central Moscow; test objects sit at small latitude offsets
// north of it (0.00045 deg is roughly 50 m).
var testStart = gin.H{"latitude": 55.7539, "longitude": 37.6208}

func nearbyObject(id uint, name string, latOffset float64) models.HeritageObject {
	obj := models.HeritageObject{
		Name:      name,
		Latitude:  55.7539 + latOffset,
		Longitude: 37.6208,
	}
	obj.ID = id
	return obj
}

func setupRouteRouter(t *testing.T, objects ...models.HeritageObject) (*gin.Engine, *middleware.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	index := geo.NewObjectIndex(geo.DefaultPrecision)
	index.Load(objects)

	svc := services.NewRouteService(index, memory.NewRouteRepository(), services.RouteConfig{
		SearchRadiusMeters: 5000,
		MaxObjects:         20,
		DefaultObjects:     5,
	})
	rc := NewRouteController(svc)
	tokens := middleware.NewTokenIssuer("test-secret", time.Hour)

	r := gin.New()
	authed := r.Group("/api/routes")
	authed.Use(tokens.RequireAuth())
	{
		authed.POST("", rc.CreateRoute)
		authed.GET("", rc.ListRoutes)
		authed.GET("/:id", rc.GetRoute)
		authed.PUT("/:id/favorite", rc.SetFavorite)
	}
	return r, tokens
}

func bearer(t *testing.T, tokens *middleware.TokenIssuer, userID uint) map[string]string {
	t.Helper()
	token, err := tokens.GenerateToken(userID, "walker")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

func getJSON(t *testing.T, r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRouteRequiresAuth(t *testing.T) {
	r, _ := setupRouteRouter(t, nearbyObject(1, "Chapel", 0.00045))

	w := postJSON(t, r, "/api/routes", gin.H{"start_location": testStart}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestCreateRouteVisitsNearestFirst(t *testing.T) {
	r, tokens := setupRouteRouter(t,
		nearbyObject(1, "Chapel", 0.00045),  // ~50 m
		nearbyObject(2, "Mansion", 0.018),   // ~2000 m
		nearbyObject(3, "Fountain", 0.0045), // ~500 m
	)

	w := postJSON(t, r, "/api/routes", gin.H{
		"start_location": testStart,
		"objects_count":  3,
	}, bearer(t, tokens, 1))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Route struct {
			ID            uint    `json:"id"`
			TotalDistance float64 `json:"total_distance"`
			Geometry      string  `json:"geometry"`
			Legs          []struct {
				SequenceNumber       int     `json:"sequence_number"`
				DistanceFromPrevious float64 `json:"distance_from_previous"`
				Object               struct {
					ID uint `json:"ID"`
				} `json:"object"`
			} `json:"legs"`
		} `json:"route"`
		RequestedCount int  `json:"requested_count"`
		Partial        bool `json:"partial"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	wantOrder := []uint{1, 3, 2} // greedy walk: nearest unvisited each step
	if len(body.Route.Legs) != len(wantOrder) {
		t.Fatalf("got %d legs, want %d", len(body.Route.Legs), len(wantOrder))
	}
	for i, leg := range body.Route.Legs {
		if leg.Object.ID != wantOrder[i] {
			t.Errorf("leg %d visits object %d, want %d", i, leg.Object.ID, wantOrder[i])
		}
		if leg.SequenceNumber != i+1 {
			t.Errorf("leg %d sequence_number = %d, want %d", i, leg.SequenceNumber, i+1)
		}
		if leg.DistanceFromPrevious <= 0 {
			t.Errorf("leg %d distance_from_previous = %f, want > 0", i, leg.DistanceFromPrevious)
		}
	}
	if body.Route.TotalDistance <= 0 {
		t.Error("total_distance should be positive")
	}
	if body.Route.Geometry == "" {
		t.Error("expected GeoJSON geometry in the response")
	}
	if body.Partial {
		t.Error("route with enough candidates should not be partial")
	}
	if body.RequestedCount != 3 {
		t.Errorf("requested_count = %d, want 3", body.RequestedCount)
	}
}

func TestCreateRouteValidation(t *testing.T) {
	r, tokens := setupRouteRouter(t, nearbyObject(1, "Chapel", 0.00045))
	auth := bearer(t, tokens, 1)

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing start", gin.H{"objects_count": 3}, http.StatusBadRequest},
		{"latitude out of range", gin.H{"start_location": gin.H{"latitude": 95.0, "longitude": 37.6}}, http.StatusBadRequest},
		{"count too small", gin.H{"start_location": testStart, "objects_count": 1}, http.StatusBadRequest},
		{"count too large", gin.H{"start_location": testStart, "objects_count": 21}, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, r, "/api/routes", tc.body, auth)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestCreateRouteNoObjectsNearby(t *testing.T) {
	r, tokens := setupRouteRouter(t) // empty index

	w := postJSON(t, r, "/api/routes", gin.H{"start_location": testStart}, bearer(t, tokens, 1))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetRouteEnforcesOwnership(t *testing.T) {
	r, tokens := setupRouteRouter(t,
		nearbyObject(1, "Chapel", 0.00045),
		nearbyObject(2, "Fountain", 0.0045),
	)

	w := postJSON(t, r, "/api/routes", gin.H{
		"start_location": testStart, "objects_count": 2,
	}, bearer(t, tokens, 1))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	if w := getJSON(t, r, "/api/routes/1", bearer(t, tokens, 1)); w.Code != http.StatusOK {
		t.Errorf("owner get status = %d, want %d", w.Code, http.StatusOK)
	}
	if w := getJSON(t, r, "/api/routes/1", bearer(t, tokens, 2)); w.Code != http.StatusNotFound {
		t.Errorf("other user get status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestSetFavorite(t *testing.T) {
	r, tokens := setupRouteRouter(t,
		nearbyObject(1, "Chapel", 0.00045),
		nearbyObject(2, "Fountain", 0.0045),
	)
	auth := bearer(t, tokens, 1)

	postJSON(t, r, "/api/routes", gin.H{"start_location": testStart, "objects_count": 2}, auth)

	req := httptest.NewRequest(http.MethodPut, "/api/routes/1/favorite", jsonReader(t, gin.H{"is_favorite": true}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth["Authorization"])
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Route struct {
			IsFavorite bool `json:"is_favorite"`
		} `json:"route"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Route.IsFavorite {
		t.Error("route should be marked favorite")
	}
}

func TestListRoutesNewestFirst(t *testing.T) {
	r, tokens := setupRouteRouter(t,
		nearbyObject(1, "Chapel", 0.00045),
		nearbyObject(2, "Fountain", 0.0045),
	)
	auth := bearer(t, tokens, 1)

	for i := 0; i < 3; i++ {
		if w := postJSON(t, r, "/api/routes", gin.H{"start_location": testStart, "objects_count": 2}, auth); w.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d", i, w.Code)
		}
	}

	w := getJSON(t, r, "/api/routes", auth)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Routes []struct {
			ID uint `json:"id"`
		} `json:"routes"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Total != 3 {
		t.Fatalf("total = %d, want 3", body.Total)
	}
	for i := 1; i < len(body.Routes); i++ {
		if body.Routes[i-1].ID < body.Routes[i].ID {
			t.Errorf("routes not newest first: %d before %d", body.Routes[i-1].ID, body.Routes[i].ID)
		}
	}
}

// jsonReader marshals a body for requests built by hand.
func jsonReader(t *testing.T, body any) io.Reader {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(payload)
}
