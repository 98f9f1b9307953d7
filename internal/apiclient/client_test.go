package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/treino/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestFindExercises verifies the lookup sends the name query and bearer token
// and decodes the candidate list.
func TestFindExercises(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/workouts/find-exercise-info-by-name": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %s, want GET", r.Method)
			}
			if got := r.URL.Query().Get("name"); got != "supino inclinado" {
				t.Errorf("name=%q, want 'supino inclinado'", got)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
				t.Errorf("Authorization=%q, want 'Bearer tok-1'", got)
			}
			writeTestJSON(t, w, http.StatusOK, []models.ExerciseCandidate{
				{ID: "a1", Name: "Supino inclinado", Grouping: "Peito"},
				{ID: "a2", Name: "Supino inclinado com halteres", Grouping: "Peito"},
			})
		},
	})
	defer ts.Close()

	client := New(ts.URL+"/", 0)
	got, err := client.FindExercises(context.Background(), "tok-1", "supino inclinado")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[1].ID != "a2" || got[1].Grouping != "Peito" {
		t.Errorf("candidate[1] = %+v", got[1])
	}
}

// TestFindExercisesStatusError verifies a non-OK answer surfaces as *StatusError.
func TestFindExercisesStatusError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/workouts/find-exercise-info-by-name": func(w http.ResponseWriter, _ *http.Request) {
			writeTestJSON(t, w, http.StatusNotFound, map[string]string{"message": "not found"})
		},
	})
	defer ts.Close()

	_, err := New(ts.URL, 0).FindExercises(context.Background(), "tok", "x")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", se.StatusCode)
	}
}

// TestFindExercisesTransportError verifies an unreachable server is not a StatusError.
func TestFindExercisesTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url, time.Second).FindExercises(context.Background(), "tok", "x")
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	var se *StatusError
	if errors.As(err, &se) {
		t.Errorf("transport failure reported as StatusError: %v", err)
	}
}

// TestFindExercisesBadJSON verifies an undecodable body is reported as an error.
func TestFindExercisesBadJSON(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/workouts/find-exercise-info-by-name": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		},
	})
	defer ts.Close()

	if _, err := New(ts.URL, 0).FindExercises(context.Background(), "tok", "x"); err == nil {
		t.Fatal("expected decode error")
	}
}

// TestCreateWorkout verifies the create call posts the integer body with bearer auth.
func TestCreateWorkout(t *testing.T) {
	var got models.CreateWorkoutRequest
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/workouts/create": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer tok-2" {
				t.Errorf("Authorization = %q", auth)
			}
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		},
	})
	defer ts.Close()

	req := models.CreateWorkoutRequest{
		AmountOfRepetitions: 10, AmountOfSeries: 4, Weight: 32,
		ExerciseInfoID: "ex-9", Division: "C",
	}
	if err := New(ts.URL, 0).CreateWorkout(context.Background(), "tok-2", req); err != nil {
		t.Fatal(err)
	}
	if got != req {
		t.Errorf("body = %+v, want %+v", got, req)
	}
}

// TestCreateWorkoutRejected verifies both message shapes end up in RejectionError.
func TestCreateWorkoutRejected(t *testing.T) {
	cases := []struct {
		name string
		body any
		want []string
	}{
		{"string", map[string]any{"message": "Workout with the same exerciseInfoId and division already exists"},
			[]string{"Workout with the same exerciseInfoId and division already exists"}},
		{"list", map[string]any{"message": []string{"weight must not be less than 1", "division must be a string"}},
			[]string{"weight must not be less than 1", "division must be a string"}},
		{"no message", map[string]any{"error": "Bad Request"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t, map[string]http.HandlerFunc{
				"/workouts/create": func(w http.ResponseWriter, _ *http.Request) {
					writeTestJSON(t, w, http.StatusBadRequest, tc.body)
				},
			})
			defer ts.Close()

			err := New(ts.URL, 0).CreateWorkout(context.Background(), "tok", models.CreateWorkoutRequest{})
			var rej *RejectionError
			if !errors.As(err, &rej) {
				t.Fatalf("err = %v, want *RejectionError", err)
			}
			if rej.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rej.StatusCode)
			}
			if len(rej.Messages) != len(tc.want) {
				t.Fatalf("messages = %v, want %v", rej.Messages, tc.want)
			}
			for i := range tc.want {
				if rej.Messages[i] != tc.want[i] {
					t.Errorf("messages[%d] = %q, want %q", i, rej.Messages[i], tc.want[i])
				}
			}
		})
	}
}
