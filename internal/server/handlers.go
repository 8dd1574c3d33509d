package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"personDirectory/internal/auth"
	"personDirectory/internal/httputil"
	"personDirectory/models"
	"personDirectory/repository"
)

type handlers struct {
	people *repository.PersonRepository
}

// NewHandler builds the HTTP routing table for the person API.
func NewHandler(jwtSecret string, people *repository.PersonRepository) http.Handler {
	h := &handlers{people: people}
	build := httputil.CreateHandlerFuncBuilder(errorHandler)
	authMW := auth.NewHTTPAuthMiddleware(jwtSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", build(h.health))
	mux.HandleFunc("GET /persons", build(h.listPersons, authMW))
	mux.HandleFunc("POST /persons", build(h.createPerson, authMW))
	mux.HandleFunc("POST /persons/batch", build(h.createPersonsBatch, authMW))
	mux.HandleFunc("GET /persons/lastname/{lastname}", build(h.getByLastName, authMW))
	mux.HandleFunc("GET /persons/search", build(h.search, authMW))
	mux.HandleFunc("POST /admin/table", build(h.createTable, authMW))
	mux.HandleFunc("DELETE /admin/table", build(h.dropTable, authMW))
	return mux
}

// errorHandler responds with the safe message of a JSONError and logs the
// underlying cause. Anything else is a plain 500.
func errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	var jsonErr httputil.JSONError
	if errors.As(err, &jsonErr) {
		msg := jsonErr.SafeMessage
		if msg == "" {
			msg = http.StatusText(jsonErr.HTTPStatus)
		}
		log.Printf("request failed: %s %s: %s", r.Method, r.URL.Path, jsonErr.Error())
		_ = httputil.WriteJSON(w, jsonErr.HTTPStatus, map[string]any{"error": msg})
		return
	}
	log.Printf("request failed: %s %s: %v", r.Method, r.URL.Path, err)
	_ = httputil.WriteJSON(w, http.StatusInternalServerError, map[string]any{"error": http.StatusText(http.StatusInternalServerError)})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) error {
	return httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) listPersons(w http.ResponseWriter, r *http.Request) error {
	people, err := h.people.FetchAll(r.Context())
	if err != nil {
		return err
	}
	return httputil.WriteJSON(w, http.StatusOK, people)
}

func (h *handlers) createPerson(w http.ResponseWriter, r *http.Request) error {
	var p models.Person
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return httputil.NewJSONError(http.StatusBadRequest, err, "invalid person body")
	}
	if err := h.people.InsertOne(r.Context(), p); err != nil {
		return err
	}
	return httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *handlers) createPersonsBatch(w http.ResponseWriter, r *http.Request) error {
	var people []models.Person
	if err := json.NewDecoder(r.Body).Decode(&people); err != nil {
		return httputil.NewJSONError(http.StatusBadRequest, err, "invalid person array body")
	}
	if err := h.people.InsertMany(r.Context(), people); err != nil {
		return err
	}
	return httputil.WriteJSON(w, http.StatusCreated, map[string]int{"inserted": len(people)})
}

func (h *handlers) getByLastName(w http.ResponseWriter, r *http.Request) error {
	lastname := r.PathValue("lastname")
	p, err := h.people.FindByLastNameExact(r.Context(), lastname)
	if err != nil {
		return err
	}
	if p == nil {
		return httputil.NewJSONError(http.StatusNotFound, errors.New("no person with lastname "+lastname), "person not found")
	}
	return httputil.WriteJSON(w, http.StatusOK, p)
}

// search dispatches on query parameter: ?bio=s returns the first person whose
// biography contains s, ?lastname=s returns all (firstname, lastname) pairs
// whose lastname contains s.
func (h *handlers) search(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	if bio := q.Get("bio"); bio != "" {
		p, err := h.people.FindByBiographyContains(r.Context(), bio)
		if err != nil {
			return err
		}
		if p == nil {
			return httputil.NewJSONError(http.StatusNotFound, errors.New("no biography containing "+bio), "person not found")
		}
		return httputil.WriteJSON(w, http.StatusOK, p)
	}
	if lastname := q.Get("lastname"); lastname != "" {
		names, err := h.people.FindByLastNameContains(r.Context(), lastname)
		if err != nil {
			return err
		}
		return httputil.WriteJSON(w, http.StatusOK, names)
	}
	return httputil.NewJSONError(http.StatusBadRequest, errors.New("missing query parameter"), "bio or lastname query parameter is required")
}

func (h *handlers) createTable(w http.ResponseWriter, r *http.Request) error {
	if _, err := auth.RequireAdmin(r); err != nil {
		return err
	}
	if err := h.people.CreateTable(r.Context()); err != nil {
		if errors.Is(err, repository.ErrTableExists) {
			return httputil.NewJSONError(http.StatusConflict, err, "table already exists")
		}
		return err
	}
	return httputil.WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (h *handlers) dropTable(w http.ResponseWriter, r *http.Request) error {
	if _, err := auth.RequireAdmin(r); err != nil {
		return err
	}
	if err := h.people.DropTable(r.Context()); err != nil {
		return err
	}
	return httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "dropped"})
}
