package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"bgmix/internal/models"
	"bgmix/internal/providers"
	"bgmix/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type SessionController struct {
	logger  providers.Logger
	service services.SessionServiceInterface
}

func NewSessionController(logger providers.Logger, service services.SessionServiceInterface) *SessionController {
	return &SessionController{
		logger:  logger,
		service: service,
	}
}

// Create stores a game night session and answers with its shareable id.
func (sc *SessionController) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var sess models.Session
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id, err := sc.service.Create(&sess)
	if err != nil {
		sc.logger.Debugf(providers.TypePost, "Rejected session: %s", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	gson, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(gson)
}

// Get resolves a shared session id back into its stored setup.
func (sc *SessionController) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sess, ok := sc.service.Get(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	gson, err := json.Marshal(sess)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
