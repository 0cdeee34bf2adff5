package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gookit/validate"

	"bgmix/internal/models"
	"bgmix/internal/structures"
)

type SessionServiceInterface interface {
	Create(sess *models.Session) (string, error)
	Get(id string) (*models.Session, bool)
	Count() int
	Sweep() int
	Snapshot() []*models.Session
	Restore(sessions []*models.Session)
}

// SessionService manages shareable game-night sessions. Entries live in
// a bounded in-memory store and expire after the configured TTL.
type SessionService struct {
	store *models.SessionStore
}

func NewSessionService(conf *structures.Config) (SessionServiceInterface, error) {
	store, err := models.NewSessionStore(conf.Session.MaxEntries, conf.Session.TTL)
	if err != nil {
		return nil, err
	}
	return &SessionService{store: store}, nil
}

func (ss *SessionService) Create(sess *models.Session) (string, error) {
	v := validate.Struct(sess)
	if !v.Validate() {
		return "", v.Errors
	}

	sess.ID = newSessionID()
	sess.CreatedAt = time.Now()
	sess.Sort = models.ParseSortKey(string(sess.Sort))
	sess.Group = models.ParseGroupMode(string(sess.Group))
	ss.store.Put(sess)
	return sess.ID, nil
}

func (ss *SessionService) Get(id string) (*models.Session, bool) {
	return ss.store.Get(id)
}

func (ss *SessionService) Count() int {
	return ss.store.Len()
}

func (ss *SessionService) Sweep() int {
	return ss.store.Sweep()
}

func (ss *SessionService) Snapshot() []*models.Session {
	return ss.store.Snapshot()
}

func (ss *SessionService) Restore(sessions []*models.Session) {
	ss.store.Restore(sessions)
}

func newSessionID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
