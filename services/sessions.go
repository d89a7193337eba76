package services

import (
	"bulkimage/types"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TargetFormats lists the output formats a user may stage
var TargetFormats = []string{"JPG", "PNG", "GIF", "BMP"}

// SessionStore interface defines the methods for managing edit sessions
type SessionStore interface {
	Create(settings types.EditSettings) (*types.Session, error)
	Get(id string) (*types.Session, error)
	List() []*types.Session
	Update(id string, settings types.EditSettings) (*types.Session, error)
	Delete(id string) bool
}

// sessionStore keeps sessions in memory
type sessionStore struct {
	sessions map[string]*types.Session
	mu       sync.RWMutex
}

// NewSessionStore creates an empty session store
func NewSessionStore() SessionStore {
	return &sessionStore{
		sessions: make(map[string]*types.Session),
	}
}

// Create validates settings and stores them under a new session ID
func (ss *sessionStore) Create(settings types.EditSettings) (*types.Session, error) {
	normalized, err := ValidateSettings(settings)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &types.Session{
		ID:        uuid.New().String(),
		Settings:  normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ss.mu.Lock()
	ss.sessions[session.ID] = session
	ss.mu.Unlock()

	return copySession(session), nil
}

// Get retrieves a session by ID
func (ss *sessionStore) Get(id string) (*types.Session, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	session, exists := ss.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return copySession(session), nil
}

// List returns all sessions, oldest first
func (ss *sessionStore) List() []*types.Session {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	sessions := make([]*types.Session, 0, len(ss.sessions))
	for _, session := range ss.sessions {
		sessions = append(sessions, copySession(session))
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions
}

// Update replaces the settings of an existing session
func (ss *sessionStore) Update(id string, settings types.EditSettings) (*types.Session, error) {
	normalized, err := ValidateSettings(settings)
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	session, exists := ss.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	session.Settings = normalized
	session.UpdatedAt = time.Now()
	return copySession(session), nil
}

// Delete removes a session
func (ss *sessionStore) Delete(id string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if _, exists := ss.sessions[id]; !exists {
		return false
	}
	delete(ss.sessions, id)
	return true
}

// ValidateSettings checks staged settings and returns their normalized form
func ValidateSettings(settings types.EditSettings) (types.EditSettings, error) {
	switch settings.Mode {
	case "":
		settings.Mode = types.EditModeSingle
	case types.EditModeSingle, types.EditModeBulk:
	default:
		return settings, fmt.Errorf("%w: unknown mode %q", ErrInvalidSettings, settings.Mode)
	}

	if settings.Resize != nil {
		if settings.Resize.Width <= 0 || settings.Resize.Height <= 0 {
			return settings, fmt.Errorf("%w: resize dimensions must be positive, got %dx%d",
				ErrInvalidSettings, settings.Resize.Width, settings.Resize.Height)
		}
		resize := *settings.Resize
		settings.Resize = &resize
	}

	if settings.TargetFormat != "" {
		format := strings.ToUpper(strings.TrimSpace(settings.TargetFormat))
		if !isTargetFormat(format) {
			return settings, fmt.Errorf("%w: unsupported target format %q", ErrInvalidSettings, settings.TargetFormat)
		}
		settings.TargetFormat = format
	}

	return settings, nil
}

func isTargetFormat(format string) bool {
	for _, f := range TargetFormats {
		if f == format {
			return true
		}
	}
	return false
}

// copySession returns a deep copy so callers never share stored state
func copySession(session *types.Session) *types.Session {
	c := *session
	if session.Settings.Resize != nil {
		resize := *session.Settings.Resize
		c.Settings.Resize = &resize
	}
	return &c
}
