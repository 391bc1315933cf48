// Package service implements the portal's two stores: the session store
// (authentication, appointments, dental records) and the cart store.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/atinyakov/SmileCare/internal/auth"
	"github.com/atinyakov/SmileCare/internal/metrics"
	"github.com/atinyakov/SmileCare/internal/models"
	"github.com/atinyakov/SmileCare/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage keys owned by the session store.
const (
	// KeyAllUsers holds the registry: a JSON array of users with password hashes.
	KeyAllUsers = "allUsers"
	// KeyCurrentUser holds the JSON-encoded id of the logged-in user.
	KeyCurrentUser = "currentUser"
)

// DefaultProvider is the provider recorded for patient uploads.
const DefaultProvider = "Self Upload"

// RecordUpload is the input of AddDentalRecord.
type RecordUpload struct {
	// Name is the original file name.
	Name     string
	Type     string
	Provider string
	Category string
	// MIMEType decides the record format.
	MIMEType string
	// FileContent is the document as a data URL (see DataURL).
	FileContent string
}

// SessionStore owns the registry of users and the current session.
//
// The registry is the only copy of user data; the current session is kept
// as a reference into it, so every mutation is a single registry write.
type SessionStore struct {
	storage storage.Storage
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	latency time.Duration

	mu      sync.Mutex
	users   []models.User
	current string
}

// NewSessionStore rehydrates the registry and current session from st.
func NewSessionStore(ctx context.Context, st storage.Storage, opts ...Option) (*SessionStore, error) {
	o := buildOptions(opts)
	s := &SessionStore{
		storage: st,
		log:     o.log,
		metrics: o.metrics,
		now:     o.now,
		latency: o.latency,
	}

	raw, err := st.Get(ctx, KeyAllUsers)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.users = []models.User{}
	case err != nil:
		return nil, fmt.Errorf("load registry: %w", err)
	default:
		if err := json.Unmarshal(raw, &s.users); err != nil {
			return nil, fmt.Errorf("decode registry: %w", err)
		}
	}

	raw, err = st.Get(ctx, KeyCurrentUser)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("load current user: %w", err)
	default:
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, fmt.Errorf("decode current user: %w", err)
		}
		if s.indexByID(id) >= 0 {
			s.current = id
		} else {
			s.log.Warn("current user not in registry, starting logged out", zap.String("user_id", id))
		}
	}

	return s, nil
}

// Register creates a user and starts a session for it.
func (s *SessionStore) Register(ctx context.Context, name, email, password string) (user models.User, err error) {
	defer func() { s.metrics.SessionEvent("register", err) }()

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if err := s.wait(ctx); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByEmail(email) >= 0 {
		return models.User{}, fmt.Errorf("%w: %s", ErrConflict, email)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := models.User{
		ID:           "user-" + uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Appointments: []models.Appointment{},
		Records:      []models.DentalRecord{},
	}

	users := append(slices.Clone(s.users), u)
	if err := s.saveRegistry(ctx, users); err != nil {
		return models.User{}, err
	}
	if err := s.setCurrent(ctx, u.ID); err != nil {
		// undo the signup so a retry does not conflict
		if rerr := s.saveRegistry(ctx, s.users); rerr != nil {
			s.log.Error("roll back registry after failed signup", zap.String("user_id", u.ID), zap.Error(rerr))
		}
		return models.User{}, err
	}
	s.users = users
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u.Public(), nil
}

// Login starts a session for the user registered under email.
func (s *SessionStore) Login(ctx context.Context, email, password string) (user models.User, err error) {
	defer func() { s.metrics.SessionEvent("login", err) }()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if err := s.wait(ctx); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByEmail(email)
	if i < 0 {
		return models.User{}, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	u := s.users[i]
	if !auth.CheckPassword(u.PasswordHash, password) {
		return models.User{}, ErrAuth
	}
	if err := s.setCurrent(ctx, u.ID); err != nil {
		return models.User{}, err
	}
	s.log.Info("user logged in", zap.String("user_id", u.ID))
	return u.Public(), nil
}

// Logout ends the session. The in-memory session is cleared even when the
// storage write fails; the error is returned for logging.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.current
	s.current = ""
	err := s.storage.Remove(ctx, KeyCurrentUser)
	s.metrics.SessionEvent("logout", err)
	if err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	if id != "" {
		s.log.Info("user logged out", zap.String("user_id", id))
	}
	return nil
}

// Current returns the logged-in user without its password hash, or nil.
func (s *SessionStore) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(s.current)
	if i < 0 {
		return nil
	}
	u := s.users[i].Public()
	return &u
}

// Appointments returns the current user's appointments.
func (s *SessionStore) Appointments() []models.Appointment {
	if u := s.Current(); u != nil {
		return u.Appointments
	}
	return nil
}

// NextAppointment returns the most recently booked appointment of the
// current user, or nil.
func (s *SessionStore) NextAppointment() *models.Appointment {
	apts := s.Appointments()
	if len(apts) == 0 {
		return nil
	}
	return &apts[len(apts)-1]
}

// Records returns the current user's dental records.
func (s *SessionStore) Records() []models.DentalRecord {
	if u := s.Current(); u != nil {
		return u.Records
	}
	return nil
}

// SearchRecords returns the current user's records whose type, category or
// provider contains query, case-insensitively. An empty query returns all.
func (s *SessionStore) SearchRecords(query string) []models.DentalRecord {
	all := s.Records()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all
	}
	out := all[:0]
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Type), query) ||
			strings.Contains(strings.ToLower(r.Category), query) ||
			strings.Contains(strings.ToLower(r.Provider), query) {
			out = append(out, r)
		}
	}
	return out
}

// AddAppointment books an appointment for the current user. Without a
// session it does nothing and returns nil, nil, whatever the input. Booking
// twice creates two appointments.
func (s *SessionStore) AddAppointment(ctx context.Context, data models.Appointment) (apt *models.Appointment, err error) {
	if s.Current() == nil {
		return nil, nil
	}
	data.Date = strings.TrimSpace(data.Date)
	data.Time = strings.TrimSpace(data.Time)
	data.Doctor = strings.TrimSpace(data.Doctor)
	data.Type = strings.TrimSpace(data.Type)
	if data.Date == "" || data.Time == "" || data.Doctor == "" || data.Type == "" {
		return nil, fmt.Errorf("%w: date, time, doctor and type are required", ErrValidation)
	}

	err = s.updateCurrent(ctx, func(u *models.User) bool {
		data.ID = s.nextID(func(id int64) bool {
			return slices.ContainsFunc(u.Appointments, func(a models.Appointment) bool { return a.ID == id })
		})
		u.Appointments = append(u.Appointments, data)
		apt = &data
		return true
	})
	if apt != nil {
		s.metrics.SessionEvent("add_appointment", err)
	}
	if err != nil {
		return nil, err
	}
	return apt, nil
}

// CancelAppointment removes the appointment with the given id. Cancelling
// an unknown id, or cancelling without a session, is a no-op.
func (s *SessionStore) CancelAppointment(ctx context.Context, id int64) error {
	return s.updateCurrent(ctx, func(u *models.User) bool {
		n := len(u.Appointments)
		u.Appointments = slices.DeleteFunc(u.Appointments, func(a models.Appointment) bool { return a.ID == id })
		if len(u.Appointments) == n {
			return false
		}
		s.metrics.SessionEvent("cancel_appointment", nil)
		return true
	})
}

// AddDentalRecord stores an uploaded document for the current user.
// Without a session it does nothing and returns nil, nil.
func (s *SessionStore) AddDentalRecord(ctx context.Context, in RecordUpload) (rec *models.DentalRecord, err error) {
	if s.Current() == nil {
		return nil, nil
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.FileContent == "" {
		return nil, fmt.Errorf("%w: file name and content are required", ErrValidation)
	}

	format := models.FormatFromMIME(in.MIMEType)
	r := models.DentalRecord{
		Name:        in.Name,
		Type:        strings.TrimSpace(in.Type),
		Provider:    strings.TrimSpace(in.Provider),
		Category:    strings.TrimSpace(in.Category),
		Format:      string(format),
		Date:        s.now().Format(time.DateOnly),
		FileContent: in.FileContent,
	}
	if r.Type == "" {
		r.Type = string(format)
	}
	if r.Provider == "" {
		r.Provider = DefaultProvider
	}
	if r.Category == "" {
		r.Category = "Personal"
	}

	err = s.updateCurrent(ctx, func(u *models.User) bool {
		r.ID = s.nextID(func(id int64) bool {
			return slices.ContainsFunc(u.Records, func(d models.DentalRecord) bool { return d.ID == id })
		})
		u.Records = append(u.Records, r)
		rec = &r
		return true
	})
	if rec != nil {
		s.metrics.SessionEvent("add_record", err)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// updateCurrent applies fn to a copy of the current user and, if fn reports
// a change, persists the registry before publishing the copy.
func (s *SessionStore) updateCurrent(ctx context.Context, fn func(u *models.User) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(s.current)
	if i < 0 {
		return nil
	}
	u := s.users[i]
	u.Appointments = slices.Clone(u.Appointments)
	u.Records = slices.Clone(u.Records)
	if !fn(&u) {
		return nil
	}

	users := slices.Clone(s.users)
	users[i] = u
	if err := s.saveRegistry(ctx, users); err != nil {
		return err
	}
	s.users = users
	return nil
}

// nextID returns a time-derived id not rejected by taken.
func (s *SessionStore) nextID(taken func(int64) bool) int64 {
	id := s.now().UnixMilli()
	for taken(id) {
		id++
	}
	return id
}

func (s *SessionStore) saveRegistry(ctx context.Context, users []models.User) error {
	b, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	if err := s.storage.Set(ctx, KeyAllUsers, b); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

func (s *SessionStore) setCurrent(ctx context.Context, id string) error {
	b, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode current user: %w", err)
	}
	if err := s.storage.Set(ctx, KeyCurrentUser, b); err != nil {
		return fmt.Errorf("save current user: %w", err)
	}
	s.current = id
	return nil
}

func (s *SessionStore) indexByID(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
}

func (s *SessionStore) indexByEmail(email string) int {
	return slices.IndexFunc(s.users, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

// wait simulates the network round trip of the original portal.
func (s *SessionStore) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
