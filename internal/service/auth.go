package service

import (
	"context"

	"github.com/Eursukkul/eticket/internal/models"
	"github.com/Eursukkul/eticket/pkg/logger"
)

// Authenticate signs in the account whose email, password and role all
// match. The session is left as it was on failure.
func (s *Store) Authenticate(ctx context.Context, email, password string, role models.Role) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		a := &s.accounts[i]
		if a.Email == email && a.Password == password && a.Role == role {
			s.session = a.Session()
			s.persist(ctx, KeySession)
			logger.Log.Info("[store] signed in", "account_id", a.ID, "role", a.Role)
			return copySession(s.session), nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Register creates a traveler account and signs it in.
func (s *Store) Register(ctx context.Context, name, email, phone, password string) (*models.Session, error) {
	s.mu.Lock()
	defer s.unlockAndPublish()

	for _, a := range s.accounts {
		if a.Email == email {
			return nil, ErrEmailTaken
		}
	}

	account := models.Account{
		ID:       s.newID("u"),
		Name:     name,
		Email:    email,
		Phone:    phone,
		Role:     models.RoleTraveler,
		Password: password,
	}
	s.accounts = append(s.accounts, account)
	s.session = account.Session()
	s.persist(ctx, KeyAccounts, KeySession)
	s.publish(EventAccountRegistered, copySession(s.session))

	logger.Log.Info("[store] registered", "account_id", account.ID)
	return copySession(s.session), nil
}

func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.persist(ctx, KeySession)
}

// CurrentSession returns nil when nobody is signed in.
func (s *Store) CurrentSession() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copySession(s.session)
}

func copySession(sess *models.Session) *models.Session {
	if sess == nil {
		return nil
	}
	c := *sess
	return &c
}

// Accounts lists every account without its password.
func (s *Store) Accounts() []models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Session, len(s.accounts))
	for i := range s.accounts {
		out[i] = *s.accounts[i].Session()
	}
	return out
}
