package marketplace

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/ecosprint/ecosprint-backend/pkg/errors"
	"github.com/ecosprint/ecosprint-backend/pkg/kv"
	"github.com/ecosprint/ecosprint-backend/pkg/security"
)

// RegisterInput is the payload for creating an account. Password is
// optional: the original marketplace data carries no credentials, and
// accounts registered without one stay in the email-only demo mode.
type RegisterInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string
	FullName string
	Bio      string
	Location string
	Avatar   string
}

// ProfileUpdate carries optional profile mutations; nil fields are
// retained. Email and join date are immutable.
type ProfileUpdate struct {
	Username *string
	FullName *string
	Bio      *string
	Location *string
	Avatar   *string
}

// Login authenticates by email and replaces the session wholesale.
//
// Accounts carrying a password hash are verified with Argon2id. Accounts
// without one (seed data, records written by the original demo app)
// authenticate by email alone, preserving the source behavior for existing
// data; the supplied password is ignored for them.
func (s *Store) Login(ctx context.Context, email, password string) (user *User, err error) {
	start := time.Now()
	defer s.finish("login", start, &err)

	email = normalizeEmail(email)

	s.mu.Lock()
	idx := s.userIndexByEmail(email)
	if idx < 0 {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	found := s.users[idx]
	if found.PasswordHash != "" {
		ok, verr := security.VerifyPassword(password, found.PasswordHash)
		if verr != nil || !ok {
			s.mu.Unlock()
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
	}

	if err = s.persist(ctx, "login", write{kv.KeyCurrentUser, &found}); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.currentUser = &found
	s.mu.Unlock()

	s.notify(kv.KeyCurrentUser)
	s.logg.Info(s.logg.WithUserID(ctx, found.ID), "user logged in")
	out := found
	return &out, nil
}

// Register creates an account and signs it in. A duplicate email leaves
// every collection untouched.
func (s *Store) Register(ctx context.Context, input RegisterInput) (user *User, err error) {
	start := time.Now()
	defer s.finish("register", start, &err)

	if err = s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid registration input")
	}
	email := normalizeEmail(input.Email)

	var passwordHash string
	if input.Password != "" {
		passwordHash, err = security.HashPassword(input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
	}

	s.mu.Lock()
	if s.userIndexByEmail(email) >= 0 {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	newUser := User{
		ID:           s.newID(),
		Username:     input.Username,
		Email:        email,
		FullName:     input.FullName,
		Bio:          input.Bio,
		Location:     input.Location,
		JoinDate:     s.now().UTC().Format(time.RFC3339),
		Avatar:       input.Avatar,
		PasswordHash: passwordHash,
	}

	nextUsers := make([]User, 0, len(s.users)+1)
	nextUsers = append(nextUsers, s.users...)
	nextUsers = append(nextUsers, newUser)

	if err = s.persist(ctx, "register",
		write{kv.KeyUsers, nextUsers},
		write{kv.KeyCurrentUser, &newUser},
	); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.users = nextUsers
	s.currentUser = &newUser
	s.mu.Unlock()

	s.notify(kv.KeyUsers, kv.KeyCurrentUser)
	s.logg.Info(s.logg.WithUserID(ctx, newUser.ID), "user registered")
	out := newUser
	return &out, nil
}

// Logout clears the session and empties the cart. Catalog, users and
// purchase history are untouched. Calling it while anonymous is a no-op.
func (s *Store) Logout(ctx context.Context) (err error) {
	start := time.Now()
	defer s.finish("logout", start, &err)

	s.mu.Lock()
	if s.currentUser == nil && len(s.cartItems) == 0 {
		s.mu.Unlock()
		return nil
	}

	emptyCart := []CartItem{}
	if err = s.persist(ctx, "logout",
		write{kv.KeyCurrentUser, (*User)(nil)},
		write{kv.KeyCartItems, emptyCart},
	); err != nil {
		s.mu.Unlock()
		return err
	}
	s.currentUser = nil
	s.cartItems = emptyCart
	s.mu.Unlock()

	s.notify(kv.KeyCurrentUser, kv.KeyCartItems)
	s.logg.Info(ctx, "user logged out")
	return nil
}

// UpdateProfile shallow-merges the supplied fields into the current user
// record, in both the session and the users collection. Anonymous sessions
// are a silent no-op.
func (s *Store) UpdateProfile(ctx context.Context, update ProfileUpdate) (user *User, err error) {
	start := time.Now()
	defer s.finish("update_profile", start, &err)

	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return nil, nil
	}

	merged := *s.currentUser
	if update.Username != nil {
		merged.Username = *update.Username
	}
	if update.FullName != nil {
		merged.FullName = *update.FullName
	}
	if update.Bio != nil {
		merged.Bio = *update.Bio
	}
	if update.Location != nil {
		merged.Location = *update.Location
	}
	if update.Avatar != nil {
		merged.Avatar = *update.Avatar
	}

	nextUsers := make([]User, len(s.users))
	copy(nextUsers, s.users)
	for i := range nextUsers {
		if nextUsers[i].ID == merged.ID {
			nextUsers[i] = merged
			break
		}
	}

	if err = s.persist(ctx, "update_profile",
		write{kv.KeyCurrentUser, &merged},
		write{kv.KeyUsers, nextUsers},
	); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.currentUser = &merged
	s.users = nextUsers
	s.mu.Unlock()

	s.notify(kv.KeyCurrentUser, kv.KeyUsers)
	out := merged
	return &out, nil
}

// userIndexByEmail is called with the store mutex held.
func (s *Store) userIndexByEmail(email string) int {
	for i := range s.users {
		if normalizeEmail(s.users[i].Email) == email {
			return i
		}
	}
	return -1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
