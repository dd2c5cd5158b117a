package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"trellomize/internal/audit"
	"trellomize/internal/models"
	"trellomize/internal/store"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUsernameRequired   = errors.New("username is required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyInactive    = errors.New("user is already deactivated")
)

// AuthService handles account creation, login and activation state.
type AuthService struct {
	store store.Store
	audit *audit.Logger
	now   func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(st store.Store, auditLog *audit.Logger) *AuthService {
	return &AuthService{
		store: st,
		audit: auditLog,
		now:   func() time.Time { return time.Now().Truncate(time.Second) },
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Manager  bool
}

// Register creates a new active user. Usernames are unique with
// case-sensitive exact matching. Passwords are stored as bcrypt hashes.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	users, err := s.store.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	for _, u := range users {
		if u.Username == username {
			return nil, ErrUsernameTaken
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleMember
	if input.Manager {
		role = models.RoleManager
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hashed),
		Email:        input.Email,
		Role:         role,
		Active:       true,
	}

	users = append(users, user)
	if err := s.store.SaveUsers(users); err != nil {
		return nil, fmt.Errorf("failed to save users: %w", err)
	}

	s.audit.Record("User %s created a new account", username)
	return &user, nil
}

// Authenticate verifies the credentials and returns the matched user.
// Unknown usernames and wrong passwords both report ErrInvalidCredentials;
// a correct credential on a deactivated account reports ErrInactiveAccount.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	users, err := s.store.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	for i := range users {
		if users[i].Username != username {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
		if !users[i].Active {
			return nil, ErrInactiveAccount
		}
		s.audit.Record("User %s logged in to their account", username)
		return &users[i], nil
	}

	return nil, ErrInvalidCredentials
}

// Deactivate flips a user's active flag to false. It is idempotent:
// deactivating an already-inactive user reports ErrAlreadyInactive and
// leaves the flag false. The manager-role requirement is enforced by the
// caller.
func (s *AuthService) Deactivate(targetUsername string) error {
	users, err := s.store.LoadUsers()
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	for i := range users {
		if users[i].Username != targetUsername {
			continue
		}
		if !users[i].Active {
			return ErrAlreadyInactive
		}
		users[i].Active = false
		if err := s.store.SaveUsers(users); err != nil {
			return fmt.Errorf("failed to save users: %w", err)
		}
		s.audit.Record("User %s has been deactivated", targetUsername)
		return nil
	}

	return ErrUserNotFound
}

// LookupUser resolves a username reference. Project and task records hold
// usernames as weak references, so a missing or inactive user is a valid
// runtime state the caller must handle.
func (s *AuthService) LookupUser(username string) (*models.User, error) {
	users, err := s.store.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}

	return nil, ErrUserNotFound
}
