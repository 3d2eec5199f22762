package account

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anhpng/luyende/internal/stats"
)

// MinAge is the minimum registration age in years.
const MinAge = 6

// Service manages the local account list and the current-user snapshot.
// Storage and clock are injected, so tests run against an in-memory stub
// with a fixed time.
type Service struct {
	storage  Storage
	now      func() time.Time
	accounts []*UserAccount
	current  *UserAccount
}

// NewService creates a Service and loads existing accounts from storage.
// A corrupt or missing document starts the service empty rather than failing:
// losing local stats beats refusing to start.
func NewService(storage Storage, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	s := &Service{storage: storage, now: now}
	s.load()
	return s
}

func (s *Service) load() {
	raw, ok, err := s.storage.Load(KeyAccounts)
	if err != nil || !ok {
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: load accounts: %v\n", err)
		}
		return
	}
	if err := json.Unmarshal(raw, &s.accounts); err != nil {
		fmt.Fprintf(os.Stderr, "warning: corrupt account list, starting empty: %v\n", err)
		s.accounts = nil
		return
	}

	// The snapshot is a weak reference: re-materialize it from the list so
	// the list stays the single source of truth.
	raw, ok, err = s.storage.Load(KeyCurrentUser)
	if err != nil || !ok {
		return
	}
	var snap UserAccount
	if err := json.Unmarshal(raw, &snap); err != nil {
		return
	}
	s.current = s.findByID(snap.ID)
}

// persist writes through to both documents. Every mutation funnels here so
// the account list and the snapshot cannot diverge.
func (s *Service) persist() error {
	raw, err := json.Marshal(s.accounts)
	if err != nil {
		return fmt.Errorf("marshal accounts: %w", err)
	}
	if err := s.storage.Save(KeyAccounts, raw); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}

	if s.current == nil {
		if err := s.storage.Delete(KeyCurrentUser); err != nil {
			return fmt.Errorf("clear current user: %w", err)
		}
		return nil
	}

	raw, err = json.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("marshal current user: %w", err)
	}
	if err := s.storage.Save(KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("save current user: %w", err)
	}
	return nil
}

func (s *Service) findByID(id string) *UserAccount {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Service) findByUsername(username string) *UserAccount {
	for _, a := range s.accounts {
		if strings.EqualFold(a.Username, username) {
			return a
		}
	}
	return nil
}

// Register creates an account and logs it in. Usernames are 3-20 characters
// and case-insensitively unique; registrants must be at least MinAge years
// old on the day of registration.
func (s *Service) Register(username, password string, birthDate time.Time, gender string) Result {
	username = strings.TrimSpace(username)
	if n := len([]rune(username)); n < 3 || n > 20 {
		return failure(msgUsernameLength)
	}
	if s.findByUsername(username) != nil {
		return failure(msgUsernameTaken)
	}
	if age(birthDate, s.now()) < MinAge {
		return failure(msgUnderage)
	}

	acct := &UserAccount{
		ID:             uuid.NewString(),
		Username:       username,
		PasswordDigest: Digest(password),
		BirthDate:      birthDate,
		Gender:         gender,
		CreatedAt:      s.now(),
		Stats:          stats.New(),
		Settings:       Settings{Sound: true, PreferredGrade: 6},
	}

	s.accounts = append(s.accounts, acct)
	s.current = acct
	if err := s.persist(); err != nil {
		// Roll back so memory matches storage.
		s.accounts = s.accounts[:len(s.accounts)-1]
		s.current = nil
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return failure(msgStorageFailure)
	}
	return success(msgRegistered)
}

// Login verifies credentials and switches the current user. A failed login
// leaves the login state untouched.
func (s *Service) Login(username, password string) Result {
	acct := s.findByUsername(strings.TrimSpace(username))
	if acct == nil {
		return failure(msgUserNotFound)
	}
	if acct.PasswordDigest != Digest(password) {
		return failure(msgWrongPassword)
	}

	s.current = acct
	if err := s.persist(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return failure(msgStorageFailure)
	}
	return success(msgLoggedIn)
}

// Logout clears the current user.
func (s *Service) Logout() Result {
	if s.current == nil {
		return failure(msgNotLoggedIn)
	}
	s.current = nil
	if err := s.persist(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return failure(msgStorageFailure)
	}
	return success(msgLoggedOut)
}

// Current returns the logged-in account, or nil.
func (s *Service) Current() *UserAccount {
	return s.current
}

// IsLoggedIn reports whether a user is logged in.
func (s *Service) IsLoggedIn() bool {
	return s.current != nil
}

// Delete removes the current account after re-verifying the password.
func (s *Service) Delete(password string) Result {
	if s.current == nil {
		return failure(msgNotLoggedIn)
	}
	if s.current.PasswordDigest != Digest(password) {
		return failure(msgWrongPassword)
	}

	id := s.current.ID
	for i, a := range s.accounts {
		if a.ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			break
		}
	}
	s.current = nil
	if err := s.persist(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return failure(msgStorageFailure)
	}
	return success(msgAccountDeleted)
}

// UpdateSettings replaces the current user's settings.
func (s *Service) UpdateSettings(settings Settings) Result {
	if s.current == nil {
		return failure(msgNotLoggedIn)
	}
	s.current.Settings = settings
	if err := s.persist(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return failure(msgStorageFailure)
	}
	return success(msgSettingsSaved)
}

// RecordAnswer applies one answered question to the current user's stats
// and persists. No-op when logged out.
func (s *Service) RecordAnswer(subject string, correct bool) {
	if s.current == nil {
		return
	}
	if s.current.Stats == nil {
		s.current.Stats = stats.New()
	}
	stats.RecordAnswer(s.current.Stats, subject, correct, s.now())
	if err := s.persist(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// FinishGame applies one finished game's score to the current user's stats
// and persists.
func (s *Service) FinishGame(score int) {
	if s.current == nil {
		return
	}
	if s.current.Stats == nil {
		s.current.Stats = stats.New()
	}
	stats.RecordGame(s.current.Stats, score)
	stats.RecordBestScore(s.current.Stats, score)
	if err := s.persist(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// age computes full years between birth and now.
func age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		years--
	}
	return years
}
