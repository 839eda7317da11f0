package usecase_test

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/repository"
	"github.com/google/uuid"
)

// ---- users ----

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User

	// createErr, when set, is returned by Create instead of inserting.
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, input repository.CreateUserInput) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == input.Email {
			return nil, domain.ErrUserExists
		}
	}
	now := time.Now()
	u := &domain.User{
		ID:           uuid.NewString(),
		Fullname:     input.Fullname,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) MarkVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsVerified = true
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) byEmail(email string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// ---- otp store ----

type memOTPStore struct {
	mu    sync.Mutex
	slots map[string]*domain.OTP
}

func newMemOTPStore() *memOTPStore {
	return &memOTPStore{slots: map[string]*domain.OTP{}}
}

func (s *memOTPStore) Put(_ context.Context, otp *domain.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *otp
	s.slots[otp.UserID] = &cp
	return nil
}

func (s *memOTPStore) Get(_ context.Context, userID string) (*domain.OTP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	otp, ok := s.slots[userID]
	if !ok {
		return nil, domain.ErrInvalidOTP
	}
	cp := *otp
	return &cp, nil
}

func (s *memOTPStore) Consume(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[userID]; !ok {
		return domain.ErrInvalidOTP
	}
	delete(s.slots, userID)
	return nil
}

func (s *memOTPStore) slot(userID string) *domain.OTP {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[userID]
}

// ---- email ----

type sentEmail struct {
	to, subject, body string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (s *fakeEmailSender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (s *fakeEmailSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

var codePattern = regexp.MustCompile(`<strong>(\d{6})</strong>`)

// lastCode returns the code from the most recent email sent to addr.
func (s *fakeEmailSender) lastCode(addr string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.sent) - 1; i >= 0; i-- {
		if !strings.EqualFold(s.sent[i].to, addr) {
			continue
		}
		if m := codePattern.FindStringSubmatch(s.sent[i].body); m != nil {
			return m[1]
		}
	}
	return ""
}

// ---- resources ----

type memExpenseRepo struct {
	mu       sync.Mutex
	items    map[string]*domain.Expense
	getCalls int
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{items: map[string]*domain.Expense{}}
}

func (r *memExpenseRepo) Create(_ context.Context, e *domain.Expense) (*domain.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memExpenseRepo) GetByID(_ context.Context, id string) (*domain.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memExpenseRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Expense{}
	for _, e := range r.items {
		if e.Owner == ownerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) Update(_ context.Context, e *domain.Expense) (*domain.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[e.ID]
	if !ok || cur.Owner != e.Owner {
		return nil, domain.ErrResourceNotFound
	}
	cp := *e
	cp.CreatedAt = cur.CreatedAt
	cp.UpdatedAt = time.Now()
	r.items[e.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memExpenseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrResourceNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memExpenseRepo) has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok
}

// fakeFinder is a func-field finder for guard edge cases.
type fakeFinder[T domain.Owned] struct {
	getByID func(ctx context.Context, id string) (T, error)
}

func (f *fakeFinder[T]) GetByID(ctx context.Context, id string) (T, error) {
	return f.getByID(ctx, id)
}
