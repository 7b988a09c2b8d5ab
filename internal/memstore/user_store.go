package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/store"
)

// UserStore is the in-memory implementation of store.UserStore.
type UserStore struct {
	s *Store
}

var _ store.UserStore = (*UserStore)(nil)

// emailTaken reports whether another user (any user but excludeID) already
// holds the address. Callers must hold s.mu.
func (us *UserStore) emailTaken(email string, excludeID int64) bool {
	for _, u := range us.s.users {
		if u.ID != excludeID && u.Email == email {
			return true
		}
	}
	return false
}

// Create implements store.UserStore.Create.
func (us *UserStore) Create(ctx context.Context, in store.CreateUser) (*domain.User, error) {
	probe := domain.User{Name: in.Name, Email: in.Email, AvatarURL: in.AvatarURL}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	if us.emailTaken(in.Email, 0) {
		return nil, store.ErrEmailExists
	}

	us.s.nextUserID++
	u := &domain.User{
		ID:        us.s.nextUserID,
		Name:      in.Name,
		Email:     in.Email,
		AvatarURL: in.AvatarURL,
		CreatedAt: time.Now().UTC(),
	}
	us.s.users[u.ID] = u

	out := *u
	return &out, nil
}

// List implements store.UserStore.List.
func (us *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	users := []*domain.User{}
	for _, u := range us.s.users {
		out := *u
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

// GetByID implements store.UserStore.GetByID.
func (us *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	u, ok := us.s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// Update implements store.UserStore.Update.
func (us *UserStore) Update(ctx context.Context, id int64, in store.UpdateUser) (*domain.User, error) {
	if in.Name == nil && in.Email == nil && in.AvatarURL == nil {
		return us.GetByID(ctx, id)
	}
	probe := domain.User{Name: "probe", Email: "probe@example.com"}
	if in.Name != nil {
		probe.Name = *in.Name
	}
	if in.Email != nil {
		probe.Email = *in.Email
	}
	if in.AvatarURL != nil {
		probe.AvatarURL = *in.AvatarURL
	}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	u, ok := us.s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	if in.Email != nil && us.emailTaken(*in.Email, id) {
		return nil, store.ErrEmailExists
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.AvatarURL != nil {
		u.AvatarURL = *in.AvatarURL
	}

	out := *u
	return &out, nil
}

// Delete implements store.UserStore.Delete.
func (us *UserStore) Delete(ctx context.Context, id int64) error {
	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	if _, ok := us.s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(us.s.users, id)
	return nil
}
