package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// MemoryRepository keeps users in insertion order in a slice. One mutex
// guards the whole collection for the duration of each operation, so a
// uniqueness check and the write that depends on it cannot interleave with
// another request.
type MemoryRepository struct {
	mu    sync.Mutex
	users []User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexByEmailLocked(email) >= 0 {
		return nil, common.ErrEmailTaken
	}

	user := User{
		ID:           r.nextIDLocked(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	r.users = append(r.users, user)

	return &user, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByEmailLocked(email)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	user := r.users[i]
	return &user, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id int) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByIDLocked(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	user := r.users[i]
	return &user, nil
}

// List returns copies of all users with PasswordHash cleared.
func (r *MemoryRepository) List(ctx context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]User, len(r.users))
	for i, u := range r.users {
		u.PasswordHash = ""
		out[i] = u
	}
	return out, nil
}

// Update applies patch in place. The email conflict check runs before any
// field is written.
func (r *MemoryRepository) Update(ctx context.Context, id int, patch Patch) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByIDLocked(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}

	if patch.Email != nil && *patch.Email != r.users[i].Email {
		if j := r.indexByEmailLocked(*patch.Email); j >= 0 && r.users[j].ID != id {
			return nil, common.ErrEmailTaken
		}
	}

	if patch.Name != nil {
		r.users[i].Name = *patch.Name
	}
	if patch.Email != nil {
		r.users[i].Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		r.users[i].PasswordHash = *patch.PasswordHash
	}

	user := r.users[i]
	return &user, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByIDLocked(id)
	if i < 0 {
		return common.ErrNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// nextIDLocked is max(id)+1, so a deletion never causes an id to be handed
// out twice while its holder still exists.
func (r *MemoryRepository) nextIDLocked() int {
	maxID := 0
	for _, u := range r.users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}

func (r *MemoryRepository) indexByIDLocked(id int) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) indexByEmailLocked(email string) int {
	for i, u := range r.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}
