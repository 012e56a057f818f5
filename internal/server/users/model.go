package users

// User is a directory record. PasswordHash is empty in copies returned by
// List.
type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
}

// Public is the wire form of a user; it never carries the hash.
type Public struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Patch lists the fields an update should change. Nil fields are left alone.
type Patch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}
