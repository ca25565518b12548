package models

// Snapshot is the unit of transfer between a backend and the application state:
// the full user list, the acting user and the whole catalog.
type Snapshot struct {
	Users         []User  `json:"users"`
	CurrentUserID string  `json:"currentUserId"`
	Movies        []Movie `json:"movies"`
}

// Normalize establishes the per-user invariant on decoded data and replaces
// nil slices with empty ones.
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Movies == nil {
		s.Movies = []Movie{}
	}
	for i := range s.Movies {
		s.Movies[i].EnsurePerUser(s.Users)
	}
}

func (s *Snapshot) HasUser(id string) bool {
	for _, u := range s.Users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (s *Snapshot) FindUser(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// MovieIndex returns the position of the movie with id, or -1.
func (s *Snapshot) MovieIndex(id string) int {
	for i := range s.Movies {
		if s.Movies[i].ID == id {
			return i
		}
	}
	return -1
}

// NextUserID is the user after the current one, wrapping around. With two
// users this flips between them.
func (s *Snapshot) NextUserID() string {
	if len(s.Users) == 0 {
		return s.CurrentUserID
	}
	for i, u := range s.Users {
		if u.ID == s.CurrentUserID {
			return s.Users[(i+1)%len(s.Users)].ID
		}
	}
	return s.Users[0].ID
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Users:         append([]User(nil), s.Users...),
		CurrentUserID: s.CurrentUserID,
		Movies:        make([]Movie, len(s.Movies)),
	}
	if out.Users == nil {
		out.Users = []User{}
	}
	for i, m := range s.Movies {
		out.Movies[i] = m.Clone()
	}
	return out
}
