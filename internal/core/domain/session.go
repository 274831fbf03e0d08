package domain

// Session is the client's answer to "who is logged in". User and Token are
// either both set, referring to the same account, or both empty.
type Session struct {
	User    *User
	Token   string
	Loading bool
}

// Authenticated reports whether a user is signed in.
func (s Session) Authenticated() bool {
	return !s.Loading && s.User != nil && s.Token != ""
}

// Clone returns a copy that does not share the User pointer.
func (s Session) Clone() Session {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
