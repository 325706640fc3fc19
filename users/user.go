package users

import "strconv"

// MaxLabelLength is the longest name, city or country label the store accepts.
const MaxLabelLength = 255

// User is a fully resolved user record.
type User struct {
	ID      int64  `json:"id" msgpack:"id"`
	Name    string `json:"name" msgpack:"name"`
	Email   string `json:"email" msgpack:"email"`
	Mobile  string `json:"mobile,omitempty" msgpack:"mobile,omitempty"`
	City    string `json:"city,omitempty" msgpack:"city,omitempty"`
	Country string `json:"country,omitempty" msgpack:"country,omitempty"`
}

// Key returns the identifier in the textual form used by cache keys and URLs.
func (u User) Key() string {
	return strconv.FormatInt(u.ID, 10)
}

// PartialUser describes a partial update. Nil fields are left unchanged.
type PartialUser struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Mobile  *string `json:"mobile,omitempty"`
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
}

// Empty reports whether the partial record names no field at all.
func (p PartialUser) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Mobile == nil && p.City == nil && p.Country == nil
}

// String returns a pointer to s, handy when building a PartialUser.
func String(s string) *string {
	return &s
}
