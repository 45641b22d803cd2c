package model

import (
	"regexp"
	"sort"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is the locally captured profile. There is no real authentication.
type User struct {
	FirstName string `json:"firstName" yaml:"first_name"`
	Surname   string `json:"surname" yaml:"surname"`
	Email     string `json:"email" yaml:"email"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.Surname)
}

// Normalize returns a copy with surrounding whitespace removed from every field.
func (u User) Normalize() User {
	return User{
		FirstName: strings.TrimSpace(u.FirstName),
		Surname:   strings.TrimSpace(u.Surname),
		Email:     strings.TrimSpace(u.Email),
	}
}

// ValidationError maps form fields to the message shown for them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// Validate applies the sign-in form rules. It returns nil or a *ValidationError.
func (u User) Validate() error {
	u = u.Normalize()
	fields := make(map[string]string)
	if u.FirstName == "" {
		fields["firstName"] = "First name is required"
	}
	if u.Surname == "" {
		fields["surname"] = "Surname is required"
	}
	if u.Email == "" {
		fields["email"] = "Email is required"
	} else if !emailRegex.MatchString(u.Email) {
		fields["email"] = "Please enter a valid email address"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
