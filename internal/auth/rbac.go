package auth

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleGraduate Role = "graduate"
	RoleCompany  Role = "company"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a role claim. An unknown value is rejected, never
// defaulted: a token carrying a role this server does not know must fail
// validation rather than act as a student.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleGraduate:
		return RoleGraduate, nil
	case RoleCompany:
		return RoleCompany, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// CanDeclareInterest reports whether a role may declare interest in an
// opportunity. Companies and admins browse but never declare.
func CanDeclareInterest(role Role) bool {
	return role == RoleStudent || role == RoleGraduate
}
