package view

import (
	"github.com/noah-isme/ur-campus-api/internal/filter"
	"github.com/noah-isme/ur-campus-api/internal/models"
)

// UserPredicates derives predicates for the user management page.
func UserPredicates(f models.UserFilter) []filter.Predicate[models.User] {
	return []filter.Predicate[models.User]{
		filter.Equal(f.Role, func(u models.User) string { return string(u.Role) }),
		filter.Equal(f.Status, func(u models.User) string { return string(u.EffectiveStatus()) }),
		filter.Contains(f.Search,
			func(u models.User) string { return u.Name },
			func(u models.User) string { return u.Email },
			func(u models.User) string { return u.Department },
		),
	}
}
