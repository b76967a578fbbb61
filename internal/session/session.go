// Package session описывает текущего пользователя запроса.
// Сессия передаётся явно: middleware кладёт её в gin.Context, обработчики
// передают её в use case'ы параметром.
package session

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
)

type Session struct {
	UserID uuid.UUID        `json:"userId"`
	Name   string           `json:"name"`
	Role   valueobject.Role `json:"role"`
}

// DevUserID - постоянный id пользователя разработки, чтобы createdBy не скакал между запусками.
var DevUserID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// Development - сессия, которая подставляется при AUTH_REQUIRED=false.
func Development() Session {
	return Session{UserID: DevUserID, Name: "Geliştirici", Role: valueobject.RoleAdmin}
}

func (s Session) IsZero() bool {
	return s.UserID == uuid.Nil
}

func (s Session) CanAccess(p valueobject.Page) bool {
	return s.Role.CanAccess(p)
}

// NavItem - пункт меню, доступный сессии.
type NavItem struct {
	Page  valueobject.Page `json:"page"`
	Title string           `json:"title"`
	Path  string           `json:"path"`
}

// Navigation возвращает разделы в порядке valueobject.AllPages.
func (s Session) Navigation() []NavItem {
	items := make([]NavItem, 0, len(valueobject.AllPages))
	for _, p := range valueobject.AllPages {
		if s.CanAccess(p) {
			items = append(items, NavItem{Page: p, Title: p.Title(), Path: "/" + string(p)})
		}
	}
	return items
}
