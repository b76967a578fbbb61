package valueobject

import "strings"

// Role - закрытый набор ролей сотрудников агентства.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// ParseRole возвращает роль или staff для неизвестных значений.
func ParseRole(v string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(v)))
	if !r.IsValid() {
		return RoleStaff
	}
	return r
}

// Page - раздел приложения, доступ к которому выдаётся по роли.
type Page string

const (
	PageProposals Page = "proposals"
	PageRateCards Page = "ratecards"
	PageEmployees Page = "employees"
	PageNotes     Page = "notes"
)

// AllPages в порядке отображения в меню.
var AllPages = []Page{PageProposals, PageRateCards, PageEmployees, PageNotes}

var pageTitles = map[Page]string{
	PageProposals: "Teklifler",
	PageRateCards: "Fiyat Listeleri",
	PageEmployees: "Çalışanlar",
	PageNotes:     "Toplantı Notları",
}

// Title возвращает подпись раздела для меню.
func (p Page) Title() string {
	return pageTitles[p]
}

var rolePages = map[Role][]Page{
	RoleAdmin:   AllPages,
	RoleManager: {PageProposals, PageRateCards, PageNotes},
	RoleStaff:   {PageProposals, PageNotes},
}

// Pages возвращает разделы, доступные роли.
func (r Role) Pages() []Page {
	return rolePages[r]
}

// CanAccess сообщает, открыт ли раздел для роли.
func (r Role) CanAccess(p Page) bool {
	for _, allowed := range rolePages[r] {
		if allowed == p {
			return true
		}
	}
	return false
}
