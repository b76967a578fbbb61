package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/domain/pricing"
	"github.com/ignatzorin/agency-backend/internal/domain/repository"
	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
	"github.com/ignatzorin/agency-backend/internal/session"
)

// SeedService наполняет пустое хранилище примерами для разработки.
type SeedService struct {
	proposalRepo repository.ProposalRepository
	rateCardRepo repository.RateCardRepository
	noteRepo     repository.NoteRepository
	employeeRepo repository.EmployeeRepository
	tokens       *TokenManager
}

func NewSeedService(
	proposalRepo repository.ProposalRepository,
	rateCardRepo repository.RateCardRepository,
	noteRepo repository.NoteRepository,
	employeeRepo repository.EmployeeRepository,
	tokens *TokenManager,
) *SeedService {
	return &SeedService{
		proposalRepo: proposalRepo,
		rateCardRepo: rateCardRepo,
		noteRepo:     noteRepo,
		employeeRepo: employeeRepo,
		tokens:       tokens,
	}
}

// SeedAccountInfo - тестовая сессия с готовым токеном.
type SeedAccountInfo struct {
	Name      string           `json:"name"`
	Role      valueobject.Role `json:"role"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

type SeedResult struct {
	RateCards int               `json:"rateCards"`
	Proposals int               `json:"proposals"`
	Notes     int               `json:"notes"`
	Employees int               `json:"employees"`
	Accounts  []SeedAccountInfo `json:"accounts"`
}

var seedCustomers = []string{"Anadolu Gıda", "Boğaziçi Turizm", "Ege Tekstil", "Kuzey Enerji", "Marmara Otomotiv"}

var seedCatalog = []entity.RateCategory{
	{Name: "Video Prodüksiyon", Services: []entity.RateService{
		{Name: "Yönetmen", Unit: "gün", Price: 15000},
		{Name: "Kamera Ekibi", Unit: "gün", Price: 9500},
		{Name: "Kurgu", Unit: "gün", Price: 4200},
	}},
	{Name: "Dijital", Services: []entity.RateService{
		{Name: "Sosyal Medya Yönetimi", Unit: "ay", Price: 28000},
		{Name: "Reklam Yönetimi", Unit: "ay", Price: 18000},
	}},
	{Name: "Tasarım", Services: []entity.RateService{
		{Name: "Kurumsal Kimlik", Unit: "adet", Price: 45000},
		{Name: "Afiş", Unit: "adet", Price: 3500},
	}},
}

// Seed создаёт прайсы, предложения, заметки и сотрудников. Прайс для клиента,
// у которого он уже есть, пропускается.
func (s *SeedService) Seed(ctx context.Context, numProposals int) (*SeedResult, error) {
	result := &SeedResult{}
	now := time.Now().UTC()

	for _, customer := range seedCustomers {
		rc := entity.RateCard{
			ID:           uuid.New(),
			CustomerName: customer,
			Categories:   cloneCatalog(),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		rc.Normalize()
		err := s.rateCardRepo.Create(ctx, &rc)
		switch {
		case err == nil:
			result.RateCards++
		case apperror.IsValidation(err):
		default:
			return nil, fmt.Errorf("seed service: rate card: %w", err)
		}
	}

	for i := 0; i < numProposals; i++ {
		p := seedProposal(i, now)
		if err := s.proposalRepo.Create(ctx, &p); err != nil {
			return nil, fmt.Errorf("seed service: proposal: %w", err)
		}
		result.Proposals++
	}

	for i, customer := range seedCustomers {
		n := entity.Note{
			ID:           uuid.New(),
			Title:        customer + " tanışma toplantısı",
			Content:      "Brief alındı, teklif hazırlanacak.",
			Date:         now.AddDate(0, 0, -i*3).Format(time.DateOnly),
			Participants: []string{"Ayşe Demir", "Mehmet Kaya"},
			CreatedBy:    session.Development().Name,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		n.Normalize()
		if err := s.noteRepo.Create(ctx, &n); err != nil {
			return nil, fmt.Errorf("seed service: note: %w", err)
		}
		result.Notes++
	}

	for _, e := range seedEmployees(now) {
		if err := s.employeeRepo.Create(ctx, &e); err != nil {
			return nil, fmt.Errorf("seed service: employee: %w", err)
		}
		result.Employees++
	}

	for _, role := range []valueobject.Role{valueobject.RoleAdmin, valueobject.RoleManager, valueobject.RoleStaff} {
		acc := session.Session{UserID: uuid.New(), Name: "Demo " + string(role), Role: role}
		issued, err := s.tokens.Issue(acc)
		if err != nil {
			return nil, fmt.Errorf("seed service: token: %w", err)
		}
		result.Accounts = append(result.Accounts, SeedAccountInfo{
			Name:      acc.Name,
			Role:      role,
			Token:     issued.Token,
			ExpiresAt: issued.ExpiresAt,
		})
	}

	return result, nil
}

func cloneCatalog() []entity.RateCategory {
	out := make([]entity.RateCategory, len(seedCatalog))
	for i, c := range seedCatalog {
		out[i] = entity.RateCategory{Name: c.Name, Services: append([]entity.RateService(nil), c.Services...)}
	}
	return out
}

func seedProposal(i int, now time.Time) entity.Proposal {
	statuses := []valueobject.ProposalStatus{
		valueobject.ProposalStatusDraft,
		valueobject.ProposalStatusSent,
		valueobject.ProposalStatusApproved,
		valueobject.ProposalStatusRejected,
	}

	var topics []entity.Topic
	for _, name := range []string{"Lansman", "Kampanya"}[:rand.IntN(2)+1] {
		topic := entity.Topic{Name: name}
		for _, rc := range seedCatalog[:rand.IntN(len(seedCatalog))+1] {
			cat := entity.Category{Name: rc.Name}
			for _, svc := range rc.Services {
				cat.Services = append(cat.Services, entity.Service{
					Name:     svc.Name,
					Unit:     svc.Unit,
					Price:    svc.Price,
					Days:     float64(rand.IntN(5) + 1),
					Quantity: float64(rand.IntN(2) + 1),
				})
			}
			topic.Categories = append(topic.Categories, cat)
		}
		topics = append(topics, topic)
	}

	p := entity.Proposal{
		ID:           uuid.New(),
		CustomerName: seedCustomers[i%len(seedCustomers)],
		ProjectName:  fmt.Sprintf("Proje %d", i+1),
		Date:         now.AddDate(0, 0, -i).Format(time.DateOnly),
		Topics:       topics,
		Terms:        "Fiyatlara KDV dahil değildir.\nTeklif 30 gün geçerlidir.",
		ShowTotal:    true,
		CreatedBy:    session.Development().Name,
		Status:       statuses[rand.IntN(len(statuses))],
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if i%2 == 0 {
		p.Discount = &valueobject.Adjustment{Type: valueobject.AdjustmentPercentage, Value: 10}
	}
	if i%3 == 0 {
		p.AgencyCommission = &valueobject.Adjustment{Type: valueobject.AdjustmentPercentage, Value: 15}
	}
	p.Normalize()
	pricing.Recalculate(&p)
	return p
}

func seedEmployees(now time.Time) []entity.Employee {
	people := []struct{ first, last, dept, pos string }{
		{"Ayşe", "Demir", "Kreatif", "Sanat Yönetmeni"},
		{"Mehmet", "Kaya", "Müşteri İlişkileri", "Müşteri Temsilcisi"},
		{"Zeynep", "Şahin", "Dijital", "Sosyal Medya Uzmanı"},
	}
	out := make([]entity.Employee, 0, len(people))
	for i, p := range people {
		laptop, _ := entity.NewEquipment("MacBook Pro", "laptop", fmt.Sprintf("SN-%04d", i+1), "2023-02-01", "")
		e := entity.Employee{
			ID:         uuid.New(),
			FirstName:  p.first,
			LastName:   p.last,
			Email:      fmt.Sprintf("calisan%d@ajans.com", i+1),
			Department: p.dept,
			Position:   p.pos,
			StartDate:  "2023-01-16",
			Equipment:  []entity.Equipment{laptop},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		e.Normalize()
		out = append(out, e)
	}
	return out
}
