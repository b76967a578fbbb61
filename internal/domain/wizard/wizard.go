// Package wizard описывает трёхшаговый мастер создания предложения:
// клиент, услуги, просмотр. Вперёд можно только при пройденной проверке шага,
// назад всегда.
package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ignatzorin/agency-backend/internal/domain/entity"
	"github.com/ignatzorin/agency-backend/internal/pkg/apperror"
)

type Step int

const (
	StepCustomer Step = iota + 1
	StepServices
	StepPreview
)

func (s Step) IsValid() bool {
	return s >= StepCustomer && s <= StepPreview
}

func (s Step) String() string {
	switch s {
	case StepCustomer:
		return "customer"
	case StepServices:
		return "services"
	case StepPreview:
		return "preview"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ParseStep принимает имя шага ("customer") или его номер ("1").
func ParseStep(v string) (Step, bool) {
	for s := StepCustomer; s <= StepPreview; s++ {
		if v == s.String() || v == strconv.Itoa(int(s)) {
			return s, true
		}
	}
	return 0, false
}

// Action - завершающее действие на шаге просмотра.
type Action string

const (
	ActionDraft    Action = "draft"
	ActionRevision Action = "revision"
	ActionNew      Action = "new"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionDraft, ActionRevision, ActionNew:
		return true
	}
	return false
}

// Check возвращает причины, по которым с шага нельзя уйти вперёд.
// Пустой список означает, что переход разрешён.
func Check(step Step, p *entity.Proposal) []apperror.FieldError {
	switch step {
	case StepCustomer:
		return checkCustomer(p)
	case StepServices:
		return checkServices(p)
	case StepPreview:
		// На просмотре должны выполняться условия всех предыдущих шагов.
		return append(checkCustomer(p), checkServices(p)...)
	}
	return []apperror.FieldError{{Field: "step", Message: "bilinmeyen adım"}}
}

// CanProceed сообщает, можно ли уйти с шага вперёд.
func CanProceed(step Step, p *entity.Proposal) bool {
	return len(Check(step, p)) == 0
}

// Next возвращает следующий шаг или ошибку валидации текущего.
func Next(step Step, p *entity.Proposal) (Step, error) {
	if !step.IsValid() {
		return step, apperror.New(apperror.ErrCodeBadRequest, "bilinmeyen adım")
	}
	if step == StepPreview {
		return step, apperror.New(apperror.ErrCodeBadRequest, "son adımdasınız")
	}
	if problems := Check(step, p); len(problems) > 0 {
		return step, apperror.Validation("bu adım tamamlanmadı", problems...)
	}
	return step + 1, nil
}

// Back всегда разрешён, с первого шага остаёмся на месте.
func Back(step Step) Step {
	if step <= StepCustomer {
		return StepCustomer
	}
	if step > StepPreview {
		return StepPreview
	}
	return step - 1
}

func checkCustomer(p *entity.Proposal) []apperror.FieldError {
	var problems []apperror.FieldError
	if strings.TrimSpace(p.CustomerName) == "" {
		problems = append(problems, apperror.FieldError{Field: "customerName", Message: "müşteri seçin veya yazın"})
	}
	if strings.TrimSpace(p.ProjectName) == "" {
		problems = append(problems, apperror.FieldError{Field: "projectName", Message: "proje adı zorunlu"})
	}
	if strings.TrimSpace(p.Date) == "" {
		problems = append(problems, apperror.FieldError{Field: "date", Message: "tarih zorunlu"})
	}
	return problems
}

func checkServices(p *entity.Proposal) []apperror.FieldError {
	if len(p.Topics) == 0 {
		return []apperror.FieldError{{Field: "topics", Message: "en az bir başlık ekleyin"}}
	}
	var problems []apperror.FieldError
	for ti, t := range p.Topics {
		if len(t.Categories) == 0 {
			problems = append(problems, apperror.FieldError{
				Field:   fmt.Sprintf("topics[%d].categories", ti),
				Message: fmt.Sprintf("%q başlığında kategori yok", t.Name),
			})
			continue
		}
		for ci, c := range t.Categories {
			if len(c.Services) == 0 {
				problems = append(problems, apperror.FieldError{
					Field:   fmt.Sprintf("topics[%d].categories[%d].services", ti, ci),
					Message: fmt.Sprintf("%q kategorisinde hizmet yok", c.Name),
				})
			}
		}
	}
	return problems
}
