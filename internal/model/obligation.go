package model

import (
	"time"

	"github.com/google/uuid"
)

// ObligationType categories
const (
	ObligationCategoryNacional    = "nacional"
	ObligationCategoryTerritorial = "territorial"
	ObligationCategoryLaboral     = "laboral"
)

// ObligationType is a statutory tax duty in the global catalog (not
// tenant-scoped): e.g. income-tax filing, VAT status, payroll
// contributions.
type ObligationType struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code               string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	Category           string    `gorm:"type:varchar(50);not null;index" json:"category"` // nacional, territorial, laboral, ...
	Description        string    `gorm:"type:text" json:"description"`
	ResponsibleEntity  string    `gorm:"type:varchar(255)" json:"responsible_entity"`
	LegalBase          string    `gorm:"type:text" json:"legal_base"` // semicolon-separated citations
	IsActive           bool      `gorm:"not null;default:true;index" json:"is_active"`
	DisplayOrder       int       `gorm:"not null;default:0;index" json:"display_order"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// LegalReferences splits LegalBase on semicolons into a trimmed, ordered
// list of citations, dropping empty entries.
func (o ObligationType) LegalReferences() []string {
	return splitLegalBase(o.LegalBase)
}

func splitLegalBase(legalBase string) []string {
	if legalBase == "" {
		return nil
	}
	var refs []string
	start := 0
	for i := 0; i <= len(legalBase); i++ {
		if i == len(legalBase) || legalBase[i] == ';' {
			entry := trimSpace(legalBase[start:i])
			if entry != "" {
				refs = append(refs, entry)
			}
			start = i + 1
		}
	}
	return refs
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// ObligationPeriodicity records how often an obligation recurs for a
// given fiscal year, and optionally a NIT-last-digit -> due-date
// schedule.
type ObligationPeriodicity struct {
	ID               uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ObligationTypeID uuid.UUID         `gorm:"type:uuid;not null;index:idx_periodicity_obl_fy,unique,priority:1" json:"obligation_type_id"`
	FiscalYearID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_periodicity_obl_fy,unique,priority:2" json:"fiscal_year_id"`
	Frequency        string            `gorm:"type:varchar(30);not null" json:"frequency"` // anual, bimestral, cuatrimestral, mensual, ...
	NitScheduleJSON  JSONMap           `gorm:"column:nit_schedule;type:jsonb" json:"nit_schedule,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// DueDateForDigit returns the due date string configured for a given
// NIT last digit, if any schedule is configured.
func (p ObligationPeriodicity) DueDateForDigit(digit int) (string, bool) {
	if p.NitScheduleJSON == nil {
		return "", false
	}
	key := string(rune('0' + digit))
	v, ok := p.NitScheduleJSON[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
