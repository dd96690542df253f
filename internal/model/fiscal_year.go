package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FiscalYear status constants
const (
	FiscalYearDraft    = "draft"
	FiscalYearActive   = "active"
	FiscalYearArchived = "archived"
)

// FiscalYear identifies a tax year and carries the UVT multiplier used to
// materialize every UVT-denominated threshold into COP for that year.
type FiscalYear struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Year      int             `gorm:"not null;uniqueIndex" json:"year"`
	Status    string          `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"` // draft, active, archived
	UVTValue  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"uvt_value"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CopFromUVT converts an amount denominated in UVT to COP using this
// fiscal year's UVT value.
func (fy FiscalYear) CopFromUVT(uvtAmount decimal.Decimal) decimal.Decimal {
	return uvtAmount.Mul(fy.UVTValue)
}
