package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservedUVTCode is the threshold code every fiscal year's threshold map
// must carry: the fiscal year's own UVT value, used to resolve uvt_expr
// conditions.
const ReservedUVTCode = "uvt_value"

// Threshold is a single named scalar for one fiscal year, referenced by
// rule conditions via threshold_ref. At least one of ValueUVT/ValueCOP
// must be present; ValueCOP is the canonical comparand the engine
// consumes (pre-materialized value_uvt * uvt_value is acceptable and
// expected).
type Threshold struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FiscalYearID   uuid.UUID        `gorm:"type:uuid;not null;index:idx_threshold_fy_code,unique,priority:1" json:"fiscal_year_id"`
	Code           string           `gorm:"type:varchar(100);not null;index:idx_threshold_fy_code,unique,priority:2" json:"code"`
	Label          string           `gorm:"type:varchar(255);not null" json:"label"`
	ValueUVT       *decimal.Decimal `gorm:"type:decimal(18,4)" json:"value_uvt"`
	ValueCOP       *decimal.Decimal `gorm:"type:decimal(18,2)" json:"value_cop"`
	Description    string           `gorm:"type:text" json:"description"`
	LegalReference string           `gorm:"type:text" json:"legal_reference"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Comparand returns the canonical COP value the engine should compare
// against, materializing ValueUVT * uvtValue when ValueCOP is absent.
func (t Threshold) Comparand(uvtValue decimal.Decimal) decimal.Decimal {
	if t.ValueCOP != nil {
		return *t.ValueCOP
	}
	if t.ValueUVT != nil {
		return t.ValueUVT.Mul(uvtValue)
	}
	return decimal.Zero
}
