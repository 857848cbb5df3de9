package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Category string

const (
	CategoryMedicament    Category = "MEDICAMENT"
	CategoryParapharmacie Category = "PARAPHARMACIE"
)

// DefaultForm is the presentation used when none is given.
const DefaultForm = "Comprimé"

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryMedicament || c == CategoryParapharmacie
}

// ParseCategory accepts a category in any letter case. An empty string is
// valid and means "no category".
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if c == "" {
		return "", true
	}
	return c, c.Valid()
}

// Product is a pharmacy inventory record: a medication or a parapharmacy item.
type Product struct {
	BaseModel
	CommercialName string           `gorm:"type:varchar(255);not null;index" json:"nom_commercial" validate:"required,max=255"`
	Category       Category         `gorm:"type:varchar(20);not null;index" json:"categorie" validate:"required,oneof=MEDICAMENT PARAPHARMACIE"`
	INN            *string          `gorm:"type:varchar(255)" json:"dci"`
	Dosage         *string          `gorm:"type:varchar(100)" json:"dosage"`
	Form           string           `gorm:"type:varchar(100)" json:"forme"`
	TabletCount    *int             `json:"nb_comprimes" validate:"omitempty,gte=0"`
	UnitPrice      *decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"ppa" validate:"required,decimal_gte0"`
	SecondPrice    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"shp" validate:"omitempty,decimal_gte0"`
	StockQuantity  int              `gorm:"default:0" json:"quantite_boites" validate:"gte=0"`
	LotNumber      string           `gorm:"type:varchar(100);not null" json:"numero_lot" validate:"required,max=100"`
	ExpirationDate Date             `gorm:"type:date;not null;index" json:"date_expiration" validate:"date_required"`
	SheetURL       *string          `gorm:"type:varchar(1024)" json:"fiche_url" validate:"omitempty,url"`

	// Derived from ExpirationDate at read time, never persisted.
	DaysRemaining *int `gorm:"-" json:"jours_restants,omitempty"`
}

// Normalize is the single defaulting step applied before validation, on the
// client and on the write path alike.
func (p *Product) Normalize() {
	p.CommercialName = strings.TrimSpace(p.CommercialName)
	p.LotNumber = strings.TrimSpace(p.LotNumber)
	p.Form = strings.TrimSpace(p.Form)
	if p.Form == "" {
		p.Form = DefaultForm
	}
	p.Category = Category(strings.ToUpper(strings.TrimSpace(string(p.Category))))
	if p.Category == "" {
		p.Category = CategoryMedicament
	}
	p.INN = blankToNil(p.INN)
	p.Dosage = blankToNil(p.Dosage)
	p.SheetURL = blankToNil(p.SheetURL)
}

// CopyMutableFields overwrites every user-editable field of p with src's.
// Identity and timestamps are left untouched.
func (p *Product) CopyMutableFields(src *Product) {
	p.CommercialName = src.CommercialName
	p.Category = src.Category
	p.INN = src.INN
	p.Dosage = src.Dosage
	p.Form = src.Form
	p.TabletCount = src.TabletCount
	p.UnitPrice = src.UnitPrice
	p.SecondPrice = src.SecondPrice
	p.StockQuantity = src.StockQuantity
	p.LotNumber = src.LotNumber
	p.ExpirationDate = src.ExpirationDate
	p.SheetURL = src.SheetURL
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
