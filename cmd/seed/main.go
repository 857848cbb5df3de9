package main

import (
	"log"
	"time"

	"pharmastock/internal/model"
	"pharmastock/internal/repository"
	"pharmastock/internal/service"
	"pharmastock/pkg/config"
	"pharmastock/pkg/database"
	"pharmastock/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if _, err := logger.Init(cfg.LogMode); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zap.L().Fatal("database migration failed", zap.Error(err))
	}

	svc := service.NewInventoryService(repository.NewProductRepo(db), db, nil)

	created := 0
	for _, p := range demoProducts(time.Now()) {
		if err := svc.CreateProduct(&p); err != nil {
			zap.L().Warn("skip demo product", zap.String("name", p.CommercialName), zap.Error(err))
			continue
		}
		created++
	}
	zap.L().Info("seed done", zap.Int("created", created))
}

func demoProducts(now time.Time) []model.Product {
	price := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	str := func(s string) *string { return &s }
	count := func(n int) *int { return &n }
	in := func(days int) model.Date { return model.DateOf(now.AddDate(0, 0, days)) }

	return []model.Product{
		{CommercialName: "Doliprane 1000 mg", Category: model.CategoryMedicament, INN: str("Paracétamol"), Dosage: str("1000 mg"), Form: "Comprimé", TabletCount: count(8), UnitPrice: price("195.00"), SecondPrice: price("150.00"), StockQuantity: 40, LotNumber: "DL2401", ExpirationDate: in(420)},
		{CommercialName: "Augmentin 1 g", Category: model.CategoryMedicament, INN: str("Amoxicilline/Acide clavulanique"), Dosage: str("1 g"), Form: "Comprimé", TabletCount: count(12), UnitPrice: price("820.50"), StockQuantity: 12, LotNumber: "AG1187", ExpirationDate: in(95)},
		{CommercialName: "Spasfon", Category: model.CategoryMedicament, INN: str("Phloroglucinol"), Dosage: str("80 mg"), Form: "Lyoc", TabletCount: count(10), UnitPrice: price("310.00"), StockQuantity: 6, LotNumber: "SP0033", ExpirationDate: in(-4)},
		{CommercialName: "Smecta", Category: model.CategoryMedicament, INN: str("Diosmectite"), Dosage: str("3 g"), Form: "Poudre", UnitPrice: price("260.00"), StockQuantity: 18, LotNumber: "SM7781", ExpirationDate: in(183)},
		{CommercialName: "Avène Cicalfate", Category: model.CategoryParapharmacie, Form: "Crème", UnitPrice: price("1450.00"), StockQuantity: 7, LotNumber: "AV2209", ExpirationDate: in(700), SheetURL: str("https://www.eau-thermale-avene.fr")},
		{CommercialName: "Biafine", Category: model.CategoryParapharmacie, Form: "Émulsion", UnitPrice: price("640.00"), StockQuantity: 3, LotNumber: "BF5120", ExpirationDate: in(30)},
	}
}
