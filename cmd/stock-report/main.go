package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"pharmastock/internal/client"
	"pharmastock/internal/dashboard"
	"pharmastock/internal/expiry"
	"pharmastock/internal/model"
	"pharmastock/pkg/config"
	"pharmastock/pkg/logger"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadClient()

	apiURL := flag.String("api", cfg.BaseURL, "API base URL")
	query := flag.String("q", "", "free text filter")
	category := flag.String("category", "", "MEDICAMENT or PARAPHARMACIE")
	csvPath := flag.String("csv", "", "also write the product list to this CSV file")
	flag.Parse()

	if _, err := logger.Init(config.GetEnv("LOG_MODE", "development")); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	cat, ok := model.ParseCategory(*category)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown category %q\n", *category)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Timeout)
	defer cancel()

	board := dashboard.New(client.New(*apiURL, client.WithTimeout(cfg.Timeout)))
	board.LoadAlerts(ctx)
	if err := board.SetFilter(ctx, client.Filter{Query: *query, Category: cat}); err != nil {
		fmt.Fprintf(os.Stderr, "Impossible de charger les produits (%v)\n", err)
		os.Exit(1)
	}

	state := board.State()
	printReport(os.Stdout, state)

	if *csvPath != "" {
		if err := writeCSV(*csvPath, state.Products); err != nil {
			zap.L().Fatal("write csv", zap.String("path", *csvPath), zap.Error(err))
		}
		zap.L().Info("csv written", zap.String("path", *csvPath), zap.Int("rows", len(state.Products)))
	}
}

func riskLabel(p model.Product) string {
	switch expiry.ClassifyProduct(p) {
	case expiry.RiskExpired:
		return "Périmé"
	case expiry.RiskAtRisk:
		return fmt.Sprintf("%d j !", *p.DaysRemaining)
	default:
		if p.DaysRemaining == nil {
			return "-"
		}
		return fmt.Sprintf("%d j", *p.DaysRemaining)
	}
}

func printReport(w io.Writer, state dashboard.State) {
	fmt.Fprintf(w, "Stock total : %d boîtes • Proches d'expiration : %d • Périmés : %d\n\n",
		state.Stats.TotalStock, state.Stats.AtRiskCount, state.Stats.ExpiredCount)

	if len(state.Expiring) > 0 {
		fmt.Fprintln(w, "Produits à moins de 6 mois de l'expiration")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Nom\tQté\tExpiration\tJours restants")
		for _, p := range state.Expiring {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", p.CommercialName, p.StockQuantity, p.ExpirationDate, riskLabel(p))
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Nom commercial\tCatégorie\tQté boîtes\tLot\tExpiration\tJours")
	for _, p := range state.Products {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			p.CommercialName, p.Category, p.StockQuantity, p.LotNumber, p.ExpirationDate, riskLabel(p))
	}
	if len(state.Products) == 0 {
		fmt.Fprintln(tw, "Aucun produit.")
	}
	tw.Flush()
}

type csvRow struct {
	ID             string `csv:"id"`
	CommercialName string `csv:"nom_commercial"`
	Category       string `csv:"categorie"`
	INN            string `csv:"dci"`
	Dosage         string `csv:"dosage"`
	Form           string `csv:"forme"`
	UnitPrice      string `csv:"ppa"`
	SecondPrice    string `csv:"shp"`
	StockQuantity  int    `csv:"quantite_boites"`
	LotNumber      string `csv:"numero_lot"`
	ExpirationDate string `csv:"date_expiration"`
	DaysRemaining  string `csv:"jours_restants"`
	Risk           string `csv:"risque"`
}

func toCSVRows(products []model.Product) []*csvRow {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	rows := make([]*csvRow, 0, len(products))
	for _, p := range products {
		row := &csvRow{
			ID:             p.ID.String(),
			CommercialName: p.CommercialName,
			Category:       string(p.Category),
			INN:            deref(p.INN),
			Dosage:         deref(p.Dosage),
			Form:           p.Form,
			StockQuantity:  p.StockQuantity,
			LotNumber:      p.LotNumber,
			ExpirationDate: p.ExpirationDate.String(),
			Risk:           string(expiry.ClassifyProduct(p)),
		}
		if p.UnitPrice != nil {
			row.UnitPrice = p.UnitPrice.StringFixed(2)
		}
		if p.SecondPrice != nil {
			row.SecondPrice = p.SecondPrice.StringFixed(2)
		}
		if p.DaysRemaining != nil {
			row.DaysRemaining = fmt.Sprint(*p.DaysRemaining)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeCSV(path string, products []model.Product) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(toCSVRows(products), f)
}
