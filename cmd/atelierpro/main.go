package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MrZaiter32/atelierpro/internal/auth"
	"github.com/MrZaiter32/atelierpro/internal/config"
	"github.com/MrZaiter32/atelierpro/internal/db"
	"github.com/MrZaiter32/atelierpro/internal/excel"
	httphandler "github.com/MrZaiter32/atelierpro/internal/http"
	"github.com/MrZaiter32/atelierpro/internal/http/middleware"
	"github.com/MrZaiter32/atelierpro/internal/logger"
	"github.com/MrZaiter32/atelierpro/internal/pdf"
	"github.com/MrZaiter32/atelierpro/internal/pricing"
	"github.com/MrZaiter32/atelierpro/internal/repository"
	"github.com/MrZaiter32/atelierpro/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	budgetRepo := repository.NewBudgetRepository(database)
	clientRepo := repository.NewClientRepository(database)
	tariffRepo := repository.NewTariffRepository(database)
	partRepo := repository.NewPartRepository(database)
	purchaseRepo := repository.NewPurchaseRepository(database)
	workOrderRepo := repository.NewWorkOrderRepository(database)

	if err := tariffRepo.EnsureDefault(context.Background(), cfg.Tariff); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default tariff")
	}

	calculator := pricing.NewCalculator(pricing.DefaultEngine())
	quoteGenerator := pdf.NewGenerator("AtelierPro")
	priceListImporter := excel.NewPriceListImporter()

	budgetService := service.NewBudgetService(budgetRepo, tariffRepo, clientRepo, calculator, quoteGenerator, log)
	clientService := service.NewClientService(clientRepo, log)
	inventoryService := service.NewInventoryService(partRepo, priceListImporter, log)
	purchasingService := service.NewPurchasingService(purchaseRepo, inventoryService, tariffRepo, log)
	workshopService := service.NewWorkshopService(workOrderRepo, budgetRepo, log)
	tariffService := service.NewTariffService(tariffRepo, log)
	dashboardService := service.NewDashboardService(budgetService, clientService, workshopService, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(budgetService, clientService, inventoryService, purchasingService, workshopService, tariffService, dashboardService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting atelierpro service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
