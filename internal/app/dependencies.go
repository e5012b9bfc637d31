package app

import (
	"database/sql"

	"github.com/digitalive/digitalive/internal/config"
	"github.com/digitalive/digitalive/internal/event_bus"
	"github.com/digitalive/digitalive/internal/kvstore"
	"github.com/digitalive/digitalive/internal/utils"
	"github.com/digitalive/digitalive/pkg/account"
	"github.com/digitalive/digitalive/pkg/asset"
	"github.com/digitalive/digitalive/pkg/balance"
	"github.com/digitalive/digitalive/pkg/bill"
	"github.com/digitalive/digitalive/pkg/expenditure"
	"github.com/digitalive/digitalive/pkg/partner"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Store    kvstore.Store

	BalanceLedger  balance.Ledger
	BalanceHandler *balance.Handler

	AccountRepo    account.Repository
	AccountService account.Service
	AccountHandler *account.Handler

	ExpenditureRepo    expenditure.Repository
	ExpenditureService expenditure.Service
	ExpenditureHandler *expenditure.Handler

	PartnerRepo    partner.Repository
	PartnerService partner.Service
	PartnerHandler *partner.Handler

	BillRepo    bill.Repository
	BillService bill.Service
	BillHandler *bill.Handler

	AssetRepo    asset.Repository
	AssetService asset.Service
	AssetHandler *asset.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Store = kvstore.NewSQLStore(db)
	deps.Clock = &utils.SystemClock{}

	ledger, err := balance.NewLedger(cfg.Balance, deps.Store, db, deps.EventBus)
	if err != nil {
		return nil, err
	}
	deps.BalanceLedger = ledger
	deps.BalanceHandler = balance.NewHandler(deps.BalanceLedger)

	deps.AccountRepo = account.NewRepository(deps.Store)
	deps.AccountService = account.NewService(deps.AccountRepo, deps.Clock, deps.EventBus)
	deps.AccountHandler = account.NewHandler(deps.AccountService)

	deps.ExpenditureRepo = expenditure.NewRepository(deps.Store)
	deps.ExpenditureService = expenditure.NewService(deps.ExpenditureRepo, deps.BalanceLedger, deps.Clock, deps.EventBus)
	deps.ExpenditureHandler = expenditure.NewHandler(deps.ExpenditureService)

	deps.PartnerRepo = partner.NewRepository(deps.Store)
	deps.PartnerService = partner.NewService(deps.PartnerRepo, deps.BalanceLedger, deps.Clock)
	deps.PartnerHandler = partner.NewHandler(deps.PartnerService)

	deps.BillRepo = bill.NewRepository(deps.Store)
	deps.BillService = bill.NewService(deps.BillRepo, deps.BalanceLedger, deps.Clock)
	deps.BillHandler = bill.NewHandler(deps.BillService)

	deps.AssetRepo = asset.NewRepository(db)
	deps.AssetService = asset.NewService(deps.AssetRepo, deps.Clock)
	deps.AssetHandler = asset.NewHandler(deps.AssetService)

	return deps, nil
}
