package app

import (
	"github.com/digitalive/digitalive/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Accounts and monthly order entries
	r.HandleFunc("/api/account", deps.AccountHandler.GetAccounts).Methods("GET")
	r.HandleFunc("/api/account", deps.AccountHandler.CreateAccount).Methods("POST")
	r.HandleFunc("/api/account/{accountId}", deps.AccountHandler.UpdateAccount).Methods("PUT")
	r.HandleFunc("/api/account/{accountId}", deps.AccountHandler.DeleteAccount).Methods("DELETE")
	r.HandleFunc("/api/account/{accountId}/month/{monthId}/entry", deps.AccountHandler.GetEntries).Methods("GET")
	r.HandleFunc("/api/account/{accountId}/month/{monthId}/entry", deps.AccountHandler.AddEntry).Methods("POST")
	r.HandleFunc("/api/account/{accountId}/month/{monthId}/entry/{entryId}", deps.AccountHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/account/{accountId}/month/{monthId}/entry/{entryId}", deps.AccountHandler.DeleteEntry).Methods("DELETE")

	// Company balance
	r.HandleFunc("/api/balance", deps.BalanceHandler.GetBalance).Methods("GET")
	r.HandleFunc("/api/balance/deposit", deps.BalanceHandler.Deposit).Methods("POST")

	// Monthly expenditures
	r.HandleFunc("/api/expenditure/month", deps.ExpenditureHandler.GetMonths).Methods("GET")
	r.HandleFunc("/api/expenditure/month/{monthId}/expenditure", deps.ExpenditureHandler.GetExpenditures).Methods("GET")
	r.HandleFunc("/api/expenditure/month/{monthId}/expenditure", deps.ExpenditureHandler.AddExpenditure).Methods("POST")
	r.HandleFunc("/api/expenditure/month/{monthId}/expenditure/{expenditureId}", deps.ExpenditureHandler.DeleteExpenditure).Methods("DELETE")

	// Partners and drawings
	r.HandleFunc("/api/partner", deps.PartnerHandler.GetPartners).Methods("GET")
	r.HandleFunc("/api/partner", deps.PartnerHandler.CreatePartner).Methods("POST")
	r.HandleFunc("/api/partner/{partnerId}/drawing", deps.PartnerHandler.AddDrawing).Methods("POST")
	r.HandleFunc("/api/partner/{partnerId}/drawing/{drawingId}", deps.PartnerHandler.DeleteDrawing).Methods("DELETE")

	// Vendor bills
	r.HandleFunc("/api/bill", deps.BillHandler.GetBills).Methods("GET")
	r.HandleFunc("/api/bill", deps.BillHandler.AddBill).Methods("POST")
	r.HandleFunc("/api/bill/{billId}", deps.BillHandler.DeleteBill).Methods("DELETE")

	// Company assets
	r.HandleFunc("/api/asset", deps.AssetHandler.GetAssets).Methods("GET")
	r.HandleFunc("/api/asset", deps.AssetHandler.AddAsset).Methods("POST")
	r.HandleFunc("/api/asset/{assetId}", deps.AssetHandler.DeleteAsset).Methods("DELETE")
}
