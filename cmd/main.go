package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/salesdesk/payroll-engine/internal/auth"
	"github.com/salesdesk/payroll-engine/internal/commission"
	"github.com/salesdesk/payroll-engine/internal/employee"
	"github.com/salesdesk/payroll-engine/internal/ledger"
	"github.com/salesdesk/payroll-engine/internal/payout"
	"github.com/salesdesk/payroll-engine/internal/utils/db"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	database, err := db.GetDB()
	if err != nil {
		log.WithError(err).Fatal("erro ao conectar no banco")
	}

	if err := database.AutoMigrate(
		&employee.Employee{},
		&commission.Commission{},
		&ledger.Entry{},
		&auth.RefreshToken{},
	); err != nil {
		log.WithError(err).Fatal("erro no AutoMigrate")
	}

	// Repositórios e executor
	employeeRepo := employee.NewRepository()
	commissionRepo := commission.NewRepository(database)
	ledgerRepo := ledger.NewRepository(database)

	executor := payout.NewExecutor(database, commissionRepo, ledgerRepo, log)
	executor.WebhookURL = os.Getenv("PAYOUT_WEBHOOK_URL")

	// Handlers
	employeeHandler := employee.NewHandler(database)
	commissionHandler := commission.NewHandler(commissionRepo, employeeRepo)
	ledgerHandler := ledger.NewHandler(ledgerRepo)
	payoutHandler := payout.NewHandler(executor)

	// Router
	r := mux.NewRouter()

	// usuário autenticado / admin
	authd := func(h http.HandlerFunc) http.Handler { return auth.Middleware(h) }
	adminOnly := func(h http.HandlerFunc) http.Handler { return auth.Middleware(auth.RequireAdmin(h)) }

	// Rotas públicas
	r.HandleFunc("/auth/login", employeeHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(database)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(database)).Methods("POST")

	// Funcionários
	r.Handle("/me", authd(employeeHandler.Me)).Methods("GET")
	r.Handle("/employees", adminOnly(employeeHandler.Create)).Methods("POST")
	r.Handle("/employees", authd(employeeHandler.List)).Methods("GET")
	r.Handle("/employees/password", authd(employeeHandler.ChangePassword)).Methods("POST")
	r.Handle("/employees/{id}", authd(employeeHandler.FindByID)).Methods("GET")
	r.Handle("/employees/{id}", authd(employeeHandler.Update)).Methods("PUT")
	r.Handle("/employees/{id}", adminOnly(employeeHandler.Delete)).Methods("DELETE")
	r.Handle("/employees/{id}/commissions", authd(commissionHandler.ListByEmployee)).Methods("GET")

	// Comissões
	r.Handle("/commissions", adminOnly(commissionHandler.Create)).Methods("POST")
	r.Handle("/commissions", authd(commissionHandler.List)).Methods("GET")
	r.Handle("/commissions/{id}", authd(commissionHandler.FindByID)).Methods("GET")
	r.Handle("/commissions/{id}/approve", adminOnly(commissionHandler.Approve)).Methods("POST")
	r.Handle("/commissions/{id}/pay", adminOnly(payoutHandler.PayOne)).Methods("POST")

	// Folha (rodada em lote)
	r.Handle("/payouts/run", adminOnly(payoutHandler.RunBatch)).Methods("POST")

	// Livro-caixa
	r.Handle("/ledger", adminOnly(ledgerHandler.Create)).Methods("POST")
	r.Handle("/ledger", authd(ledgerHandler.List)).Methods("GET")
	r.Handle("/ledger/summary", authd(ledgerHandler.Summary)).Methods("GET")
	r.Handle("/ledger/by-category", authd(ledgerHandler.ByCategory)).Methods("GET")
	r.Handle("/ledger/by-month", authd(ledgerHandler.ByMonth)).Methods("GET")
	r.Handle("/ledger/{id}", authd(ledgerHandler.FindByID)).Methods("GET")

	// CORS
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("servidor iniciado")
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}
