package main

import (
	auth "Abutment/internal/auth"
	calc "Abutment/internal/calc"
	batch "Abutment/internal/calc/batch"
	report "Abutment/internal/calc/report"
	config "Abutment/internal/config"
	lrfd "Abutment/internal/lrfd"
	repo "Abutment/internal/repo"
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"log"
	"os"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, store repo.Repository) {
	catalog := lrfd.Catalog()
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: store}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	calcH := &calc.Handler{Catalog: catalog, Repo: store}
	batchH := &batch.Handler{Catalog: catalog}
	reportH := &report.Handler{Catalog: catalog}

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/formulas", calcH.List).Methods("GET")
	api.HandleFunc("/formulas/{id}", calcH.Show).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/formulas/{id}/evaluate", calcH.Evaluate).Methods("POST")
	secureApi.HandleFunc("/history", calcH.History).Methods("GET")
	secureApi.HandleFunc("/batch", batchH.Workbook).Methods("POST")
	secureApi.HandleFunc("/batch/json", batchH.JSON).Methods("POST")
	secureApi.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
}

func openStore(ctx context.Context, cfg *config.Config) (repo.Repository, func()) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, keeping users and history in memory")
		return repo.NewMemory(), func() {}
	}
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Database error: ", err)
	}
	store := repo.NewPostgresDB(db)
	if err := store.Migrate(ctx); err != nil {
		log.Fatal(err)
	}
	return store, func() { db.Close() }
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	mux := mux.NewRouter()
	HandleList(mux, cfg, store)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s (%d equations)", cfg.Addr, lrfd.Catalog().Len())
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
