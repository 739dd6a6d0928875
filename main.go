package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vehicle-auctions/configs"
	"vehicle-auctions/internal/auctionerrors"
	"vehicle-auctions/internal/auth"
	bidding "vehicle-auctions/internal/biddingService"
	"vehicle-auctions/internal/events"
	model "vehicle-auctions/internal/models"
	"vehicle-auctions/internal/repository"
	"vehicle-auctions/internal/server"
	settlement "vehicle-auctions/internal/settlementService"
	"vehicle-auctions/internal/sweeper"
	"vehicle-auctions/utils"

	"code.cloudfoundry.org/clock"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := configs.LoadConfig("./configs")
	if err != nil {
		utils.Fatal("Failed to load config", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.Server.LogLevel)
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, seed, err := openStore(ctx, cfg)
	if err != nil {
		utils.Fatal("Failed to open store", map[string]any{"driver": cfg.Database.Driver, "error": err.Error()})
	}
	defer store.Close()

	if cfg.Server.SeedDemoData {
		prepopulateAuctions(ctx, store, seed)
	}

	clk := clock.NewClock()
	hub := events.NewHub(cfg.Server.AllowedOrigins...)
	defer hub.Close()

	settlementSvc := settlement.NewSettlementService(store, hub, clk, settlement.Options{
		PaymentWindow: cfg.Settlement.PaymentWindow,
		ChatWindow:    cfg.Settlement.ChatWindow,
		PastBidsLimit: cfg.Settlement.PastBidsLimit,
	})
	biddingSvc := bidding.NewBiddingService(store, hub, clk)
	tokens := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)

	go sweeper.New(settlementSvc, hub, clk, cfg.Settlement.SweepInterval).Run(ctx)

	router := server.SetupRouter(server.Deps{
		Settlement:    settlementSvc,
		Bidding:       biddingSvc,
		Feed:          hub,
		Store:         store,
		Tokens:        tokens,
		BidsPerSecond: cfg.RateLimit.BidsPerSecond,
		BidBurst:      cfg.RateLimit.Burst,
	})

	if cfg.Server.SeedDemoData {
		logDemoTokens(tokens)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Info("Starting auction server", map[string]any{"addr": srv.Addr, "driver": cfg.Database.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("Server failed to start", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	utils.Info("Shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	utils.Info("Server exited", nil)
}

// openStore returns the configured repository and a function that seeds one auction into it
func openStore(ctx context.Context, cfg *configs.Config) (repository.AuctionDB, func(context.Context, model.AuctionRequest) error, error) {
	switch cfg.Database.Driver {
	case "postgres":
		repo, err := repository.NewPostgresRepo(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return repo, repo.CreateAuction, nil
	default:
		repo := repository.NewMemoryRepo()
		return repo, func(_ context.Context, a model.AuctionRequest) error {
			repo.AddAuction(a)
			return nil
		}, nil
	}
}

// prepopulateAuctions adds sample approved auctions assigned to manager1
func prepopulateAuctions(ctx context.Context, store repository.AuctionDB, seed func(context.Context, model.AuctionRequest) error) {
	now := time.Now().UTC()
	auctions := []model.AuctionRequest{
		{ID: "auction1", SellerID: "seller1", VehicleName: "2018 Toyota Corolla", Year: 2018, Mileage: 60000, StartingPrice: 9000},
		{ID: "auction2", SellerID: "seller1", VehicleName: "2020 Honda Civic", Year: 2020, Mileage: 30000, StartingPrice: 14000},
		{ID: "auction3", SellerID: "seller2", VehicleName: "2015 Ford Focus", Year: 2015, Mileage: 110000, StartingPrice: 4500},
	}

	for _, a := range auctions {
		if _, err := store.GetAuction(ctx, a.ID); err == nil {
			continue
		} else if !errors.Is(err, auctionerrors.ErrAuctionNotFound) {
			utils.Warn("Failed to check demo auction", map[string]any{"auction_id": a.ID, "error": err.Error()})
			continue
		}

		a.Status = model.ReviewApproved
		a.StartedAuction = model.StartedNo
		a.AssignedAuctionManager = "manager1"
		a.CreatedAt = now
		a.UpdatedAt = now
		if err := seed(ctx, a); err != nil {
			utils.Warn("Failed to seed demo auction", map[string]any{"auction_id": a.ID, "error": err.Error()})
		}
	}
}

// logDemoTokens prints tokens for the seeded users so the API can be tried with curl
func logDemoTokens(tokens *auth.TokenManager) {
	users := []struct{ id, role string }{
		{"manager1", auth.RoleAuctionManager},
		{"buyer1", auth.RoleBuyer},
		{"buyer2", auth.RoleBuyer},
	}
	for _, u := range users {
		token, err := tokens.Generate(u.id, u.role)
		if err != nil {
			utils.Warn("Failed to issue demo token", map[string]any{"user_id": u.id, "error": err.Error()})
			continue
		}
		utils.Info("Demo token", map[string]any{"user_id": u.id, "role": u.role, "token": token})
	}
}
