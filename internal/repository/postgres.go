package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vehicle-auctions/internal/auctionerrors"
	model "vehicle-auctions/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

const auctionColumns = `id, seller_id, vehicle_name, year, mileage, starting_price, status,
	started_auction, auction_stopped, assigned_auction_manager, winner_id,
	final_purchase_price, payment_deadline, payment_failed, failed_buyer_id,
	is_reauctioned, reauction_count, version, created_at, updated_at`

const bidColumns = `id, auction_id, buyer_id, bid_amount, bid_time, is_current_bid`

const purchaseColumns = `id, auction_id, buyer_id, seller_id, purchase_price, payment_status, created_at, completed_at`

// PostgresRepo implements AuctionDB on a pgx connection pool
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo opens a pool and verifies the connection
func NewPostgresRepo(ctx context.Context, connString string, maxConns int32) (*PostgresRepo, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresRepo{pool: pool}, nil
}

// Migrate creates the tables the repository needs
func (r *PostgresRepo) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// InAuctionTx locks the auction row with SELECT ... FOR UPDATE so concurrent
// bid, stop and re-auction calls on the same auction run one after another.
func (r *PostgresRepo) InAuctionTx(ctx context.Context, auctionID string, fn func(tx AuctionTx) error) (err error) {
	pgtx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = pgtx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = pgtx.Rollback(ctx)
		}
	}()

	row := pgtx.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auction_requests WHERE id = $1 FOR UPDATE`, auctionID)
	auction, err := scanAuction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("auction tx %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
		}
		return fmt.Errorf("error locking auction %s: %w", auctionID, err)
	}

	if err = fn(&postgresTx{ctx: ctx, tx: pgtx, auction: auction}); err != nil {
		return err
	}

	if err = pgtx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing auction tx %s: %w", auctionID, err)
	}
	return nil
}

func (r *PostgresRepo) GetAuction(ctx context.Context, auctionID string) (model.AuctionRequest, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auction_requests WHERE id = $1`, auctionID)
	a, err := scanAuction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuctionRequest{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
		}
		return model.AuctionRequest{}, fmt.Errorf("error getting auction by id: %w", err)
	}
	return a, nil
}

func (r *PostgresRepo) GetBidsByAuction(ctx context.Context, auctionID string) ([]model.AuctionBid, error) {
	if _, err := r.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+bidColumns+` FROM auction_bids WHERE auction_id = $1 ORDER BY bid_time DESC, seq DESC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("error getting bids for auction %s: %w", auctionID, err)
	}
	bids, err := collectBids(rows)
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

func (r *PostgresRepo) GetCurrentBid(ctx context.Context, auctionID string) (model.AuctionBid, error) {
	if _, err := r.GetAuction(ctx, auctionID); err != nil {
		return model.AuctionBid{}, err
	}
	return currentBid(ctx, r.pool, auctionID)
}

func (r *PostgresRepo) GetPastBids(ctx context.Context, auctionID string, limit int) ([]model.AuctionBid, error) {
	return pastBids(ctx, r.pool, auctionID, limit)
}

func pastBids(ctx context.Context, q querier, auctionID string, limit int) ([]model.AuctionBid, error) {
	query := `
		SELECT b.id, b.auction_id, b.buyer_id, b.bid_amount, b.bid_time, b.is_current_bid
		FROM auction_bids b
		LEFT JOIN buyers u ON u.id = b.buyer_id
		WHERE b.auction_id = $1
		  AND NOT b.is_current_bid
		  AND NOT COALESCE(u.is_blocked, FALSE)
		ORDER BY b.bid_time DESC, b.seq DESC
		LIMIT $2`
	rows, err := q.Query(ctx, query, auctionID, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting past bids for auction %s: %w", auctionID, err)
	}
	return collectBids(rows)
}

func (r *PostgresRepo) CountBids(ctx context.Context, auctionID string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM auction_bids WHERE auction_id = $1`, auctionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting bids for auction %s: %w", auctionID, err)
	}
	return n, nil
}

func (r *PostgresRepo) GetPurchase(ctx context.Context, auctionID string) (model.Purchase, error) {
	return purchaseOf(ctx, r.pool, auctionID)
}

func (r *PostgresRepo) GetBuyer(ctx context.Context, buyerID string) (model.Buyer, error) {
	return buyerOf(ctx, r.pool, buyerID)
}

func (r *PostgresRepo) ListAwaitingPayment(ctx context.Context) ([]model.AuctionRequest, error) {
	query := `
		SELECT ` + prefixed("a", auctionColumns) + `
		FROM auction_requests a
		JOIN purchases p ON p.auction_id = a.id
		WHERE a.auction_stopped AND a.winner_id IS NOT NULL AND p.payment_status = 'pending'
		ORDER BY a.id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing auctions awaiting payment: %w", err)
	}
	defer rows.Close()

	var auctions []model.AuctionRequest
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning auction: %w", err)
		}
		auctions = append(auctions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over auctions: %w", err)
	}
	return auctions, nil
}

func (r *PostgresRepo) GetNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, message, link, created_at FROM notifications WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting notifications for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Link, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetConversation(ctx context.Context, auctionID string) (model.Conversation, error) {
	var c model.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, auction_id, buyer_id, seller_id, opened_at, expires_at
		FROM conversations WHERE auction_id = $1
		ORDER BY opened_at DESC LIMIT 1`, auctionID).
		Scan(&c.ID, &c.AuctionID, &c.BuyerID, &c.SellerID, &c.OpenedAt, &c.ExpiresAt)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("error getting conversation for auction %s: %w", auctionID, err)
	}
	return c, nil
}

// Health pings the database and reports pool statistics
func (r *PostgresRepo) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := map[string]string{"driver": "postgres"}
	if err := r.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	s := r.pool.Stat()
	stats["total_conns"] = strconv.Itoa(int(s.TotalConns()))
	stats["acquired_conns"] = strconv.Itoa(int(s.AcquiredConns()))
	stats["idle_conns"] = strconv.Itoa(int(s.IdleConns()))
	stats["max_conns"] = strconv.Itoa(int(s.MaxConns()))
	stats["empty_acquire_count"] = strconv.FormatInt(s.EmptyAcquireCount(), 10)
	stats["acquire_duration"] = s.AcquireDuration().String()

	if s.MaxConns() > 0 && s.AcquiredConns() >= s.MaxConns() {
		stats["message"] = "The connection pool is exhausted."
	}
	return stats
}

func (r *PostgresRepo) Close() error {
	r.pool.Close()
	return nil
}

// CreateAuction inserts an auction. It is used for seeding and tests; the
// listing flow that normally creates auctions lives elsewhere.
func (r *PostgresRepo) CreateAuction(ctx context.Context, a model.AuctionRequest) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO auction_requests (`+auctionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		a.ID, a.SellerID, a.VehicleName, a.Year, a.Mileage, a.StartingPrice, string(a.Status),
		string(a.StartedAuction), a.AuctionStopped, a.AssignedAuctionManager, a.WinnerID,
		a.FinalPurchasePrice, a.PaymentDeadline, a.PaymentFailed, a.FailedBuyerID,
		a.IsReauctioned, a.ReauctionCount, a.Version, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating auction %s: %w", a.ID, err)
	}
	return nil
}

// UpsertBuyer writes buyer flags. Used for seeding and tests.
func (r *PostgresRepo) UpsertBuyer(ctx context.Context, b model.Buyer) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO buyers (id, is_blocked, is_reported, report_reason) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET is_blocked = EXCLUDED.is_blocked,
			is_reported = EXCLUDED.is_reported, report_reason = EXCLUDED.report_reason`,
		b.ID, b.IsBlocked, b.IsReported, b.ReportReason)
	if err != nil {
		return fmt.Errorf("error upserting buyer %s: %w", b.ID, err)
	}
	return nil
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresTx struct {
	ctx     context.Context
	tx      pgx.Tx
	auction model.AuctionRequest
}

func (t *postgresTx) Auction() model.AuctionRequest { return t.auction }

func (t *postgresTx) SaveAuction(a model.AuctionRequest) error {
	if a.ID != t.auction.ID {
		return fmt.Errorf("save auction %s: transaction is bound to %s", a.ID, t.auction.ID)
	}
	tag, err := t.tx.Exec(t.ctx, `
		UPDATE auction_requests SET
			status = $2, started_auction = $3, auction_stopped = $4, assigned_auction_manager = $5,
			winner_id = $6, final_purchase_price = $7, payment_deadline = $8, payment_failed = $9,
			failed_buyer_id = $10, is_reauctioned = $11, reauction_count = $12, updated_at = $13,
			version = version + 1
		WHERE id = $1 AND version = $14`,
		a.ID, string(a.Status), string(a.StartedAuction), a.AuctionStopped, a.AssignedAuctionManager,
		a.WinnerID, a.FinalPurchasePrice, a.PaymentDeadline, a.PaymentFailed,
		a.FailedBuyerID, a.IsReauctioned, a.ReauctionCount, a.UpdatedAt, a.Version,
	)
	if err != nil {
		return fmt.Errorf("error updating auction %s: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save auction %s: %w", a.ID, auctionerrors.ErrVersionConflict)
	}
	a.Version++
	t.auction = a
	return nil
}

func (t *postgresTx) CurrentBid() (model.AuctionBid, error) {
	return currentBid(t.ctx, t.tx, t.auction.ID)
}

func (t *postgresTx) PastBids(limit int) ([]model.AuctionBid, error) {
	return pastBids(t.ctx, t.tx, t.auction.ID, limit)
}

func (t *postgresTx) PlaceCurrentBid(bid model.AuctionBid) error {
	if bid.AuctionID != t.auction.ID {
		return fmt.Errorf("place bid for auction %s: transaction is bound to %s", bid.AuctionID, t.auction.ID)
	}
	if _, err := t.tx.Exec(t.ctx, `UPDATE auction_bids SET is_current_bid = FALSE WHERE auction_id = $1 AND is_current_bid`, bid.AuctionID); err != nil {
		return fmt.Errorf("error demoting current bid: %w", err)
	}
	_, err := t.tx.Exec(t.ctx, `
		INSERT INTO auction_bids (id, auction_id, buyer_id, bid_amount, bid_time, is_current_bid)
		VALUES ($1, $2, $3, $4, $5, TRUE)`,
		bid.ID, bid.AuctionID, bid.BuyerID, bid.BidAmount, bid.BidTime)
	if err != nil {
		return fmt.Errorf("error creating bid in tx: %w", err)
	}
	return nil
}

func (t *postgresTx) DeleteBids() (int, error) {
	tag, err := t.tx.Exec(t.ctx, `DELETE FROM auction_bids WHERE auction_id = $1`, t.auction.ID)
	if err != nil {
		return 0, fmt.Errorf("error deleting bids for auction %s: %w", t.auction.ID, err)
	}
	return int(tag.RowsAffected()), nil
}

func (t *postgresTx) Purchase() (model.Purchase, error) {
	return purchaseOf(t.ctx, t.tx, t.auction.ID)
}

func (t *postgresTx) CreatePurchase(p model.Purchase) error {
	_, err := t.tx.Exec(t.ctx, `
		INSERT INTO purchases (`+purchaseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.AuctionID, p.BuyerID, p.SellerID, p.PurchasePrice, string(p.PaymentStatus), p.CreatedAt, p.CompletedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("create purchase for auction %s: %w", p.AuctionID, auctionerrors.ErrPurchaseExists)
		}
		return fmt.Errorf("error creating purchase: %w", err)
	}
	return nil
}

func (t *postgresTx) UpdatePurchase(p model.Purchase) error {
	tag, err := t.tx.Exec(t.ctx, `UPDATE purchases SET payment_status = $2, completed_at = $3 WHERE id = $1`,
		p.ID, string(p.PaymentStatus), p.CompletedAt)
	if err != nil {
		return fmt.Errorf("error updating purchase %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update purchase %s: %w", p.ID, auctionerrors.ErrPurchaseNotFound)
	}
	return nil
}

func (t *postgresTx) DeletePurchase() error {
	if _, err := t.tx.Exec(t.ctx, `DELETE FROM purchases WHERE auction_id = $1`, t.auction.ID); err != nil {
		return fmt.Errorf("error deleting purchase for auction %s: %w", t.auction.ID, err)
	}
	return nil
}

func (t *postgresTx) Buyer(buyerID string) (model.Buyer, error) {
	return buyerOf(t.ctx, t.tx, buyerID)
}

func (t *postgresTx) ReportBuyer(buyerID, reason string) error {
	_, err := t.tx.Exec(t.ctx, `
		INSERT INTO buyers (id, is_reported, report_reason) VALUES ($1, TRUE, $2)
		ON CONFLICT (id) DO UPDATE SET is_reported = TRUE, report_reason = EXCLUDED.report_reason`,
		buyerID, reason)
	if err != nil {
		return fmt.Errorf("error reporting buyer %s: %w", buyerID, err)
	}
	return nil
}

func (t *postgresTx) AddNotification(n model.Notification) error {
	_, err := t.tx.Exec(t.ctx, `INSERT INTO notifications (id, user_id, message, link, created_at) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.UserID, n.Message, n.Link, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

func (t *postgresTx) OpenConversation(c model.Conversation) error {
	_, err := t.tx.Exec(t.ctx, `
		INSERT INTO conversations (id, auction_id, buyer_id, seller_id, opened_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.AuctionID, c.BuyerID, c.SellerID, c.OpenedAt, c.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to open conversation: %w", err)
	}
	return nil
}

func currentBid(ctx context.Context, q querier, auctionID string) (model.AuctionBid, error) {
	row := q.QueryRow(ctx, `SELECT `+bidColumns+` FROM auction_bids WHERE auction_id = $1 AND is_current_bid`, auctionID)
	var b model.AuctionBid
	if err := row.Scan(&b.ID, &b.AuctionID, &b.BuyerID, &b.BidAmount, &b.BidTime, &b.IsCurrentBid); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuctionBid{}, fmt.Errorf("current bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
		}
		return model.AuctionBid{}, fmt.Errorf("error getting current bid: %w", err)
	}
	return b, nil
}

func purchaseOf(ctx context.Context, q querier, auctionID string) (model.Purchase, error) {
	row := q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE auction_id = $1`, auctionID)
	var (
		p      model.Purchase
		status string
	)
	err := row.Scan(&p.ID, &p.AuctionID, &p.BuyerID, &p.SellerID, &p.PurchasePrice, &status, &p.CreatedAt, &p.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Purchase{}, fmt.Errorf("get purchase for auction %s: %w", auctionID, auctionerrors.ErrPurchaseNotFound)
		}
		return model.Purchase{}, fmt.Errorf("error getting purchase: %w", err)
	}
	p.PaymentStatus = model.PaymentStatus(status)
	return p, nil
}

func buyerOf(ctx context.Context, q querier, buyerID string) (model.Buyer, error) {
	var b model.Buyer
	err := q.QueryRow(ctx, `SELECT id, is_blocked, is_reported, report_reason FROM buyers WHERE id = $1`, buyerID).
		Scan(&b.ID, &b.IsBlocked, &b.IsReported, &b.ReportReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Buyer{}, fmt.Errorf("get buyer %s: %w", buyerID, auctionerrors.ErrBuyerNotFound)
		}
		return model.Buyer{}, fmt.Errorf("error getting buyer: %w", err)
	}
	return b, nil
}

func scanAuction(row pgx.Row) (model.AuctionRequest, error) {
	var (
		a               model.AuctionRequest
		status, started string
	)
	err := row.Scan(
		&a.ID,
		&a.SellerID,
		&a.VehicleName,
		&a.Year,
		&a.Mileage,
		&a.StartingPrice,
		&status,
		&started,
		&a.AuctionStopped,
		&a.AssignedAuctionManager,
		&a.WinnerID,
		&a.FinalPurchasePrice,
		&a.PaymentDeadline,
		&a.PaymentFailed,
		&a.FailedBuyerID,
		&a.IsReauctioned,
		&a.ReauctionCount,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return model.AuctionRequest{}, err
	}
	a.Status = model.ReviewStatus(status)
	a.StartedAuction = model.StartedState(started)
	return a, nil
}

func collectBids(rows pgx.Rows) ([]model.AuctionBid, error) {
	defer rows.Close()

	bids := []model.AuctionBid{}
	for rows.Next() {
		var b model.AuctionBid
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.BuyerID, &b.BidAmount, &b.BidTime, &b.IsCurrentBid); err != nil {
			return nil, fmt.Errorf("error scanning bid: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over bids: %w", err)
	}
	return bids, nil
}

func prefixed(alias, columns string) string {
	cols := strings.Split(columns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}
