package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"vehicle-auctions/internal/auctionerrors"
	model "vehicle-auctions/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB.
// mu guards the maps; auction transactions additionally hold the auction's
// entry in locks for their whole duration.
type MemoryRepo struct {
	mu            sync.RWMutex
	auctions      map[string]model.AuctionRequest
	bids          map[string][]model.AuctionBid // key: auctionID -> bids in insertion order
	purchases     map[string]model.Purchase     // key: auctionID
	buyers        map[string]model.Buyer
	notifications map[string][]model.Notification // key: userID
	conversations map[string]model.Conversation   // key: auctionID

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:      make(map[string]model.AuctionRequest),
		bids:          make(map[string][]model.AuctionBid),
		purchases:     make(map[string]model.Purchase),
		buyers:        make(map[string]model.Buyer),
		notifications: make(map[string][]model.Notification),
		conversations: make(map[string]model.Conversation),
		locks:         make(map[string]*sync.Mutex),
	}
}

// auctionLock returns the lock for an existing auction. Unknown IDs get no
// entry, so the map is bounded by the number of auctions.
func (r *MemoryRepo) auctionLock(auctionID string) (*sync.Mutex, bool) {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	if l, ok := r.locks[auctionID]; ok {
		return l, true
	}

	r.mu.RLock()
	_, exists := r.auctions[auctionID]
	r.mu.RUnlock()
	if !exists {
		return nil, false
	}

	l := &sync.Mutex{}
	r.locks[auctionID] = l
	return l, true
}

// InAuctionTx stages every write on a copy and swaps it in when fn succeeds
func (r *MemoryRepo) InAuctionTx(ctx context.Context, auctionID string, fn func(tx AuctionTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l, ok := r.auctionLock(auctionID)
	if !ok {
		return fmt.Errorf("auction tx %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	l.Lock()
	defer l.Unlock()

	r.mu.RLock()
	auction, ok := r.auctions[auctionID]
	if !ok {
		r.mu.RUnlock()
		return fmt.Errorf("auction tx %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	tx := &memoryTx{
		repo:    r,
		auction: auction,
		bids:    append([]model.AuctionBid(nil), r.bids[auctionID]...),
		reports: make(map[string]string),
	}
	if p, ok := r.purchases[auctionID]; ok {
		tx.purchase = &p
	}
	r.mu.RUnlock()

	if err := fn(tx); err != nil {
		return err
	}

	r.commit(tx)
	return nil
}

func (r *MemoryRepo) commit(tx *memoryTx) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := tx.auction.ID
	r.auctions[id] = tx.auction
	if len(tx.bids) == 0 {
		delete(r.bids, id)
	} else {
		r.bids[id] = tx.bids
	}
	if tx.purchase == nil {
		delete(r.purchases, id)
	} else {
		r.purchases[id] = *tx.purchase
	}
	for buyerID, reason := range tx.reports {
		b := r.buyers[buyerID]
		b.ID = buyerID
		b.IsReported = true
		b.ReportReason = reason
		r.buyers[buyerID] = b
	}
	for _, n := range tx.notifications {
		r.notifications[n.UserID] = append(r.notifications[n.UserID], n)
	}
	for _, c := range tx.conversations {
		r.conversations[c.AuctionID] = c
	}
}

// GetAuction returns a single auction
func (r *MemoryRepo) GetAuction(ctx context.Context, auctionID string) (model.AuctionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.AuctionRequest{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// GetBidsByAuction returns all bids for an auction, newest first
func (r *MemoryRepo) GetBidsByAuction(ctx context.Context, auctionID string) ([]model.AuctionBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	bids, ok := r.bids[auctionID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return newestFirst(bids), nil
}

// GetCurrentBid returns the bid flagged as current for an auction
func (r *MemoryRepo) GetCurrentBid(ctx context.Context, auctionID string) (model.AuctionBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return model.AuctionBid{}, fmt.Errorf("get current bid for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return currentOf(auctionID, r.bids[auctionID])
}

// GetPastBids returns the most recent non-current bids from buyers that are not blocked
func (r *MemoryRepo) GetPastBids(ctx context.Context, auctionID string, limit int) ([]model.AuctionBid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pastOf(r.bids[auctionID], limit), nil
}

// pastOf expects r.mu to be held
func (r *MemoryRepo) pastOf(bids []model.AuctionBid, limit int) []model.AuctionBid {
	past := make([]model.AuctionBid, 0, limit)
	for _, b := range newestFirst(bids) {
		if len(past) >= limit {
			break
		}
		if b.IsCurrentBid || r.buyers[b.BuyerID].IsBlocked {
			continue
		}
		past = append(past, b)
	}
	return past
}

func (r *MemoryRepo) CountBids(ctx context.Context, auctionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bids[auctionID]), nil
}

func (r *MemoryRepo) GetPurchase(ctx context.Context, auctionID string) (model.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.purchases[auctionID]
	if !ok {
		return model.Purchase{}, fmt.Errorf("get purchase for auction %s: %w", auctionID, auctionerrors.ErrPurchaseNotFound)
	}
	return p, nil
}

func (r *MemoryRepo) GetBuyer(ctx context.Context, buyerID string) (model.Buyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.buyers[buyerID]
	if !ok {
		return model.Buyer{}, fmt.Errorf("get buyer %s: %w", buyerID, auctionerrors.ErrBuyerNotFound)
	}
	return b, nil
}

// ListAwaitingPayment returns ended auctions whose winner has not paid yet
func (r *MemoryRepo) ListAwaitingPayment(ctx context.Context) ([]model.AuctionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.AuctionRequest
	for id, a := range r.auctions {
		if !a.AuctionStopped || a.WinnerID == nil {
			continue
		}
		if p, ok := r.purchases[id]; ok && p.PaymentStatus == model.PaymentPending {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) GetNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Notification(nil), r.notifications[userID]...), nil
}

func (r *MemoryRepo) GetConversation(ctx context.Context, auctionID string) (model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conversations[auctionID]
	if !ok {
		return model.Conversation{}, fmt.Errorf("get conversation for auction %s: not found", auctionID)
	}
	return c, nil
}

// Health reports repository sizes
func (r *MemoryRepo) Health(ctx context.Context) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return map[string]string{
		"status":    "up",
		"driver":    "memory",
		"auctions":  strconv.Itoa(len(r.auctions)),
		"purchases": strconv.Itoa(len(r.purchases)),
	}
}

func (r *MemoryRepo) Close() error { return nil }

// AddAuction adds an auction to the repository. This method is intended for tests and seeding only.
func (r *MemoryRepo) AddAuction(auction model.AuctionRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[auction.ID] = auction
}

// AddBuyer adds a buyer to the repository. This method is intended for tests and seeding only.
func (r *MemoryRepo) AddBuyer(buyer model.Buyer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buyers[buyer.ID] = buyer
}

type memoryTx struct {
	repo          *MemoryRepo
	auction       model.AuctionRequest
	bids          []model.AuctionBid
	purchase      *model.Purchase
	reports       map[string]string
	notifications []model.Notification
	conversations []model.Conversation
}

func (tx *memoryTx) Auction() model.AuctionRequest { return tx.auction }

func (tx *memoryTx) SaveAuction(auction model.AuctionRequest) error {
	if auction.ID != tx.auction.ID {
		return fmt.Errorf("save auction %s: transaction is bound to %s", auction.ID, tx.auction.ID)
	}
	if auction.Version != tx.auction.Version {
		return fmt.Errorf("save auction %s: %w", auction.ID, auctionerrors.ErrVersionConflict)
	}
	auction.Version++
	tx.auction = auction
	return nil
}

func (tx *memoryTx) CurrentBid() (model.AuctionBid, error) {
	return currentOf(tx.auction.ID, tx.bids)
}

func (tx *memoryTx) PastBids(limit int) ([]model.AuctionBid, error) {
	tx.repo.mu.RLock()
	defer tx.repo.mu.RUnlock()
	return tx.repo.pastOf(tx.bids, limit), nil
}

func (tx *memoryTx) PlaceCurrentBid(bid model.AuctionBid) error {
	if bid.AuctionID != tx.auction.ID {
		return fmt.Errorf("place bid for auction %s: transaction is bound to %s", bid.AuctionID, tx.auction.ID)
	}
	for i := range tx.bids {
		tx.bids[i].IsCurrentBid = false
	}
	bid.IsCurrentBid = true
	tx.bids = append(tx.bids, bid)
	return nil
}

func (tx *memoryTx) DeleteBids() (int, error) {
	n := len(tx.bids)
	tx.bids = nil
	return n, nil
}

func (tx *memoryTx) Purchase() (model.Purchase, error) {
	if tx.purchase == nil {
		return model.Purchase{}, fmt.Errorf("purchase for auction %s: %w", tx.auction.ID, auctionerrors.ErrPurchaseNotFound)
	}
	return *tx.purchase, nil
}

func (tx *memoryTx) CreatePurchase(purchase model.Purchase) error {
	if tx.purchase != nil {
		return fmt.Errorf("create purchase for auction %s: %w", tx.auction.ID, auctionerrors.ErrPurchaseExists)
	}
	tx.purchase = &purchase
	return nil
}

func (tx *memoryTx) UpdatePurchase(purchase model.Purchase) error {
	if tx.purchase == nil || tx.purchase.ID != purchase.ID {
		return fmt.Errorf("update purchase %s: %w", purchase.ID, auctionerrors.ErrPurchaseNotFound)
	}
	tx.purchase = &purchase
	return nil
}

func (tx *memoryTx) DeletePurchase() error {
	tx.purchase = nil
	return nil
}

func (tx *memoryTx) Buyer(buyerID string) (model.Buyer, error) {
	tx.repo.mu.RLock()
	defer tx.repo.mu.RUnlock()

	b, ok := tx.repo.buyers[buyerID]
	if !ok {
		return model.Buyer{}, fmt.Errorf("buyer %s: %w", buyerID, auctionerrors.ErrBuyerNotFound)
	}
	return b, nil
}

func (tx *memoryTx) ReportBuyer(buyerID, reason string) error {
	tx.reports[buyerID] = reason
	return nil
}

func (tx *memoryTx) AddNotification(n model.Notification) error {
	tx.notifications = append(tx.notifications, n)
	return nil
}

func (tx *memoryTx) OpenConversation(c model.Conversation) error {
	tx.conversations = append(tx.conversations, c)
	return nil
}

func currentOf(auctionID string, bids []model.AuctionBid) (model.AuctionBid, error) {
	for _, b := range bids {
		if b.IsCurrentBid {
			return b, nil
		}
	}
	return model.AuctionBid{}, fmt.Errorf("current bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
}

// newestFirst copies bids ordered by bid time descending; insertion order breaks ties
func newestFirst(bids []model.AuctionBid) []model.AuctionBid {
	out := make([]model.AuctionBid, len(bids))
	for i, b := range bids {
		out[len(bids)-1-i] = b
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BidTime.After(out[j].BidTime) })
	return out
}
