package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fashionforward/psp-router/internal/dto"
	"github.com/fashionforward/psp-router/internal/engine"
	"github.com/fashionforward/psp-router/internal/model"
)

// batchConcurrency bounds the fan-out of batch routing. Routing is pure CPU
// work, so a small limit keeps the pool busy without thrashing.
const batchConcurrency = 8

// RoutingService validates authorization requests, builds domain
// transactions, and drives the routing engine.
type RoutingService struct {
	engine *engine.Engine
}

func NewRoutingService(eng *engine.Engine) *RoutingService {
	return &RoutingService{engine: eng}
}

type validationErr struct {
	field   string
	message string
}

func (e *validationErr) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

// Field returns the rejected request field.
func (e *validationErr) Field() string { return e.field }

// Message returns the human-readable rejection.
func (e *validationErr) Message() string { return e.message }

// Authorize routes a single transaction and returns the routing verdict.
func (s *RoutingService) Authorize(ctx context.Context, req *dto.TransactionRequest, strategyTag string) (*model.RoutingResult, error) {
	strategy, err := model.ParseStrategy(strategyTag)
	if err != nil {
		return nil, err
	}

	tx, err := s.buildTransaction(req)
	if err != nil {
		return nil, err
	}

	return s.engine.Route(tx, strategy)
}

// AuthorizeBatch routes an ordered collection of transactions under one
// strategy. Transactions are independent, so routing fans out concurrently;
// results keep request order.
func (s *RoutingService) AuthorizeBatch(ctx context.Context, reqs []dto.TransactionRequest, strategyTag string) ([]*model.RoutingResult, error) {
	strategy, err := model.ParseStrategy(strategyTag)
	if err != nil {
		return nil, err
	}

	// Validate everything up front so a bad item cannot fail the batch
	// halfway through.
	txs := make([]*model.Transaction, len(reqs))
	for i := range reqs {
		tx, err := s.buildTransaction(&reqs[i])
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs[i] = tx
	}

	results := make([]*model.RoutingResult, len(txs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, tx := range txs {
		i, tx := i, tx
		g.Go(func() error {
			result, err := s.engine.Route(tx, strategy)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// buildTransaction maps a request onto a domain transaction, enforcing the
// amount and country/currency invariants.
func (s *RoutingService) buildTransaction(req *dto.TransactionRequest) (*model.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, &validationErr{field: "amount", message: "must be greater than 0"}
	}

	country := model.Country(req.Country)
	currency, ok := model.CurrencyFor(country)
	if !ok {
		return nil, &validationErr{field: "country", message: fmt.Sprintf("unsupported country %q", req.Country)}
	}
	if string(currency) != req.Currency {
		return nil, &validationErr{
			field:   "currency",
			message: fmt.Sprintf("currency %q does not match country %q (expected %s)", req.Currency, req.Country, currency),
		}
	}

	tx := &model.Transaction{
		ID:         transactionID(req),
		Amount:     req.Amount,
		Currency:   currency,
		Country:    country,
		CardBIN:    req.CardBIN,
		CardLast4:  req.CardLast4,
		CustomerID: req.CustomerID,
		Timestamp:  time.Now().UTC(),
	}

	if err := tx.Validate(); err != nil {
		return nil, &validationErr{field: "transaction", message: err.Error()}
	}
	return tx, nil
}

// transactionID derives a stable identifier from the request fields. The
// simulator seeds unavailability and latency from this ID, so replaying the
// same request reproduces the same routing decision.
func transactionID(req *dto.TransactionRequest) string {
	h := fnv.New64a()
	for _, f := range []string{req.CardBIN, req.CardLast4, req.CustomerID, req.Amount.String()} {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("txn_%016x", h.Sum64())
}
