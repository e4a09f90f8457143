package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	adaptershttp "github.com/nuvobank/ledger/internal/adapter/http"
	"github.com/nuvobank/ledger/internal/adapter/http/handler"
	repository "github.com/nuvobank/ledger/internal/adapter/repository/postgres"
	redisrepo "github.com/nuvobank/ledger/internal/adapter/repository/redis"
	"github.com/nuvobank/ledger/internal/domain"
	infraredis "github.com/nuvobank/ledger/internal/infrastructure/redis"
	"github.com/nuvobank/ledger/internal/usecase"
	"github.com/nuvobank/ledger/tests/testutil"
)

// testEnv wires the full HTTP stack against real postgres and redis.
type testEnv struct {
	DB         *testutil.TestDB
	Router     http.Handler
	Accounts   *repository.AccountRepository
	Entries    *repository.EntryRepository
	Corporates *repository.CorporateRepository
	Deposits   *repository.DepositRepository
	TransferUC *usecase.TransferUseCase
	DepositUC  *usecase.DepositUseCase
	DisputeUC  *usecase.DisputeUseCase
	InterestUC *usecase.InterestUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	pool := testDB.Pool
	accountRepo := repository.NewAccountRepository(pool)
	entryRepo := repository.NewEntryRepository(pool)
	corporateRepo := repository.NewCorporateRepository(pool)
	depositRepo := repository.NewDepositRepository(pool)
	disputeRepo := repository.NewDisputeRepository(pool)
	txManager := repository.NewTxManager(pool)
	retrier := repository.NewRetrier()
	idGen := repository.NewULIDGenerator()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = redisClient.Close() })

	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, entryRepo, retrier, idGen)
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo)
	settlementUC := usecase.NewSettlementUseCase(txManager, accountRepo, entryRepo, corporateRepo, retrier, idGen, testutil.CorporateID)
	depositUC := usecase.NewDepositUseCase(txManager, accountRepo, entryRepo, depositRepo, retrier, idGen)
	disputeUC := usecase.NewDisputeUseCase(txManager, entryRepo, disputeRepo, retrier, idGen)
	interestUC := usecase.NewInterestUseCase(txManager, accountRepo, entryRepo, retrier, idGen, domain.DefaultRateTable())
	reconUC := usecase.NewReconciliationUseCase(accountRepo, entryRepo, corporateRepo, cache)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:    handler.NewAccountHandler(accountUC),
		TransferHandler:   handler.NewTransferHandler(transferUC),
		EntryHandler:      handler.NewEntryHandler(entryUC),
		SettlementHandler: handler.NewSettlementHandler(settlementUC, nil),
		DepositHandler:    handler.NewDepositHandler(depositUC),
		DisputeHandler:    handler.NewDisputeHandler(disputeUC),
		LedgerHandler:     handler.NewLedgerHandler(reconUC, interestUC, testutil.CorporateID, nil),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
	})

	return &testEnv{
		DB:         testDB,
		Router:     router,
		Accounts:   accountRepo,
		Entries:    entryRepo,
		Corporates: corporateRepo,
		Deposits:   depositRepo,
		TransferUC: transferUC,
		DepositUC:  depositUC,
		DisputeUC:  disputeUC,
		InterestUC: interestUC,
	}
}

// doJSON runs one request through the router and returns the recorder.
func (e *testEnv) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, body)
	r.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, r)

	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
}
