package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
)

type tickerFixture struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestCache_Key(t *testing.T) {
	t.Run("symbol-scoped", func(t *testing.T) {
		got := Key("binance", "spot", "ticker", "BTCUSDT")
		want := "marketfeed:binance:spot:ticker:BTCUSDT"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("not symbol-scoped", func(t *testing.T) {
		got := Key("bybit", "futures", "open_interest", "")
		want := "marketfeed:bybit:futures:open_interest"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestCache_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := &Cache{client: db, ttl: time.Minute}
	ctx := context.Background()

	t.Run("cache hit decodes value", func(t *testing.T) {
		key := "marketfeed:binance:spot:ticker:BTCUSDT"
		entry := Entry{
			Data:      []byte(`{"symbol":"BTCUSDT","price":50000.5}`),
			CachedAt:  time.Now(),
			ExpiresAt: time.Now().Add(time.Minute),
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			t.Fatalf("marshal fixture entry: %v", err)
		}
		mock.ExpectGet(key).SetVal(string(encoded))

		var dest tickerFixture
		found, err := cache.Get(ctx, key, &dest)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !found {
			t.Error("expected cache hit")
		}
		if dest.Symbol != "BTCUSDT" || dest.Price != 50000.5 {
			t.Errorf("unexpected decoded value: %+v", dest)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations not met: %v", err)
		}
	})

	t.Run("cache miss returns false", func(t *testing.T) {
		key := "marketfeed:binance:spot:ticker:ETHUSDT"
		mock.ExpectGet(key).RedisNil()

		var dest tickerFixture
		found, err := cache.Get(ctx, key, &dest)
		if err != nil {
			t.Fatalf("Get should not error on cache miss: %v", err)
		}
		if found {
			t.Error("expected cache miss")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations not met: %v", err)
		}
	})

	t.Run("redis error propagates", func(t *testing.T) {
		key := "marketfeed:binance:spot:ticker:ERR"
		mock.ExpectGet(key).SetErr(redis.TxFailedErr)

		var dest tickerFixture
		_, err := cache.Get(ctx, key, &dest)
		if err == nil {
			t.Error("expected error when redis fails")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations not met: %v", err)
		}
	})
}

func TestCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := &Cache{client: db, ttl: time.Minute}
	ctx := context.Background()

	t.Run("sets value with default ttl", func(t *testing.T) {
		key := "marketfeed:okx:spot:ticker:BTCUSDT"
		mock.Regexp().ExpectSet(key, `.*`, time.Minute).SetVal("OK")

		err := cache.Set(ctx, key, tickerFixture{Symbol: "BTCUSDT", Price: 1}, 0)
		if err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("redis expectations not met: %v", err)
		}
	})
}

func TestCache_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := &Cache{client: db, ttl: time.Minute}
	ctx := context.Background()

	key := "marketfeed:gate:spot:ticker:BTCUSDT"
	mock.ExpectDel(key).SetVal(1)

	if err := cache.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("redis expectations not met: %v", err)
	}
}
