// cmd/seeder/main.go
//
// Development seeder. Fills the fridges table with randomized but
// plausible grocery inventories so the dashboard and export endpoints
// have data to work with.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ammerola/fridge-be/internal/core/domain"
	"github.com/ammerola/fridge-be/internal/pkg/config"
	"github.com/ammerola/fridge-be/internal/pkg/logger"
)

type catalogEntry struct {
	name     string
	minPrice string
	maxPrice string
}

// catalog holds typical grocery items with realistic price ranges.
var catalog = []catalogEntry{
	{"milk", "2.50", "4.50"},
	{"eggs", "0.25", "0.60"},
	{"butter", "3.00", "6.00"},
	{"bread", "1.80", "4.20"},
	{"cheddar", "5.00", "12.00"},
	{"yogurt", "0.90", "2.40"},
	{"apples", "0.40", "1.10"},
	{"bananas", "0.20", "0.45"},
	{"chicken breast", "6.50", "11.00"},
	{"ground beef", "5.00", "9.50"},
	{"salmon", "9.00", "16.00"},
	{"rice", "1.20", "3.80"},
	{"pasta", "0.90", "2.80"},
	{"olive oil", "7.00", "18.00"},
	{"tomatoes", "0.60", "1.80"},
	{"onions", "0.30", "0.90"},
	{"orange juice", "3.00", "5.50"},
	{"coffee", "8.00", "15.00"},
	{"frozen peas", "1.50", "3.00"},
	{"ice cream", "4.00", "8.00"},
}

func main() {
	var (
		fridgeCount = flag.Int("fridges", 25, "number of fridges to seed")
		itemsPer    = flag.Int("items", 8, "maximum items per fridge")
		clean       = flag.Bool("clean", false, "truncate the fridges table first")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	)
	flag.Parse()

	slogger := logger.SetupLogger("info", "text").Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction() {
		slogger.Error("refusing to seed a production database")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.GetDatabaseURL())
	if err != nil {
		slogger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if *clean {
		if _, err := pool.Exec(ctx, `TRUNCATE fridges, scan_jobs`); err != nil {
			slogger.Error("failed to truncate tables", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slogger.Info("existing data removed")
	}

	rng := rand.New(rand.NewSource(*seed))

	seeded := 0
	for i := 0; i < *fridgeCount; i++ {
		uid := fmt.Sprintf("user-%03d", i+1)
		inv := randomInventory(rng, *itemsPer)

		data, err := json.Marshal(inv)
		if err != nil {
			slogger.Error("failed to encode inventory",
				slog.String("uid", uid),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO fridges (uid, inventory)
			VALUES ($1, $2)
			ON CONFLICT (uid) DO UPDATE SET inventory = EXCLUDED.inventory, updated_at = now()`,
			uid, data)
		if err != nil {
			slogger.Error("failed to insert fridge",
				slog.String("uid", uid),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		seeded++
	}

	slogger.Info("seeding complete",
		slog.Int("fridges", seeded),
		slog.Int64("seed", *seed))
}

func randomInventory(rng *rand.Rand, maxItems int) domain.Inventory {
	count := 1 + rng.Intn(maxItems)

	picked := rng.Perm(len(catalog))[:min(count, len(catalog))]
	inv := make(domain.Inventory, len(picked))

	for _, idx := range picked {
		entry := catalog[idx]
		inv[entry.name] = domain.Item{
			Quantity:  randomQuantity(rng),
			UnitPrice: randomPrice(rng, entry.minPrice, entry.maxPrice),
		}
	}

	return inv
}

// randomQuantity returns a quantity between 0.5 and 12, occasionally
// fractional to mirror weighed produce.
func randomQuantity(rng *rand.Rand) decimal.Decimal {
	if rng.Intn(4) == 0 {
		return decimal.NewFromFloat(0.5 + rng.Float64()*2).Round(2)
	}
	return decimal.NewFromInt(int64(1 + rng.Intn(12)))
}

func randomPrice(rng *rand.Rand, minStr, maxStr string) decimal.Decimal {
	lo := decimal.RequireFromString(minStr)
	hi := decimal.RequireFromString(maxStr)
	span := hi.Sub(lo)
	offset := span.Mul(decimal.NewFromFloat(rng.Float64()))
	return lo.Add(offset).Round(domain.MoneyPrecision)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
