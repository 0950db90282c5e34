package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/m04kA/TMS-SearchService/internal/config"
	"github.com/m04kA/TMS-SearchService/internal/domain"
	"github.com/m04kA/TMS-SearchService/pkg/logger"
	"github.com/m04kA/TMS-SearchService/pkg/psqlbuilder"
)

// Схема БД. Таблицы создаются идемпотентно, как и сам сев данных.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS insurance_payers (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS therapists (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS therapist_insurance (
	therapist_id       TEXT NOT NULL REFERENCES therapists (id) ON DELETE CASCADE,
	insurance_payer_id TEXT NOT NULL REFERENCES insurance_payers (id) ON DELETE CASCADE,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (therapist_id, insurance_payer_id)
);

CREATE TABLE IF NOT EXISTS availabilities (
	id           TEXT PRIMARY KEY,
	therapist_id TEXT NOT NULL REFERENCES therapists (id) ON DELETE CASCADE,
	start_time   TIMESTAMPTZ NOT NULL,
	end_time     TIMESTAMPTZ NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_availabilities_therapist ON availabilities (therapist_id);
CREATE INDEX IF NOT EXISTS idx_availabilities_start_time ON availabilities (start_time);
`

// Каталог страховых компаний (в БД входит humana, которой нет в форме поиска)
var payers = append(domain.PayerCatalog, domain.InsurancePayer{ID: "humana", Name: "Humana"})

// Страховки, которые принимает каждый терапевт
var payerAssignments = map[string][]string{
	"t1":  {"aetna", "kaiser"},
	"t2":  {"aetna", "medicaid"},
	"t3":  {"bluecross", "aetna"},
	"t4":  {"bluecross", "cigna"},
	"t5":  {"aetna", "cigna", "united"},
	"t6":  {"bluecross", "aetna"},
	"t7":  {"bluecross", "aetna", "cigna", "united"},
	"t8":  {"aetna", "cigna"},
	"t9":  {"aetna", "cigna", "humana"},
	"t10": {"aetna", "cigna", "medicaid"},
	"t11": {"aetna"},
	"t12": {"cigna", "united"},
	"t13": {"cigna"},
	"t14": {"kaiser", "cigna"},
	"t15": {"medicaid", "bluecross"},
	"t16": {"aetna", "bluecross", "cigna", "united"},
}

func main() {
	configPath := flag.String("config", "config.toml", "путь до конфигурации")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "seed генератора случайных слотов")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting seed (rand seed=%d)...", *randSeed)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	ctx := context.Background()

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		log.Fatal("Failed to create tables: %v", err)
	}
	log.Info("Tables created")

	if err := seedPayers(ctx, db); err != nil {
		log.Fatal("Failed to seed insurance payers: %v", err)
	}
	log.Info("Created insurance payers")

	if err := seedTherapists(ctx, db); err != nil {
		log.Fatal("Failed to seed therapists: %v", err)
	}
	log.Info("Created therapists")

	if err := seedAssignments(ctx, db); err != nil {
		log.Fatal("Failed to seed therapist-insurance relationships: %v", err)
	}
	log.Info("Created therapist-insurance relationships")

	count, err := seedAvailabilities(ctx, db, rand.New(rand.NewSource(*randSeed)))
	if err != nil {
		log.Fatal("Failed to seed availabilities: %v", err)
	}
	log.Info("Created %d availabilities", count)

	log.Info("Seed completed successfully")
}

func seedPayers(ctx context.Context, db *sql.DB) error {
	for _, p := range payers {
		query, args, err := psqlbuilder.Insert("insurance_payers").
			Columns("id", "name").
			Values(p.ID, p.Name).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ToSql()
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return nil
}

func seedTherapists(ctx context.Context, db *sql.DB) error {
	for i := 1; i <= len(payerAssignments); i++ {
		query, args, err := psqlbuilder.Insert("therapists").
			Columns("id", "name").
			Values(fmt.Sprintf("t%d", i), fmt.Sprintf("Dr. Therapist %d", i)).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ToSql()
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return nil
}

func seedAssignments(ctx context.Context, db *sql.DB) error {
	for therapistID, payerIDs := range payerAssignments {
		for _, payerID := range payerIDs {
			query, args, err := psqlbuilder.Insert("therapist_insurance").
				Columns("therapist_id", "insurance_payer_id").
				Values(therapistID, payerID).
				Suffix("ON CONFLICT DO NOTHING").
				ToSql()
			if err != nil {
				return err
			}
			if _, err := db.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedAvailabilities генерирует слоты на ближайшие две недели:
// для каждого терапевта 4-8 часовых слотов в день в диапазоне 9:00-17:00
func seedAvailabilities(ctx context.Context, db *sql.DB, rng *rand.Rand) (int, error) {
	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.Local).AddDate(0, 0, 1)

	possibleHours := make([]int, 0, 9)
	for hour := 9; hour < 18; hour++ {
		possibleHours = append(possibleHours, hour)
	}

	count := 0
	for i := 1; i <= len(payerAssignments); i++ {
		therapistID := fmt.Sprintf("t%d", i)

		for day := 3; day < 14; day++ {
			currentDate := startDate.AddDate(0, 0, day)

			numSlots := 4 + rng.Intn(5)
			hours := pickHours(rng, possibleHours, numSlots)

			for _, hour := range hours {
				startTime := time.Date(
					currentDate.Year(), currentDate.Month(), currentDate.Day(),
					hour, 0, 0, 0, time.Local,
				)

				query, args, err := psqlbuilder.Insert("availabilities").
					Columns("id", "therapist_id", "start_time", "end_time").
					Values(uuid.NewString(), therapistID, startTime, startTime.Add(time.Hour)).
					ToSql()
				if err != nil {
					return count, err
				}
				if _, err := db.ExecContext(ctx, query, args...); err != nil {
					return count, err
				}
				count++
			}
		}
	}

	return count, nil
}

// pickHours выбирает n различных часов из possible в возрастающем порядке
func pickHours(rng *rand.Rand, possible []int, n int) []int {
	picked := make(map[int]struct{})
	for len(picked) < n && len(picked) < len(possible) {
		picked[possible[rng.Intn(len(possible))]] = struct{}{}
	}

	hours := make([]int, 0, len(picked))
	for hour := range picked {
		hours = append(hours, hour)
	}
	sort.Ints(hours)
	return hours
}
