package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/khairallah17/anomaly-tracker/internal/model"
	"github.com/khairallah17/anomaly-tracker/internal/rules"
)

// devAPIKey is the well-known dev key. Never use outside local development.
const devAPIKey = "trk_dev_0000000000000000000000000000000000000000000000000000000000000000"

type anomaliesFile struct {
	Windows   []windowEntry  `yaml:"windows"`
	Anomalies []anomalyEntry `yaml:"anomalies"`
}

type windowEntry struct {
	Title     string `yaml:"title"`
	StartDays int    `yaml:"start_days"`
	Hours     int    `yaml:"hours"`
}

type anomalyEntry struct {
	Description       string   `yaml:"description"`
	Equipment         string   `yaml:"equipment"`
	EquipmentNumber   string   `yaml:"equipment_number"`
	Service           string   `yaml:"service"`
	System            string   `yaml:"system"`
	Unit              string   `yaml:"unit"`
	Status            string   `yaml:"status"`
	EstimatedTime     *int     `yaml:"estimated_time"`
	ShutdownRequired  bool     `yaml:"shutdown_required"`
	UserFeedback      bool     `yaml:"user_feedback"`
	PredDisponibility *float64 `yaml:"predicted_disponibility"`
	PredIntegrity     *float64 `yaml:"predicted_integrity"`
	PredProcessSafety *float64 `yaml:"predicted_process_safety"`
	FinalDispo        *float64 `yaml:"final_disponibility"`
	FinalIntegrity    *float64 `yaml:"final_integrity"`
	FinalProcSafety   *float64 `yaml:"final_process_safety"`
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	fmt.Println("Seeding anomaly tracker database...")

	fmt.Println("  Inserting dev API key...")
	if err := seedAPIKey(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "seed api key: %v\n", err)
		os.Exit(1)
	}

	fixture, err := loadFixture()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(1)
	}

	windowIDs := make([]int64, 0, len(fixture.Windows))
	for _, w := range fixture.Windows {
		start := time.Now().AddDate(0, 0, w.StartDays).Truncate(time.Hour)
		end := start.Add(time.Duration(w.Hours) * time.Hour)

		fmt.Printf("  Upserting window %q (%dh)\n", w.Title, w.Hours)
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO maintenance_windows (title, start_date, end_date)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM maintenance_windows WHERE title = $1)
			RETURNING id`,
			w.Title, start, end).Scan(&id)
		if err != nil {
			// Already seeded, look it up so anomalies can still reference it.
			err = pool.QueryRow(ctx,
				`SELECT id FROM maintenance_windows WHERE title = $1`, w.Title).Scan(&id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "upsert window %q: %v\n", w.Title, err)
				os.Exit(1)
			}
		}
		windowIDs = append(windowIDs, id)
	}

	for i, a := range fixture.Anomalies {
		status := a.Status
		if status == "" {
			status = "IN_PROGRESS"
		}

		criticality := rules.CombinedScore(model.Anomaly{
			UserFeedback:           a.UserFeedback,
			PredictedDisponibility: a.PredDisponibility,
			PredictedIntegrity:     a.PredIntegrity,
			PredictedProcessSafety: a.PredProcessSafety,
			FinalDisponibility:     a.FinalDispo,
			FinalIntegrity:         a.FinalIntegrity,
			FinalProcessSafety:     a.FinalProcSafety,
		})

		fmt.Printf("  Inserting anomaly %q (criticality %d)\n", a.Description, criticality)
		_, err := pool.Exec(ctx, `
			INSERT INTO anomalies (description, equipment, equipment_number, detection_date,
				status, system, unit, service, estimated_time, sys_shutdown_required,
				user_feedback, predicted_disponibility, predicted_integrity,
				predicted_process_safety, final_disponibility, final_integrity,
				final_process_safety, criticality, treated_at)
			SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			       CASE WHEN $5 = 'TREATED' THEN now() END
			WHERE NOT EXISTS (SELECT 1 FROM anomalies WHERE description = $1 AND equipment = $2)`,
			a.Description, a.Equipment, a.EquipmentNumber,
			time.Now().AddDate(0, 0, -(i+1)), status, a.System, a.Unit, a.Service,
			a.EstimatedTime, a.ShutdownRequired, a.UserFeedback,
			a.PredDisponibility, a.PredIntegrity, a.PredProcessSafety,
			a.FinalDispo, a.FinalIntegrity, a.FinalProcSafety, criticality)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert anomaly %q: %v\n", a.Description, err)
			os.Exit(1)
		}
	}

	fmt.Println()
	fmt.Println("Seed complete!")
	fmt.Println()
	fmt.Printf("  Windows: %d, anomalies: %d\n", len(windowIDs), len(fixture.Anomalies))
	fmt.Printf("  Dev API key: %s\n", devAPIKey)
}

// seedAPIKey upserts the well-known dev key so local clients can call the API
// without running create-api-key first.
func seedAPIKey(ctx context.Context, pool *pgxpool.Pool) error {
	sum := sha256.Sum256([]byte(devAPIKey))
	_, err := pool.Exec(ctx, `
		INSERT INTO api_keys (id, name, key_hash, key_prefix)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key_hash) DO NOTHING`,
		uuid.NewString(), "dev", hex.EncodeToString(sum[:]), devAPIKey[:12])
	return err
}

// loadFixture reads anomalies.yaml next to this source file so the seeder
// works regardless of cwd.
func loadFixture() (*anomaliesFile, error) {
	_, thisFile, _, _ := runtime.Caller(0)
	yamlPath := filepath.Join(filepath.Dir(thisFile), "anomalies.yaml")

	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("read anomalies.yaml: %w", err)
	}

	var f anomaliesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse anomalies.yaml: %w", err)
	}
	return &f, nil
}
