package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/geodash-org/geodash-backend-go/internal/config"
	"github.com/geodash-org/geodash-backend-go/internal/database"
	"github.com/geodash-org/geodash-backend-go/internal/spatial"
)

const observedAtLayout = "2006-01-02 15:04:05"

// observation is one parsed demand CSV row with its cell tokens computed for
// every supported resolution.
type observation struct {
	observedAt   string
	cellID       string
	actual       float64
	forecast     float64
	score        sql.NullFloat64
	pickupCells  [4]string // resolutions 6..9
	dropoffCells [4]string
}

func main() {
	demandPath := flag.String("demand", "", "CSV of demand observations (observed_at,pickup_lat,pickup_lng,dropoff_lat,dropoff_lng,actual,forecast,score)")
	accuracyPath := flag.String("accuracy", "", "CSV of forecast accuracy rows (lat,lng,smape)")
	batchSize := flag.Int("batch-size", 1000, "Rows per insert transaction")
	flag.Parse()

	if *demandPath == "" && *accuracyPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -demand and/or -accuracy")
		os.Exit(1)
	}

	cfg := config.Load()
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close()

	if *demandPath != "" {
		n, err := ingestDemand(*demandPath, *batchSize)
		if err != nil {
			log.Fatal("Demand ingestion failed: ", err)
		}
		log.Printf("Ingested %d demand observations from %s", n, *demandPath)
	}

	if *accuracyPath != "" {
		n, err := ingestAccuracy(*accuracyPath)
		if err != nil {
			log.Fatal("Accuracy ingestion failed: ", err)
		}
		log.Printf("Ingested %d accuracy rows from %s", n, *accuracyPath)
	}
}

func ingestDemand(path string, batchSize int) (int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	total := 0
	batch := make([]observation, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := insertObservations(batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for i, record := range rows {
		obs, err := parseObservation(record)
		if err != nil {
			log.Printf("Skipping row %d: %v", i+2, err)
			continue
		}
		batch = append(batch, obs)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	return total, flush()
}

func parseObservation(record []string) (observation, error) {
	if len(record) < 7 {
		return observation{}, fmt.Errorf("expected at least 7 fields, got %d", len(record))
	}

	ts, err := time.ParseInLocation(observedAtLayout, record[0], time.UTC)
	if err != nil {
		return observation{}, fmt.Errorf("bad observed_at %q: %w", record[0], err)
	}

	pickupLat, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return observation{}, fmt.Errorf("bad pickup_lat: %w", err)
	}
	pickupLng, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return observation{}, fmt.Errorf("bad pickup_lng: %w", err)
	}
	dropoffLat, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return observation{}, fmt.Errorf("bad dropoff_lat: %w", err)
	}
	dropoffLng, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return observation{}, fmt.Errorf("bad dropoff_lng: %w", err)
	}
	actual, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return observation{}, fmt.Errorf("bad actual: %w", err)
	}
	forecast, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return observation{}, fmt.Errorf("bad forecast: %w", err)
	}

	obs := observation{
		observedAt: ts.Format(observedAtLayout),
		cellID:     spatial.CellToken(pickupLat, pickupLng, spatial.NativeResolution),
		actual:     actual,
		forecast:   forecast,
	}
	if len(record) > 7 && record[7] != "" {
		score, err := strconv.ParseFloat(record[7], 64)
		if err != nil {
			return observation{}, fmt.Errorf("bad score: %w", err)
		}
		obs.score = sql.NullFloat64{Float64: score, Valid: true}
	}
	for r := spatial.MinResolution; r <= spatial.MaxResolution; r++ {
		obs.pickupCells[r-spatial.MinResolution] = spatial.CellToken(pickupLat, pickupLng, r)
		obs.dropoffCells[r-spatial.MinResolution] = spatial.CellToken(dropoffLat, dropoffLng, r)
	}
	return obs, nil
}

func insertObservations(batch []observation) error {
	return database.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO demand_observations
			(observed_at, cell_id, actual, forecast, score,
			 pickup_cell_r6, pickup_cell_r7, pickup_cell_r8, pickup_cell_r9,
			 dropoff_cell_r6, dropoff_cell_r7, dropoff_cell_r8, dropoff_cell_r9)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, o := range batch {
			_, err := stmt.Exec(
				o.observedAt, o.cellID, o.actual, o.forecast, o.score,
				o.pickupCells[0], o.pickupCells[1], o.pickupCells[2], o.pickupCells[3],
				o.dropoffCells[0], o.dropoffCells[1], o.dropoffCells[2], o.dropoffCells[3],
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func ingestAccuracy(path string) (int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return 0, err
	}

	total := 0
	err = database.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO cell_accuracy (cell_id, smape) VALUES (?, ?)
			ON CONFLICT(cell_id) DO UPDATE SET smape = excluded.smape`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, record := range rows {
			if len(record) < 3 {
				log.Printf("Skipping accuracy row %d: expected 3 fields", i+2)
				continue
			}
			lat, latErr := strconv.ParseFloat(record[0], 64)
			lng, lngErr := strconv.ParseFloat(record[1], 64)
			smape, smapeErr := strconv.ParseFloat(record[2], 64)
			if latErr != nil || lngErr != nil || smapeErr != nil {
				log.Printf("Skipping accuracy row %d: bad numeric field", i+2)
				continue
			}
			cell := spatial.CellToken(lat, lng, spatial.NativeResolution)
			if _, err := stmt.Exec(cell, smape); err != nil {
				return err
			}
			total++
		}
		return nil
	})
	return total, err
}

// readCSV reads all data rows of a CSV file, skipping the header line.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	// Header
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	return reader.ReadAll()
}
