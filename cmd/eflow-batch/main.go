// eflow-batch computes streamflow characteristics for every gauging
// station registered in a PostgreSQL database, running the stations in
// parallel, and writes one CSV row per station and characteristic.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"

	"github.com/hydrostats/eflow/internal/log"
	"github.com/hydrostats/eflow/pkg/calculator"
	"github.com/hydrostats/eflow/pkg/characteristics"
	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

func main() {
	var (
		dbHost    = flag.String("db-host", "localhost", "Database host")
		dbPort    = flag.Int("db-port", 5432, "Database port")
		dbUser    = flag.String("db-user", "postgres", "Database user")
		dbPass    = flag.String("db-pass", "", "Database password")
		dbName    = flag.String("db-name", "hydrology", "Database name")
		anchorStr = flag.String("anchor", "01/10", "Start of the hydrological year (DD/MM)")
		workers   = flag.Int("workers", 0, "Number of parallel workers (0 = number of CPUs)")
		debug     = flag.Bool("debug", false, "Enable debug logging")
		csvOutput = flag.String("csv", "", "Optional CSV output file path (default stdout)")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	anchor, err := hydroyear.ParseAnchor(*anchorStr)
	if err != nil {
		log.Fatalf("parsing anchor: %v", err)
	}

	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		*dbHost, *dbPort, *dbUser, *dbPass, *dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("pinging database: %v", err)
	}

	stations, areas, err := fetchStations(db)
	if err != nil {
		log.Fatalf("fetching stations: %v", err)
	}
	if len(stations) == 0 {
		log.Fatalf("no stations registered")
	}
	log.Infof("computing characteristics for %d stations", len(stations))

	dates := make([][]time.Time, len(stations))
	flows := make([]*flowseries.Matrix, len(stations))
	taskAreas := make([][]float64, len(stations))
	for i, station := range stations {
		d, m, err := fetchFlows(db, station)
		if err != nil {
			log.Fatalf("fetching flows for %s: %v", station, err)
		}
		if m == nil {
			log.Fatalf("no flow records for station %s", station)
		}
		dates[i] = d
		flows[i] = m
		taskAreas[i] = []float64{areas[i]}
	}

	names, fns := characteristics.Split(characteristics.Everything)
	results, err := calculator.RunBatch(context.Background(), fns, dates, flows, taskAreas, nil, calculator.BatchOptions{
		Anchor:  anchor,
		Workers: *workers,
		Logger:  log.GetSugaredLogger(),
	})
	if err != nil {
		log.Fatalf("batch failed: %v", err)
	}

	out := os.Stdout
	if *csvOutput != "" {
		f, err := os.Create(*csvOutput)
		if err != nil {
			log.Fatalf("creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	w.Write([]string{"station", "characteristic", "value"})
	for i, station := range stations {
		for c, name := range names {
			w.Write([]string{station, name, strconv.FormatFloat(float64(results[i].At(c, 0)), 'g', -1, 32)})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("writing CSV: %v", err)
	}
}

// fetchStations reads the station register with drainage areas.
func fetchStations(db *sql.DB) ([]string, []float64, error) {
	rows, err := db.Query(`SELECT station, drainage_area FROM stations ORDER BY station`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var stations []string
	var areas []float64
	for rows.Next() {
		var station string
		var area float64
		if err := rows.Scan(&station, &area); err != nil {
			return nil, nil, err
		}
		stations = append(stations, station)
		areas = append(areas, area)
	}
	return stations, areas, rows.Err()
}

// fetchFlows reads the daily flow record of one station, ordered by date.
func fetchFlows(db *sql.DB, station string) ([]time.Time, *flowseries.Matrix, error) {
	rows, err := db.Query(`SELECT date, flow FROM flows WHERE station = $1 ORDER BY date`, station)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var dates []time.Time
	var values []float64
	for rows.Next() {
		var date time.Time
		var flow float64
		if err := rows.Scan(&date, &flow); err != nil {
			return nil, nil, err
		}
		dates = append(dates, date.UTC().Truncate(24*time.Hour))
		values = append(values, flow)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if len(values) == 0 {
		return nil, nil, nil
	}
	return dates, flowseries.FromSeries(values), nil
}
