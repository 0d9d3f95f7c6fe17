// eflow-calc computes streamflow characteristics for a single gauging
// station from a SQLite archive of daily flows and writes them as CSV.
package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hydrostats/eflow/pkg/calculator"
	"github.com/hydrostats/eflow/pkg/characteristics"
	"github.com/hydrostats/eflow/pkg/flowseries"
	"github.com/hydrostats/eflow/pkg/hydroyear"
)

func main() {
	var (
		dbPath    = flag.String("db", "flows.db", "SQLite database file")
		station   = flag.String("station", "", "Gauging station identifier")
		anchorStr = flag.String("anchor", "01/10", "Start of the hydrological year (DD/MM)")
		charsStr  = flag.String("chars", "all", "Characteristics to compute: 'all', a family (magnitude, frequency, duration, timing, ratechange) or a comma-separated list of names")
		area      = flag.Float64("area", 1.0, "Drainage area in km2")
		yearsStr  = flag.String("years", "", "Optional comma-separated hydrological year labels to restrict to")
		csvOutput = flag.String("csv", "", "Optional CSV output file path (default stdout)")
	)
	flag.Parse()

	if *station == "" {
		fmt.Fprintf(os.Stderr, "Error: -station is required\n")
		os.Exit(1)
	}

	anchor, err := hydroyear.ParseAnchor(*anchorStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing anchor: %v\n", err)
		os.Exit(1)
	}

	entries, err := selectEntries(*charsStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	years, err := parseYears(*yearsStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing years: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	dates, flows, err := fetchFlows(db, *station)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching flows: %v\n", err)
		os.Exit(1)
	}
	if len(dates) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no flow records for station %s\n", *station)
		os.Exit(1)
	}

	names, fns := characteristics.Split(entries)
	result, err := calculator.Calculate(fns, dates, flows, []float64{*area}, calculator.Options{
		Anchor: anchor,
		Years:  years,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing characteristics: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *csvOutput != "" {
		f, err := os.Create(*csvOutput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	w.Write([]string{"characteristic", "value"})
	for i, name := range names {
		w.Write([]string{name, strconv.FormatFloat(float64(result.At(i, 0)), 'g', -1, 32)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		os.Exit(1)
	}
}

// fetchFlows reads the daily flow record of one station, ordered by date.
func fetchFlows(db *sql.DB, station string) ([]time.Time, *flowseries.Matrix, error) {
	rows, err := db.Query(`SELECT date, flow FROM flows WHERE station = ? ORDER BY date`, station)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var dates []time.Time
	var values []float64
	for rows.Next() {
		var dateStr string
		var flow float64
		if err := rows.Scan(&dateStr, &flow); err != nil {
			return nil, nil, err
		}
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("bad date %q: %w", dateStr, err)
		}
		dates = append(dates, date)
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

// selectEntries resolves the -chars flag into registry entries.
func selectEntries(arg string) ([]characteristics.Entry, error) {
	switch strings.ToLower(arg) {
	case "all":
		return characteristics.Everything, nil
	case "magnitude":
		return characteristics.Magnitude, nil
	case "frequency":
		return characteristics.Frequency, nil
	case "duration":
		return characteristics.Duration, nil
	case "timing":
		return characteristics.Timing, nil
	case "ratechange":
		return characteristics.RateChange, nil
	}
	var entries []characteristics.Entry
	for _, name := range strings.Split(arg, ",") {
		name = strings.TrimSpace(name)
		fn, err := characteristics.ByName(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, characteristics.Entry{Name: name, Fn: fn})
	}
	return entries, nil
}

// parseYears parses a comma-separated list of hydrological year labels.
func parseYears(arg string) ([]int, error) {
	if arg == "" {
		return nil, nil
	}
	var years []int
	for _, part := range strings.Split(arg, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, nil
}
