// Package characteristics implements the individual streamflow
// characteristics. Each one reduces a daily flow record to a single
// value per series, and is registered here under its canonical name.
package characteristics

import (
	"fmt"
	"sort"
	"time"

	"github.com/hydrostats/eflow/pkg/calculator"
)

// Characteristic is the signature every streamflow characteristic
// implements.
type Characteristic = calculator.Characteristic

// Characteristics built from parameterised constructors.
var (
	MA6 = percentileRatio(90, 10)
	MA7 = percentileRatio(80, 20)
	MA8 = percentileRatio(75, 25)

	MA9  = logPercentileSpread(90, 10)
	MA10 = logPercentileSpread(80, 20)
	MA11 = logPercentileSpread(75, 25)

	MA12 = MonthlyMean(time.January)
	MA13 = MonthlyMean(time.February)
	MA14 = MonthlyMean(time.March)
	MA15 = MonthlyMean(time.April)
	MA16 = MonthlyMean(time.May)
	MA17 = MonthlyMean(time.June)
	MA18 = MonthlyMean(time.July)
	MA19 = MonthlyMean(time.August)
	MA20 = MonthlyMean(time.September)
	MA21 = MonthlyMean(time.October)
	MA22 = MonthlyMean(time.November)
	MA23 = MonthlyMean(time.December)

	MA24 = MonthlyCV(time.January)
	MA25 = MonthlyCV(time.February)
	MA26 = MonthlyCV(time.March)
	MA27 = MonthlyCV(time.April)
	MA28 = MonthlyCV(time.May)
	MA29 = MonthlyCV(time.June)
	MA30 = MonthlyCV(time.July)
	MA31 = MonthlyCV(time.August)
	MA32 = MonthlyCV(time.September)
	MA33 = MonthlyCV(time.October)
	MA34 = MonthlyCV(time.November)
	MA35 = MonthlyCV(time.December)

	MA36 = monthlyMeanSpread(func(xs []float64) float64 { return (maxOf(xs) - minOf(xs)) / median(xs) })
	MA37 = monthlyMeanSpread(func(xs []float64) float64 { return (percentile(xs, 75) - percentile(xs, 25)) / median(xs) })
	MA38 = monthlyMeanSpread(func(xs []float64) float64 { return (percentile(xs, 90) - percentile(xs, 10)) / median(xs) })
	MA39 = monthlyMeanSpread(cvSamp)
	MA40 = monthlyMeanSpread(func(xs []float64) float64 { return (mean(xs) - median(xs)) / median(xs) })

	MA42 = annualMeanSpread(func(xs []float64) float64 { return (maxOf(xs) - minOf(xs)) / median(xs) })
	MA43 = annualMeanSpread(func(xs []float64) float64 { return (percentile(xs, 75) - percentile(xs, 25)) / median(xs) })
	MA44 = annualMeanSpread(func(xs []float64) float64 { return (percentile(xs, 90) - percentile(xs, 10)) / median(xs) })
	MA45 = annualMeanSpread(func(xs []float64) float64 { return (mean(xs) - median(xs)) / median(xs) })

	ML1  = MonthlyMin(time.January)
	ML2  = MonthlyMin(time.February)
	ML3  = MonthlyMin(time.March)
	ML4  = MonthlyMin(time.April)
	ML5  = MonthlyMin(time.May)
	ML6  = MonthlyMin(time.June)
	ML7  = MonthlyMin(time.July)
	ML8  = MonthlyMin(time.August)
	ML9  = MonthlyMin(time.September)
	ML10 = MonthlyMin(time.October)
	ML11 = MonthlyMin(time.November)
	ML12 = MonthlyMin(time.December)

	MH1  = MonthlyMax(time.January)
	MH2  = MonthlyMax(time.February)
	MH3  = MonthlyMax(time.March)
	MH4  = MonthlyMax(time.April)
	MH5  = MonthlyMax(time.May)
	MH6  = MonthlyMax(time.June)
	MH7  = MonthlyMax(time.July)
	MH8  = MonthlyMax(time.August)
	MH9  = MonthlyMax(time.September)
	MH10 = MonthlyMax(time.October)
	MH11 = MonthlyMax(time.November)
	MH12 = MonthlyMax(time.December)

	MH15 = exceedanceRatio(99)
	MH16 = exceedanceRatio(90)
	MH17 = exceedanceRatio(75)

	MH21 = floodVolume(1)
	MH22 = floodVolume(3)
	MH23 = floodVolume(7)

	FH3 = floodDays(3)
	FH4 = floodDays(7)
	FH6 = floodFrequency(3)
	FH7 = floodFrequency(7)
)

// Entry pairs a characteristic with its canonical name.
type Entry struct {
	Name string
	Fn   Characteristic
}

// Magnitude lists the magnitude characteristics (MA, ML, MH) in
// canonical order.
var Magnitude = []Entry{
	{"MA1", MA1}, {"MA2", MA2}, {"MA3", MA3}, {"MA4", MA4}, {"MA5", MA5},
	{"MA6", MA6}, {"MA7", MA7}, {"MA8", MA8}, {"MA9", MA9}, {"MA10", MA10},
	{"MA11", MA11}, {"MA12", MA12}, {"MA13", MA13}, {"MA14", MA14}, {"MA15", MA15},
	{"MA16", MA16}, {"MA17", MA17}, {"MA18", MA18}, {"MA19", MA19}, {"MA20", MA20},
	{"MA21", MA21}, {"MA22", MA22}, {"MA23", MA23}, {"MA24", MA24}, {"MA25", MA25},
	{"MA26", MA26}, {"MA27", MA27}, {"MA28", MA28}, {"MA29", MA29}, {"MA30", MA30},
	{"MA31", MA31}, {"MA32", MA32}, {"MA33", MA33}, {"MA34", MA34}, {"MA35", MA35},
	{"MA36", MA36}, {"MA37", MA37}, {"MA38", MA38}, {"MA39", MA39}, {"MA40", MA40},
	{"MA41", MA41}, {"MA42", MA42}, {"MA43", MA43}, {"MA44", MA44}, {"MA45", MA45},
	{"ML1", ML1}, {"ML2", ML2}, {"ML3", ML3}, {"ML4", ML4}, {"ML5", ML5},
	{"ML6", ML6}, {"ML7", ML7}, {"ML8", ML8}, {"ML9", ML9}, {"ML10", ML10},
	{"ML11", ML11}, {"ML12", ML12}, {"ML13", ML13}, {"ML14", ML14}, {"ML15", ML15},
	{"ML16", ML16}, {"ML17", ML17}, {"ML18", ML18}, {"ML19", ML19}, {"ML20", ML20},
	{"ML21", ML21}, {"ML22", ML22},
	{"MH1", MH1}, {"MH2", MH2}, {"MH3", MH3}, {"MH4", MH4}, {"MH5", MH5},
	{"MH6", MH6}, {"MH7", MH7}, {"MH8", MH8}, {"MH9", MH9}, {"MH10", MH10},
	{"MH11", MH11}, {"MH12", MH12}, {"MH13", MH13}, {"MH14", MH14}, {"MH15", MH15},
	{"MH16", MH16}, {"MH17", MH17}, {"MH18", MH18}, {"MH19", MH19}, {"MH20", MH20},
	{"MH21", MH21}, {"MH22", MH22}, {"MH23", MH23},
}

// Frequency lists the frequency characteristics (FL, FH).
var Frequency = []Entry{
	{"FL1", FL1}, {"FL2", FL2}, {"FL3", FL3},
	{"FH1", FH1}, {"FH2", FH2}, {"FH3", FH3}, {"FH4", FH4}, {"FH5", FH5},
	{"FH6", FH6}, {"FH7", FH7}, {"FH8", FH8}, {"FH9", FH9}, {"FH10", FH10},
}

// Duration lists the duration characteristics (DL, DH).
var Duration = []Entry{
	{"DL9", DL9}, {"DH4", DH4}, {"DH13", DH13}, {"DH16", DH16},
}

// Timing lists the timing characteristics (TA, TL).
var Timing = []Entry{
	{"TA1", TA1}, {"TL1", TL1},
}

// RateChange lists the rate of change characteristics (RA).
var RateChange = []Entry{
	{"RA1", RA1}, {"RA2", RA2}, {"RA3", RA3}, {"RA4", RA4}, {"RA5", RA5},
	{"RA6", RA6}, {"RA7", RA7}, {"RA8", RA8}, {"RA9", RA9},
}

// Everything lists all characteristics, magnitude first.
var Everything = concat(Magnitude, Frequency, Duration, Timing, RateChange)

func concat(families ...[]Entry) []Entry {
	var all []Entry
	for _, f := range families {
		all = append(all, f...)
	}
	return all
}

var byName = func() map[string]Characteristic {
	m := make(map[string]Characteristic, len(Everything))
	for _, e := range Everything {
		m[e.Name] = e.Fn
	}
	return m
}()

// ByName looks a characteristic up by its canonical name.
func ByName(name string) (Characteristic, error) {
	fn, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown characteristic %q", name)
	}
	return fn, nil
}

// Names returns all registered names, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Split turns a list of entries into parallel name and function slices.
func Split(entries []Entry) ([]string, []Characteristic) {
	names := make([]string, len(entries))
	fns := make([]Characteristic, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		fns[i] = e.Fn
	}
	return names, fns
}
