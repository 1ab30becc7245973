// Package bcb retrieves benchmark rate series from the Banco Central do
// Brasil SGS open-data API, to seed a projection's rate curve with observed
// market rates.
package bcb

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/month"
)

// SGS series codes of the benchmarks the projection knows about.
const (
	SeriesCDI  = 4391 // CDI, monthly accumulated rate
	SeriesIPCA = 433  // IPCA, monthly variation
)

// Observation is one monthly data point of an SGS series, in percent.
type Observation struct {
	Month month.Month
	Value fundsim.Percent
}

// Monthly fetches the last n monthly observations of an SGS series, oldest
// first.
func Monthly(series, n int) ([]Observation, error) {
	addr := fmt.Sprintf("https://api.bcb.gov.br/dados/serie/bcdata.sgs.%d/dados/ultimos/%d?formato=json", series, n)
	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch SGS series %d: %w", series, err)
	}
	obs, err := parseObservations(jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot parse SGS series %d: %w", series, err)
	}
	return obs, nil
}

// parseObservations extracts the observation list from a decoded SGS
// response. The API returns a list of {"data": "01/08/2026", "valor": "1.17"}
// objects with both fields serialized as strings.
func parseObservations(jobj any) ([]Observation, error) {
	dates, err := stringsAt(jobj, "$[:].data")
	if err != nil {
		return nil, err
	}
	values, err := stringsAt(jobj, "$[:].valor")
	if err != nil {
		return nil, err
	}
	if len(dates) != len(values) {
		return nil, fmt.Errorf("mismatched series: %d dates for %d values", len(dates), len(values))
	}

	obs := make([]Observation, 0, len(dates))
	for i, d := range dates {
		day, err := time.Parse("02/01/2006", d)
		if err != nil {
			return nil, fmt.Errorf("invalid observation date %q: %w", d, err)
		}
		// the API occasionally uses a decimal comma
		v, err := strconv.ParseFloat(strings.ReplaceAll(values[i], ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid observation value %q: %w", values[i], err)
		}
		obs = append(obs, Observation{
			Month: month.New(day.Year(), day.Month()),
			Value: fundsim.Percent(v),
		})
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].Month.Before(obs[j].Month) })
	return obs, nil
}

// stringsAt evaluates a jsonpath expression expected to yield a list of
// strings.
func stringsAt(jobj any, path string) ([]string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("jsonpath %q: not a list: %v", path, jval)
	}
	out := make([]string, 0, len(jlist))
	for _, item := range jlist {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("jsonpath %q: not a string: %v", path, item)
		}
		out = append(out, s)
	}
	return out, nil
}

// Annualize compounds a trailing window of monthly observations into an
// annual nominal rate, in percent. It reports NaN for an empty window.
func Annualize(obs []Observation) fundsim.Percent {
	if len(obs) == 0 {
		return fundsim.Percent(math.NaN())
	}
	factor := 1.0
	for _, o := range obs {
		factor *= 1 + o.Value.Rate()
	}
	annual := math.Pow(factor, 12/float64(len(obs))) - 1
	return fundsim.Percent(annual * 100)
}

// SuggestCurve fetches the trailing window of CDI and IPCA observations and
// annualizes them into a rate curve usable in a fund configuration.
func SuggestCurve(window int) (fundsim.RateCurve, error) {
	cdi, err := Monthly(SeriesCDI, window)
	if err != nil {
		return fundsim.RateCurve{}, err
	}
	ipca, err := Monthly(SeriesIPCA, window)
	if err != nil {
		return fundsim.RateCurve{}, err
	}
	return fundsim.RateCurve{
		CDI:  Annualize(cdi),
		IPCA: Annualize(ipca),
	}, nil
}
