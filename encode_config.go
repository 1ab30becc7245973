package fundsim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/fundsim/month"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The configuration file is a single JSON document. Monetary amounts are
// decoded through decimal so exact file values survive the trip into the
// engine's float64 arithmetic unmangled by an intermediate binary float
// parse.

// flowDoc is a specialized struct to read a scheduled flow with an exact
// amount.
type flowDoc struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

func (f flowDoc) Flow() Flow {
	return Flow{Month: f.Month, Amount: f.Amount.InexactFloat64()}
}

// expenseDoc is a specialized struct for decoding an expense rule.
type expenseDoc struct {
	Name   string          `json:"name"`
	Kind   ExpenseKind     `json:"kind"`
	Annual Percent         `json:"annual"`
	Amount decimal.Decimal `json:"amount"`
}

func (e expenseDoc) Rule() ExpenseRule {
	return ExpenseRule{Name: e.Name, Kind: e.Kind, Annual: e.Annual, Amount: e.Amount.InexactFloat64()}
}

// DecodeFundConfig decodes a fund configuration document from r. The asset
// list is polymorphic: each entry carries a "type" tag selecting the variant.
// The returned configuration is decoded but not validated; Run validates.
func DecodeFundConfig(r io.Reader) (*FundConfig, error) {
	var doc struct {
		Name                string               `json:"name"`
		Start               month.Month          `json:"start"`
		Months              int                  `json:"months"`
		InitialContribution decimal.Decimal      `json:"initialContribution"`
		Rates               RateCurve            `json:"rates"`
		Contributions       []flowDoc            `json:"contributions"`
		Withdrawals         []flowDoc            `json:"withdrawals"`
		Expenses            []expenseDoc         `json:"expenses"`
		Assets              []json.RawMessage    `json:"assets"`
		Dividends           DividendPolicy       `json:"dividends"`
		Fee                 PerformanceFeePolicy `json:"fee"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse fund configuration: %w", err)
	}

	cfg := &FundConfig{
		Name:                doc.Name,
		Start:               doc.Start,
		Months:              doc.Months,
		InitialContribution: doc.InitialContribution.InexactFloat64(),
		Rates:               doc.Rates,
		Dividends:           doc.Dividends,
		Fee:                 doc.Fee,
	}
	for _, f := range doc.Contributions {
		cfg.Contributions = append(cfg.Contributions, f.Flow())
	}
	for _, f := range doc.Withdrawals {
		cfg.Withdrawals = append(cfg.Withdrawals, f.Flow())
	}
	for _, e := range doc.Expenses {
		cfg.Expenses = append(cfg.Expenses, e.Rule())
	}
	for i, raw := range doc.Assets {
		spec, err := decodeAsset(raw)
		if err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
		cfg.Assets = append(cfg.Assets, spec)
	}
	return cfg, nil
}

// decodeAsset decodes one polymorphic asset entry into its variant.
func decodeAsset(raw json.RawMessage) (AssetSpec, error) {
	var identifier struct {
		Type AssetType `json:"type"`
	}
	if err := json.Unmarshal(raw, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify asset type in %q: %w", string(raw), err)
	}

	switch identifier.Type {
	case AssetGeneric:
		// Use a temporary type with exact decimal amounts.
		var temp struct {
			baseAsset
			Principal decimal.Decimal `json:"principal"`
			Benchmark Benchmark       `json:"benchmark"`
			Spread    Percent         `json:"spread"`
		}
		if err := json.Unmarshal(raw, &temp); err != nil {
			return nil, err
		}
		return GenericAsset{
			baseAsset: temp.baseAsset,
			Principal: temp.Principal.InexactFloat64(),
			Benchmark: temp.Benchmark,
			Spread:    temp.Spread,
		}, nil

	case AssetCredit:
		var temp struct {
			baseAsset
			Principal    decimal.Decimal    `json:"principal"`
			TenorMonths  int                `json:"tenorMonths"`
			GraceMonths  int                `json:"graceMonths"`
			Benchmark    Benchmark          `json:"benchmark"`
			RateKind     RateKind           `json:"rateKind"`
			Rate         Percent            `json:"rate"`
			Amortization AmortizationMethod `json:"amortization"`
			Tranche      Tranche            `json:"tranche"`
			AnnualLoss   Percent            `json:"annualLoss"`
		}
		if err := json.Unmarshal(raw, &temp); err != nil {
			return nil, err
		}
		return CreditAsset{
			baseAsset:    temp.baseAsset,
			Principal:    temp.Principal.InexactFloat64(),
			TenorMonths:  temp.TenorMonths,
			GraceMonths:  temp.GraceMonths,
			Benchmark:    temp.Benchmark,
			RateKind:     temp.RateKind,
			Rate:         temp.Rate,
			Amortization: temp.Amortization,
			Tranche:      temp.Tranche,
			AnnualLoss:   temp.AnnualLoss,
		}, nil

	case AssetProperty:
		var temp struct {
			baseAsset
			Price       decimal.Decimal `json:"price"`
			Rent        decimal.Decimal `json:"rent"`
			Vacancy     Percent         `json:"vacancy"`
			CostPercent Percent         `json:"costPercent"`
			FixedCosts  decimal.Decimal `json:"fixedCosts"`
			Escalation  Benchmark       `json:"escalation"`
			ExitCapRate Percent         `json:"exitCapRate"`
		}
		if err := json.Unmarshal(raw, &temp); err != nil {
			return nil, err
		}
		return PropertyAsset{
			baseAsset:   temp.baseAsset,
			Price:       temp.Price.InexactFloat64(),
			Rent:        temp.Rent.InexactFloat64(),
			Vacancy:     temp.Vacancy,
			CostPercent: temp.CostPercent,
			FixedCosts:  temp.FixedCosts.InexactFloat64(),
			Escalation:  temp.Escalation,
			ExitCapRate: temp.ExitCapRate,
		}, nil

	default:
		return nil, fmt.Errorf("unknown asset type %q", identifier.Type)
	}
}

// MarshalJSON implements the json.Marshaler interface for GenericAsset.
func (a GenericAsset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(a.baseAsset)
	w.Append("principal", a.Principal)
	w.Append("benchmark", a.Benchmark)
	w.Optional("spread", a.Spread)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for CreditAsset.
func (a CreditAsset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(a.baseAsset)
	w.Append("principal", a.Principal)
	w.Append("tenorMonths", a.TenorMonths)
	w.Optional("graceMonths", a.GraceMonths)
	w.Append("benchmark", a.Benchmark)
	w.Append("rateKind", a.RateKind)
	w.Append("rate", a.Rate)
	w.Append("amortization", a.Amortization)
	w.Append("tranche", a.Tranche)
	w.Optional("annualLoss", a.AnnualLoss)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for PropertyAsset.
func (a PropertyAsset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(a.baseAsset)
	w.Append("price", a.Price)
	w.Append("rent", a.Rent)
	w.Optional("vacancy", a.Vacancy)
	w.Optional("costPercent", a.CostPercent)
	w.Optional("fixedCosts", a.FixedCosts)
	w.Append("escalation", a.Escalation)
	w.Append("exitCapRate", a.ExitCapRate)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for FundConfig, keeping
// the document's field order stable and readable.
func (c FundConfig) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("name", c.Name)
	w.Append("start", c.Start)
	w.Append("months", c.Months)
	w.Append("initialContribution", c.InitialContribution)
	w.Append("rates", c.Rates)
	w.Optional("contributions", c.Contributions)
	w.Optional("withdrawals", c.Withdrawals)
	w.Optional("expenses", c.Expenses)
	w.Optional("assets", c.Assets)
	w.Append("dividends", c.Dividends)
	w.Append("fee", c.Fee)
	return w.MarshalJSON()
}

// EncodeFundConfig writes the configuration to w as an indented JSON
// document.
func EncodeFundConfig(w io.Writer, cfg *FundConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode fund configuration: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteString("\n")
	_, err = w.Write(buf.Bytes())
	return err
}
