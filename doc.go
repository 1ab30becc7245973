// Package fundsim projects the monthly financial life of a closed-end
// investment fund over a multi-year horizon. It is designed to be pure,
// deterministic, and free of I/O, so that a projection can be re-run,
// compared, and audited from a single configuration value.
//
// The core functionalities include:
//   - Monthly Projection Engine: a stateful simulation that advances cash
//     balances, asset valuations, amortization schedules, expense accruals,
//     performance-fee accrual against a high-water mark, and dividend
//     distribution, month by month, producing an append-only series of
//     period records.
//   - Asset Valuation Models: per-variant state transitions for generic
//     yield-bearing assets, amortizing credit instruments (CRI/CCI-like),
//     and income-producing property.
//   - Return Analytics: IRR, MOIC, DPI, RVPI, and payback period derived
//     from the investor's net cash-flow series.
//   - Annual Income Statement: calendar-year aggregation of the monthly
//     series for reporting.
//   - Configuration Codec: decoding and encoding of fund-configuration
//     files with a polymorphic, type-tagged asset list.
//
// This package serves as the foundational logic for the `fsim` command-line
// tool, which collects configuration, runs projections, and renders the
// resulting statements and metrics.
package fundsim
