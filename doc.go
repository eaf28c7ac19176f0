// Package smartwallet provides the client-side domain model for the Smart
// Wallet service: a backend that ingests bank, credit-card and UPI statements,
// categorizes transactions with an AI agent, and aggregates spending
// statistics.
//
// The core functionalities include:
//   - Statistics Aggregation: turning the raw label→amount mappings returned
//     by the backend into deterministically ordered, colored, chart-ready
//     series (category totals, behavioral-tag totals, payment-method totals).
//   - Job Model: the lifecycle of asynchronous backend jobs (agent runs and
//     insight generation) from submission to a terminal status.
//   - Input Validation: client-side checks (password length, budget amounts,
//     month formats, statement types) that block a call before any network
//     I/O happens.
//
// This package serves as the foundational logic for the `wallet` command-line
// tool. Network access lives in the api package, token lifecycle in the
// session package, and the polling state machine in the tracker package.
package smartwallet
