// Package transform turns a per-store target sheet and a product grade sheet
// into long-format records, one per SKU, store and month.
//
// Everything here is pure: no I/O, no logging, no shared state. Cells and
// headers that cannot be used are skipped and reported in the result's
// Diagnostics; only layout problems (missing SKU column, no store columns)
// fail a run.
package transform
