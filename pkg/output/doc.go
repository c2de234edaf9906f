// Package output serializes collected video records to tabular files.
//
// A Writer takes the full record sequence of one run and writes an
// identical copy to every configured destination. The format follows
// the file extension: .xlsx produces a spreadsheet, .json an indented
// array, and everything else CSV. Columns are always category, author,
// rank, publish_date, title, url, in that order, with rows in
// accumulation order.
//
// Destinations are overwritten in place, so reruns replace earlier
// results rather than appending to them. Intermediate directories are
// created on demand.
package output
