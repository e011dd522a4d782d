// Package fuzzy holds the concrete comparison algorithms.
//
// Every scorer runs the supplied preprocessor over both inputs first and then compares the
// results. Ratio style scorers return a similarity in [0, 100] where 100 means identical;
// Levenshtein, OSA and Lengths return a distance where 0 means identical.
package fuzzy
