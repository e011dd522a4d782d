// Package preprocess provides the built-in preprocessing strategies.
//
// Every strategy here is immutable once built and safe to share between algorithms and
// goroutines. NoOp and Default are the two distinguished values: NoOp disables
// preprocessing, Default is what an algorithm uses when nothing else is configured.
package preprocess
