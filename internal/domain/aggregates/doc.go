// Package aggregates defines the write boundaries of the meal-sharing
// domain and the typed errors they fail with.
package aggregates
