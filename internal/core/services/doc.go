// Package services implements the driving port interfaces.
// Services contain the pipeline logic (document building, batch
// embedding, orchestration) and call out to driven ports (adapters).
//
// Services never import adapters; they are handed driven ports at construction.
package services
