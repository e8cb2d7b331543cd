// Package services implements the driving port interfaces.
// Services contain the core business logic - clustering, coherence
// scoring, suggestion ranking and synthesis orchestration - and
// orchestrate calls to driven ports (adapters).
package services
