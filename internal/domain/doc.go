// Package domain contains the core entities and value types of the triage
// service: tasks, the Eisenhower quadrant enum, wizard questions, and the
// analysis result shapes exchanged with the language-model providers.
// Domain types validate themselves and carry no dependencies on transport,
// storage, or provider packages.
package domain
