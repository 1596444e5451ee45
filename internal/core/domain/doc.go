// Package domain defines the core domain models for kkokko.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Participant: a registered user with nickname and category
//   - AnswerSet: one questionnaire submission of a participant
//   - MatchRecord: the persisted ranked outcome of one matching run
//   - AnswerValue: scalar-or-sequence answer values
//   - Errors: domain-specific error definitions
//
// Record identifiers are ULID-based and creation-ordered: an entity
// created later always has a lexicographically greater identifier.
package domain
