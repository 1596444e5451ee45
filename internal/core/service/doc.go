// Package service provides domain services for kkokko.
//
// Domain services contain pure business logic and orchestrate operations
// on domain models. They define interfaces for storage dependencies,
// allowing for dependency injection and testability.
//
// This package contains:
//
//   - ParticipantService: registration and aggregate statistics
//   - AnswerService: questionnaire submissions
//   - MatchService: match runs and pairwise answer comparison
//   - Score: the pure similarity scoring function
//
// Services are stateless; all record state lives behind the repository
// interfaces.
package service
