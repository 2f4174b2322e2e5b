package types

import "errors"

var (
	// ErrNoCohort is returned when a command needs a cohort but none has
	// been generated yet.
	ErrNoCohort = errors.New("no cohort found: run 'cothink cohort generate' first")

	// ErrNoRecords is returned when analysis or export is attempted on an
	// empty dataset.
	ErrNoRecords = errors.New("no interaction records collected yet")

	// ErrMissingAPIKey is returned when the configured provider has no
	// API key in config or environment.
	ErrMissingAPIKey = errors.New("missing LLM API key: set GEMINI_API_KEY in .env or llm.apiKey in config")
)
