package types

import "errors"

// Sentinel errors for mgvv operations. Callers classify failures with
// errors.Is; the concrete cause is attached by wrapping.
var (
	// ErrConfiguration indicates a bad config file, missing required keys,
	// a mismatched user/password pair, malformed alias syntax, or an
	// unknown output format. Always fatal before any validation work.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrConnection indicates the database could not be reached or
	// authenticated to. Fatal.
	ErrConnection = errors.New("database connection failed")

	// ErrDatabase indicates a database-level failure while scanning a
	// collection.
	ErrDatabase = errors.New("database error during validation")

	// ErrBadConstraint indicates a constraint or filter expression that
	// could not be parsed.
	ErrBadConstraint = errors.New("malformed constraint expression")

	// ErrBadFilter indicates a filter value that is neither a string, a
	// sequence of strings, nor absent.
	ErrBadFilter = errors.New("filter must be a string or list of strings")

	// ErrDuplicateAlias indicates the same alias name was defined twice.
	ErrDuplicateAlias = errors.New("duplicate alias name")

	// ErrDelivery indicates the email transport reached no recipients.
	// Logged only; never promoted to a fatal run failure.
	ErrDelivery = errors.New("report delivery failed")

	// ErrEmptyReport indicates the assembled report contains zero
	// sections. Surfaced as a non-zero exit with a warning.
	ErrEmptyReport = errors.New("nothing to report")
)
