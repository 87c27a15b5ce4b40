package builder

import "errors"

// Builder errors are all raised before any statement reaches the database;
// an error here means nothing was executed.
var (
	// ErrEmptyMapping: no columns were supplied, so no statement can be built.
	ErrEmptyMapping = errors.New("empty column mapping")

	// ErrBadTemplate: an insert template does not carry exactly the two %s
	// slots the builder fills (column list, placeholder list).
	ErrBadTemplate = errors.New("malformed insert template")

	// ErrInvalidIdentifier: a column name failed the dialect's lexical rules
	// and cannot be interpolated into SQL text.
	ErrInvalidIdentifier = errors.New("invalid column identifier")

	// ErrEmptySetClause: every supplied column was conditional, leaving
	// nothing to update.
	ErrEmptySetClause = errors.New("empty SET clause")

	// ErrUnknownConditionalKey: a conditional key has no entry in the column
	// mapping.
	ErrUnknownConditionalKey = errors.New("conditional key not in column mapping")

	// ErrDuplicateConditionalKey: the same conditional key was listed twice.
	ErrDuplicateConditionalKey = errors.New("duplicate conditional key")

	// ErrConnectorCountMismatch: the connector list length is not exactly one
	// less than the conditional key list length.
	ErrConnectorCountMismatch = errors.New("connector count mismatch")

	// ErrInvalidConnector: a connector other than AND or OR was supplied.
	ErrInvalidConnector = errors.New("invalid connector")

	// ErrMissingWhereClause: an update with no conditional keys is rejected
	// rather than silently updating every row.
	ErrMissingWhereClause = errors.New("update requires a WHERE clause")
)
