package mandala

import "errors"

var (
	// ErrDegenerateGeometry reports zero or negative sizes, radii, sweeps
	// or steps where a positive value is required.
	ErrDegenerateGeometry = errors.New("mandala: degenerate geometry")

	// ErrEmptyPool is returned when a random or cyclic pick is requested
	// from an empty pool of values.
	ErrEmptyPool = errors.New("mandala: empty choice pool")

	// ErrMissingField is returned by constructors when a required field
	// has not been set.
	ErrMissingField = errors.New("mandala: missing required field")

	// ErrDiscontinuous is returned when a segment does not start where the
	// path currently ends.
	ErrDiscontinuous = errors.New("mandala: discontinuous path segment")

	// ErrDegenerateArc is the panic value used when an endpoint arc with a
	// zero radius (a straight line) is rotated or scaled.
	ErrDegenerateArc = errors.New("mandala: arc degenerates to a straight line")

	// ErrForeignSegment is returned when a segment handle minted by one
	// epoch is used with another.
	ErrForeignSegment = errors.New("mandala: segment handle belongs to another epoch")

	// ErrUnknownReplica is the panic value used when a replica does not
	// resolve to a real segment of its epoch.
	ErrUnknownReplica = errors.New("mandala: replica has no original in its epoch")
)
