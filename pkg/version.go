package adiftest

var (
	// Version of adiftest.
	Version = "v0.1.0"
	// Build timestamp.
	Build = "n/a"
)
