package runecoral

var (
	Version     = "v0.0.0-in-progress"
	UpstreamSHA = "unknown"
	UpstreamDir = "runecoral"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// UpstreamVersion returns the librunecoral commit the native library was
// built from, as recorded via ldflags by the build pipeline. The library
// itself exports no version symbol.
func UpstreamVersion() string {
	return UpstreamSHA
}
