package numerology

// Version is the release of this module. Release builds override it with
// -ldflags "-X github.com/aretw0/numerology.Version=...".
var Version = "0.3.0-dev"
