package utils

// Version is set from source control at build time.
var Version string = "unknown"
