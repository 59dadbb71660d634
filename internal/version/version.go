// Package version contains the version number.
package version

// Version is the current version of asnfetch.
const Version = "0.2.0"
