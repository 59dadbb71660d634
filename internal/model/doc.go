// Package model contains the shared interfaces and data structures.
//
// This package should only contain:
//
// 1. important interfaces that are shared by several packages
// within the codebase, with the objective of separating unrelated
// pieces of code and making unit testing easier;
//
// 2. important pieces of data that are shared across different
// packages (e.g., the representation of an ASN lookup result).
//
// In general, this package should not contain logic, unless
// this logic is strictly related to data structures and we
// cannot implement this logic elsewhere.
//
// The content of this package is organized as follows:
//
// - asn.go: the ASN lookup result record and the resolver
// interface implemented by every data-source provider;
//
// - http.go: the HTTP client interface used to inject transports
// and fakes into code performing HTTP operations;
//
// - logger.go: generic definition of an apex/log compatible logger,
// used in several places across the codebase.
package model
