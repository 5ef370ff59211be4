// Package client is the Go SDK for the submarine-api server. It carries the
// shared REST transport; the per-resource services live in the api subpackage
// and the data types in the model subpackage. The apis and models subpackages
// re-export both surfaces under one import path each.
package client
