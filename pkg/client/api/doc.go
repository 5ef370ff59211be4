// Package api holds one service per platform resource. Every service wraps
// the shared client.APIClient and exposes typed calls for its endpoints.
package api
