// Package api serves a loaded asset library over HTTP.
//
// # Routes
//
//	GET  /healthz                                 liveness probe
//	GET  /summary                                 library summary
//	GET  /assets?kind=<kind>                      assets in processing order
//	GET  /assets/{id}                             one asset with its raw record
//	POST /assets/{id}/instances/{instanceID}      create an instance
//	GET  /diagram?format=dot|svg&detailed=true    asset diagram
//	GET  /metrics                                 Prometheus metrics
//
// # Errors
//
// Failures are returned as JSON objects with "code" and "error" fields.
// Status codes follow the error code: invalid input is 400, unknown assets
// are 404, a torn-down library is 410 and everything else is 500.
package api
