// Package jobs implements background jobs for the LiveJourney API.
//
// Jobs run independently of HTTP request handling, follow a Start/Stop
// lifecycle, and log errors instead of crashing the application.
package jobs
