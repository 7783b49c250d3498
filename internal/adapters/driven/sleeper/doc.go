// Package sleeper reads league data from the Sleeper public API.
//
// Every call is a single GET. Requests are throttled client-side with a
// token bucket; failed requests are never retried.
package sleeper
