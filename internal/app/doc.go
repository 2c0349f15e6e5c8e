// Package app contains the use cases of the atelier: quote drafts, quote
// submission, dashboards, authentication and external tables. Services
// depend on ports, never on adapters.
package app
