// Package main hosts the prerender service entrypoint.
//
// Architecture overview:
//   - HTTP surface: internal/server.Server exposes health, metrics, and debug endpoints plus a catch-all
//     route that hands every remaining GET to the renderer. Request ID, logging, recovery, and timeout
//     middleware wrap the whole chain; recovery responds with a minimal noindex document so crawlers
//     never see an error payload.
//   - Agent gate: internal/botdetect classifies the User-Agent. Interactive browsers are redirected to
//     the application origin; crawlers and other non-interactive clients get prerendered documents. A
//     bounded in-memory counter tracks per-bot path popularity for the /debug/botstats endpoint.
//   - Dispatch: internal/render walks an ordered matcher list (articles, news feed, topic/country
//     facets, legislator profiles, static pages). Matchers fetch records from the content API and the
//     legislator registry via internal/content; any upstream failure falls through to the generic 404
//     document. Canonical slugs are enforced with 301 redirects.
//   - Synthesis: internal/markup interprets editorial pseudo-markup into plain text, internal/schema
//     builds the JSON-LD graphs, and internal/document assembles the final HTML with meta, Open Graph,
//     hreflang, and structured-data blocks.
//   - Configuration & plumbing: Viper populates config from env/files; zap provides structured logging;
//     Prometheus counters and histograms are exported on /metrics. The service keeps no local state and
//     shuts down gracefully on SIGTERM.
//
// Run locally: go run ./cmd/prerender -config config.yaml (or rely solely on PRERENDER_* env overrides).
package main
