// Package server provides HTTP routing, middleware, and the list preview handler behind "kmx serve".
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # List Preview
//
// [ListHandler] aggregates an index resource from the management API and responds with the rendered template,
// so lists can be inspected in a browser without a copy of the admin UI:
//
//	GET /lists?index=/api/topics.json&template=%23tmpl-topics
//
// The template defaults to the one named after the index ("topics.json" uses #tmpl-topics).
// Errors map onto status codes: 400 for bad input, 401 when the API rejected the credential,
// 404 for an unknown template and 502 for any other upstream failure.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
