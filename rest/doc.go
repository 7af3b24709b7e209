// RESTful serialize / deserialize pipeline and status helpers.
/*
This package ties the content-type registry, the negotiator, and the content engine
together into the request lifecycle of a REST service:

1. BeginRequest decodes an incoming body into a structured entity based on its
Content-Type (415 when the type is unknown, 400 when the body is malformed, nothing
at all when the body is empty).

2. The application handler runs, wrapped in an explicit ordered middleware chain.
It calls a Responder status helper (Ok, Created, NoContent...), which records the
HTTP status and stashes the response entity.

3. EndRequest encodes the stashed entity into whichever format the client
negotiated (content-type override on GET, the request's own Content-Type, ranked
Accept preferences, then the configured default) and hands back status, headers,
and body.

Hosting frameworks can drive BeginRequest / EndRequest directly, or mount a handler
on net/http through Pipeline.Wrap.

Configuration is layered: NewConfig merges caller options over the package
defaults, and the resulting Pipeline is immutable and safe for any number of
concurrent requests.
*/
package rest
