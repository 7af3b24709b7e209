// Content-type registry and negotiation.
/*
This package decides which wire format a request body should be decoded from and a
response body encoded to. The Registry holds the content-type → codec mapping
configured at startup; the Negotiator reads request headers (Content-Type, Accept),
the request method, and an optional per-request override against that mapping.

The registry layer does exact, case-insensitive matches only. Quality-ranked Accept
handling lives in the negotiator; wildcard media ranges are treated as "no
preference" and fall through to the configured default.
*/
package negotiate
