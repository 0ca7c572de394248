// Package enrichment resolves titles to Wikidata entity ids over the public SPARQL endpoint.
//
// The Client implements validation.Finder. Its HTTP client is created on the first query
// and reused for the rest of the process; requests are throttled by a token bucket so long
// runs stay within the endpoint's usage policy. "Not found" is an empty result, never an
// error.
package enrichment
