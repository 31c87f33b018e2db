// Package catalog implements the storefront's client-side narrowing of
// fetched medicine lists: free-text search, category, manufacturer, price
// range, prescription requirement, stock, plus pagination over the filtered
// result. It is pure slice processing; fetching pages is pkg/api's job.
package catalog
