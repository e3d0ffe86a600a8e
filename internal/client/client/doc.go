// Package client is the transport to the hosted collection store.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) with the five
//     collection calls (List, Get, Create, Update, Delete) plus Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that talks JSON to
//     <base>/<endpoint>/<collection>[/<id>] and maps every failure to a
//     common.Error kind.
//
// # Error Handling
//
//   - no response / timeout          -> common.KindConnectivity
//   - 404                            -> common.KindNotFound
//   - 500 on Update                  -> common.KindUnprocessableUpdate
//   - other non-2xx, bad request     -> common.KindFetch
//   - Delete with a status other than 200 -> common.KindFetch
//
// Nothing is retried here.
package client
