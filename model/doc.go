// Package model defines the JSON wire types shared by the RPC service and
// the audit archive, plus conversions to and from the engine's types.
//
// Wire conventions:
//   - accounts, project ids and assets are hex strings ("native" for the
//     native asset)
//   - amounts are decimal strings, never JSON numbers
//   - times and deadlines are unix seconds
package model
