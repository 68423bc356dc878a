// Package wire holds the engine protocol messages.
//
// The engine defines the schema; these types mirror it field for field and
// carry JSON tags matching the schema's field names so they can travel over
// gRPC with the JSON codec registered by package rpc. Oneof groups are
// structs of optional pointer fields of which exactly one is set.
//
// Nothing here converts or validates: see package transcoder for the value
// and metadata codecs.
package wire
