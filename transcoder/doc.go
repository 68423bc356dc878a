// Package transcoder converts between the value model and engine wire
// messages.
//
// # Values
//
//	value.Value ←→ [Encoder / Decoder] ←→ wire.VariableValue
//
// Encoding and decoding are total over the kind set. Each direction is one
// visitor (or one switch over the message oneof) with a case per kind:
//
//	Kind           Message member        Notes
//	───────────────────────────────────────────────────────────
//	Integer        int_value
//	Real           double_value
//	Boolean        bool_value
//	String         string_value
//	File           file_value            staged / materialized
//	IntegerArray   int_array_value       values + dims
//	RealArray      double_array_value    values + dims
//	BooleanArray   bool_array_value      values + dims
//	StringArray    string_array_value    values + dims
//	FileArray      file_array_value      values + dims, staged
//
// Arrays are sent flattened in row-major order with their dimensions. On
// decode the product of the dimensions must equal the number of values;
// anything else is a shape_mismatch, never truncation or padding.
//
// # Files
//
// The Encoder stages File payloads through a FileStager and returns the
// staging scope with the message. The caller closes it after the request:
//
//	msg, scope, err := enc.EncodeValue(ctx, v)
//	if err != nil {
//	    return err
//	}
//	defer scope.Close()
//
// The Decoder hands returned files to a FileMaterializer, which copies them
// into owned storage. Without a stager or materializer (a remote engine)
// File kinds fail with unsupported_kind. All validation happens before any
// file is staged or materialized.
//
// # Metadata
//
// Metadata is layered: base fields (description, custom entries) on every
// kind, numeric formatting on Integer and Real, then per-kind bounds and
// enumerations. Array metadata travels in its element kind's message.
// DecodeMetadata takes the datapin kind and rejects a message for another
// kind with type_mismatch. Optional bounds stay optional: an absent bound
// decodes as nil, not zero.
//
// Custom metadata values are encoded with the value codec, except File
// and FileArray, which are rejected with unsupported_kind.
package transcoder
