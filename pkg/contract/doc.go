// Package contract declares the rental contract record: field names, the
// enumerations (payment method, fuel), the raw wire Values submitted by a
// form, the parsed Input built field by field, and the immutable Record
// handed to renderers once validation passes.
package contract
