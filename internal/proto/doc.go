// Package proto defines the zkp_auth.Auth gRPC service: its typed request
// and response messages, client stub, server interface and service
// descriptor.
//
// Messages travel as google.protobuf.Struct values, so the service works
// with the default gRPC proto codec and needs no generated descriptors.
// Every field is a string; integers are lowercase hex without prefix.
package proto
