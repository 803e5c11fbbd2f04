// Package client contains the client-side transport for zkpauth.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the three protocol calls: Register, CreateChallenge and Verify.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, stamps every call with a request id and a timeout, encodes
//     integers as hex and maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI,
//     opening an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Server-side protocol errors surface as the common sentinels
// (common.ErrMalformedInput, common.ErrUnknownIdentity,
// common.ErrNoPendingChallenge); transport trouble as ErrUnavailable.
// Match them with errors.Is.
package client
