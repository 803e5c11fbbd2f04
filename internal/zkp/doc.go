// Package zkp implements the Chaum–Pedersen proof of equality of discrete
// logarithms used for password-based authentication.
//
// # Protocol
//
// Public parameters (p, q, g, h) describe a subgroup of order q of Z*_p with
// two generators g and h. The prover holds a secret x.
//
//	registration:  y1 = g^x,  y2 = h^x                (mod p)
//	commitment:    r1 = g^k,  r2 = h^k                (mod p), k random
//	challenge:     c random in [2, q-1)
//	response:      s = k - c*x                        (mod q)
//	verification:  g^s * y1^c == r1  and  h^s * y2^c == r2   (mod p)
//
// Every function here is pure apart from the random sources passed in;
// parameters are always handed in explicitly as a *Parameters.
package zkp
