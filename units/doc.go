// SPDX-License-Identifier: MIT

// Package units converts between engineering units by a constant factor.
//
// A unit expression is a product of named units with optional integer
// powers, optionally divided by another such product:
//
//	ft            m^2           kg-m/s^2      W/m^2-K      1/s
//
// '-' multiplies, '^' raises to an integer power (negative allowed) and a
// single '/' puts every following factor in the denominator. Names are
// case-sensitive SI and US customary symbols (m, ft, kg, lbm, N, lbf, Pa,
// psi, J, Btu, W, hp, L, gal, deg, rpm, ...).
//
// Temperatures convert as differences only (K, R, dC, dF): a factor cannot
// carry the offset between scales.
package units
