// Package grid implements the indicative rent grid calculation for the
// Brussels-Capital Region.
//
// Given a property's category, surface, condition, energy class,
// amenities and the difficulty index of its street, Calculate returns
// the grid's median reference rent together with a ±10% band. The
// function is deterministic and side-effect free; all coefficients live
// in one table file.
package grid
