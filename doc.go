/*
Package depsolver solves package dependency constraint problems.

Given a universe of packages - each declaring a set of versions, and per
version a list of constraints on other packages - and a run-list of
top-level goals, Solve returns either one concrete version per package
that jointly satisfies every constraint, or the smallest failing prefix
of the run-list together with the packages that could not be satisfied.

The universe is built incrementally into a Graph, which a solve never
mutates. Each solve trims the graph to the packages reachable from its
goals, lowers the symbolic problem into a finite-domain model, and hands
it to a solver session rented from a worker pool (package fd).
*/
package depsolver
