// Package testelement provides entity classes for exercising object-kind
// values: a reference-counted element with bulk property and method paths, a
// non-retaining marker, a relocatable population whose storage can be
// compacted, and an arena-backed colony with generation-checked handles.
package testelement
