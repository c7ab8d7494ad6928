// Package reading annotates the six lines of a cast hexagram.
//
// Each line receives the stem and branch planted by its trigram, the
// element of that branch, its role toward the palace, a guardian spirit
// rotated from the day stem, and a void flag from the day's decade. The
// package also selects the rule and the list of texts that govern the
// reading from the number and positions of changing lines.
//
// Analysis is pure: it reads only its arguments and immutable tables, and
// it never reads the clock or a random source.
package reading
