// Package cast produces the six line values of a hexagram from a stimulus:
// three-coin tosses, the yarrow-stalk procedure, a pair of numbers, a
// moment in time, or tosses recorded by hand.
//
// Every generator returns values bottom line first. Randomized generators
// draw from an injected Source so a fixed seed replays the same cast.
package cast
